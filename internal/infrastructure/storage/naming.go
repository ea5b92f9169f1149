package storage

import (
	"path"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"user-profile-api/internal/domain/photo"
)

const maxFileNameLen = 100

var windowsReserved = map[string]struct{}{
	"con": {}, "prn": {}, "aux": {}, "nul": {},
	"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
	"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
}

// Namer produces "<token>_<name>" file names. Tokens are unix milliseconds,
// bumped by one whenever the clock has not moved past the previous token.
type Namer struct {
	last atomic.Int64
	now  func() time.Time
}

func NewNamer() *Namer { return &Namer{now: time.Now} }

func (n *Namer) Generate(originalName string) (string, error) {
	clean, err := SanitizeFileName(originalName)
	if err != nil {
		return "", err
	}

	return strconv.FormatInt(n.nextToken(), 10) + "_" + clean, nil
}

func (n *Namer) nextToken() int64 {
	for {
		prev := n.last.Load()
		tok := n.now().UnixMilli()
		if tok <= prev {
			tok = prev + 1
		}
		if n.last.CompareAndSwap(prev, tok) {
			return tok
		}
	}
}

// IsGeneratedName reports whether name could have been produced by a Namer,
// i.e. it is a bare file name with no directory parts.
func IsGeneratedName(name string) bool {
	if name == "" || strings.ContainsAny(name, "/\\\x00") || strings.HasPrefix(name, ".") {
		return false
	}
	i := strings.IndexByte(name, '_')
	if i <= 0 {
		return false
	}
	_, err := strconv.ParseInt(name[:i], 10, 64)
	return err == nil
}

// SanitizeFileName turns a client supplied file name into an ASCII name that is
// safe to place in a flat directory. Names carrying directory components are
// rejected with photo.ErrUnsafeName.
func SanitizeFileName(original string) (string, error) {
	s := strings.TrimSpace(original)
	if s == "" {
		return "file", nil
	}
	if strings.ContainsAny(s, "/\\\x00") || s == "." || s == ".." {
		return "", photo.ErrUnsafeName
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	base, ext := s, strings.ToLower(path.Ext(s))
	if isCleanExt(ext) {
		base = strings.TrimSuffix(s, path.Ext(s))
	} else {
		ext = ""
	}

	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			b.WriteRune(r)
			prevDash = false
		case r == '_':
			b.WriteRune(r)
			prevDash = false
		case r == '-' || r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		default:
		}
	}
	base = strings.Trim(b.String(), "-_")

	if base == "" {
		base = "file"
	}
	if _, bad := windowsReserved[strings.ToLower(base)]; bad {
		base = "_" + base
	}

	for utf8.RuneCountInString(base)+len(ext) > maxFileNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		if size <= 0 || size >= len(base) {
			break
		}
		base = base[:len(base)-size]
	}

	return base + ext, nil
}

func isCleanExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 10 {
		return false
	}
	for _, r := range ext[1:] {
		if !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }

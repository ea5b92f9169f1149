package rest

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"user-profile-api/internal/application/ports"
	"user-profile-api/internal/domain/photo"
	domain "user-profile-api/internal/domain/user"
	"user-profile-api/internal/interface/api/rest/dto/user"
	"user-profile-api/internal/interface/api/rest/validator"
)

const (
	partUser  = "user"
	partPhoto = "photo"

	// room for a photo at the size limit plus the user part and multipart framing
	maxMultipartSize = 16 << 20
	maxJSONSize      = 1 << 20
)

var errMissingUserPart = errors.New("user part is required")

type UserController struct {
	userService ports.UserService
	photoStore  ports.PhotoStore
	logger      *zap.Logger
	mCounter    *prometheus.CounterVec
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	photoStore ports.PhotoStore,
	logger *zap.Logger,
	mCounter *prometheus.CounterVec,
) *UserController {
	uc := &UserController{
		userService: userService,
		photoStore:  photoStore,
		logger:      logger,
		mCounter:    mCounter,
	}

	r.GET(RouteUsers, uc.GetUsersHandler)
	r.GET(RouteUser, uc.GetUserHandler)
	r.POST(RouteUsers, uc.CreateUserHandler)
	r.PUT(RouteUser, uc.UpdateUserHandler)
	r.DELETE(RouteUser, uc.DeleteUserHandler)

	return uc
}

func (uc *UserController) GetUsersHandler(c *gin.Context) {
	users, err := uc.userService.GetAll(c.Request.Context())
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get users"},
		)
		uc.logger.Error("GetAll() error", zap.Error(err))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUsers(users))
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a positive integer"},
		)
		return
	}

	u, err := uc.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("GetByID() error", zap.Error(err), zap.Int64("user_id", int64(id)))
		return
	}

	if u == nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

// CreateUserHandler expects multipart/form-data with a JSON "user" part and a "photo" file.
func (uc *UserController) CreateUserHandler(c *gin.Context) {
	form, ok := uc.parseMultipart(c)
	if !ok {
		return
	}

	raw, err := userPart(form)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	uDomain, ok := decodeUser(c, raw)
	if !ok {
		return
	}

	fh := photoPart(form)
	if fh == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo is required"})
		return
	}

	url, ok := uc.storePhoto(c, fh)
	if !ok {
		return
	}
	uDomain.PhotoURL = &url

	u, err := uc.userService.Save(c.Request.Context(), uDomain)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to create a user"},
		)
		uc.logger.Error("Save() error", zap.Error(err), zap.String("photo_url", url))
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*u))
}

// UpdateUserHandler accepts either a JSON body or multipart/form-data with a
// "user" part and an optional "photo" file.
func (uc *UserController) UpdateUserHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a positive integer"},
		)
		return
	}

	var (
		raw []byte
		fh  *multipart.FileHeader
		err error
	)
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		form, ok := uc.parseMultipart(c)
		if !ok {
			return
		}
		if raw, err = userPart(form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		fh = photoPart(form)
	} else {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxJSONSize)
		if raw, err = io.ReadAll(c.Request.Body); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "request body too large"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read request body"})
			return
		}
	}

	edits, ok := decodeUser(c, raw)
	if !ok {
		return
	}

	existing, err := uc.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to get a user"},
		)
		uc.logger.Error("GetByID() error", zap.Error(err), zap.Int64("user_id", int64(id)))
		return
	}
	if existing == nil {
		c.Status(http.StatusNotFound)
		return
	}

	existing.ApplyEdits(edits)

	// an empty photo part means "keep the current photo"
	if fh != nil && fh.Size > 0 {
		url, ok := uc.storePhoto(c, fh)
		if !ok {
			return
		}
		existing.PhotoURL = &url
	}

	u, err := uc.userService.Save(c.Request.Context(), *existing)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to update a user"},
		)
		uc.logger.Error("Save() error", zap.Error(err), zap.Int64("user_id", int64(id)))
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	id, ok := validator.ParseID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a positive integer"},
		)
		return
	}

	if err := uc.userService.Delete(c.Request.Context(), id); err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to delete user"},
		)
		uc.logger.Error("Delete() error", zap.Error(err), zap.Int64("user_id", int64(id)))
		return
	}

	c.Status(http.StatusNoContent)
}

func (uc *UserController) parseMultipart(c *gin.Context) (*multipart.Form, bool) {
	if c.Request.ContentLength > maxMultipartSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error":  "invalid photo",
			"reason": photo.ReasonTooLarge,
		})
		return nil, false
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxMultipartSize)

	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{
				"error":  "invalid photo",
				"reason": photo.ReasonTooLarge,
			})
			return nil, false
		}
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": "expected multipart/form-data",
		})
		return nil, false
	}

	return form, true
}

// storePhoto validates fh and writes it to the photo store. On failure the
// response has already been written.
func (uc *UserController) storePhoto(c *gin.Context, fh *multipart.FileHeader) (string, bool) {
	if err := validator.ValidatePhoto(fh); err != nil {
		uc.inc("photo_rejected_total")
		status, reason := http.StatusBadRequest, photo.Reason("")
		var ve *photo.ValidationError
		if errors.As(err, &ve) {
			reason = ve.Reason
			if reason == photo.ReasonTooLarge {
				status = http.StatusRequestEntityTooLarge
			}
		}
		c.JSON(status, gin.H{
			"error":   "invalid photo",
			"reason":  reason,
			"details": err.Error(),
		})
		return "", false
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read photo"})
		uc.logger.Warn("photo open error", zap.Error(err))
		return "", false
	}
	defer f.Close()

	url, err := uc.photoStore.Save(c.Request.Context(), fh.Filename, f)
	if err != nil {
		c.JSON(
			http.StatusInternalServerError,
			gin.H{"error": "failed to store photo"},
		)
		uc.logger.Error("photo Save() error", zap.Error(err), zap.String("file_name", fh.Filename))
		return "", false
	}

	uc.inc("photo_stored_total")

	return url, true
}

func (uc *UserController) inc(result string) {
	if uc.mCounter != nil {
		uc.mCounter.WithLabelValues(result).Inc()
	}
}

// decodeUser is the single decode step for both create and update. On failure
// the 400 response has already been written.
func decodeUser(c *gin.Context, raw []byte) (domain.User, bool) {
	req, err := user.DecodeRequest(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return domain.User{}, false
	}
	if errs := validator.ValidateUser(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return domain.User{}, false
	}

	uDomain, err := user.ToDomainUser(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return domain.User{}, false
	}

	return uDomain, true
}

// userPart reads the JSON "user" part, sent either as a plain form field or as
// a file part with an application/json content type.
func userPart(form *multipart.Form) ([]byte, error) {
	if vs := form.Value[partUser]; len(vs) > 0 {
		return []byte(vs[0]), nil
	}
	if fhs := form.File[partUser]; len(fhs) > 0 {
		f, err := fhs[0].Open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxJSONSize))
	}
	return nil, errMissingUserPart
}

func photoPart(form *multipart.Form) *multipart.FileHeader {
	if fhs := form.File[partPhoto]; len(fhs) > 0 {
		return fhs[0]
	}
	return nil
}

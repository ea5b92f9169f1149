package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"go.uber.org/zap"

	"user-profile-api/config"
	"user-profile-api/internal/domain/photo"
	"user-profile-api/internal/infrastructure/storage"
)

// Store keeps photos as objects in an S3 compatible bucket (AWS, MinIO, SeaweedFS).
// Object keys are the generated names, so public URLs keep the /uploads/ shape
// and are served through the API.
type Store struct {
	client *s3.Client
	bucket string
	namer  *storage.Namer
	logger *zap.Logger
}

func New(
	ctx context.Context,
	logger *zap.Logger,
	cfg config.S3,
) (*Store, error) {
	accessKey, secretKey := cfg.AccessKeyID, cfg.SecretAccessKey
	if accessKey == "" {
		// MinIO/SeaweedFS still expect signed requests
		accessKey, secretKey = "any", "any"
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
		o.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		o.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	})

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		namer:  storage.NewNamer(),
		logger: logger,
	}, nil
}

// EnsureRoot creates the bucket when it does not exist yet.
func (s *Store) EnsureRoot(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{
		Bucket: aws.String(s.bucket),
	})
	if err == nil {
		s.logger.Info("upload bucket ready", zap.String("bucket", s.bucket))
		return nil
	}

	if _, err = s.client.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(s.bucket),
	}); err != nil {
		return &photo.StorageInitError{Root: s.bucket, Err: err}
	}

	s.logger.Info("upload bucket created", zap.String("bucket", s.bucket))

	return nil
}

func (s *Store) Save(ctx context.Context, originalName string, content io.Reader) (string, error) {
	name, err := s.namer.Generate(originalName)
	if err != nil {
		return "", &photo.StorageWriteError{Name: originalName, Err: err}
	}

	// the SDK needs a seekable body to sign plain http requests
	data, err := io.ReadAll(content)
	if err != nil {
		return "", &photo.StorageWriteError{Name: name, Err: fmt.Errorf("read content: %w", err)}
	}

	in := &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
		Body:   bytes.NewReader(data),
	}
	if ct := mime.TypeByExtension(filepath.Ext(name)); ct != "" {
		in.ContentType = aws.String(ct)
	}

	if _, err = s.client.PutObject(ctx, in); err != nil {
		return "", &photo.StorageWriteError{Name: name, Err: fmt.Errorf("put object: %w", err)}
	}

	return photo.URL(name), nil
}

func (s *Store) Open(ctx context.Context, name string) (*photo.Object, error) {
	if !storage.IsGeneratedName(name) {
		return nil, photo.ErrNotFound
	}

	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	})
	if err != nil {
		if isNotFound(err) {
			return nil, photo.ErrNotFound
		}
		return nil, fmt.Errorf("get object %q: %w", name, err)
	}

	ct := aws.ToString(out.ContentType)
	if ct == "" {
		ct = "application/octet-stream"
	}

	return &photo.Object{
		Name:        name,
		Content:     out.Body,
		ContentType: ct,
		Size:        aws.ToInt64(out.ContentLength),
		ModTime:     aws.ToTime(out.LastModified),
	}, nil
}

func isNotFound(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var re *awshttp.ResponseError
	return errors.As(err, &re) && re.HTTPStatusCode() == http.StatusNotFound
}

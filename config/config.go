package config

import (
	"fmt"
	"os"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	StorageLocal = "local"
	StorageS3    = "s3"
)

type (
	APP struct {
		Name string
		Host string
		Port string
		Env  string
	}
	DB struct {
		Driver     string
		User       string
		Password   string
		Name       string
		Host       string
		Port       string
		SQLitePath string
	}
	Storage struct {
		Driver    string
		UploadDir string
	}
	S3 struct {
		Region          string
		Endpoint        string
		AccessKeyID     string
		SecretAccessKey string
		Bucket          string
	}

	Config struct {
		App     APP
		DB      DB
		Storage Storage
		S3      S3
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func Load() Config {
	app := APP{
		Name: getEnv("SERVICE_NAME", "userprofileapi"),
		Host: getEnv("SERVICE_HOST", ""),
		Port: getEnv("SERVICE_PORT", "8080"),
		Env:  getEnv("SERVICE_ENV", ""),
	}
	db := DB{
		Driver:     getEnv("DB_DRIVER", DriverPostgres),
		User:       getEnv("POSTGRES_USER", ""),
		Password:   getEnv("POSTGRES_PASSWORD", ""),
		Name:       getEnv("POSTGRES_DB", ""),
		Host:       getEnv("POSTGRES_HOST", ""),
		Port:       getEnv("POSTGRES_PORT", "5432"),
		SQLitePath: getEnv("SQLITE_PATH", "userprofile.db"),
	}
	storage := Storage{
		Driver:    getEnv("STORAGE_DRIVER", StorageLocal),
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
	}
	s3 := S3{
		Region:          getEnv("S3_REGION", "us-east-1"),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		Bucket:          getEnv("S3_BUCKET_UPLOADS", ""),
	}

	return Config{
		App:     app,
		DB:      db,
		Storage: storage,
		S3:      s3,
	}
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s",
		c.DB.User,
		c.DB.Password,
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) Validate() error {
	switch c.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DB.Driver)
	}

	switch c.Storage.Driver {
	case StorageLocal:
		if c.Storage.UploadDir == "" {
			return fmt.Errorf("UPLOAD_DIR is required for local storage")
		}
	case StorageS3:
		if c.S3.Bucket == "" || c.S3.Endpoint == "" {
			return fmt.Errorf("invalid S3 config: endpoint and bucket are required")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	return nil
}

package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string
	Port        string
	Region      string
	EndpointURL string // optional AWS endpoint override (LocalStack)
	Log         LogConfig
	Storage     StorageConfig
	Table       TableConfig
	Detector    DetectorConfig
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string // "json" or "text"
}

// StorageConfig holds object storage configuration
type StorageConfig struct {
	Type           string // "s3", "minio", "local" or "mock"
	Bucket         string `validate:"required"`
	LocalPath      string
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
}

// TableConfig holds label table configuration
type TableConfig struct {
	Type       string // "dynamodb", "sqlite" or "mock"
	Name       string `validate:"required"`
	SQLitePath string
}

// DetectorConfig holds label detection configuration
type DetectorConfig struct {
	Type          string // "rekognition" or "mock"
	MaxLabels     int32
	MinConfidence float32
}

// uploadRequirements is what the upload handler cannot run without
type uploadRequirements struct {
	Table TableConfig
}

// searchRequirements is what the search handler cannot run without
type searchRequirements struct {
	Table   TableConfig
	Storage StorageConfig
}

var validate = validator.New()

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PORT", "8081")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("AWS_REGION", "eu-central-1")
	v.SetDefault("STORAGE_TYPE", "s3")
	v.SetDefault("STORAGE_LOCAL_PATH", "./data/images")
	v.SetDefault("TABLE_TYPE", "dynamodb")
	v.SetDefault("SQLITE_PATH", "./data/labels.db")
	v.SetDefault("DETECTOR_TYPE", "rekognition")
	v.SetDefault("REKOGNITION_MAX_LABELS", 0)
	v.SetDefault("REKOGNITION_MIN_CONFIDENCE", 0)

	config := &Config{
		Environment: v.GetString("ENVIRONMENT"),
		Port:        v.GetString("PORT"),
		Region:      v.GetString("AWS_REGION"),
		EndpointURL: v.GetString("AWS_ENDPOINT_URL"),
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
		},
		Storage: StorageConfig{
			Type:           v.GetString("STORAGE_TYPE"),
			Bucket:         v.GetString("S3_BUCKET_NAME"),
			LocalPath:      v.GetString("STORAGE_LOCAL_PATH"),
			MinioEndpoint:  v.GetString("MINIO_ENDPOINT"),
			MinioAccessKey: v.GetString("MINIO_ACCESS_KEY"),
			MinioSecretKey: v.GetString("MINIO_SECRET_KEY"),
			MinioUseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
		Table: TableConfig{
			Type:       v.GetString("TABLE_TYPE"),
			Name:       v.GetString("DYNAMODB_TABLE_NAME"),
			SQLitePath: v.GetString("SQLITE_PATH"),
		},
		Detector: DetectorConfig{
			Type:          v.GetString("DETECTOR_TYPE"),
			MaxLabels:     v.GetInt32("REKOGNITION_MAX_LABELS"),
			MinConfidence: float32(v.GetFloat64("REKOGNITION_MIN_CONFIDENCE")),
		},
	}

	return config, nil
}

// ValidateForUpload checks the values the upload handler requires.
// A missing table name is unrecoverable for an upload invocation.
func (c *Config) ValidateForUpload() error {
	if err := validate.Struct(uploadRequirements{Table: c.Table}); err != nil {
		return fmt.Errorf("missing required environment variable: DYNAMODB_TABLE_NAME: %w", err)
	}
	return nil
}

// ValidateForSearch checks the values the search handler requires
func (c *Config) ValidateForSearch() error {
	if err := validate.Struct(searchRequirements{Table: c.Table, Storage: c.Storage}); err != nil {
		return fmt.Errorf("invalid search configuration: %w", err)
	}
	return nil
}

// GetEnv gets an environment variable with a fallback value
func GetEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

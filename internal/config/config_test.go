package config

import (
	"os"
	"testing"
)

var configEnvVars = []string{
	"ENVIRONMENT",
	"AWS_REGION",
	"AWS_LAMBDA_FUNCTION_NAME",
	"DYNAMODB_TABLE_NAME",
	"S3_BUCKET_NAME",
	"STORAGE_TYPE",
	"TABLE_TYPE",
	"DETECTOR_TYPE",
	"REKOGNITION_MAX_LABELS",
	"REKOGNITION_MIN_CONFIDENCE",
	"LOG_FORMAT",
}

// clearConfigEnv unsets every variable the tests touch and restores them afterwards
func clearConfigEnv(t *testing.T) {
	t.Helper()
	originalEnv := make(map[string]string)
	for _, key := range configEnvVars {
		if value, ok := os.LookupEnv(key); ok {
			originalEnv[key] = value
		}
		os.Unsetenv(key)
	}
	t.Cleanup(func() {
		for _, key := range configEnvVars {
			if value, ok := originalEnv[key]; ok {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	})
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name:    "defaults",
			envVars: map[string]string{},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Region != "eu-central-1" {
					t.Errorf("Expected default region eu-central-1, got %s", cfg.Region)
				}
				if cfg.Storage.Type != "s3" {
					t.Errorf("Expected default storage type s3, got %s", cfg.Storage.Type)
				}
				if cfg.Table.Type != "dynamodb" {
					t.Errorf("Expected default table type dynamodb, got %s", cfg.Table.Type)
				}
				if cfg.Detector.Type != "rekognition" {
					t.Errorf("Expected default detector rekognition, got %s", cfg.Detector.Type)
				}
				if cfg.Table.Name != "" {
					t.Errorf("Expected empty table name, got %s", cfg.Table.Name)
				}
			},
		},
		{
			name: "custom configuration",
			envVars: map[string]string{
				"DYNAMODB_TABLE_NAME":        "image-labels",
				"S3_BUCKET_NAME":             "image-bucket",
				"AWS_REGION":                 "us-west-2",
				"REKOGNITION_MAX_LABELS":     "10",
				"REKOGNITION_MIN_CONFIDENCE": "75.5",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.Table.Name != "image-labels" {
					t.Errorf("Expected table image-labels, got %s", cfg.Table.Name)
				}
				if cfg.Storage.Bucket != "image-bucket" {
					t.Errorf("Expected bucket image-bucket, got %s", cfg.Storage.Bucket)
				}
				if cfg.Region != "us-west-2" {
					t.Errorf("Expected region us-west-2, got %s", cfg.Region)
				}
				if cfg.Detector.MaxLabels != 10 {
					t.Errorf("Expected max labels 10, got %d", cfg.Detector.MaxLabels)
				}
				if cfg.Detector.MinConfidence != 75.5 {
					t.Errorf("Expected min confidence 75.5, got %f", cfg.Detector.MinConfidence)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for key, value := range tt.envVars {
				os.Setenv(key, value)
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			tt.check(t, cfg)
		})
	}
}

func TestValidateForUpload(t *testing.T) {
	cfg := &Config{}
	if err := cfg.ValidateForUpload(); err == nil {
		t.Error("Expected error when table name is missing")
	}

	cfg.Table.Name = "image-labels"
	if err := cfg.ValidateForUpload(); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestValidateForSearch(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		bucket  string
		wantErr bool
	}{
		{"both set", "image-labels", "image-bucket", false},
		{"missing bucket", "image-labels", "", true},
		{"missing table", "", "image-bucket", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				Table:   TableConfig{Name: tt.table},
				Storage: StorageConfig{Bucket: tt.bucket},
			}
			err := cfg.ValidateForSearch()
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateForSearch() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestAdaptConfigForServerless(t *testing.T) {
	local := func() *Config {
		return &Config{
			Region:   "eu-central-1",
			Log:      LogConfig{Format: "text"},
			Storage:  StorageConfig{Type: "local"},
			Table:    TableConfig{Type: "sqlite"},
			Detector: DetectorConfig{Type: "mock"},
		}
	}

	t.Run("outside lambda", func(t *testing.T) {
		cfg := AdaptConfigForServerless(local(), &ServerlessConfig{IsLambda: false})
		if cfg.Storage.Type != "local" || cfg.Table.Type != "sqlite" || cfg.Detector.Type != "mock" {
			t.Errorf("Config should be untouched outside Lambda: %+v", cfg)
		}
	})

	t.Run("inside lambda", func(t *testing.T) {
		cfg := AdaptConfigForServerless(local(), &ServerlessConfig{IsLambda: true, Region: "us-east-1"})
		if cfg.Storage.Type != "s3" {
			t.Errorf("Expected storage promoted to s3, got %s", cfg.Storage.Type)
		}
		if cfg.Table.Type != "dynamodb" {
			t.Errorf("Expected table promoted to dynamodb, got %s", cfg.Table.Type)
		}
		if cfg.Detector.Type != "rekognition" {
			t.Errorf("Expected detector promoted to rekognition, got %s", cfg.Detector.Type)
		}
		if cfg.Region != "us-east-1" {
			t.Errorf("Expected Lambda region us-east-1, got %s", cfg.Region)
		}
		if cfg.Log.Format != "json" {
			t.Errorf("Expected json log format, got %s", cfg.Log.Format)
		}
	})

	t.Run("minio kept inside lambda", func(t *testing.T) {
		cfg := local()
		cfg.Storage.Type = "minio"
		cfg = AdaptConfigForServerless(cfg, &ServerlessConfig{IsLambda: true})
		if cfg.Storage.Type != "minio" {
			t.Errorf("Expected minio storage kept, got %s", cfg.Storage.Type)
		}
	})
}

func TestGetDeploymentMode(t *testing.T) {
	clearConfigEnv(t)
	if mode := GetDeploymentMode(); mode != "server" {
		t.Errorf("Expected server mode, got %s", mode)
	}

	os.Setenv("AWS_LAMBDA_FUNCTION_NAME", "search-images")
	if mode := GetDeploymentMode(); mode != "serverless" {
		t.Errorf("Expected serverless mode, got %s", mode)
	}
}

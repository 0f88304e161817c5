package vision

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"

	"image-search-api/internal/config"
)

// LabelDetector returns the classification labels of an image held in object storage.
// Order is detector-defined and duplicates are possible.
type LabelDetector interface {
	DetectLabels(ctx context.Context, bucket, key string) ([]string, error)
}

// DetectionError represents a failed label detection call
type DetectionError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *DetectionError) Error() string {
	return fmt.Sprintf("label detection failed for '%s/%s': %v", e.Bucket, e.Key, e.Err)
}

func (e *DetectionError) Unwrap() error {
	return e.Err
}

// NewDetector creates a LabelDetector based on configuration
func NewDetector(cfg config.DetectorConfig, awsConfig aws.Config, endpointURL string) (LabelDetector, error) {
	switch strings.ToLower(cfg.Type) {
	case "rekognition", "":
		return NewRekognitionDetectorFromConfig(awsConfig, endpointURL, RekognitionOptions{
			MaxLabels:     cfg.MaxLabels,
			MinConfidence: cfg.MinConfidence,
		}), nil
	case "mock":
		return NewMockDetector(), nil
	default:
		return nil, fmt.Errorf("unsupported detector type: %s", cfg.Type)
	}
}

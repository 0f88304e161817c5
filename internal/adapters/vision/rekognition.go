package vision

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionAPI is the subset of the Rekognition client used by RekognitionDetector
type RekognitionAPI interface {
	DetectLabels(ctx context.Context, params *rekognition.DetectLabelsInput, optFns ...func(*rekognition.Options)) (*rekognition.DetectLabelsOutput, error)
}

// RekognitionOptions tunes DetectLabels; zero values leave the service defaults
type RekognitionOptions struct {
	MaxLabels     int32
	MinConfidence float32
}

// RekognitionDetector implements LabelDetector with Amazon Rekognition,
// reading the image directly from S3
type RekognitionDetector struct {
	client RekognitionAPI
	opts   RekognitionOptions
}

// NewRekognitionDetector creates a new RekognitionDetector
func NewRekognitionDetector(client RekognitionAPI, opts RekognitionOptions) *RekognitionDetector {
	return &RekognitionDetector{client: client, opts: opts}
}

// NewRekognitionDetectorFromConfig builds the Rekognition client from a loaded AWS config
func NewRekognitionDetectorFromConfig(cfg aws.Config, endpointURL string, opts RekognitionOptions) *RekognitionDetector {
	client := rekognition.NewFromConfig(cfg, func(o *rekognition.Options) {
		if endpointURL != "" {
			o.BaseEndpoint = aws.String(endpointURL)
		}
	})
	return NewRekognitionDetector(client, opts)
}

// DetectLabels implements LabelDetector.DetectLabels
func (r *RekognitionDetector) DetectLabels(ctx context.Context, bucket, key string) ([]string, error) {
	input := &rekognition.DetectLabelsInput{
		Image: &types.Image{
			S3Object: &types.S3Object{
				Bucket: aws.String(bucket),
				Name:   aws.String(key),
			},
		},
	}
	if r.opts.MaxLabels > 0 {
		input.MaxLabels = aws.Int32(r.opts.MaxLabels)
	}
	if r.opts.MinConfidence > 0 {
		input.MinConfidence = aws.Float32(r.opts.MinConfidence)
	}

	out, err := r.client.DetectLabels(ctx, input)
	if err != nil {
		return nil, &DetectionError{Bucket: bucket, Key: key, Err: err}
	}

	labels := make([]string, 0, len(out.Labels))
	for _, label := range out.Labels {
		labels = append(labels, aws.ToString(label.Name))
	}
	return labels, nil
}

package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"

	"image-search-api/internal/logging"
	"image-search-api/internal/models"
)

// Outcome classifies what happened to a single notified object
type Outcome string

const (
	OutcomeProcessed Outcome = "processed"
	OutcomeSkipped   Outcome = "skipped"
	OutcomeFailed    Outcome = "failed"
)

// ObjectRef identifies an uploaded object
type ObjectRef struct {
	Bucket string
	Key    string

	decodeErr error
}

// ObjectRefFromEvent builds a ref from a storage notification, whose object
// keys arrive URL-encoded ("+" for space). A key that cannot be decoded makes
// the ref fail when ingested.
func ObjectRefFromEvent(bucket, encodedKey string) ObjectRef {
	key, err := url.QueryUnescape(encodedKey)
	if err != nil {
		return ObjectRef{Bucket: bucket, Key: encodedKey, decodeErr: fmt.Errorf("failed to decode object key: %w", err)}
	}
	return ObjectRef{Bucket: bucket, Key: key}
}

// RecordResult is the outcome of ingesting one object
type RecordResult struct {
	Bucket  string
	Key     string
	Outcome Outcome
	Labels  int
	Err     error
}

// IngestSummary folds the per-object results of one batch
type IngestSummary struct {
	Results   []RecordResult
	Processed int
	Skipped   int
	Failed    int
}

// Total returns the number of objects seen
func (s *IngestSummary) Total() int {
	return len(s.Results)
}

// String renders the human-readable status returned to the trigger
func (s *IngestSummary) String() string {
	return fmt.Sprintf("Successfully processed %d records (%d labeled, %d skipped, %d failed)",
		s.Total(), s.Processed, s.Skipped, s.Failed)
}

func (s *IngestSummary) add(result RecordResult) {
	s.Results = append(s.Results, result)
	switch result.Outcome {
	case OutcomeProcessed:
		s.Processed++
	case OutcomeSkipped:
		s.Skipped++
	case OutcomeFailed:
		s.Failed++
	}
}

// ingestService implements the IngestService interface
type ingestService struct {
	detector LabelDetector
	table    LabelWriter
	logger   *logrus.Logger
}

// NewIngestService creates a new ingest service
func NewIngestService(detector LabelDetector, table LabelWriter, logger *logrus.Logger) IngestService {
	if logger == nil {
		logger = logrus.New()
	}
	return &ingestService{
		detector: detector,
		table:    table,
		logger:   logger,
	}
}

// Ingest implements IngestService.Ingest
func (s *ingestService) Ingest(ctx context.Context, refs []ObjectRef) *IngestSummary {
	summary := &IngestSummary{Results: make([]RecordResult, 0, len(refs))}
	for _, ref := range refs {
		summary.add(s.IngestObject(ctx, ref))
	}
	return summary
}

// IngestObject implements IngestService.IngestObject
func (s *ingestService) IngestObject(ctx context.Context, ref ObjectRef) RecordResult {
	log := logging.FromContext(ctx, s.logger).WithFields(logrus.Fields{
		"bucket": ref.Bucket,
		"key":    ref.Key,
	})
	result := RecordResult{Bucket: ref.Bucket, Key: ref.Key}

	fail := func(err error) RecordResult {
		log.WithError(err).Error("Error processing record")
		result.Outcome = OutcomeFailed
		result.Err = err
		return result
	}

	if ref.decodeErr != nil {
		return fail(ref.decodeErr)
	}

	log.Info("Processing image")

	if !models.IsImageKey(ref.Key) {
		log.Info("Skipping non-image file")
		result.Outcome = OutcomeSkipped
		return result
	}

	labels, err := s.detector.DetectLabels(ctx, ref.Bucket, ref.Key)
	if err != nil {
		return fail(err)
	}
	log.WithField("label_count", len(labels)).Info("Detected labels for image")

	if err := s.table.Put(ctx, models.NewLabelRecord(ref.Key, labels)); err != nil {
		return fail(fmt.Errorf("failed to store labels: %w", err))
	}
	log.Info("Successfully stored labels for image")

	result.Outcome = OutcomeProcessed
	result.Labels = len(labels)
	return result
}

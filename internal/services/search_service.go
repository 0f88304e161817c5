package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"image-search-api/internal/logging"
	"image-search-api/internal/models"
)

// SearchResult is the outcome of a keyword search
type SearchResult struct {
	Images  []models.ImageResult
	Matched int // rows whose labels matched
	Dropped int // matched rows whose object could not be fetched
}

// searchService implements the SearchService interface
type searchService struct {
	table  LabelScanner
	store  ObjectFetcher
	bucket string
	logger *logrus.Logger
}

// NewSearchService creates a new search service reading objects from bucket
func NewSearchService(table LabelScanner, store ObjectFetcher, bucket string, logger *logrus.Logger) SearchService {
	if logger == nil {
		logger = logrus.New()
	}
	return &searchService{
		table:  table,
		store:  store,
		bucket: bucket,
		logger: logger,
	}
}

// Search implements SearchService.Search
func (s *searchService) Search(ctx context.Context, keyword string) (*SearchResult, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, ErrKeywordRequired
	}

	log := logging.FromContext(ctx, s.logger)
	query := strings.ToLower(keyword)
	log.WithField("keyword", query).Info("Searching for images with label")

	records, err := s.table.Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("error scanning label table: %w", err)
	}

	imageIDs := MatchImageIDs(records, query)
	if len(imageIDs) == 0 {
		log.Info("No matching images found")
		return &SearchResult{Images: []models.ImageResult{}}, nil
	}

	log.WithField("matched", len(imageIDs)).Info("Found matching images")

	images := s.loadImages(ctx, log, imageIDs)
	return &SearchResult{
		Images:  images,
		Matched: len(imageIDs),
		Dropped: len(imageIDs) - len(images),
	}, nil
}

// MatchImageIDs returns, in scan order, the ids of records with a label
// containing lowerQuery. lowerQuery must already be lower-cased.
func MatchImageIDs(records []*models.LabelRecord, lowerQuery string) []string {
	var imageIDs []string
	for _, record := range records {
		if record == nil || record.ImageID == "" {
			continue
		}
		if record.MatchesKeyword(lowerQuery) {
			imageIDs = append(imageIDs, record.ImageID)
		}
	}
	return imageIDs
}

// imageOutcome is the result of loading a single matched image
type imageOutcome struct {
	image models.ImageResult
	err   error
}

func (s *searchService) loadImage(ctx context.Context, imageID string) imageOutcome {
	obj, err := s.store.Retrieve(ctx, s.bucket, imageID)
	if err != nil {
		return imageOutcome{err: err}
	}
	return imageOutcome{image: models.NewImageResult(imageID, obj.Data, obj.ContentType)}
}

// loadImages fetches every id in order and keeps only the successful loads
func (s *searchService) loadImages(ctx context.Context, log logrus.FieldLogger, imageIDs []string) []models.ImageResult {
	images := make([]models.ImageResult, 0, len(imageIDs))
	for _, imageID := range imageIDs {
		outcome := s.loadImage(ctx, imageID)
		if outcome.err != nil {
			log.WithError(outcome.err).WithField("image_id", imageID).Warn("Error loading image")
			continue
		}
		images = append(images, outcome.image)
	}
	return images
}

package labelstore

import (
	"context"

	"image-search-api/internal/models"
)

// LabelTable stores one LabelRecord per image
type LabelTable interface {
	// Scan returns the rows of a single scan page in the order the table yields them.
	// Rows beyond the first page are not returned.
	Scan(ctx context.Context) ([]*models.LabelRecord, error)

	// Put writes a record, fully replacing any row with the same image id
	Put(ctx context.Context, record *models.LabelRecord) error

	// Close cleans up any resources used by the table implementation
	Close() error
}

package labelstore

import (
	"errors"
	"fmt"
)

// Common table error types
var (
	ErrInvalidRecord    = errors.New("invalid label record")
	ErrTableUnavailable = errors.New("label table unavailable")
)

// TableError represents a label table operation error with additional context
type TableError struct {
	Op      string // Operation that failed (e.g., "Scan", "Put")
	Table   string
	ImageID string
	Err     error
}

func (e *TableError) Error() string {
	if e.ImageID != "" {
		return fmt.Sprintf("table %s operation on %s failed for '%s': %v", e.Op, e.Table, e.ImageID, e.Err)
	}
	return fmt.Sprintf("table %s operation on %s failed: %v", e.Op, e.Table, e.Err)
}

func (e *TableError) Unwrap() error {
	return e.Err
}

// NewTableError creates a new TableError
func NewTableError(op, table, imageID string, err error) *TableError {
	return &TableError{
		Op:      op,
		Table:   table,
		ImageID: imageID,
		Err:     err,
	}
}

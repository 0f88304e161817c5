package services

import (
	"image-search-api/internal/models"
)

// ErrKeywordRequired is returned by Search for a missing or blank keyword
var ErrKeywordRequired error = &models.ValidationError{
	Field:   "keyword",
	Message: "query parameter is required",
}

// IsValidationError reports whether err was caused by invalid caller input
func IsValidationError(err error) bool {
	return models.IsValidationError(err)
}

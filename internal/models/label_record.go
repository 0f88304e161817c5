package models

import (
	"strings"
	"time"
)

// LabelRecord is one row of the label table
type LabelRecord struct {
	ImageID   string   `json:"imageId" dynamodbav:"imageId" validate:"required"`
	Labels    []string `json:"labels" dynamodbav:"labels,stringset,omitempty"`
	Timestamp int64    `json:"timestamp" dynamodbav:"timestamp"`
}

// NewLabelRecord creates a record for the given object key stamped with the current time.
// Labels are kept exactly as the detector returned them.
func NewLabelRecord(imageID string, labels []string) *LabelRecord {
	return &LabelRecord{
		ImageID:   imageID,
		Labels:    labels,
		Timestamp: time.Now().Unix(),
	}
}

// Validate checks the record has a primary key
func (r *LabelRecord) Validate() error {
	return ValidateRequired(r.ImageID, "imageId")
}

// HasLabels reports whether the record carries a label set at all
func (r *LabelRecord) HasLabels() bool {
	return r.Labels != nil
}

// MatchesKeyword reports whether any label contains the lower-cased keyword,
// compared case-insensitively. The keyword must already be lower-cased.
func (r *LabelRecord) MatchesKeyword(lowerKeyword string) bool {
	if !r.HasLabels() {
		return false
	}
	for _, label := range r.Labels {
		if strings.Contains(strings.ToLower(label), lowerKeyword) {
			return true
		}
	}
	return false
}

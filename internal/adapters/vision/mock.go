package vision

import (
	"context"
	"sync"
)

// MockDetector is a LabelDetector returning canned labels per object key
type MockDetector struct {
	mu     sync.Mutex
	labels map[string][]string
	errs   map[string]error
	calls  []string
}

// NewMockDetector creates a new MockDetector with no canned labels
func NewMockDetector() *MockDetector {
	return &MockDetector{
		labels: make(map[string][]string),
		errs:   make(map[string]error),
	}
}

// SetLabels registers the labels returned for key
func (m *MockDetector) SetLabels(key string, labels ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.labels[key] = labels
}

// FailOn makes detection of key fail with err
func (m *MockDetector) FailOn(key string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[key] = err
}

// Calls returns the keys detection was requested for, in order
func (m *MockDetector) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// DetectLabels implements LabelDetector.DetectLabels. Unknown keys yield no labels.
func (m *MockDetector) DetectLabels(ctx context.Context, bucket, key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, key)

	if err, ok := m.errs[key]; ok {
		return nil, &DetectionError{Bucket: bucket, Key: key, Err: err}
	}
	return append([]string{}, m.labels[key]...), nil
}

package labelstore

import (
	"context"
	"sync"

	"image-search-api/internal/models"
)

// MockLabelTable is an in-memory implementation of LabelTable for testing.
// Scan returns rows in first-insertion order; Put replaces in place.
type MockLabelTable struct {
	mu      sync.RWMutex
	order   []string
	records map[string]*models.LabelRecord
	scanErr error
	putErr  error
	scans   int
	puts    int
}

// NewMockLabelTable creates a new MockLabelTable seeded with records
func NewMockLabelTable(records ...*models.LabelRecord) *MockLabelTable {
	m := &MockLabelTable{records: make(map[string]*models.LabelRecord)}
	for _, record := range records {
		m.store(record)
	}
	return m
}

// FailScan makes every Scan return err
func (m *MockLabelTable) FailScan(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scanErr = err
}

// FailPut makes every Put return err
func (m *MockLabelTable) FailPut(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putErr = err
}

// Get returns the stored record for imageID
func (m *MockLabelTable) Get(imageID string) (*models.LabelRecord, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	record, ok := m.records[imageID]
	if !ok {
		return nil, false
	}
	return copyRecord(record), true
}

// Len returns the number of stored rows
func (m *MockLabelTable) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Scans returns how many times Scan was invoked
func (m *MockLabelTable) Scans() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.scans
}

// Puts returns how many times Put was invoked
func (m *MockLabelTable) Puts() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.puts
}

// Scan implements LabelTable.Scan
func (m *MockLabelTable) Scan(ctx context.Context) ([]*models.LabelRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scans++

	if m.scanErr != nil {
		return nil, NewTableError("Scan", "mock", "", m.scanErr)
	}

	records := make([]*models.LabelRecord, 0, len(m.order))
	for _, id := range m.order {
		records = append(records, copyRecord(m.records[id]))
	}
	return records, nil
}

// Put implements LabelTable.Put
func (m *MockLabelTable) Put(ctx context.Context, record *models.LabelRecord) error {
	if err := record.Validate(); err != nil {
		return NewTableError("Put", "mock", record.ImageID, ErrInvalidRecord)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.puts++

	if m.putErr != nil {
		return NewTableError("Put", "mock", record.ImageID, m.putErr)
	}

	m.store(record)
	return nil
}

// Close implements LabelTable.Close
func (m *MockLabelTable) Close() error {
	return nil
}

func (m *MockLabelTable) store(record *models.LabelRecord) {
	if _, exists := m.records[record.ImageID]; !exists {
		m.order = append(m.order, record.ImageID)
	}
	m.records[record.ImageID] = copyRecord(record)
}

func copyRecord(record *models.LabelRecord) *models.LabelRecord {
	c := *record
	if record.Labels != nil {
		c.Labels = append([]string{}, record.Labels...)
	}
	return &c
}

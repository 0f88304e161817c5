package labelstore

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"image-search-api/internal/models"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// MigrationStatus describes the schema version of a SQLite label table
type MigrationStatus struct {
	Version uint
	Dirty   bool
	Applied bool
}

// SQLiteLabelTable implements LabelTable on a local SQLite database.
// Labels are stored as a JSON array; NULL means the row has no label set.
type SQLiteLabelTable struct {
	db        *sql.DB
	tableName string
	logger    *logrus.Logger
}

// OpenSQLiteLabelTable opens (creating if needed) the database at path and applies migrations
func OpenSQLiteLabelTable(path, tableName string, logger *logrus.Logger) (*SQLiteLabelTable, error) {
	if logger == nil {
		logger = logrus.New()
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite works best with single connection
	db.SetMaxOpenConns(1)

	table := &SQLiteLabelTable{db: db, tableName: tableName, logger: logger}
	if err := table.Migrate(); err != nil {
		db.Close()
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"db_path": path,
		"table":   tableName,
	}).Info("SQLite label table ready")

	return table, nil
}

// Migrate applies all pending schema migrations
func (s *SQLiteLabelTable) Migrate() error {
	m, err := s.newMigrate()
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, _, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to get migration version: %w", err)
	}
	s.logger.WithField("version", version).Debug("Label table migrations applied")
	return nil
}

// Status returns the current migration version
func (s *SQLiteLabelTable) Status() (*MigrationStatus, error) {
	m, err := s.newMigrate()
	if err != nil {
		return nil, err
	}

	version, dirty, err := m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return &MigrationStatus{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get migration version: %w", err)
	}
	return &MigrationStatus{Version: version, Dirty: dirty, Applied: true}, nil
}

// newMigrate builds a migrate instance over the shared connection. It is never
// closed: the sqlite3 driver's Close would close s.db as well.
func (s *SQLiteLabelTable) newMigrate() (*migrate.Migrate, error) {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to load migrations: %w", err)
	}

	driver, err := sqlite3.WithInstance(s.db, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize migrate: %w", err)
	}
	return m, nil
}

// Scan implements LabelTable.Scan in insertion order
func (s *SQLiteLabelTable) Scan(ctx context.Context) ([]*models.LabelRecord, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT image_id, labels, timestamp FROM label_records ORDER BY rowid`)
	if err != nil {
		return nil, NewTableError("Scan", s.tableName, "", err)
	}
	defer rows.Close()

	var records []*models.LabelRecord
	for rows.Next() {
		var (
			record models.LabelRecord
			labels sql.NullString
		)
		if err := rows.Scan(&record.ImageID, &labels, &record.Timestamp); err != nil {
			return nil, NewTableError("Scan", s.tableName, "", err)
		}
		if labels.Valid {
			if err := json.Unmarshal([]byte(labels.String), &record.Labels); err != nil {
				s.logger.WithError(err).WithField("image_id", record.ImageID).Warn("Ignoring malformed labels column")
				record.Labels = nil
			}
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, NewTableError("Scan", s.tableName, "", err)
	}

	return records, nil
}

// Put implements LabelTable.Put
func (s *SQLiteLabelTable) Put(ctx context.Context, record *models.LabelRecord) error {
	if err := record.Validate(); err != nil {
		return NewTableError("Put", s.tableName, record.ImageID, ErrInvalidRecord)
	}

	labels := sql.NullString{}
	if record.Labels != nil {
		encoded, err := json.Marshal(record.Labels)
		if err != nil {
			return NewTableError("Put", s.tableName, record.ImageID, err)
		}
		labels = sql.NullString{String: string(encoded), Valid: true}
	}

	// REPLACE deletes the old row first, so no previous labels survive
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO label_records (image_id, labels, timestamp) VALUES (?, ?, ?)`,
		record.ImageID, labels, record.Timestamp,
	)
	if err != nil {
		return NewTableError("Put", s.tableName, record.ImageID, err)
	}
	return nil
}

// Close implements LabelTable.Close
func (s *SQLiteLabelTable) Close() error {
	return s.db.Close()
}

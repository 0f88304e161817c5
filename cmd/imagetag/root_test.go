package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"

	"image-search-api/internal/config"
	"image-search-api/pkg/server"
)

func sqliteConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Log:      config.LogConfig{Level: "error", Format: "text"},
		Storage:  config.StorageConfig{Type: "mock", Bucket: "images"},
		Table:    config.TableConfig{Type: "sqlite", Name: "labels", SQLitePath: filepath.Join(t.TempDir(), "labels.db")},
		Detector: config.DetectorConfig{Type: "mock"},
	}
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(cfg, server.WithAWSConfig(aws.Config{Region: "eu-central-1"}))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestMigrateCmd(t *testing.T) {
	cfg := sqliteConfig(t)

	out, err := run(t, cfg, "migrate")
	if err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if !strings.Contains(out, "version:  1") {
		t.Errorf("Expected version 1 in output, got %q", out)
	}

	// Re-running is a no-op
	if _, err := run(t, cfg, "migrate"); err != nil {
		t.Errorf("Second migrate failed: %v", err)
	}
}

func TestLabelCmd(t *testing.T) {
	cfg := sqliteConfig(t)

	out, err := run(t, cfg, "label", "images", "cat.jpg", "notes.txt")
	if err != nil {
		t.Fatalf("label failed: %v", err)
	}
	if !strings.Contains(out, "processed cat.jpg") || !strings.Contains(out, "skipped   notes.txt") {
		t.Errorf("Unexpected output %q", out)
	}
	if !strings.Contains(out, "Successfully processed 2 records") {
		t.Errorf("Missing summary in %q", out)
	}
}

func TestLabelCmd_MissingTable(t *testing.T) {
	cfg := sqliteConfig(t)
	cfg.Table.Name = ""

	if _, err := run(t, cfg, "label", "images", "cat.jpg"); err == nil {
		t.Error("Expected an error without a table name")
	}
}

func TestSearchCmd(t *testing.T) {
	cfg := sqliteConfig(t)

	out, err := run(t, cfg, "search", "cat")
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if !strings.Contains(out, `{"success":true,"images":[]}`) {
		t.Errorf("Unexpected output %q", out)
	}

	out, err = run(t, cfg, "search", "  ")
	if err == nil {
		t.Error("Expected blank keyword to fail")
	}
	if !strings.Contains(out, "Query parameter is required") {
		t.Errorf("Unexpected output %q", out)
	}
}

func TestRootCmd_Args(t *testing.T) {
	cfg := sqliteConfig(t)

	if _, err := run(t, cfg, "search"); err == nil {
		t.Error("search without a keyword should fail")
	}
	if _, err := run(t, cfg, "label", "images"); err == nil {
		t.Error("label without keys should fail")
	}
}

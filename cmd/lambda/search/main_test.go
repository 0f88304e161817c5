package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"image-search-api/internal/config"
	"image-search-api/pkg/lambda"
	"image-search-api/pkg/server"
)

func TestHandle_BlankKeywordBeforeContainer(t *testing.T) {
	loads := 0
	connections = server.NewConnectionManager(func() (*config.Config, error) {
		loads++
		return nil, errors.New("backend misconfigured")
	})

	for _, keyword := range []string{"", "   "} {
		resp, err := handle(context.Background(), &lambda.Request{QueryParams: map[string]string{"keyword": keyword}})
		if err != nil {
			t.Fatalf("Unexpected error: %v", err)
		}
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400 for %q, got %d", keyword, resp.StatusCode)
		}
		if !strings.Contains(string(resp.Body), "Query parameter is required") {
			t.Errorf("Unexpected body %s", resp.Body)
		}
	}
	if loads != 0 {
		t.Errorf("Container should not be built for a blank keyword, built %d times", loads)
	}

	resp, _ := handle(context.Background(), &lambda.Request{QueryParams: map[string]string{"keyword": "cat"}})
	if resp.StatusCode != http.StatusInternalServerError {
		t.Errorf("Expected 500 when the container cannot be built, got %d", resp.StatusCode)
	}
	if !strings.Contains(string(resp.Body), "Internal server error: backend misconfigured") {
		t.Errorf("Unexpected body %s", resp.Body)
	}
}

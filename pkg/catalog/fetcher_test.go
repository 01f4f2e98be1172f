package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, name, content string) (path string) {
	t.Helper()
	path = filepath.Join(t.TempDir(), name)
	err := os.WriteFile(path, []byte(content), 0600)
	if err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}

func TestFetchFile(t *testing.T) {
	testContent := `{"products": []}`
	path := writeFile(t, "catalog.json", testContent)

	content, err := FetchWithContext(context.Background(), path)
	if err != nil {
		t.Fatalf("Failed to fetch from file: %v", err)
	}

	if string(content) != testContent {
		t.Errorf("Expected content '%s', got '%s'", testContent, content)
	}
}

func TestFetchFileRejected(t *testing.T) {
	tests := []struct {
		name    string
		content string
		opts    []FetchOption
	}{
		{name: "empty", content: ""},
		{name: "whitespace only", content: "  \n"},
		{name: "not json", content: "<html>catalog</html>"},
		{name: "too large", content: `{"products": []}`, opts: []FetchOption{WithMaxBytes(8)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "catalog.json", tt.content)
			_, err := NewFetcher(tt.opts...).Fetch(context.Background(), path)
			if err == nil {
				t.Error("Expected error, got nil")
			}
		})
	}
}

func TestFetchFileNonexistent(t *testing.T) {
	_, err := FetchWithContext(context.Background(), "/nonexistent/catalog.json")
	if err == nil {
		t.Error("Expected error fetching nonexistent file, got nil")
	}
}

func TestFetchURL(t *testing.T) {
	testContent := `{"products": [{"id": "tv-1", "category": "TVs"}]}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Accept") != "application/json" {
			t.Error("Missing or incorrect Accept header")
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(testContent))
	}))
	defer server.Close()

	content, err := FetchWithContext(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Failed to fetch from URL: %v", err)
	}

	if string(content) != testContent {
		t.Errorf("Expected '%s', got '%s'", testContent, content)
	}
}

func TestFetchURLRejectsHTML(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`{"products": []}`))
	}))
	defer server.Close()

	_, err := FetchWithContext(context.Background(), server.URL)
	if err == nil || !strings.Contains(err.Error(), "content type") {
		t.Errorf("Expected content type error, got %v", err)
	}
}

func TestFetchURLTooLarge(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products": [` + strings.Repeat(`{"id": "x"},`, 100) + `]}`))
	}))
	defer server.Close()

	_, err := NewFetcher(WithMaxBytes(64)).Fetch(context.Background(), server.URL)
	if err == nil || !strings.Contains(err.Error(), "limit") {
		t.Errorf("Expected size limit error, got %v", err)
	}
}

func TestFetchURL404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := FetchWithContext(context.Background(), server.URL)
	if err == nil {
		t.Error("Expected error for 404 response, got nil")
	}
}

func TestFetchURLTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(2 * time.Second)
		_, _ = w.Write([]byte("{}"))
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := FetchWithContext(ctx, server.URL)
	if err == nil {
		t.Error("Expected timeout error, got nil")
	}
}

func TestJSONMediaType(t *testing.T) {
	for header, want := range map[string]bool{
		"":                             true,
		"application/json":             true,
		"application/vnd.catalog+json": true,
		"text/plain; charset=utf-8":    true,
		"text/html":                    false,
		"application/xml":              false,
		"not a media type;;":           false,
	} {
		if got := jsonMediaType(header); got != want {
			t.Errorf("jsonMediaType(%q) = %v, want %v", header, got, want)
		}
	}
}

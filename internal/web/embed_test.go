package web

import (
	"io"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func TestHandler(t *testing.T) {
	fsys := fstest.MapFS{
		"index.html":      {Data: []byte("<h1>home</h1>")},
		"app.js":          {Data: []byte("console.log('hi')")},
		"assets/logo.svg": {Data: []byte("<svg/>")},
		"docs/index.html": {Data: []byte("<h1>docs</h1>")},
	}
	h := Handler(fsys)

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"root serves index", http.MethodGet, "/", http.StatusOK, "<h1>home</h1>"},
		{"asset", http.MethodGet, "/app.js", http.StatusOK, "console.log('hi')"},
		{"missing asset", http.MethodGet, "/missing.css", http.StatusNotFound, ""},
		{"missing route", http.MethodGet, "/todos/1", http.StatusNotFound, ""},
		{"post not served", http.MethodPost, "/app.js", http.StatusNotFound, ""},
		{"nested asset", http.MethodGet, "/assets/logo.svg", http.StatusOK, "<svg/>"},
		{"directory is not listed", http.MethodGet, "/assets/", http.StatusNotFound, ""},
		{"directory without slash is not listed", http.MethodGet, "/assets", http.StatusNotFound, ""},
		{"directory with index", http.MethodGet, "/docs/", http.StatusOK, "<h1>docs</h1>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.path, nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			body, _ := io.ReadAll(rec.Body)
			if tt.wantBody != "" && !strings.Contains(string(body), tt.wantBody) {
				t.Errorf("body = %q, want it to contain %q", body, tt.wantBody)
			}
		})
	}
}

func TestAssets(t *testing.T) {
	t.Run("existing directory", func(t *testing.T) {
		dir := t.TempDir()
		if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte("custom"), 0644); err != nil {
			t.Fatalf("failed to write index.html: %v", err)
		}
		fsys, err := Assets(dir)
		if err != nil {
			t.Fatalf("Assets() error = %v", err)
		}
		data, err := fs.ReadFile(fsys, "index.html")
		if err != nil {
			t.Fatalf("reading index.html: %v", err)
		}
		if string(data) != "custom" {
			t.Errorf("index.html = %q, want \"custom\"", data)
		}
	})

	t.Run("missing directory falls back to embedded page", func(t *testing.T) {
		fsys, err := Assets(filepath.Join(t.TempDir(), "nope"))
		if err != nil {
			t.Fatalf("Assets() error = %v", err)
		}
		data, err := fs.ReadFile(fsys, "index.html")
		if err != nil {
			t.Fatalf("reading index.html: %v", err)
		}
		if !strings.Contains(string(data), "/graphql") {
			t.Errorf("embedded index.html does not link the GraphQL endpoint")
		}
	})
}

package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/graphlearn/pkg/errors"
	"github.com/matzehuels/graphlearn/pkg/httputil"
)

func TestOpenSource(t *testing.T) {
	tests := []struct {
		location string
		want     string
	}{
		{"content/site.json", "content.FileSource"},
		{"file:///srv/site.toml", "content.FileSource"},
		{"https://example.com/site.json", "content.URLSource"},
		{"HTTP://example.com/site.json", "content.URLSource"},
	}
	for _, tt := range tests {
		src, err := OpenSource(tt.location, nil)
		if err != nil {
			t.Fatalf("OpenSource(%q): %v", tt.location, err)
		}
		var got string
		switch src.(type) {
		case FileSource:
			got = "content.FileSource"
		case URLSource:
			got = "content.URLSource"
		}
		if got != tt.want {
			t.Errorf("OpenSource(%q) = %T, want %s", tt.location, src, tt.want)
		}
	}

	if _, err := OpenSource("ftp://example.com/site.json", nil); !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("ftp err = %v", err)
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.toml")
	if err := os.WriteFile(path, []byte(tomlDoc), 0o644); err != nil {
		t.Fatal(err)
	}
	doc, err := FileSource{Path: path}.Load(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if doc.Title != "Learn Next.js" {
		t.Errorf("title = %q", doc.Title)
	}
}

func TestURLSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/site.yaml":
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Write([]byte(yamlDoc))
		case "/typed":
			w.Header().Set("Content-Type", "application/toml")
			w.Write([]byte(tomlDoc))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := httputil.NewFetcher(srv.Client(), nil)
	f.Delay = time.Millisecond

	for _, p := range []string{"/site.yaml", "/typed"} {
		doc, err := URLSource{URL: srv.URL + p, Fetcher: f}.Load(context.Background())
		if err != nil {
			t.Fatalf("%s: %v", p, err)
		}
		if len(doc.Nodes) != 3 {
			t.Errorf("%s: got %d nodes", p, len(doc.Nodes))
		}
	}

	_, err := URLSource{URL: srv.URL + "/missing", Fetcher: f}.Load(context.Background())
	if !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("missing: got %v, want NETWORK_ERROR", err)
	}
}

package mongo

import (
	"testing"

	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/errors"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name     string
		location string
		wantURI  string
		wantDB   string
		wantColl string
		wantCode errors.Code
	}{
		{
			name:     "with collection",
			location: "mongodb://localhost:27017/site?collection=pages",
			wantURI:  "mongodb://localhost:27017/",
			wantDB:   "site",
			wantColl: "pages",
		},
		{
			name:     "keeps driver options",
			location: "mongodb://db.internal/site?authSource=admin&collection=pages",
			wantURI:  "mongodb://db.internal/?authSource=admin",
			wantDB:   "site",
			wantColl: "pages",
		},
		{
			name:     "default collection",
			location: "mongodb://localhost/site",
			wantURI:  "mongodb://localhost/",
			wantDB:   "site",
		},
		{
			name:     "no database",
			location: "mongodb://localhost:27017",
			wantCode: errors.ErrCodeInvalidURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseLocation(tt.location)
			if tt.wantCode != "" {
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("got %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if cfg.URI != tt.wantURI || cfg.Database != tt.wantDB || cfg.Collection != tt.wantColl {
				t.Errorf("got %+v", cfg)
			}
		})
	}
}

func TestOpenSourceDispatch(t *testing.T) {
	src, err := content.OpenSource("mongodb://localhost/site", nil)
	if err != nil {
		t.Fatalf("OpenSource: %v", err)
	}
	s, ok := src.(*Source)
	if !ok {
		t.Fatalf("got %T, want *mongo.Source", src)
	}
	if s.cfg.Collection != DefaultCollection {
		t.Errorf("collection = %q, want %q", s.cfg.Collection, DefaultCollection)
	}
	if s.String() != "mongodb:site.nodes" {
		t.Errorf("String() = %q", s.String())
	}
}

func TestDocumentFromRecords(t *testing.T) {
	root := "1"
	recs := []record{
		{RecordID: metaID, Title: "Learn Next.js"},
		{ID: "1", Type: "video", URL: "https://www.youtube.com/embed/x"},
		{ID: "2", Type: "text", Text: "Routing", ParentID: &root, Order: 1},
	}

	doc := documentFromRecords(recs)
	if doc.Title != "Learn Next.js" {
		t.Errorf("title = %q", doc.Title)
	}
	if len(doc.Nodes) != 2 {
		t.Fatalf("got %d nodes, want 2", len(doc.Nodes))
	}
	if doc.Nodes[1].Parent() != "1" || doc.Nodes[1].Category != content.CategoryText {
		t.Errorf("node 2 = %+v", doc.Nodes[1])
	}
	if err := doc.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

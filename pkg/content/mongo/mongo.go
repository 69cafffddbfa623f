// Package mongo loads content documents from a MongoDB collection.
//
// Each node is one BSON document with the fields of content.Node plus an
// "order" field that fixes document order. An optional document with
// _id "_meta" carries the canvas title:
//
//	{ "_id": "_meta", "title": "Learn Next.js" }
//	{ "id": "1", "type": "video", "url": "https://...", "parent_id": null, "order": 0 }
//	{ "id": "2", "type": "text", "text": "Routing basics", "parent_id": "1", "order": 1 }
//
// Importing the package registers the mongodb and mongodb+srv schemes with
// content.OpenSource:
//
//	import _ "github.com/matzehuels/graphlearn/pkg/content/mongo"
//
//	src, err := content.OpenSource("mongodb://localhost:27017/site?collection=nodes", nil)
package mongo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	driver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/errors"
)

// DefaultCollection is used when the location names none.
const DefaultCollection = "nodes"

const metaID = "_meta"

func init() {
	content.RegisterScheme("mongodb", Open)
	content.RegisterScheme("mongodb+srv", Open)
}

// Config selects the collection to read.
type Config struct {
	URI        string
	Database   string
	Collection string
	Timeout    time.Duration
}

// Source is a content.Source backed by MongoDB.
type Source struct {
	cfg Config
}

// New returns a Source for cfg.
func New(cfg Config) *Source {
	if cfg.Collection == "" {
		cfg.Collection = DefaultCollection
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &Source{cfg: cfg}
}

// Open parses a location of the form
// mongodb://host[:port]/database[?collection=name&...] into a Source.
// The collection parameter is removed before the URI reaches the driver.
func Open(location string) (content.Source, error) {
	cfg, err := ParseLocation(location)
	if err != nil {
		return nil, err
	}
	return New(cfg), nil
}

// ParseLocation splits a location into driver URI, database and collection.
func ParseLocation(location string) (Config, error) {
	u, err := url.Parse(location)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidURL, err, "mongodb location")
	}
	db := strings.Trim(u.Path, "/")
	if db == "" {
		return Config{}, errors.New(errors.ErrCodeInvalidURL, "mongodb location %q names no database", u.Redacted())
	}
	q := u.Query()
	coll := q.Get("collection")
	q.Del("collection")
	u.RawQuery = q.Encode()
	u.Path = "/"
	return Config{URI: u.String(), Database: db, Collection: coll}, nil
}

func (s *Source) String() string {
	return fmt.Sprintf("mongodb:%s.%s", s.cfg.Database, s.cfg.Collection)
}

type record struct {
	RecordID string  `bson:"_id,omitempty"`
	ID       string  `bson:"id"`
	Type     string  `bson:"type"`
	Title    string  `bson:"title,omitempty"`
	URL      string  `bson:"url,omitempty"`
	Text     string  `bson:"text,omitempty"`
	ParentID *string `bson:"parent_id"`
	Order    int     `bson:"order"`
}

// Load implements content.Source.
func (s *Source) Load(ctx context.Context) (*content.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	client, err := driver.Connect(ctx, options.Client().ApplyURI(s.cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect %s", s)
	}
	defer client.Disconnect(context.WithoutCancel(ctx))

	coll := client.Database(s.cfg.Database).Collection(s.cfg.Collection)
	cur, err := coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "order", Value: 1}}))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "query %s", s)
	}
	var recs []record
	if err := cur.All(ctx, &recs); err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "read %s", s)
	}
	return documentFromRecords(recs), nil
}

func documentFromRecords(recs []record) *content.Document {
	doc := &content.Document{Nodes: make([]content.Node, 0, len(recs))}
	for _, r := range recs {
		if r.RecordID == metaID {
			doc.Title = r.Title
			continue
		}
		doc.Nodes = append(doc.Nodes, content.Node{
			ID:       r.ID,
			Category: content.Category(r.Type),
			Title:    r.Title,
			URL:      r.URL,
			Text:     r.Text,
			ParentID: r.ParentID,
		})
	}
	return doc
}

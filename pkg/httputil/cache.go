package httputil

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

// ErrExpired is returned by [Cache.Load] together with the entry when the
// entry exists but has exceeded its time-to-live.
var ErrExpired = errors.New("cache entry expired")

// Entry is one fetched response body.
type Entry struct {
	URL         string    `json:"url"`
	ContentType string    `json:"content_type,omitempty"`
	Body        []byte    `json:"body"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Cache stores fetched bodies as JSON files named by the SHA-256 of the key.
//
// Cache operations are not goroutine-safe. Several Cache values, even in
// different processes, may share a directory.
//
// Freshness is judged by [Entry.FetchedAt]. A TTL of 0 means entries never
// expire.
type Cache struct {
	dir    string
	ttl    time.Duration
	prefix string
}

// DefaultCacheDir returns ~/.cache/graphlearn/http.
func DefaultCacheDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", "graphlearn", "http"), nil
}

// NewCache creates a Cache in dir, or in [DefaultCacheDir] when dir is empty.
// The directory is created if needed.
func NewCache(dir string, ttl time.Duration) (*Cache, error) {
	if dir == "" {
		d, err := DefaultCacheDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, ttl: ttl}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string { return c.dir }

// TTL returns the time-to-live for entries.
func (c *Cache) TTL() time.Duration { return c.ttl }

// Load returns the entry stored under key.
//
//   - (entry, nil): fresh hit
//   - (nil, nil): miss
//   - (entry, ErrExpired): stale hit; the entry is still usable as a fallback
//   - (nil, err): I/O or decode failure
func (c *Cache) Load(key string) (*Entry, error) {
	data, err := os.ReadFile(c.keyPath(c.prefix + key))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if c.ttl > 0 && time.Since(e.FetchedAt) > c.ttl {
		return &e, ErrExpired
	}
	return &e, nil
}

// Store writes e under key, replacing any previous entry.
func (c *Cache) Store(key string, e *Entry) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return os.WriteFile(c.keyPath(c.prefix+key), data, 0o644)
}

// Namespace returns a view of the cache that prefixes every key.
// Namespaces chain: c.Namespace("a:").Namespace("b:") uses "a:b:".
func (c *Cache) Namespace(prefix string) *Cache {
	return &Cache{
		dir:    c.dir,
		ttl:    c.ttl,
		prefix: c.prefix + prefix,
	}
}

func (c *Cache) keyPath(key string) string {
	h := sha256.Sum256([]byte(key))
	return filepath.Join(c.dir, hex.EncodeToString(h[:]))
}

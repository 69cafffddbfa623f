package httputil

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestCache_StoreLoad(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	want := &Entry{URL: "https://example.com/a.json", ContentType: "application/json", Body: []byte(`{"nodes":[]}`), FetchedAt: time.Now()}
	if err := c.Store("a", want); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	got, err := c.Load("a")
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if got == nil {
		t.Fatal("Load() returned nil for existing key")
	}
	if string(got.Body) != string(want.Body) || got.ContentType != want.ContentType {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestCache_Miss(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	got, err := c.Load("missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("Load() returned an entry for a missing key")
	}
}

func TestCache_Expiration(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Minute)

	old := &Entry{URL: "u", Body: []byte("x"), FetchedAt: time.Now().Add(-time.Hour)}
	if err := c.Store("key", old); err != nil {
		t.Fatalf("Store() failed: %v", err)
	}

	got, err := c.Load("key")
	if !errors.Is(err, ErrExpired) {
		t.Errorf("got error %v, want ErrExpired", err)
	}
	if got == nil || string(got.Body) != "x" {
		t.Error("expired entry should still be returned")
	}
}

func TestCache_KeyStability(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)
	p1 := c.keyPath("test")
	p2 := c.keyPath("test")
	if p1 != p2 {
		t.Error("path should be deterministic")
	}
	p3 := c.keyPath("other")
	if p1 == p3 {
		t.Error("different keys should produce different paths")
	}
}

func TestNewCache_DefaultDir(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	c, err := NewCache("", time.Hour)
	if err != nil {
		t.Fatalf("NewCache() failed: %v", err)
	}

	want := filepath.Join(home, ".cache", "graphlearn", "http")
	if c.Dir() != want {
		t.Errorf("got Dir = %s, want %s", c.Dir(), want)
	}
	if _, err := os.Stat(c.Dir()); err != nil {
		t.Errorf("directory not created: %v", err)
	}
}

func TestCache_Namespace(t *testing.T) {
	c, _ := NewCache(t.TempDir(), time.Hour)

	docs := c.Namespace("documents:")
	other := c.Namespace("other:")

	if err := docs.Store("k", &Entry{Body: []byte("docs"), FetchedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}
	if err := other.Store("k", &Entry{Body: []byte("other"), FetchedAt: time.Now()}); err != nil {
		t.Fatal(err)
	}

	got, _ := docs.Load("k")
	if got == nil || string(got.Body) != "docs" {
		t.Errorf("namespace isolation violated: %+v", got)
	}
	if got, _ := c.Load("k"); got != nil {
		t.Error("value accessible without namespace")
	}
}

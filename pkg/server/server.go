// Package server serves a laid-out content document over HTTP.
//
// A [Server] holds one document and its scene. Handlers read the current
// snapshot under a read lock; [Server.Reload] builds a new snapshot through
// the pipeline and swaps it in, so readers never see a half-built scene.
// When the document comes from a local file, [Server.Watch] reloads it on
// every change. A reload that fails is logged and the previous snapshot
// stays in place.
//
// Routes:
//
//	GET  /healthz        liveness and snapshot age
//	GET  /api/scene      scene JSON of the served document
//	GET  /api/document   the served document as JSON
//	POST /api/layout     lay out the posted document; ?format=svg for an image
//	GET  /canvas.svg     rendered canvas; ?theme=dark, ?viz=nodelink
//	GET  /               HTML page embedding the canvas
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/pipeline"
	"github.com/matzehuels/graphlearn/pkg/scene"
)

// Config configures a [Server].
type Config struct {
	// Source is the document location passed to [content.OpenSource].
	Source string
	// CORSOrigin is sent as Access-Control-Allow-Origin. Empty disables CORS headers.
	CORSOrigin string
	// Options are the base pipeline options. Source is overwritten.
	Options pipeline.Options
}

// Server serves one content document.
type Server struct {
	runner *pipeline.Runner
	cfg    Config
	logger *log.Logger

	mu   sync.RWMutex
	snap *snapshot
}

// snapshot is an immutable view of the served document.
type snapshot struct {
	doc      *content.Document
	scene    scene.Scene
	svg      []byte
	loadedAt time.Time
}

// New creates a server. Call [Server.Reload] before serving.
func New(runner *pipeline.Runner, cfg Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	cfg.Options.Source = cfg.Source
	return &Server{runner: runner, cfg: cfg, logger: logger.WithPrefix("server")}
}

// Reload loads, lays out and renders the document, then swaps the snapshot.
// On error the previous snapshot is kept.
func (s *Server) Reload(ctx context.Context) error {
	opts := s.cfg.Options
	opts.Refresh = true
	opts.Formats = []string{"svg"}

	start := time.Now()
	doc, err := s.runner.Load(ctx, opts)
	if err != nil {
		return err
	}
	sc, err := s.runner.ComputeLayout(ctx, doc, opts)
	if err != nil {
		return err
	}
	artifacts, err := s.runner.Render(ctx, doc, sc, opts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snap = &snapshot{doc: doc, scene: sc, svg: artifacts["svg"], loadedAt: time.Now()}
	s.mu.Unlock()

	s.logger.Info("loaded document", "source", s.cfg.Source, "nodes", len(sc.Nodes), "duration", time.Since(start))
	return nil
}

func (s *Server) current() *snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

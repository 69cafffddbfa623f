package server

import (
	"html/template"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/graphlearn/pkg/buildinfo"
	"github.com/matzehuels/graphlearn/pkg/content"
	"github.com/matzehuels/graphlearn/pkg/errors"
	"github.com/matzehuels/graphlearn/pkg/render"
	"github.com/matzehuels/graphlearn/pkg/scene"
)

// maxDocumentSize bounds POST /api/layout bodies.
const maxDocumentSize = 4 << 20

// Handler returns the router with all routes and middleware.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(cors(s.cfg.CORSOrigin))

	r.Get("/healthz", s.handleHealth)
	r.Get("/", s.handleIndex)
	r.Get("/canvas.svg", s.handleCanvas)
	r.Route("/api", func(r chi.Router) {
		r.Get("/scene", s.handleScene)
		r.Get("/document", s.handleDocument)
		r.Post("/layout", s.handleLayout)
	})
	return r
}

type healthResponse struct {
	Status   string    `json:"status"`
	Version  string    `json:"version"`
	Source   string    `json:"source"`
	Nodes    int       `json:"nodes"`
	LoadedAt time.Time `json:"loaded_at"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{Status: "ok", Version: buildinfo.Version, Source: s.cfg.Source}
	if snap := s.current(); snap != nil {
		resp.Nodes = len(snap.scene.Nodes)
		resp.LoadedAt = snap.loadedAt
	} else {
		resp.Status = "loading"
	}
	writeJSON(w, http.StatusOK, resp)
}

// snapshotOr404 writes a NOT_FOUND error when no document has loaded yet.
func (s *Server) snapshotOr404(w http.ResponseWriter, r *http.Request) *snapshot {
	snap := s.current()
	if snap == nil {
		s.writeError(w, r, errors.New(errors.ErrCodeNotFound, "no document loaded"))
	}
	return snap
}

func (s *Server) handleScene(w http.ResponseWriter, r *http.Request) {
	if snap := s.snapshotOr404(w, r); snap != nil {
		writeJSON(w, http.StatusOK, snap.scene)
	}
}

func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	if snap := s.snapshotOr404(w, r); snap != nil {
		writeJSON(w, http.StatusOK, snap.doc)
	}
}

// handleCanvas serves the pre-rendered SVG, or renders a variant through the
// runner's cache when query parameters ask for one.
func (s *Server) handleCanvas(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshotOr404(w, r)
	if snap == nil {
		return
	}
	q := r.URL.Query()
	if q.Get("theme") == "" && q.Get("viz") == "" {
		writeBytes(w, render.FormatSVG, snap.svg)
		return
	}

	opts := s.cfg.Options
	opts.Formats = []string{string(render.FormatSVG)}
	if v := q.Get("theme"); v != "" {
		opts.Theme = v
	}
	if v := q.Get("viz"); v != "" {
		opts.VizType = v
	}
	if err := opts.ValidateForRender(); err != nil {
		s.writeError(w, r, err)
		return
	}
	artifacts, err := s.runner.Render(r.Context(), snap.doc, snap.scene, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeBytes(w, render.FormatSVG, artifacts[string(render.FormatSVG)])
}

// handleLayout lays out the posted document. The body format follows the
// Content-Type header (JSON when absent). ?format= selects the response:
// json (scene, default), svg, pdf or png.
func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	format := content.FormatJSON
	if ct := r.Header.Get("Content-Type"); ct != "" {
		f, ok := content.FormatFromContentType(ct)
		if !ok {
			s.writeError(w, r, errors.New(errors.ErrCodeInvalidFormat, "unsupported content type %q", ct))
			return
		}
		format = f
	}

	doc, err := content.Decode(http.MaxBytesReader(w, r.Body, maxDocumentSize), format)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := s.cfg.Options
	sc, err := s.runner.ComputeLayout(r.Context(), doc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := render.FormatJSON
	if v := r.URL.Query().Get("format"); v != "" {
		if out, err = render.ParseFormat(v); err != nil {
			s.writeError(w, r, err)
			return
		}
	}
	if out == render.FormatJSON {
		writeJSON(w, http.StatusOK, sc)
		return
	}

	opts.Formats = []string{string(out)}
	artifacts, err := s.runner.Render(r.Context(), doc, sc, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeBytes(w, out, artifacts[string(out)])
}

func writeBytes(w http.ResponseWriter, f render.Format, data []byte) {
	w.Header().Set("Content-Type", f.ContentType())
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
  html, body { margin: 0; height: 100%; background: #f8fafc; }
  #canvas { width: 100%; height: 100%; overflow: auto; }
  #canvas img { display: block; min-width: 100%; }
</style>
</head>
<body>
<div id="canvas"><img src="/canvas.svg" alt="{{.Title}}" width="{{.Width}}" height="{{.Height}}"></div>
</body>
</html>
`))

type indexData struct {
	Title         string
	Width, Height int
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	snap := s.snapshotOr404(w, r)
	if snap == nil {
		return
	}
	data := indexData{
		Title:  documentTitle(snap.doc, snap.scene),
		Width:  int(snap.scene.Width),
		Height: int(snap.scene.Height),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("render index", "err", err)
	}
}

func documentTitle(doc *content.Document, sc scene.Scene) string {
	if doc.Title != "" {
		return doc.Title
	}
	if len(sc.Nodes) > 0 {
		return sc.Nodes[0].ID
	}
	return "graphlearn"
}

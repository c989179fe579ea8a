package server

import (
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/la-jarre-a-son/tilejar/pkg/buildinfo"
	"github.com/la-jarre-a-son/tilejar/pkg/errors"
	"github.com/la-jarre-a-son/tilejar/pkg/layout"
	"github.com/la-jarre-a-son/tilejar/pkg/pipeline"
	"github.com/la-jarre-a-son/tilejar/pkg/preset"
	"github.com/la-jarre-a-son/tilejar/pkg/render/sink"
	"github.com/la-jarre-a-son/tilejar/pkg/store"
)

// Response headers set by the render endpoint.
const (
	HeaderFrame       = "X-Tilejar-Frame"
	HeaderTotalFrames = "X-Tilejar-Total-Frames"
	HeaderCache       = "X-Tilejar-Cache"
)

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatJSON: "application/json",
}

// =============================================================================
// Health
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

// =============================================================================
// Pipeline
// =============================================================================

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	p, err := s.readPreset(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	opts, err := renderOptions(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), p, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set(HeaderFrame, strconv.Itoa(result.Frame))
	h.Set(HeaderTotalFrames, strconv.Itoa(result.Layout.Clock().TotalFrames()))
	h.Set(HeaderCache, cacheStatus(result.CacheInfo.RenderHit))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// layoutResponse is the body of POST /v1/layout.
type layoutResponse struct {
	Hash        string         `json:"hash"`
	Cached      bool           `json:"cached"`
	TotalFrames int            `json:"totalFrames"`
	Stats       layoutStats    `json:"stats"`
	Layout      *layout.Layout `json:"layout"`
}

type layoutStats struct {
	Enumerated int `json:"enumerated"`
	Visible    int `json:"visible"`
	Culled     int `json:"culled"`
	Variants   int `json:"variants"`
	Keyframes  int `json:"keyframes"`
	Rules      int `json:"rules"`
}

func (s *Server) handleLayout(w http.ResponseWriter, r *http.Request) {
	p, err := s.readPreset(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	refresh, _ := strconv.ParseBool(r.URL.Query().Get("refresh"))
	l, hit, err := s.runner.LayoutWithCacheInfo(r.Context(), p, refresh)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st := l.Stats()
	writeJSON(w, http.StatusOK, layoutResponse{
		Hash:        p.Hash(),
		Cached:      hit,
		TotalFrames: l.Clock().TotalFrames(),
		Stats: layoutStats{
			Enumerated: st.Enumerated,
			Visible:    st.Visible,
			Culled:     st.Culled,
			Variants:   st.Variants,
			Keyframes:  st.Keyframes,
			Rules:      st.Rules,
		},
		Layout: l,
	})
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	p, err := s.readPreset(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	q := r.URL.Query()
	width, err := intParam(q.Get("width"), sink.PreviewWidth)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	height, err := intParam(q.Get("height"), sink.PreviewHeight)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	url, err := s.runner.Preview(r.Context(), p, width, height)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"preview": url})
}

// =============================================================================
// Presets
// =============================================================================

func (s *Server) handleListPresets(w http.ResponseWriter, r *http.Request) {
	list, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	current, err := s.store.Current(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"current": current,
		"presets": list,
	})
}

func (s *Server) handleGetPreset(w http.ResponseWriter, r *http.Request) {
	e, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

// handleSavePreset stores the body under {name} with a freshly rendered
// thumbnail.
func (s *Server) handleSavePreset(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidatePresetName(name); err != nil {
		s.writeError(w, r, err)
		return
	}
	p, err := s.readPreset(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	preview, err := s.runner.Preview(r.Context(), p, sink.PreviewWidth, sink.PreviewHeight)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	e, err := s.store.Save(r.Context(), store.NewEntry(name, preview, p))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, e)
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Request decoding
// =============================================================================

// readPreset decodes and validates the request body. The encoding follows
// the Content-Type: TOML and YAML media types select those codecs,
// anything else is JSON.
func (s *Server) readPreset(r *http.Request) (*preset.Preset, error) {
	data, err := io.ReadAll(io.LimitReader(r.Body, s.maxBodySize+1))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read request body")
	}
	if int64(len(data)) > s.maxBodySize {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", s.maxBodySize)
	}
	if len(data) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "request body is empty")
	}
	return pipeline.Parse(data, bodyFormat(r.Header.Get("Content-Type")))
}

func bodyFormat(contentType string) preset.Format {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return preset.FormatJSON
	}
	switch {
	case strings.HasSuffix(mt, "toml"):
		return preset.FormatTOML
	case strings.HasSuffix(mt, "yaml"), strings.HasSuffix(mt, "yml"):
		return preset.FormatYAML
	}
	return preset.FormatJSON
}

func renderOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	opts := pipeline.Options{
		State: q.Get("state"),
		Name:  q.Get("name"),
	}
	opts.Formats = []string{pipeline.FormatSVG}
	if f := q.Get("format"); f != "" {
		opts.Formats = []string{f}
	}
	frame, err := intParam(q.Get("frame"), 0)
	if err != nil {
		return opts, err
	}
	opts.Frame = frame
	if v := q.Get("scale"); v != "" {
		scale, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return opts, errors.New(errors.ErrCodeInvalidInput, "invalid scale %q", v)
		}
		opts.Scale = scale
	}
	opts.Refresh, _ = strconv.ParseBool(q.Get("refresh"))
	return opts, pipeline.ValidateFormats(opts.Formats)
}

func intParam(v string, def int) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "invalid integer %q", v)
	}
	return n, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

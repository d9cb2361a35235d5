package api

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/wordcloud/pkg/buildinfo"
	"github.com/matzehuels/wordcloud/pkg/core/cloud"
	"github.com/matzehuels/wordcloud/pkg/errors"
	"github.com/matzehuels/wordcloud/pkg/pipeline"
	"github.com/matzehuels/wordcloud/pkg/render"
	"github.com/matzehuels/wordcloud/pkg/store"
	"github.com/matzehuels/wordcloud/pkg/wordio"
)

// layoutRequest is the body of POST /v1/layouts and POST /v1/render.
type layoutRequest struct {
	Labels  json.RawMessage `json:"labels"`
	Options json.RawMessage `json:"options,omitempty"`
}

// layoutResponse is returned by POST /v1/layouts.
type layoutResponse struct {
	ID string `json:"id,omitempty"`
	render.Layout
	Stats  cloud.Stats `json:"stats"`
	Cached bool        `json:"cached"`
}

// summary is one entry of GET /v1/layouts.
type summary struct {
	ID        string       `json:"id"`
	CreatedAt time.Time    `json:"created_at"`
	Config    cloud.Config `json:"config"`
	Stats     cloud.Stats  `json:"stats"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, buildinfo.Get())
}

// decodeRequest reads the envelope and merges request options over the
// server defaults. Labels that fail schema validation come back as nil
// with no error.
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request) ([]cloud.Label, pipeline.Options, error) {
	opts := s.defaults.Clone()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxBodyBytes))
	if err != nil {
		return nil, opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	var req layoutRequest
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return nil, opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "request body must be a JSON object with labels and options")
	}

	if len(req.Options) > 0 {
		optDec := json.NewDecoder(bytes.NewReader(req.Options))
		optDec.DisallowUnknownFields()
		if err := optDec.Decode(&opts); err != nil {
			return nil, opts, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid options")
		}
	}
	opts.Logger = s.logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, opts, err
	}

	labels, err := wordio.ParseLabels(req.Labels)
	if err != nil {
		s.logger.Debug("rejected label list", "error", err)
		return nil, opts, nil
	}
	return labels, opts, nil
}

func (s *Server) handleCreateLayout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	labels, opts, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	layout, stats, hit, err := s.runner.GenerateLayoutWithCacheInfo(ctx, labels, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if layout.Words == nil {
		layout.Words = []cloud.Placed{}
	}

	resp := layoutResponse{Layout: layout, Stats: stats, Cached: hit}
	if len(labels) > 0 {
		id, err := s.runner.Save(ctx, labels, layout, stats, opts)
		if err != nil {
			s.writeError(w, errors.Wrap(errors.ErrCodeUnavailable, err, "save layout"))
			return
		}
		resp.ID = id
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListLayouts(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnavailable, "layout history is disabled"))
		return
	}

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "limit must be a non-negative integer, got %q", v))
			return
		}
		limit = n
	}

	recs, err := s.runner.Store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeUnavailable, err, "list layouts"))
		return
	}
	out := make([]summary, 0, len(recs))
	for _, rec := range recs {
		out = append(out, summary{ID: rec.ID, CreatedAt: rec.CreatedAt, Config: rec.Config, Stats: rec.Stats})
	}
	s.writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetLayout(w http.ResponseWriter, r *http.Request) {
	if s.runner.Store == nil {
		s.writeError(w, errors.New(errors.ErrCodeUnavailable, "layout history is disabled"))
		return
	}
	id := chi.URLParam(r, "id")
	if err := errors.ValidateLayoutID(id); err != nil {
		s.writeError(w, err)
		return
	}

	rec, err := s.runner.Store.Get(r.Context(), id)
	if err != nil {
		if !stderrors.Is(err, store.ErrNotFound) {
			err = errors.Wrap(errors.ErrCodeUnavailable, err, "get layout")
		}
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	format := render.FormatSVG
	if v := r.URL.Query().Get("format"); v != "" {
		f, err := render.ParseFormat(v)
		if err != nil {
			s.writeError(w, err)
			return
		}
		format = f
	}

	labels, opts, err := s.decodeRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}
	opts.Formats = []string{string(format)}

	layout, _, _, err := s.runner.GenerateLayoutWithCacheInfo(ctx, labels, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	artifacts, _, err := s.runner.RenderWithCacheInfo(ctx, layout, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[string(format)])
}

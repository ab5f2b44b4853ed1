package server

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/mondrian/pkg/buildinfo"
	"github.com/matzehuels/mondrian/pkg/errors"
	"github.com/matzehuels/mondrian/pkg/mondrian"
	"github.com/matzehuels/mondrian/pkg/pipeline"
	"github.com/matzehuels/mondrian/pkg/sink"
)

// Response headers describing a generated picture.
const (
	headerSeed   = "X-Mondrian-Seed"
	headerLeaves = "X-Mondrian-Leaves"
	headerCache  = "X-Mondrian-Cache"
)

type errorBody struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

type modeInfo struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type infoBody struct {
	Build     buildinfo.Info `json:"build"`
	Modes     []modeInfo     `json:"modes"`
	Formats   []string       `json:"formats"`
	MaxWidth  int            `json:"max_width,omitempty"`
	MaxHeight int            `json:"max_height,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Short(),
	})
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	body := infoBody{
		Build:     buildinfo.Get(),
		Formats:   sink.Formats(),
		MaxWidth:  s.cfg.MaxWidth,
		MaxHeight: s.cfg.MaxHeight,
	}
	for _, m := range mondrian.Modes {
		body.Modes = append(body.Modes, modeInfo{ID: int(m), Name: m.String()})
	}
	writeJSON(w, http.StatusOK, body)
}

// handleGenerate serves GET /v1/mondrian/{mode}.{format}.
func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	opts, err := s.parseGenerate(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	seeded := opts.Seed != 0

	res, err := s.runner.Generate(r.Context(), opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	format := opts.Formats[0]
	h := w.Header()
	h.Set("Content-Type", sink.ContentType(format))
	h.Set(headerSeed, strconv.FormatUint(res.Seed, 10))
	h.Set(headerLeaves, strconv.Itoa(res.Stats.Leaves))
	if res.CacheInfo.Hit {
		h.Set(headerCache, "hit")
	} else {
		h.Set(headerCache, "miss")
	}
	if seeded {
		// A seeded request always yields the same bytes.
		h.Set("Cache-Control", "public, max-age=31536000, immutable")
	} else {
		h.Set("Cache-Control", "no-store")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

// parseGenerate builds pipeline options from the path and query.
func (s *Server) parseGenerate(r *http.Request) (pipeline.Options, error) {
	mode, err := mondrian.ParseMode(chi.URLParam(r, "mode"))
	if err != nil {
		return pipeline.Options{}, err
	}
	format := sink.NormalizeFormat(chi.URLParam(r, "format"))
	if err := sink.ValidateFormat(format); err != nil {
		return pipeline.Options{}, err
	}

	q := r.URL.Query()
	width, err := queryInt(q.Get("width"), pipeline.DefaultWidth, "width")
	if err != nil {
		return pipeline.Options{}, err
	}
	height, err := queryInt(q.Get("height"), pipeline.DefaultHeight, "height")
	if err != nil {
		return pipeline.Options{}, err
	}
	if err := errors.ValidateDimensions(width, height, s.cfg.MaxWidth, s.cfg.MaxHeight); err != nil {
		return pipeline.Options{}, err
	}
	quality, err := queryInt(q.Get("quality"), sink.DefaultJPEGQuality, "quality")
	if err != nil {
		return pipeline.Options{}, err
	}

	var seed uint64
	if v := q.Get("seed"); v != "" {
		seed, err = strconv.ParseUint(v, 10, 64)
		if err != nil || seed == 0 {
			return pipeline.Options{}, errors.New(errors.ErrCodeInvalidInput, "seed must be a positive integer, got %q", v)
		}
	}

	return pipeline.Options{
		Mode:        mode,
		Width:       width,
		Height:      height,
		Seed:        seed,
		Formats:     []string{format},
		JPEGQuality: quality,
	}, nil
}

func queryInt(v string, def int, name string) (int, error) {
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, errors.New(errors.ErrCodeInvalidInput, "%s must be an integer, got %q", name, v)
	}
	return n, nil
}

// writeError maps error codes to HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := errors.GetCode(err)
	switch {
	case errors.IsInvalid(err):
		status = http.StatusBadRequest
	case code == errors.ErrCodeNotFound:
		status = http.StatusNotFound
	case stderrors.Is(err, context.Canceled), stderrors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	if code == "" {
		code = errors.ErrCodeInternal
	}

	msg := errors.UserMessage(err)
	if status != http.StatusBadRequest && status != http.StatusNotFound {
		s.cfg.Logger.Error("generate failed", "id", requestIDFrom(r.Context()), "err", err)
		msg = "internal error"
	}
	writeJSON(w, status, errorBody{Error: msg, Code: string(code), RequestID: requestIDFrom(r.Context())})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

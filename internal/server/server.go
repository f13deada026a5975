// Package server implements the board image HTTP service.
//
// The service is a thin transport over the render pipeline: every request
// carries the full position and configuration in its query string, the
// response is the encoded PNG. Because a render is a pure function of its
// parameters, responses are cached under a hash of the normalized inputs.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"

	"github.com/hadley31/chess-image-generator/pkg/cache"
	apperrors "github.com/hadley31/chess-image-generator/pkg/errors"
	"github.com/hadley31/chess-image-generator/pkg/render"
	"github.com/hadley31/chess-image-generator/pkg/render/styles"
)

// Options configures a Server.
type Options struct {
	// Logger receives request logs. Defaults to log.Default().
	Logger *log.Logger

	// Cache stores rendered images. Defaults to a NullCache.
	Cache cache.Cache

	// Defaults seeds the render configuration; query parameters
	// override individual fields per request.
	Defaults render.Config

	// CacheTTL bounds the lifetime of cached images (0 = no expiry).
	CacheTTL time.Duration
}

// Server serves rendered board images over HTTP.
type Server struct {
	logger   *log.Logger
	cache    cache.Cache
	defaults render.Config
	ttl      time.Duration
}

// New creates a Server.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Cache == nil {
		opts.Cache = cache.NewNullCache()
	}
	return &Server{
		logger:   opts.Logger,
		cache:    opts.Cache,
		defaults: opts.Defaults,
		ttl:      opts.CacheTTL,
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(s.logRequests)

	r.Get("/healthz", s.handleHealth)
	r.Get("/styles", s.handleStyles)
	r.Get("/board.png", s.handleBoard)

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleStyles(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"styles":  styles.Names,
		"default": styles.Default,
	})
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	logger := loggerFrom(r.Context(), s.logger)

	req, err := parseBoardRequest(r.URL.Query(), s.defaults)
	if err != nil {
		writeError(w, err)
		return
	}

	// Key the cache on the defaulted config so requests spelling out a
	// default share the entry with requests omitting it.
	renderer, err := render.New(req.cfg)
	if err != nil {
		writeError(w, err)
		return
	}
	req.cfg = renderer.Config()

	key := cache.RenderKey(req.pos.String(), req.cfg, req.highlights)
	if data, ok, cerr := s.cache.Get(r.Context(), key); cerr == nil && ok {
		logger.Debug("cache hit", "key", key)
		writePNG(w, data)
		return
	}

	data, err := render.Encode(req.pos, req.cfg, req.highlights)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.cache.Set(r.Context(), key, data, s.ttl); err != nil {
		logger.Warn("cache store failed", "err", err)
	}

	writePNG(w, data)
}

func writePNG(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(data)
}

// writeError maps error codes onto HTTP statuses. Input problems are the
// client's fault; everything else is a server failure.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch apperrors.GetCode(err) {
	case apperrors.ErrCodeInvalidNotation,
		apperrors.ErrCodeInvalidInput,
		apperrors.ErrCodeInvalidColor,
		apperrors.ErrCodeInvalidSize:
		status = http.StatusBadRequest
	case apperrors.ErrCodeAssetNotFound:
		status = http.StatusBadRequest
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  string(apperrors.GetCode(err)),
		"error": apperrors.UserMessage(err),
	})
}

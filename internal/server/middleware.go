package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// ctxKey is the type for context keys used in this package.
type ctxKey int

const (
	requestIDKey ctxKey = iota
	loggerKey
)

// requestIDHeader is the response header carrying the request ID.
const requestIDHeader = "X-Request-Id"

// requestID assigns a UUID to each request, exposing it in the response
// headers and the request context.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// logRequests attaches a request-scoped logger to the context and logs
// each request with its duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := s.logger
		if id, ok := r.Context().Value(requestIDKey).(string); ok {
			logger = logger.With("request_id", id)
		}
		ctx := context.WithValue(r.Context(), loggerKey, logger)

		start := time.Now()
		next.ServeHTTP(w, r.WithContext(ctx))
		logger.Info("request", "method", r.Method, "path", r.URL.Path,
			"duration", time.Since(start).Round(time.Millisecond))
	})
}

// loggerFrom retrieves the request-scoped logger, falling back to def.
func loggerFrom(ctx context.Context, def *log.Logger) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return def
}

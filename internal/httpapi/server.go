// Package httpapi exposes the partition and range-coalescing operations
// over HTTP, for callers that would rather issue a request than link the
// gridpartition library directly.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Server wraps a gorilla/mux router bound to the partition and ranges
// endpoints, with structured logging for every request.
type Server struct {
	router *mux.Router
	logger *zap.Logger
}

// NewServer builds a Server ready to be used as an http.Handler.
func NewServer(logger *zap.Logger) *Server {
	s := &Server{router: mux.NewRouter(), logger: logger}
	s.router.HandleFunc("/partition", s.handlePartition).Methods(http.MethodPost).Name("partition")
	s.router.HandleFunc("/ranges", s.handleRanges).Methods(http.MethodPost).Name("ranges")
	s.router.Use(s.loggingMiddleware)
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.logger.Debug("request received", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r)
	})
}

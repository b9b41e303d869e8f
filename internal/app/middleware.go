package app

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/lovetrip/lovetrip/internal/config"
	log "github.com/sirupsen/logrus"
)

// statusRecorder wraps http.ResponseWriter to capture the status code.
type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

// SetupMiddleware wires all HTTP middlewares for the application.
func SetupMiddleware(r *mux.Router, deps *Dependencies, cfg config.Application) {

	// Request logging
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			sr := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(sr, req)
			log.WithFields(log.Fields{
				"method":      req.Method,
				"path":        req.URL.Path,
				"status":      sr.statusCode,
				"duration_ms": time.Since(start).Milliseconds(),
			}).Debug("request handled")
		})
	})
}

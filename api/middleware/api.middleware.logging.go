// FilePath: api/middleware/api.middleware.logging.go
package middleware

import (
	"net/http"
	"time"

	nuts "github.com/vaudience/go-nuts"
)

const requestIDHeader = "X-Request-Id"

// LoggingMiddleware tags every request with an ID and logs its outcome
type LoggingMiddleware struct{}

// NewLoggingMiddleware creates a new LoggingMiddleware
func NewLoggingMiddleware() *LoggingMiddleware {
	return &LoggingMiddleware{}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Log wraps a handler with request-ID tagging and access logging.
func (m *LoggingMiddleware) Log(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(requestIDHeader)
		if requestID == "" {
			requestID = nuts.NID("req", 12)
		}
		w.Header().Set(requestIDHeader, requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(recorder, r)

		nuts.L.Infof("[API] %s %s %d %s (%s)",
			r.Method, r.URL.Path, recorder.status, time.Since(start), requestID)
	})
}

package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const requestIDHeader = "X-Request-ID"

// requestID returns the caller's request id, or a new one.
func requestID(r *http.Request) string {
	if id := r.Header.Get(requestIDHeader); id != "" {
		return id
	}
	return uuid.NewString()
}

func logRequest(log zerolog.Logger, r *http.Request, id string, status int, start time.Time) {
	log.Info().
		Str("request_id", id).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Int("status", status).
		Dur("latency", time.Since(start)).
		Msg("http request")
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// withRequestLog logs every request handled by next.
func withRequestLog(log zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := requestID(r)
		w.Header().Set(requestIDHeader, id)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logRequest(log, r, id, rec.status, start)
	})
}

// ginRequestLog is withRequestLog for the gin engine.
func ginRequestLog(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := requestID(c.Request)
		c.Header(requestIDHeader, id)

		c.Next()

		logRequest(log, c.Request, id, c.Writer.Status(), start)
	}
}

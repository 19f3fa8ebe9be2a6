package middleware

import (
	"log"
	"net/http"
	"time"
)

// RequestLogging logs every request with method, path, status and latency
func RequestLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusRecorder{ResponseWriter: w, statusCode: 200}

		next.ServeHTTP(wrapped, r)

		log.Printf("[HTTP] %s %s %d %s", r.Method, r.URL.Path,
			wrapped.statusCode, time.Since(start))
	})
}

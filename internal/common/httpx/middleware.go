// Package httpx holds the HTTP boundary shared by every function:
// CORS, response envelopes, and the error-kind to status mapping.
package httpx

import (
	"net/http"
	"time"

	"github.com/KDR9MGR/beautyfetch-user-sub003/internal/common/metrics"
)

// CORS permits any origin and answers preflight requests with an empty
// success before the handler runs. Browser storefront code calls these
// functions directly, so the allow-list carries the client
// identification headers alongside content-type.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		h.Set("Access-Control-Allow-Methods", "POST, OPTIONS")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response code for metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Instrument records request counts and durations for one function.
func Instrument(function string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		result := "success"
		if rec.status >= http.StatusBadRequest {
			result = "error"
		}
		metrics.FunctionRequests.WithLabelValues(function, result).Inc()
		metrics.FunctionDuration.WithLabelValues(function).Observe(time.Since(start).Seconds())
	})
}

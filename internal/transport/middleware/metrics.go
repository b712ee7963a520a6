package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/project-dashboard/pkg/metrics"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Metrics records request latency labelled by the matched route pattern.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		path := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordHTTPRequestDuration(r.Method, path, strconv.Itoa(status), time.Since(start))
	})
}

package middleware

import (
	"net/http"
	"time"

	"github.com/2beens/workoutcal/pkg"

	log "github.com/sirupsen/logrus"
)

// LogRequest logs every request once it is served. Server errors go out at
// warn level, everything else at trace.
func LogRequest() func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			resp := &responseWriter{w, http.StatusOK}
			begin := time.Now()

			next.ServeHTTP(resp, r)

			entry := log.WithFields(log.Fields{
				"method":   r.Method,
				"path":     r.URL.Path,
				"route":    routeTemplate(r),
				"status":   resp.statusCode,
				"duration": time.Since(begin).String(),
				"ip":       pkg.ReadUserIP(r),
				"ua":       r.Header.Get("User-Agent"),
			})
			if resp.statusCode >= http.StatusInternalServerError {
				entry.Warn(" <==== request failed")
				return
			}
			entry.Trace(" <==== request")
		})
	}
}

package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/2beens/workoutcal/internal/telemetry/metrics"
	"github.com/2beens/workoutcal/pkg"

	"github.com/getsentry/sentry-go"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PanicRecovery turns a handler panic into a 500. The panic is logged with
// the route and client ip, recorded on the request span and sent to sentry.
func PanicRecovery(metricsManager *metrics.Manager) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				ip := pkg.ReadUserIP(r)
				log.WithFields(log.Fields{
					"route": routeTemplate(r),
					"ip":    ip,
				}).Errorf("http: panic serving %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())

				span := trace.SpanFromContext(r.Context())
				span.RecordError(fmt.Errorf("panic: %v", rec))
				span.SetStatus(codes.Error, "panic")

				hub := sentry.CurrentHub().Clone()
				hub.Scope().SetUser(sentry.User{IPAddress: ip})
				hub.Recover(rec)

				if metricsManager != nil {
					metricsManager.CounterHandleRequestPanic.Inc()
				}
				http.Error(w, "internal error", http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

package middleware

import (
	"fmt"
	"net/http"

	"github.com/2beens/workoutcal/internal/auth"
	"github.com/2beens/workoutcal/internal/telemetry/metrics"

	"github.com/go-redis/redis_rate/v9"
	log "github.com/sirupsen/logrus"
)

// RateLimit limits requests per user (per router when the user is unknown).
func RateLimit(
	rateLimiter RequestRateLimiter,
	metricsManager *metrics.Manager,
	routerName string,
	allowedPerMin int,
) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := routerName
			if userID := auth.UserIDFromContext(r.Context()); userID != "" {
				key = routerName + "||" + userID
			}

			res, err := rateLimiter.Allow(
				r.Context(),
				key,
				redis_rate.PerMinute(allowedPerMin),
			)
			if err != nil {
				log.Errorf("rate limit [%s]: %s", key, err)
				http.Error(w, "rate limit internal error", http.StatusInternalServerError)
				return
			}

			if res.Allowed > 0 {
				next.ServeHTTP(w, r)
				return
			}

			if metricsManager != nil {
				metricsManager.CounterRateLimitedRequests.Inc()
			}
			http.Error(
				w,
				fmt.Sprintf("retry after %f seconds", res.RetryAfter.Seconds()),
				http.StatusTooManyRequests,
			)
		})
	}
}

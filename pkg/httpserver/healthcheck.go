package httpserver

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/schoolkit"
)

// Check is a named readiness probe such as pg.Healthcheck or redis.Healthcheck.
type Check struct {
	Name string
	Fn   func(context.Context) error
}

// HealthReport is the readiness response body.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// LivenessHandler always answers 200 while the process serves requests.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		_ = schoolkit.WriteJSON(w, http.StatusOK, HealthReport{Status: "alive"})
	}
}

// ReadinessHandler runs every check with its own timeout and answers 200
// when all pass, 503 otherwise. Failure details are logged; the body only
// names the failed checks.
func ReadinessHandler(log *slog.Logger, timeout time.Duration, checks ...Check) http.HandlerFunc {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return func(w http.ResponseWriter, r *http.Request) {
		report := HealthReport{Status: "ready", Checks: make(map[string]string, len(checks))}
		status := http.StatusOK

		for _, c := range checks {
			err := runCheck(r.Context(), timeout, c.Fn)
			if err != nil {
				log.ErrorContext(r.Context(), "readiness check failed", slog.String("check", c.Name), slog.Any("error", err))
				report.Checks[c.Name] = "failed"
				report.Status = "not_ready"
				status = http.StatusServiceUnavailable
				continue
			}
			report.Checks[c.Name] = "ok"
		}

		_ = schoolkit.WriteJSON(w, status, report)
	}
}

func runCheck(ctx context.Context, timeout time.Duration, fn func(context.Context) error) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return fn(ctx)
}

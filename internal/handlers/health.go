package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/indigoandlavender/slow-morocco-6/internal/platform/httpx"
)

const defaultReadinessTimeout = 2 * time.Second

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// HealthHandlers serves the liveness and readiness probes.
type HealthHandlers struct {
	checks  map[string]ReadinessCheck
	timeout time.Duration
}

// HealthOption configures HealthHandlers.
type HealthOption func(*HealthHandlers)

// WithReadinessCheck registers a named dependency check for /readyz.
func WithReadinessCheck(name string, check ReadinessCheck) HealthOption {
	return func(h *HealthHandlers) {
		if name != "" && check != nil {
			h.checks[name] = check
		}
	}
}

// WithReadinessTimeout bounds the whole readiness run.
func WithReadinessTimeout(d time.Duration) HealthOption {
	return func(h *HealthHandlers) {
		if d > 0 {
			h.timeout = d
		}
	}
}

// NewHealthHandlers builds the probe handlers.
func NewHealthHandlers(opts ...HealthOption) *HealthHandlers {
	h := &HealthHandlers{checks: map[string]ReadinessCheck{}, timeout: defaultReadinessTimeout}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Healthz answers ok while the process is up.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeOK(w)
}

// Readyz runs every registered check and answers 503 listing the failures.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	failed := map[string]any{}
	for _, name := range names {
		if err := h.checks[name](ctx); err != nil {
			failed[name] = err.Error()
		}
	}
	if len(failed) > 0 {
		httpx.WriteError(r.Context(), w, httpx.Unavailable("not_ready", "dependencies unavailable").WithDetails(failed))
		return
	}
	writeOK(w)
}

func writeOK(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

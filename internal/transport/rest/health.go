package rest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const checkTimeout = 3 * time.Second

// Check outcomes.
const (
	statusOK       = "ok"
	statusDown     = "down"
	statusDegraded = "degraded"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// Component is one dependency checked by readiness and health checks.
// An Optional component that is down degrades /health but never fails /ready.
type Component struct {
	Name     string
	Pinger   pinger
	Optional bool
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	components []Component
	version    string
}

func NewHealthHandler(version string, components ...Component) *HealthHandler {
	return &HealthHandler{components: components, version: version}
}

// HealthResponse is the JSON response for /live, /ready and /health.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Live always answers 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: statusOK, Timestamp: time.Now()})
}

// Ready answers 503 when a required component is down.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status, _ := h.checkAll(r.Context())
	writeJSON(w, statusCode(status), HealthResponse{Status: status, Timestamp: time.Now()})
}

// Health reports every component with its latency or error.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	status, components := h.checkAll(r.Context())
	writeJSON(w, statusCode(status), HealthResponse{
		Status:     status,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func statusCode(status string) int {
	if status == statusDown {
		return http.StatusServiceUnavailable
	}
	return http.StatusOK
}

// checkAll pings all components concurrently under one shared deadline.
func (h *HealthHandler) checkAll(ctx context.Context) (string, map[string]CompStatus) {
	ctx, cancel := context.WithTimeout(ctx, checkTimeout)
	defer cancel()

	var (
		mu      sync.Mutex
		out     = make(map[string]CompStatus, len(h.components))
		overall = statusOK
	)

	var g errgroup.Group
	for _, c := range h.components {
		g.Go(func() error {
			start := time.Now()
			err := c.Pinger.Ping(ctx)

			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				out[c.Name] = CompStatus{Status: statusOK, Latency: time.Since(start).String()}
				return nil
			}
			out[c.Name] = CompStatus{Status: statusDown, Error: err.Error()}
			switch {
			case !c.Optional:
				overall = statusDown
			case overall == statusOK:
				overall = statusDegraded
			}
			return nil
		})
	}
	_ = g.Wait()

	return overall, out
}

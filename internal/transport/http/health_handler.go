package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"hoopsight/internal/services"
)

// HealthHandler serves the health and version probes.
type HealthHandler struct {
	svc    *services.HealthService
	logger *slog.Logger
}

func NewHealthHandler(svc *services.HealthService, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		svc:    svc,
		logger: logger.With(slog.String("handler", "health")),
	}
}

// Routes returns the health probe routes, mounted under /api/health.
func (h *HealthHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Health)
	r.Get("/ready", h.Ready)
	r.Get("/live", h.Live)
	return r
}

// Health answers GET /api/health with the bare status envelope.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.svc.HealthCheck(r.Context()))
}

// Ready answers GET /api/health/ready. A server that cannot answer
// dashboard requests responds 503 so load balancers hold traffic back.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	probe := h.svc.ReadinessCheck(r.Context())
	if probe.Status != "ready" {
		h.logger.WarnContext(r.Context(), "readiness probe failed")
		render.Status(r, http.StatusServiceUnavailable)
	}
	render.JSON(w, r, probe)
}

// Live answers GET /api/health/live with process vitals.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.svc.LivenessCheck(r.Context()))
}

// Version answers GET /api/version.
func (h *HealthHandler) Version(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, h.svc.Version())
}

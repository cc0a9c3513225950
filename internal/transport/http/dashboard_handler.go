package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "hoopsight/internal/errors"
	mw "hoopsight/internal/middleware"
	"hoopsight/internal/services"
	apiv1 "hoopsight/pkg/contracts/api/v1"
)

// DashboardHandler handles the dashboard view endpoints with RFC 7807
// error responses.
type DashboardHandler struct {
	service      DashboardServiceInterface
	validate     *mw.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(service DashboardServiceInterface, validate *mw.Validator, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *DashboardHandler {
	return &DashboardHandler{
		service:      service,
		validate:     validate,
		logger:       logger.With(slog.String("component", "dashboard_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the dashboard routes, one per view.
func (h *DashboardHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Get("/seasons", h.GetSeasons)
	r.Get("/summary", h.GetSummary)
	r.Get("/season-trend", h.GetSeasonTrend)
	r.Get("/team-scoring", h.GetTeamScoring)
	r.Get("/player-averages", h.GetPlayerAverages)
	r.Get("/home-away", h.GetHomeAway)
	r.Get("/conference-trend", h.GetConferenceTrend)
	r.Get("/leaderboard", h.GetLeaderboard)

	return r
}

// GetSeasons handles GET /api/dashboard/seasons
func (h *DashboardHandler) GetSeasons(w http.ResponseWriter, r *http.Request) {
	h.logRequest(r, "fetching seasons")

	seasons, err := h.service.Seasons(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "seasons")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   seasons,
		"count":  len(seasons),
	})
}

// GetSummary handles GET /api/dashboard/summary
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	h.logRequest(r, "fetching dataset summary")

	summary, err := h.service.Summary(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "summary")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   summary,
	})
}

// GetSeasonTrend handles GET /api/dashboard/season-trend
func (h *DashboardHandler) GetSeasonTrend(w http.ResponseWriter, r *http.Request) {
	h.logRequest(r, "fetching season trend")

	points, err := h.service.SeasonTrend(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "season-trend")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   points,
		"count":  len(points),
	})
}

// GetTeamScoring handles GET /api/dashboard/team-scoring with an optional
// season query parameter. Without one the latest season is served.
func (h *DashboardHandler) GetTeamScoring(w http.ResponseWriter, r *http.Request) {
	season := 0
	if raw := r.URL.Query().Get("season"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			h.errorHandler.HandleError(w, r, apierrors.FieldError("season", "season must be an integer"))
			return
		}
		req := apiv1.TeamScoringRequest{Season: v}
		if err := h.validate.Struct(&req); err != nil {
			h.errorHandler.HandleError(w, r, err)
			return
		}
		season = v
	}

	h.logger.InfoContext(r.Context(), "fetching team scoring",
		slog.String("request_id", mw.GetRequestID(r.Context())),
		slog.Int("season", season),
	)

	rows, err := h.service.TeamScoring(r.Context(), season)
	if err != nil {
		h.handleServiceError(w, r, err, "team-scoring")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rows,
		"count":  len(rows),
	})
}

// GetPlayerAverages handles GET /api/dashboard/player-averages
func (h *DashboardHandler) GetPlayerAverages(w http.ResponseWriter, r *http.Request) {
	h.logRequest(r, "fetching player averages")

	rows, err := h.service.PlayerAverages(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "player-averages")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rows,
		"count":  len(rows),
	})
}

// GetHomeAway handles GET /api/dashboard/home-away
func (h *DashboardHandler) GetHomeAway(w http.ResponseWriter, r *http.Request) {
	h.logRequest(r, "fetching home away split")

	points, err := h.service.HomeAway(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "home-away")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   points,
		"count":  len(points),
	})
}

// GetConferenceTrend handles GET /api/dashboard/conference-trend
func (h *DashboardHandler) GetConferenceTrend(w http.ResponseWriter, r *http.Request) {
	h.logRequest(r, "fetching conference trend")

	rows, err := h.service.ConferenceTrend(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "conference-trend")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rows,
		"count":  len(rows),
	})
}

// GetLeaderboard handles GET /api/dashboard/leaderboard
func (h *DashboardHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	h.logRequest(r, "fetching leaderboard")

	rows, err := h.service.Leaderboard(r.Context())
	if err != nil {
		h.handleServiceError(w, r, err, "leaderboard")
		return
	}

	render.JSON(w, r, map[string]interface{}{
		"status": "success",
		"data":   rows,
		"count":  len(rows),
	})
}

func (h *DashboardHandler) logRequest(r *http.Request, msg string) {
	h.logger.InfoContext(r.Context(), msg,
		slog.String("request_id", mw.GetRequestID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)
}

// handleServiceError maps service failures onto the API error vocabulary.
func (h *DashboardHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, view string) {
	h.logger.ErrorContext(r.Context(), "failed to compute view",
		slog.String("view", view),
		slog.String("error", err.Error()),
		slog.String("request_id", mw.GetRequestID(r.Context())),
	)

	if errors.Is(err, services.ErrDatasetNotLoaded) {
		h.errorHandler.HandleError(w, r, apierrors.DatasetUnavailableError(err))
		return
	}

	h.errorHandler.HandleError(w, r, err)
}

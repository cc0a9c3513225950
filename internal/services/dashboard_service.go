package services

import (
	"context"
	"fmt"
	"log/slog"

	"hoopsight/internal/analytics"
	"hoopsight/internal/dataset"
	"hoopsight/internal/infrastructure"
	"hoopsight/pkg/contracts/domain"
)

// DashboardService serves the derived dashboard views. It holds no state of
// its own: every call reads the memoized snapshot and computes the view
// fresh, so concurrent requests never contend on anything but the first
// load.
type DashboardService struct {
	store  *dataset.Store
	logger *slog.Logger
}

// NewDashboardService creates a dashboard service over the shared dataset
// store.
func NewDashboardService(store *dataset.Store, logger *slog.Logger) *DashboardService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DashboardService{
		store:  store,
		logger: logger.With(slog.String("component", "dashboard_service")),
	}
}

// snapshot fetches the shared snapshot, folding load failures into the
// dataset sentinel so handlers answer with 503 rather than 500.
func (s *DashboardService) snapshot(ctx context.Context) (*dataset.Snapshot, error) {
	snap, err := s.store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatasetNotLoaded, err)
	}
	return snap, nil
}

// Seasons returns the seasons available to the dashboard's season selector,
// ascending.
func (s *DashboardService) Seasons(ctx context.Context) ([]int, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Seasons(), nil
}

// Summary describes the loaded snapshot: table sizes, drop counts and the
// season span.
func (s *DashboardService) Summary(ctx context.Context) (domain.DatasetSummary, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return domain.DatasetSummary{}, err
	}
	return snap.Summary(), nil
}

// SeasonTrend returns the league-wide average combined score per season.
func (s *DashboardService) SeasonTrend(ctx context.Context) ([]domain.SeasonTrendPoint, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	points := analytics.SeasonTrend(snap.Games)
	s.logger.DebugContext(ctx, "season trend computed", slog.Int("seasons", len(points)))
	return points, nil
}

// TeamScoring returns each home team's average home score for one season. A
// non-positive season selects the latest season present in the dataset; a
// season with no games yields an empty view.
func (s *DashboardService) TeamScoring(ctx context.Context, season int) ([]domain.TeamScoringRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	season = defaultSeason(snap, season)
	infrastructure.SpanAttrs(ctx, map[string]interface{}{
		"dashboard.view":   "team-scoring",
		"dashboard.season": season,
	})
	rows := analytics.TeamScoring(snap.Games, snap.Teams, season)
	s.logger.DebugContext(ctx, "team scoring computed",
		slog.Int("season", season),
		slog.Int("teams", len(rows)))
	return rows, nil
}

// PlayerAverages returns per-game averages for every player with at least
// one surviving box score line.
func (s *DashboardService) PlayerAverages(ctx context.Context) ([]domain.PlayerAverageRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	rows := analytics.PlayerAverages(snap.Lines, snap.Players)
	s.logger.DebugContext(ctx, "player averages computed", slog.Int("players", len(rows)))
	return rows, nil
}

// HomeAway returns the long-form home versus away scoring trend.
func (s *DashboardService) HomeAway(ctx context.Context) ([]domain.HomeAwayPoint, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	points := analytics.HomeAwaySplit(snap.Games)
	s.logger.DebugContext(ctx, "home away split computed", slog.Int("points", len(points)))
	return points, nil
}

// ConferenceTrend returns average home scoring by season and conference.
func (s *DashboardService) ConferenceTrend(ctx context.Context) ([]domain.ConferenceTrendRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	rows := analytics.ConferenceTrend(snap.Games, snap.Standings)
	s.logger.DebugContext(ctx, "conference trend computed", slog.Int("rows", len(rows)))
	return rows, nil
}

// Leaderboard returns the ranking snapshots projected for the standings
// table.
func (s *DashboardService) Leaderboard(ctx context.Context) ([]domain.LeaderboardRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	rows := analytics.Leaderboard(snap.Standings)
	s.logger.DebugContext(ctx, "leaderboard computed", slog.Int("rows", len(rows)))
	return rows, nil
}

// defaultSeason resolves a non-positive season to the latest one present in
// the snapshot. With no seasons at all the request season passes through
// unchanged and the caller serves an empty view.
func defaultSeason(snap *dataset.Snapshot, season int) int {
	if season > 0 {
		return season
	}
	if seasons := snap.Seasons(); len(seasons) > 0 {
		return seasons[len(seasons)-1]
	}
	return season
}

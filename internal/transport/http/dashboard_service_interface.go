package http

import (
	"context"

	"hoopsight/pkg/contracts/domain"
)

// DashboardServiceInterface defines the view computations the dashboard
// handler depends on.
type DashboardServiceInterface interface {
	Seasons(ctx context.Context) ([]int, error)
	Summary(ctx context.Context) (domain.DatasetSummary, error)
	SeasonTrend(ctx context.Context) ([]domain.SeasonTrendPoint, error)
	TeamScoring(ctx context.Context, season int) ([]domain.TeamScoringRow, error)
	PlayerAverages(ctx context.Context) ([]domain.PlayerAverageRow, error)
	HomeAway(ctx context.Context) ([]domain.HomeAwayPoint, error)
	ConferenceTrend(ctx context.Context) ([]domain.ConferenceTrendRow, error)
	Leaderboard(ctx context.Context) ([]domain.LeaderboardRow, error)
}

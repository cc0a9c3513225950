package domain

import "time"

// Derived view rows. Each type is one output row of an aggregation; slices of
// them are what the dashboard endpoints and the exporters serve. View rows are
// computed fresh per request from the cleaned snapshot and never persisted.

// SeasonTrendPoint is one season's average combined score across all cleaned
// games of that season.
type SeasonTrendPoint struct {
	Season         int     `json:"season"`
	AvgTotalPoints float64 `json:"avg_total_points"`
	Games          int     `json:"games"`
}

// TeamScoringRow is one home team's average home score for a single season.
// Nickname and City are display metadata resolved from the team table; they
// stay empty when the team id has no reference row.
type TeamScoringRow struct {
	TeamID        int64   `json:"team_id"`
	Nickname      string  `json:"nickname,omitempty"`
	City          string  `json:"city,omitempty"`
	Season        int     `json:"season"`
	AvgHomePoints float64 `json:"avg_home_points"`
	HomeGames     int     `json:"home_games"`
}

// PlayerAverageRow is one player's per-game averages over every cleaned box
// score line, joined with the player's name. Each stat averages only the
// cells that resolved to a number, so a stat with no resolved cells at all
// reports null rather than zero.
type PlayerAverageRow struct {
	PlayerID    int64     `json:"player_id"`
	PlayerName  string    `json:"player_name"`
	AvgPoints   NullFloat `json:"avg_points"`
	AvgAssists  NullFloat `json:"avg_assists"`
	AvgRebounds NullFloat `json:"avg_rebounds"`
	AvgMinutes  float64   `json:"avg_minutes"`
	GamesPlayed int       `json:"games_played"`
}

// Location tags a long-form scoring row as the home or away series.
type Location string

const (
	LocationHome Location = "Home"
	LocationAway Location = "Away"
)

// HomeAwayPoint is one row of the long-form home/away trend: a season, which
// side the average belongs to, and the average points scored by that side.
// The view always holds exactly two rows per season.
type HomeAwayPoint struct {
	Season        int      `json:"season"`
	Location      Location `json:"location"`
	AveragePoints float64  `json:"average_points"`
}

// ConferenceTrendRow is one (season, conference) cell of the conference
// scoring trend. Games counts the rows the average divides by, including
// the per-snapshot duplication of the underlying join.
type ConferenceTrendRow struct {
	Season        int        `json:"season"`
	Conference    Conference `json:"conference"`
	AvgHomePoints float64    `json:"avg_home_points"`
	Games         int        `json:"games"`
}

// LeaderboardRow is one ranking snapshot projected for the leaderboard
// table, ordered season first, then win percentage.
type LeaderboardRow struct {
	TeamID   int64   `json:"team_id"`
	SeasonID int     `json:"season_id"`
	Wins     int     `json:"wins"`
	Losses   int     `json:"losses"`
	WinPct   float64 `json:"win_pct"`
}

// DatasetSummary describes the loaded snapshot: table sizes, how many raw
// rows cleaning dropped, and the season span of the cleaned games.
type DatasetSummary struct {
	Players      int       `json:"players"`
	Teams        int       `json:"teams"`
	Games        int       `json:"games"`
	PlayerLines  int       `json:"player_lines"`
	Standings    int       `json:"standings"`
	DroppedGames int       `json:"dropped_games"`
	DroppedLines int       `json:"dropped_lines"`
	FirstSeason  int       `json:"first_season"`
	LastSeason   int       `json:"last_season"`
	LoadedAt     time.Time `json:"loaded_at"`
}

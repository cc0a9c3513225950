package dataset

import (
	"time"

	"hoopsight/pkg/contracts/domain"
)

// GameRecord is a raw games.csv row. The point columns stay raw strings
// until cleaning decides whether the row survives.
type GameRecord struct {
	GameID        int64
	Date          string
	Season        int
	HomeTeamID    int64
	VisitorTeamID int64
	PtsHome       string
	PtsAway       string
}

// LineRecord is a raw games_details.csv row, one player in one game. MIN and
// the stat columns stay raw strings until cleaning.
type LineRecord struct {
	GameID   int64
	TeamID   int64
	PlayerID int64
	Min      string
	Pts      string
	Ast      string
	Reb      string
}

// Dataset holds the raw bound tables exactly as loaded. The player, team and
// standing tables need no cleaning and are bound straight to domain types;
// games and box score lines wait for the cleaner.
type Dataset struct {
	Players   []domain.Player
	Teams     []domain.Team
	Games     []GameRecord
	Lines     []LineRecord
	Standings []domain.Standing

	Dir      string
	LoadedAt time.Time
}

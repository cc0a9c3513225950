// Package domain defines the shared data contracts for the hoopsight service.
// These are the cleaned, fully typed rows produced by the dataset pipeline and
// the derived view rows served by the dashboard API. All structures here are
// immutable by convention: the pipeline builds new slices, it never edits rows
// in place.
package domain

// Player is one row of the player reference table, keyed by PlayerID.
type Player struct {
	ID   int64  `json:"player_id" validate:"required"`
	Name string `json:"player_name"`
}

// Team is one row of the team reference table, keyed by TeamID. Only the
// descriptive columns the dashboard displays are carried; the source file has
// more and they are ignored at load.
type Team struct {
	ID       int64  `json:"team_id" validate:"required"`
	Nickname string `json:"nickname"`
	City     string `json:"city"`
}

// Game is one cleaned game result. Rows only exist here when both point
// totals survived numeric coercion, so PtsHome and PtsAway are always
// defined.
type Game struct {
	GameID        int64   `json:"game_id"`
	Date          string  `json:"game_date,omitempty"`
	Season        int     `json:"season"`
	HomeTeamID    int64   `json:"home_team_id"`
	VisitorTeamID int64   `json:"visitor_team_id"`
	PtsHome       float64 `json:"pts_home"`
	PtsAway       float64 `json:"pts_away"`
}

// TotalPoints is the combined score of the game. Defined only on cleaned
// rows, where both sides are guaranteed numeric.
func (g Game) TotalPoints() float64 {
	return g.PtsHome + g.PtsAway
}

// PlayerLine is one cleaned box-score line (one player in one game). Rows
// only exist here when the MIN cell parsed, so Minutes is always defined.
// Points, Assists and Rebounds keep their per-cell nullability: a line can
// legitimately have minutes played but an unparseable points cell.
type PlayerLine struct {
	GameID   int64     `json:"game_id"`
	TeamID   int64     `json:"team_id"`
	PlayerID int64     `json:"player_id"`
	Minutes  float64   `json:"min"`
	Points   NullFloat `json:"pts"`
	Assists  NullFloat `json:"ast"`
	Rebounds NullFloat `json:"reb"`
}

// Conference is the conference label carried by ranking snapshots. The
// historical files only contain East and West but the value is data driven,
// so unknown labels pass through and group on their own.
type Conference string

const (
	ConferenceEast Conference = "East"
	ConferenceWest Conference = "West"
)

// Standing is one ranking snapshot: a team's record as of one season
// snapshot. Numeric columns are bound at load; ranking rows are never
// cleaned or dropped.
type Standing struct {
	TeamID     int64      `json:"team_id"`
	SeasonID   int        `json:"season_id"`
	Conference Conference `json:"conference"`
	Games      int        `json:"games"`
	Wins       int        `json:"wins"`
	Losses     int        `json:"losses"`
	WinPct     float64    `json:"win_pct"`
}

// HasConference reports whether the snapshot resolved to a conference.
// Snapshots without one are excluded from conference grouping.
func (s Standing) HasConference() bool {
	return s.Conference != ""
}

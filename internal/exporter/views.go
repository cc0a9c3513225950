package exporter

import (
	"fmt"
	"strconv"

	"hoopsight/pkg/contracts/domain"
)

// View identifies an exportable dashboard view.
type View string

// Exportable dashboard views.
const (
	ViewSeasonTrend     View = "season-trend"
	ViewTeamScoring     View = "team-scoring"
	ViewPlayerAverages  View = "player-averages"
	ViewHomeAway        View = "home-away"
	ViewConferenceTrend View = "conference-trend"
	ViewLeaderboard     View = "leaderboard"
)

// Views lists every exportable view in workbook sheet order.
func Views() []View {
	return []View{
		ViewSeasonTrend,
		ViewTeamScoring,
		ViewPlayerAverages,
		ViewHomeAway,
		ViewConferenceTrend,
		ViewLeaderboard,
	}
}

// Valid reports whether v names a known view.
func (v View) Valid() bool {
	switch v {
	case ViewSeasonTrend, ViewTeamScoring, ViewPlayerAverages,
		ViewHomeAway, ViewConferenceTrend, ViewLeaderboard:
		return true
	}
	return false
}

// Table is a tabular projection of a dashboard view, ready for CSV or
// workbook output.
type Table struct {
	View    View
	Sheet   string
	Headers []string
	Rows    [][]string
}

// Filename returns the download name for the table in the given format,
// e.g. "season-trend.csv".
func (t Table) Filename(format string) string {
	return fmt.Sprintf("%s.%s", t.View, format)
}

// SeasonTrendTable projects league-wide scoring trend rows.
func SeasonTrendTable(points []domain.SeasonTrendPoint) Table {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			strconv.Itoa(p.Season),
			avgCell(p.AvgTotalPoints),
			strconv.Itoa(p.Games),
		})
	}
	return Table{
		View:    ViewSeasonTrend,
		Sheet:   "Season Trend",
		Headers: []string{"SEASON", "AVG_TOTAL_POINTS", "GAMES"},
		Rows:    rows,
	}
}

// TeamScoringTable projects per-team home scoring rows for one season.
func TeamScoringTable(teams []domain.TeamScoringRow) Table {
	rows := make([][]string, 0, len(teams))
	for _, t := range teams {
		rows = append(rows, []string{
			idCell(t.TeamID),
			t.Nickname,
			t.City,
			strconv.Itoa(t.Season),
			avgCell(t.AvgHomePoints),
			strconv.Itoa(t.HomeGames),
		})
	}
	return Table{
		View:    ViewTeamScoring,
		Sheet:   "Team Scoring",
		Headers: []string{"TEAM_ID", "NICKNAME", "CITY", "SEASON", "AVG_PTS_HOME", "HOME_GAMES"},
		Rows:    rows,
	}
}

// PlayerAveragesTable projects career per-game averages.
func PlayerAveragesTable(players []domain.PlayerAverageRow) Table {
	rows := make([][]string, 0, len(players))
	for _, p := range players {
		rows = append(rows, []string{
			idCell(p.PlayerID),
			p.PlayerName,
			nullCell(p.AvgPoints),
			nullCell(p.AvgAssists),
			nullCell(p.AvgRebounds),
			avgCell(p.AvgMinutes),
			strconv.Itoa(p.GamesPlayed),
		})
	}
	return Table{
		View:    ViewPlayerAverages,
		Sheet:   "Player Averages",
		Headers: []string{"PLAYER_ID", "PLAYER_NAME", "AVG_PTS", "AVG_AST", "AVG_REB", "AVG_MIN", "GAMES"},
		Rows:    rows,
	}
}

// HomeAwayTable projects the home versus away scoring split.
func HomeAwayTable(points []domain.HomeAwayPoint) Table {
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			strconv.Itoa(p.Season),
			string(p.Location),
			avgCell(p.AveragePoints),
		})
	}
	return Table{
		View:    ViewHomeAway,
		Sheet:   "Home vs Away",
		Headers: []string{"SEASON", "LOCATION", "AVG_POINTS"},
		Rows:    rows,
	}
}

// ConferenceTrendTable projects per-conference home scoring by season.
func ConferenceTrendTable(trend []domain.ConferenceTrendRow) Table {
	rows := make([][]string, 0, len(trend))
	for _, r := range trend {
		rows = append(rows, []string{
			strconv.Itoa(r.Season),
			string(r.Conference),
			avgCell(r.AvgHomePoints),
			strconv.Itoa(r.Games),
		})
	}
	return Table{
		View:    ViewConferenceTrend,
		Sheet:   "Conference Trend",
		Headers: []string{"SEASON", "CONFERENCE", "AVG_PTS_HOME", "GAMES"},
		Rows:    rows,
	}
}

// LeaderboardTable projects standings snapshots.
func LeaderboardTable(standings []domain.LeaderboardRow) Table {
	rows := make([][]string, 0, len(standings))
	for _, s := range standings {
		rows = append(rows, []string{
			idCell(s.TeamID),
			idCell(int64(s.SeasonID)),
			strconv.Itoa(s.Wins),
			strconv.Itoa(s.Losses),
			pctCell(s.WinPct),
		})
	}
	return Table{
		View:    ViewLeaderboard,
		Sheet:   "Leaderboard",
		Headers: []string{"TEAM_ID", "SEASON_ID", "W", "L", "W_PCT"},
		Rows:    rows,
	}
}

package dataset

import (
	"sort"
	"time"

	"hoopsight/pkg/contracts/domain"
)

// Snapshot is the cleaned dataset every aggregation reads from. It is built
// once per process and never mutated afterwards; concurrent readers share it
// freely.
type Snapshot struct {
	Players   []domain.Player
	Teams     []domain.Team
	Games     []domain.Game
	Lines     []domain.PlayerLine
	Standings []domain.Standing

	// Rows removed by cleaning. Dropping stays silent at the data level;
	// the counts exist for logs and metrics only.
	DroppedGames int
	DroppedLines int

	LoadedAt time.Time
}

// Clean derives the typed snapshot from the raw dataset.
//
// Games keep only rows where both point totals coerce to numbers. Box score
// lines keep only rows whose MIN parses; their PTS, AST and REB cells stay
// nullable, each resolved independently. The reference tables and standings
// pass through unchanged.
func Clean(ds *Dataset) *Snapshot {
	snap := &Snapshot{
		Players:   ds.Players,
		Teams:     ds.Teams,
		Standings: ds.Standings,
		LoadedAt:  ds.LoadedAt,
	}

	snap.Games = make([]domain.Game, 0, len(ds.Games))
	for _, r := range ds.Games {
		home := CoerceFloat(r.PtsHome)
		away := CoerceFloat(r.PtsAway)
		if !home.Valid || !away.Valid {
			snap.DroppedGames++
			continue
		}
		snap.Games = append(snap.Games, domain.Game{
			GameID:        r.GameID,
			Date:          r.Date,
			Season:        r.Season,
			HomeTeamID:    r.HomeTeamID,
			VisitorTeamID: r.VisitorTeamID,
			PtsHome:       home.Float64,
			PtsAway:       away.Float64,
		})
	}

	snap.Lines = make([]domain.PlayerLine, 0, len(ds.Lines))
	for _, r := range ds.Lines {
		minutes := ParseMinutes(r.Min)
		if !minutes.Valid {
			snap.DroppedLines++
			continue
		}
		snap.Lines = append(snap.Lines, domain.PlayerLine{
			GameID:   r.GameID,
			TeamID:   r.TeamID,
			PlayerID: r.PlayerID,
			Minutes:  minutes.Float64,
			Points:   CoerceFloat(r.Pts),
			Assists:  CoerceFloat(r.Ast),
			Rebounds: CoerceFloat(r.Reb),
		})
	}

	return snap
}

// Seasons returns the distinct seasons present in the cleaned games,
// ascending. This is the domain of the dashboard's season selector.
func (s *Snapshot) Seasons() []int {
	seen := make(map[int]struct{})
	for _, g := range s.Games {
		seen[g.Season] = struct{}{}
	}
	seasons := make([]int, 0, len(seen))
	for season := range seen {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	return seasons
}

// Summary describes the snapshot for the health and summary endpoints.
func (s *Snapshot) Summary() domain.DatasetSummary {
	sum := domain.DatasetSummary{
		Players:      len(s.Players),
		Teams:        len(s.Teams),
		Games:        len(s.Games),
		PlayerLines:  len(s.Lines),
		Standings:    len(s.Standings),
		DroppedGames: s.DroppedGames,
		DroppedLines: s.DroppedLines,
		LoadedAt:     s.LoadedAt,
	}
	if seasons := s.Seasons(); len(seasons) > 0 {
		sum.FirstSeason = seasons[0]
		sum.LastSeason = seasons[len(seasons)-1]
	}
	return sum
}

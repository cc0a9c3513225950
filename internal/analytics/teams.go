package analytics

import (
	"sort"

	"hoopsight/pkg/contracts/domain"
)

// TeamScoring averages home scoring per home team for one season. A season
// with no cleaned games yields an empty view. Team nickname and city are
// attached from the reference table when the id resolves; unknown ids still
// appear, identified by id alone.
func TeamScoring(games []domain.Game, teams []domain.Team, season int) []domain.TeamScoringRow {
	accs := make(map[int64]*meanAcc)
	for _, g := range games {
		if g.Season != season {
			continue
		}
		acc := accs[g.HomeTeamID]
		if acc == nil {
			acc = &meanAcc{}
			accs[g.HomeTeamID] = acc
		}
		acc.add(g.PtsHome)
	}

	byID := make(map[int64]domain.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}

	ids := make([]int64, 0, len(accs))
	for id := range accs {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]domain.TeamScoringRow, 0, len(ids))
	for _, id := range ids {
		acc := accs[id]
		row := domain.TeamScoringRow{
			TeamID:        id,
			Season:        season,
			AvgHomePoints: acc.mean(),
			HomeGames:     acc.n,
		}
		if team, ok := byID[id]; ok {
			row.Nickname = team.Nickname
			row.City = team.City
		}
		rows = append(rows, row)
	}
	return rows
}

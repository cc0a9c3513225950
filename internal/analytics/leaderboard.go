package analytics

import (
	"sort"

	"hoopsight/pkg/contracts/domain"
)

// Leaderboard projects the ranking snapshots into the sortable standings
// table: newest season snapshot first, best win percentage first within a
// snapshot. The sort is stable, so exact ties keep their original file
// order.
func Leaderboard(standings []domain.Standing) []domain.LeaderboardRow {
	rows := make([]domain.LeaderboardRow, 0, len(standings))
	for _, st := range standings {
		rows = append(rows, domain.LeaderboardRow{
			TeamID:   st.TeamID,
			SeasonID: st.SeasonID,
			Wins:     st.Wins,
			Losses:   st.Losses,
			WinPct:   st.WinPct,
		})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].SeasonID != rows[j].SeasonID {
			return rows[i].SeasonID > rows[j].SeasonID
		}
		return rows[i].WinPct > rows[j].WinPct
	})
	return rows
}

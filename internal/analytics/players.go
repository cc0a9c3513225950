package analytics

import (
	"sort"

	"hoopsight/pkg/contracts/domain"
)

// playerAcc accumulates one player's box score lines. Minutes are defined on
// every cleaned line; the other stats resolve per cell.
type playerAcc struct {
	minutes  meanAcc
	points   meanAcc
	assists  meanAcc
	rebounds meanAcc
	games    int
}

// PlayerAverages computes each player's per-game averages over the cleaned
// box score lines and joins them with the player reference table. The join
// is inner both ways: a player without surviving lines never appears, and a
// line whose player id has no reference row never appears.
func PlayerAverages(lines []domain.PlayerLine, players []domain.Player) []domain.PlayerAverageRow {
	accs := make(map[int64]*playerAcc)
	for _, line := range lines {
		acc := accs[line.PlayerID]
		if acc == nil {
			acc = &playerAcc{}
			accs[line.PlayerID] = acc
		}
		acc.games++
		acc.minutes.add(line.Minutes)
		acc.points.addNullable(line.Points)
		acc.assists.addNullable(line.Assists)
		acc.rebounds.addNullable(line.Rebounds)
	}

	byID := make(map[int64]domain.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}

	ids := make([]int64, 0, len(accs))
	for id := range accs {
		if _, ok := byID[id]; ok {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	rows := make([]domain.PlayerAverageRow, 0, len(ids))
	for _, id := range ids {
		acc := accs[id]
		rows = append(rows, domain.PlayerAverageRow{
			PlayerID:    id,
			PlayerName:  byID[id].Name,
			AvgPoints:   acc.points.nullableMean(),
			AvgAssists:  acc.assists.nullableMean(),
			AvgRebounds: acc.rebounds.nullableMean(),
			AvgMinutes:  acc.minutes.mean(),
			GamesPlayed: acc.games,
		})
	}
	return rows
}

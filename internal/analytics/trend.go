package analytics

import (
	"sort"

	"hoopsight/pkg/contracts/domain"
)

// SeasonTrend averages the combined score of every cleaned game by season.
// One row per distinct season, ascending.
func SeasonTrend(games []domain.Game) []domain.SeasonTrendPoint {
	accs := make(map[int]*meanAcc)
	for _, g := range games {
		acc := accs[g.Season]
		if acc == nil {
			acc = &meanAcc{}
			accs[g.Season] = acc
		}
		acc.add(g.TotalPoints())
	}

	seasons := sortedSeasons(accs)
	points := make([]domain.SeasonTrendPoint, 0, len(seasons))
	for _, season := range seasons {
		acc := accs[season]
		points = append(points, domain.SeasonTrendPoint{
			Season:         season,
			AvgTotalPoints: acc.mean(),
			Games:          acc.n,
		})
	}
	return points
}

// HomeAwaySplit averages home and away scoring by season and reshapes the
// result to long form: one Home row and one Away row per season, Home block
// first, each block ascending by season.
func HomeAwaySplit(games []domain.Game) []domain.HomeAwayPoint {
	type split struct {
		home meanAcc
		away meanAcc
	}
	accs := make(map[int]*split)
	for _, g := range games {
		s := accs[g.Season]
		if s == nil {
			s = &split{}
			accs[g.Season] = s
		}
		s.home.add(g.PtsHome)
		s.away.add(g.PtsAway)
	}

	seasons := make([]int, 0, len(accs))
	for season := range accs {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)

	points := make([]domain.HomeAwayPoint, 0, 2*len(seasons))
	for _, season := range seasons {
		points = append(points, domain.HomeAwayPoint{
			Season:        season,
			Location:      domain.LocationHome,
			AveragePoints: accs[season].home.mean(),
		})
	}
	for _, season := range seasons {
		points = append(points, domain.HomeAwayPoint{
			Season:        season,
			Location:      domain.LocationAway,
			AveragePoints: accs[season].away.mean(),
		})
	}
	return points
}

func sortedSeasons(accs map[int]*meanAcc) []int {
	seasons := make([]int, 0, len(accs))
	for season := range accs {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	return seasons
}

package analytics

import (
	"sort"

	"hoopsight/pkg/contracts/domain"
)

// ConferenceTrend averages home scoring by season and conference.
//
// Conference membership comes from the ranking snapshots: the distinct
// (team, conference, season snapshot) combinations are joined onto games by
// home team id. A game joins once per matching combination, so a team with
// several ranking snapshots weighs in once per snapshot; that many-to-many
// weighting is intentional and matches how the dashboard has always read.
// Games whose home team never appears in the ranking, or whose snapshot has
// no conference label, contribute to no group.
func ConferenceTrend(games []domain.Game, standings []domain.Standing) []domain.ConferenceTrendRow {
	type combo struct {
		teamID     int64
		conference domain.Conference
		seasonID   int
	}
	seen := make(map[combo]struct{}, len(standings))
	confsByTeam := make(map[int64][]domain.Conference)
	for _, st := range standings {
		if !st.HasConference() {
			continue
		}
		c := combo{teamID: st.TeamID, conference: st.Conference, seasonID: st.SeasonID}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		confsByTeam[st.TeamID] = append(confsByTeam[st.TeamID], st.Conference)
	}

	type group struct {
		season     int
		conference domain.Conference
	}
	accs := make(map[group]*meanAcc)
	for _, g := range games {
		for _, conf := range confsByTeam[g.HomeTeamID] {
			key := group{season: g.Season, conference: conf}
			acc := accs[key]
			if acc == nil {
				acc = &meanAcc{}
				accs[key] = acc
			}
			acc.add(g.PtsHome)
		}
	}

	groups := make([]group, 0, len(accs))
	for key := range accs {
		groups = append(groups, key)
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].season != groups[j].season {
			return groups[i].season < groups[j].season
		}
		return groups[i].conference < groups[j].conference
	})

	rows := make([]domain.ConferenceTrendRow, 0, len(groups))
	for _, key := range groups {
		rows = append(rows, domain.ConferenceTrendRow{
			Season:        key.season,
			Conference:    key.conference,
			AvgHomePoints: accs[key].mean(),
			Games:         accs[key].n,
		})
	}
	return rows
}

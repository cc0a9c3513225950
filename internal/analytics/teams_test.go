package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoopsight/pkg/contracts/domain"
)

func TestTeamScoring(t *testing.T) {
	games := []domain.Game{
		{Season: 2020, HomeTeamID: 1610612747, PtsHome: 110},
		{Season: 2020, HomeTeamID: 1610612747, PtsHome: 100},
		{Season: 2020, HomeTeamID: 1610612738, PtsHome: 95},
		{Season: 2019, HomeTeamID: 1610612747, PtsHome: 140},
	}
	teams := []domain.Team{
		{ID: 1610612747, Nickname: "Lakers", City: "Los Angeles"},
		{ID: 1610612738, Nickname: "Celtics", City: "Boston"},
	}

	rows := TeamScoring(games, teams, 2020)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(1610612738), rows[0].TeamID)
	assert.Equal(t, "Celtics", rows[0].Nickname)
	assert.Equal(t, "Boston", rows[0].City)
	assert.Equal(t, 95.0, rows[0].AvgHomePoints)
	assert.Equal(t, 1, rows[0].HomeGames)

	assert.Equal(t, int64(1610612747), rows[1].TeamID)
	assert.Equal(t, 105.0, rows[1].AvgHomePoints)
	assert.Equal(t, 2, rows[1].HomeGames)

	// The 2019 game must not leak into the 2020 view.
	for _, r := range rows {
		assert.Equal(t, 2020, r.Season)
	}
}

func TestTeamScoringUnknownTeam(t *testing.T) {
	games := []domain.Game{
		{Season: 2020, HomeTeamID: 42, PtsHome: 99},
	}

	rows := TeamScoring(games, nil, 2020)

	require.Len(t, rows, 1)
	assert.Equal(t, int64(42), rows[0].TeamID)
	assert.Empty(t, rows[0].Nickname)
	assert.Empty(t, rows[0].City)
	assert.Equal(t, 99.0, rows[0].AvgHomePoints)
}

func TestTeamScoringAbsentSeason(t *testing.T) {
	games := []domain.Game{
		{Season: 2020, HomeTeamID: 1, PtsHome: 100},
	}

	rows := TeamScoring(games, nil, 1999)
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

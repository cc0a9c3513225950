package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoopsight/pkg/contracts/domain"
)

func TestPlayerAverages(t *testing.T) {
	lines := []domain.PlayerLine{
		{PlayerID: 2544, Minutes: 36.5, Points: domain.Float(30), Assists: domain.Float(8), Rebounds: domain.Float(10)},
		{PlayerID: 2544, Minutes: 32.25, Points: domain.Float(20), Assists: domain.Null(), Rebounds: domain.Float(6)},
		{PlayerID: 201939, Minutes: 34, Points: domain.Float(28), Assists: domain.Float(6), Rebounds: domain.Float(5)},
		// No matching players row; the inner join drops the line.
		{PlayerID: 999, Minutes: 12, Points: domain.Float(4), Assists: domain.Float(1), Rebounds: domain.Float(2)},
	}
	players := []domain.Player{
		{ID: 201939, Name: "Stephen Curry"},
		{ID: 2544, Name: "LeBron James"},
		// No lines for this player; the inner join drops the roster row.
		{ID: 1629029, Name: "Luka Doncic"},
	}

	rows := PlayerAverages(lines, players)

	require.Len(t, rows, 2)

	assert.Equal(t, int64(2544), rows[0].PlayerID)
	assert.Equal(t, "LeBron James", rows[0].PlayerName)
	assert.Equal(t, domain.Float(25), rows[0].AvgPoints)
	// One of two assist cells is null, so the mean covers only the valid one.
	assert.Equal(t, domain.Float(8), rows[0].AvgAssists)
	assert.Equal(t, domain.Float(8), rows[0].AvgRebounds)
	assert.Equal(t, 34.375, rows[0].AvgMinutes)
	assert.Equal(t, 2, rows[0].GamesPlayed)

	assert.Equal(t, int64(201939), rows[1].PlayerID)
	assert.Equal(t, "Stephen Curry", rows[1].PlayerName)
	assert.Equal(t, domain.Float(28), rows[1].AvgPoints)
}

func TestPlayerAveragesAllNullStat(t *testing.T) {
	lines := []domain.PlayerLine{
		{PlayerID: 7, Minutes: 10.5, Points: domain.Null(), Assists: domain.Float(3), Rebounds: domain.Null()},
		{PlayerID: 7, Minutes: 9.5, Points: domain.Null(), Assists: domain.Float(5), Rebounds: domain.Null()},
	}
	players := []domain.Player{{ID: 7, Name: "Deep Bench"}}

	rows := PlayerAverages(lines, players)

	require.Len(t, rows, 1)
	assert.False(t, rows[0].AvgPoints.Valid)
	assert.False(t, rows[0].AvgRebounds.Valid)
	assert.Equal(t, domain.Float(4), rows[0].AvgAssists)
	assert.Equal(t, 10.0, rows[0].AvgMinutes)
	assert.Equal(t, 2, rows[0].GamesPlayed)
}

func TestPlayerAveragesEmpty(t *testing.T) {
	rows := PlayerAverages(nil, []domain.Player{{ID: 1, Name: "Nobody"}})
	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

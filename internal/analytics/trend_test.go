package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoopsight/pkg/contracts/domain"
)

func TestSeasonTrend(t *testing.T) {
	games := []domain.Game{
		{Season: 2020, PtsHome: 110, PtsAway: 105},
		{Season: 2019, PtsHome: 100, PtsAway: 90},
		{Season: 2019, PtsHome: 120, PtsAway: 110},
	}

	trend := SeasonTrend(games)

	require.Len(t, trend, 2)
	assert.Equal(t, 2019, trend[0].Season)
	assert.Equal(t, 210.0, trend[0].AvgTotalPoints)
	assert.Equal(t, 2, trend[0].Games)

	// A 2020 season cleaned down to a single 110/105 game averages exactly
	// 215 combined points.
	assert.Equal(t, 2020, trend[1].Season)
	assert.Equal(t, 215.0, trend[1].AvgTotalPoints)
	assert.Equal(t, 1, trend[1].Games)
}

func TestSeasonTrendEmpty(t *testing.T) {
	trend := SeasonTrend(nil)
	assert.NotNil(t, trend)
	assert.Empty(t, trend)
}

func TestHomeAwaySplit(t *testing.T) {
	games := []domain.Game{
		{Season: 2020, PtsHome: 110, PtsAway: 100},
		{Season: 2020, PtsHome: 120, PtsAway: 90},
		{Season: 2019, PtsHome: 95, PtsAway: 105},
	}

	points := HomeAwaySplit(games)

	// Two rows per season: the Home block first, then the Away block, each
	// ascending by season.
	require.Len(t, points, 4)
	assert.Equal(t, domain.HomeAwayPoint{Season: 2019, Location: domain.LocationHome, AveragePoints: 95}, points[0])
	assert.Equal(t, domain.HomeAwayPoint{Season: 2020, Location: domain.LocationHome, AveragePoints: 115}, points[1])
	assert.Equal(t, domain.HomeAwayPoint{Season: 2019, Location: domain.LocationAway, AveragePoints: 105}, points[2])
	assert.Equal(t, domain.HomeAwayPoint{Season: 2020, Location: domain.LocationAway, AveragePoints: 95}, points[3])

	for _, p := range points {
		assert.Contains(t, []domain.Location{domain.LocationHome, domain.LocationAway}, p.Location)
	}
}

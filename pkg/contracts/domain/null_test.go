package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullFloatJSON(t *testing.T) {
	tests := []struct {
		name string
		in   NullFloat
		want string
	}{
		{name: "valid value", in: Float(32.25), want: "32.25"},
		{name: "valid zero is not null", in: Float(0), want: "0"},
		{name: "absent value", in: Null(), want: "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))

			var back NullFloat
			require.NoError(t, json.Unmarshal(data, &back))
			assert.Equal(t, tt.in, back)
		})
	}
}

func TestNullFloatInStruct(t *testing.T) {
	row := PlayerAverageRow{
		PlayerID:   2544,
		PlayerName: "LeBron James",
		AvgPoints:  Float(27.1),
		AvgMinutes: 36.5,
	}

	data, err := json.Marshal(row)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"avg_points":27.1`)
	assert.Contains(t, string(data), `"avg_assists":null`)
	assert.Contains(t, string(data), `"avg_rebounds":null`)
}

func TestGameTotalPoints(t *testing.T) {
	g := Game{Season: 2020, PtsHome: 110, PtsAway: 105}
	assert.Equal(t, 215.0, g.TotalPoints())
}

func TestStandingHasConference(t *testing.T) {
	assert.True(t, Standing{Conference: ConferenceEast}.HasConference())
	assert.True(t, Standing{Conference: "Midwest"}.HasConference())
	assert.False(t, Standing{}.HasConference())
}

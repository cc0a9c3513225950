package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hoopsight/internal/shared/testutil"
)

func TestLoaderLoad(t *testing.T) {
	dir := writeDataDir(t)
	logger, _ := testutil.NewTestLogger(t)
	loader := NewLoader(dir, logger)

	ds, err := loader.Load(context.Background())
	require.NoError(t, err)

	// Players dedupe on PLAYER_ID, first occurrence wins.
	require.Len(t, ds.Players, 3)
	assert.Equal(t, int64(2544), ds.Players[0].ID)
	assert.Equal(t, "LeBron James", ds.Players[0].Name)

	require.Len(t, ds.Teams, 3)
	assert.Equal(t, "Lakers", ds.Teams[0].Nickname)
	assert.Equal(t, "Los Angeles", ds.Teams[0].City)

	// Games bind raw: the unparseable PTS_home row is still present here,
	// cleaning decides its fate.
	require.Len(t, ds.Games, 3)
	assert.Equal(t, "abc", ds.Games[1].PtsHome)
	assert.Equal(t, 2020, ds.Games[1].Season)
	assert.Equal(t, int64(1610612744), ds.Games[1].HomeTeamID)

	require.Len(t, ds.Lines, 4)
	assert.Equal(t, "32:15", ds.Lines[0].Min)
	assert.Equal(t, "", ds.Lines[2].Min)

	require.Len(t, ds.Standings, 3)
	assert.Equal(t, 22020, ds.Standings[0].SeasonID)
	assert.InDelta(t, 0.583, ds.Standings[0].WinPct, 1e-9)

	assert.Equal(t, dir, ds.Dir)
	assert.False(t, ds.LoadedAt.IsZero())
}

func TestLoaderMissingFile(t *testing.T) {
	dir := writeDataDir(t)
	require.NoError(t, os.Remove(filepath.Join(dir, PlayersFile)))

	logger, _ := testutil.NewTestLogger(t)
	loader := NewLoader(dir, logger)
	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, PlayersFile)
}

func TestLoaderMissingArchiveMember(t *testing.T) {
	dir := writeDataDir(t)
	// Rebuild the games archive with a member nobody expects.
	writeZip(t, dir, GamesArchive, "other.csv", fixtureGames)

	logger, _ := testutil.NewTestLogger(t)
	loader := NewLoader(dir, logger)
	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestLoaderMissingColumn(t *testing.T) {
	dir := writeDataDir(t)
	writeZip(t, dir, GamesArchive, GamesMember, "GAME_ID,SEASON,HOME_TEAM_ID,PTS_home\n1,2020,10,100\n")

	logger, _ := testutil.NewTestLogger(t)
	loader := NewLoader(dir, logger)
	_, err := loader.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "PTS_away")
}

func TestLoaderToleratesRaggedRows(t *testing.T) {
	dir := writeDataDir(t)
	ragged := "GAME_DATE_EST,GAME_ID,HOME_TEAM_ID,VISITOR_TEAM_ID,SEASON,PTS_home,PTS_away\n" +
		"2020-12-22,22000001,1610612747,1610612744,2020,110\n" + // short: PTS_away missing
		"2020-12-23,22000002,1610612744,1610612747,2020,98,91,extra,cells\n" // long: extras ignored
	writeZip(t, dir, GamesArchive, GamesMember, ragged)

	logger, _ := testutil.NewTestLogger(t)
	loader := NewLoader(dir, logger)
	ds, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Games, 2)
	assert.Equal(t, "", ds.Games[0].PtsAway)
	assert.Equal(t, "91", ds.Games[1].PtsAway)
}

func TestLoaderSkipsUnbindableIdentityRows(t *testing.T) {
	dir := writeDataDir(t)
	writeCSV(t, dir, PlayersFile, "PLAYER_ID,PLAYER_NAME\nnot-a-number,Nobody\n2544,LeBron James\n")

	logger, _ := testutil.NewTestLogger(t)
	loader := NewLoader(dir, logger)
	ds, err := loader.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, ds.Players, 1)
	assert.Equal(t, int64(2544), ds.Players[0].ID)
}

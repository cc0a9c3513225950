package services

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"hoopsight/internal/config"
	"hoopsight/internal/dataset"
	"hoopsight/internal/shared/testutil"
)

// Fixture dataset shared by the service tests. Three cleaned games across
// two seasons, three surviving box score lines and three ranking snapshots,
// plus one dirty game row and one dirty line row that cleaning drops.
const (
	fixturePlayers = "PLAYER_ID,PLAYER_NAME\n" +
		"201,Alpha Guard\n" +
		"202,Beta Center\n"

	fixtureTeams = "TEAM_ID,NICKNAME,CITY\n" +
		"10,Hawks,Atlanta\n" +
		"20,Celtics,Boston\n"

	fixtureGames = "GAME_ID,GAME_DATE_EST,SEASON,HOME_TEAM_ID,VISITOR_TEAM_ID,PTS_home,PTS_away\n" +
		"1,2023-01-10,2022,10,20,110,100\n" +
		"2,2023-01-12,2022,20,10,95,105\n" +
		"3,2022-01-05,2021,10,20,100,90\n" +
		"4,2023-01-15,2022,10,20,,88\n"

	fixtureLines = "GAME_ID,TEAM_ID,PLAYER_ID,MIN,PTS,AST,REB\n" +
		"1,10,201,32:30,25,7,4\n" +
		"2,10,201,28,20,5,6\n" +
		"1,20,202,20:00,10,2,12\n" +
		"3,20,202,,8,1,9\n"

	fixtureRanking = "TEAM_ID,LEAGUE_ID,SEASON_ID,STANDINGSDATE,CONFERENCE,TEAM,G,W,L,W_PCT\n" +
		"10,0,22022,2023-01-20,East,Atlanta,40,25,15,0.625\n" +
		"20,0,22022,2023-01-20,West,Boston,40,30,10,0.75\n" +
		"10,0,12021,2022-01-20,East,Atlanta,30,18,12,0.6\n"
)

func writeArchive(t *testing.T, path, member, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create(member)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
}

// writeFixtureDataset lays the five dataset inputs out in dir.
func writeFixtureDataset(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.PlayersFile), []byte(fixturePlayers), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, dataset.TeamsFile), []byte(fixtureTeams), 0644))
	writeArchive(t, filepath.Join(dir, dataset.GamesArchive), dataset.GamesMember, fixtureGames)
	writeArchive(t, filepath.Join(dir, dataset.LinesArchive), dataset.LinesMember, fixtureLines)
	writeArchive(t, filepath.Join(dir, dataset.RankingArchive), dataset.RankingMember, fixtureRanking)
}

// fixturePaths builds a full directory layout with the fixture dataset
// under data/ and an empty reports/ directory.
func fixturePaths(t *testing.T) *config.Paths {
	t.Helper()
	root := t.TempDir()
	paths := &config.Paths{
		ExecutableDir: root,
		DataDir:       filepath.Join(root, "data"),
		ReportsDir:    filepath.Join(root, "reports"),
		LogsDir:       filepath.Join(root, "logs"),
	}
	require.NoError(t, os.MkdirAll(paths.DataDir, 0755))
	require.NoError(t, os.MkdirAll(paths.ReportsDir, 0755))
	writeFixtureDataset(t, paths.DataDir)
	return paths
}

// fixtureStore returns an unloaded store over a complete fixture directory.
func fixtureStore(t *testing.T) *dataset.Store {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	dir := t.TempDir()
	writeFixtureDataset(t, dir)
	return dataset.NewStore(dataset.NewLoader(dir, logger), logger)
}

// brokenStore returns a store over an empty directory, so every snapshot
// attempt fails with a missing input error.
func brokenStore(t *testing.T) *dataset.Store {
	t.Helper()
	logger, _ := testutil.NewTestLogger(t)
	return dataset.NewStore(dataset.NewLoader(t.TempDir(), logger), logger)
}

package dataset

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	fixturePlayers = `PLAYER_ID,PLAYER_NAME,TEAM_ID,SEASON
2544,LeBron James,1610612747,2020
2544,LeBron James,1610612748,2019
201939,Stephen Curry,1610612744,2020
203999,Nikola Jokic,1610612743,2020
`
	fixtureTeams = `TEAM_ID,ABBREVIATION,NICKNAME,CITY
1610612747,LAL,Lakers,Los Angeles
1610612744,GSW,Warriors,Golden State
1610612743,DEN,Nuggets,Denver
`
	fixtureGames = `GAME_DATE_EST,GAME_ID,HOME_TEAM_ID,VISITOR_TEAM_ID,SEASON,PTS_home,PTS_away
2020-12-22,22000001,1610612747,1610612744,2020,110,105
2020-12-23,22000002,1610612744,1610612747,2020,abc,90
2019-10-22,21900001,1610612743,1610612747,2019,122,119
`
	fixtureLines = `GAME_ID,TEAM_ID,PLAYER_ID,MIN,PTS,AST,REB
22000001,1610612747,2544,32:15,25,8,10
22000001,1610612744,201939,36,30,5,4
22000001,1610612744,999999,,0,0,0
21900001,1610612743,203999,30:30,,7,12
`
	fixtureRanking = `TEAM_ID,LEAGUE_ID,SEASON_ID,STANDINGSDATE,CONFERENCE,TEAM,G,W,L,W_PCT
1610612747,0,22020,2021-05-16,West,L.A. Lakers,72,42,30,0.583
1610612744,0,22020,2021-05-16,West,Golden State,72,39,33,0.542
1610612743,0,22019,2020-08-14,West,Denver,73,46,27,0.63
`
)

// writeCSV drops a plain CSV input into the fixture directory.
func writeCSV(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

// writeZip drops a zip archive holding a single CSV member.
func writeZip(t *testing.T, dir, name, member, content string) {
	t.Helper()
	f, err := os.Create(filepath.Join(dir, name))
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	w, err := zw.Create(member)
	require.NoError(t, err)
	_, err = w.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
}

// writeDataDir builds a complete, well formed data directory.
func writeDataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeCSV(t, dir, PlayersFile, fixturePlayers)
	writeCSV(t, dir, TeamsFile, fixtureTeams)
	writeZip(t, dir, GamesArchive, GamesMember, fixtureGames)
	writeZip(t, dir, LinesArchive, LinesMember, fixtureLines)
	writeZip(t, dir, RankingArchive, RankingMember, fixtureRanking)
	return dir
}

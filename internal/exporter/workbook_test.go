package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"hoopsight/internal/config"
	"hoopsight/pkg/contracts/domain"
)

func sampleTables() []Table {
	return []Table{
		SeasonTrendTable([]domain.SeasonTrendPoint{
			{Season: 2019, AvgTotalPoints: 210, Games: 2},
			{Season: 2020, AvgTotalPoints: 215, Games: 1},
		}),
		LeaderboardTable([]domain.LeaderboardRow{
			{TeamID: 3, SeasonID: 22020, Wins: 46, Losses: 26, WinPct: 0.639},
		}),
	}
}

func TestBuildWorkbook(t *testing.T) {
	f, err := BuildWorkbook(sampleTables())
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Season Trend", "Leaderboard"}, f.GetSheetList())

	rows, err := f.GetRows("Season Trend")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"SEASON", "AVG_TOTAL_POINTS", "GAMES"}, rows[0])
	assert.Equal(t, "2020", rows[2][0])
	assert.Equal(t, "215", rows[2][1])

	rows, err = f.GetRows("Leaderboard")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "0.639", rows[1][4])
}

func TestBuildWorkbookEmpty(t *testing.T) {
	_, err := BuildWorkbook(nil)
	assert.Error(t, err)
}

func TestWorkbookWriter_WriteWorkbook(t *testing.T) {
	tempDir, err := os.MkdirTemp("", "workbook_test_*")
	require.NoError(t, err)
	defer os.RemoveAll(tempDir)

	writer := NewWorkbookWriter(&config.Paths{
		ReportsDir: filepath.Join(tempDir, "reports"),
	})

	path, err := writer.WriteWorkbook("hoopsight.xlsx", sampleTables())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tempDir, "reports", "hoopsight.xlsx"), path)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Season Trend")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "2019", rows[1][0])
}

func TestEncodeWorkbook(t *testing.T) {
	var buf bytes.Buffer
	err := EncodeWorkbook(&buf, sampleTables())
	require.NoError(t, err)

	// XLSX files are ZIP archives, check the magic bytes
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("PK")))
	assert.Greater(t, buf.Len(), 1000)
}

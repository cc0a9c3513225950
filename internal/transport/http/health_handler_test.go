package http

import (
	"archive/zip"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"

	"hoopsight/internal/config"
	"hoopsight/internal/dataset"
	"hoopsight/internal/files"
	"hoopsight/internal/services"
	"hoopsight/pkg/contracts"
)

// healthFixture builds a handler over a real store and a one-game dataset.
func healthFixture(t *testing.T) (*HealthHandler, *dataset.Store) {
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

	writeCSV := func(name, content string) {
		require.NoError(t, os.WriteFile(filepath.Join(paths.DataDir, name), []byte(content), 0644))
	}
	writeZip := func(name, member, content string) {
		f, err := os.Create(filepath.Join(paths.DataDir, name))
		require.NoError(t, err)
		zw := zip.NewWriter(f)
		w, err := zw.Create(member)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
		require.NoError(t, zw.Close())
		require.NoError(t, f.Close())
	}

	writeCSV(dataset.PlayersFile, "PLAYER_ID,PLAYER_NAME\n201,Alpha Guard\n")
	writeCSV(dataset.TeamsFile, "TEAM_ID,NICKNAME,CITY\n10,Hawks,Atlanta\n")
	writeZip(dataset.GamesArchive, dataset.GamesMember,
		"GAME_ID,SEASON,HOME_TEAM_ID,PTS_home,PTS_away\n1,2022,10,110,100\n")
	writeZip(dataset.LinesArchive, dataset.LinesMember,
		"GAME_ID,PLAYER_ID,MIN,PTS,AST,REB\n1,201,32:30,25,7,4\n")
	writeZip(dataset.RankingArchive, dataset.RankingMember,
		"TEAM_ID,SEASON_ID,CONFERENCE,W,L,W_PCT\n10,22022,East,25,15,0.625\n")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := dataset.NewStore(dataset.NewLoader(paths.DataDir, logger), logger)
	service := services.NewHealthService(store, files.NewDiscovery(paths), nil, logger)
	return NewHealthHandler(service, logger), store
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	return response
}

func TestHealthHandlerHealth(t *testing.T) {
	handler, _ := healthFixture(t)

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()

	handler.Health(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	response := decodeBody(t, rec)
	assert.Equal(t, "ok", response["status"])
	assert.Equal(t, contracts.Version, response["version"])
	assert.Contains(t, response, "timestamp")
}

func TestHealthHandlerReadiness(t *testing.T) {
	handler, store := healthFixture(t)

	t.Run("not ready before warmup", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/health/ready", nil)
		rec := httptest.NewRecorder()

		handler.Ready(rec, req)

		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
		response := decodeBody(t, rec)
		assert.Equal(t, "not_ready", response["status"])

		datasetHealth, ok := response["services"].(map[string]interface{})["dataset"].(map[string]interface{})
		require.True(t, ok, "dataset service entry should be a map")
		assert.Equal(t, "not_ready", datasetHealth["status"])
		assert.Contains(t, datasetHealth["message"], "not loaded")
	})

	t.Run("ready after warmup", func(t *testing.T) {
		_, err := store.Snapshot(context.Background())
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/api/health/ready", nil)
		rec := httptest.NewRecorder()

		handler.Ready(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		response := decodeBody(t, rec)
		assert.Equal(t, "ready", response["status"])

		datasetHealth, ok := response["services"].(map[string]interface{})["dataset"].(map[string]interface{})
		require.True(t, ok, "dataset service entry should be a map")
		assert.Equal(t, "ready", datasetHealth["status"])
		assert.Contains(t, datasetHealth["message"], "1 games")
		assert.Contains(t, datasetHealth["message"], "seasons 2022 to 2022")
	})
}

func TestHealthHandlerLiveness(t *testing.T) {
	handler, _ := healthFixture(t)

	req := httptest.NewRequest("GET", "/api/health/live", nil)
	rec := httptest.NewRecorder()

	handler.Live(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	response := decodeBody(t, rec)
	assert.Equal(t, "alive", response["status"])

	runtime, ok := response["runtime"].(map[string]interface{})
	require.True(t, ok, "runtime should be a map")
	assert.Contains(t, runtime, "goroutines")
	assert.Contains(t, runtime, "go_version")
}

func TestHealthHandlerVersion(t *testing.T) {
	handler, _ := healthFixture(t)

	req := httptest.NewRequest("GET", "/api/version", nil)
	rec := httptest.NewRecorder()

	handler.Version(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	response := decodeBody(t, rec)
	assert.Equal(t, contracts.Version, response["version"])
	assert.Equal(t, contracts.APIVersion, response["api_version"])
	assert.Contains(t, response, "go_version")
	assert.Contains(t, response, "os")
	assert.Contains(t, response, "arch")
	assert.Contains(t, response, "uptime")
	assert.NotContains(t, response, "build_time")
	assert.NotContains(t, response, "git_commit")
}

func TestHealthHandlerRoutes(t *testing.T) {
	handler, store := healthFixture(t)
	_, err := store.Snapshot(context.Background())
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Mount("/api/health", handler.Routes())

	for _, path := range []string{"/api/health", "/api/health/ready", "/api/health/live"} {
		req := httptest.NewRequest("GET", path, nil)
		rec := httptest.NewRecorder()

		r.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, "path %s", path)
	}
}

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"incidentlens.io/lens/internal/config"
	"incidentlens.io/lens/internal/pkg/logger"
	"incidentlens.io/lens/internal/store"
)

func init() {
	_ = logger.Init("error", "json")
}

func csvConfig(dir string) *config.Config {
	return &config.Config{
		Server:  config.ServerConfig{Port: 8080},
		Log:     config.LogConfig{Level: "error", Format: "json"},
		Data:    config.DataConfig{Source: config.SourceCSV, Dir: dir},
		Worker:  config.WorkerConfig{LoaderPoolSize: 2},
		Metrics: config.MetricsConfig{Enabled: true, Path: "/metrics"},
		OpenAPI: config.OpenAPIConfig{ValidateRequests: true},
	}
}

func TestBootstrap_UnknownSource(t *testing.T) {
	cfg := csvConfig(t.TempDir())
	cfg.Data.Source = "mongodb"

	app, err := Bootstrap(context.Background(), cfg)
	require.Error(t, err)
	assert.Nil(t, app, "Application should be nil on bootstrap failure")
}

func TestBootstrap_CSVDirectory(t *testing.T) {
	dir := t.TempDir()
	detail := store.ColEventID + "," + store.ColDescription + "," + store.ColReportTime + "\n" +
		"E1,噪音扰民,2025-05-02 10:00:00\n" +
		"E2,停车纠纷,2025-05-03 10:00:00\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, string(store.EventDetails)+".csv"), []byte(detail), 0o600))

	app, err := Bootstrap(context.Background(), csvConfig(dir))
	require.NoError(t, err)
	t.Cleanup(app.Shutdown)

	require.NotNil(t, app.Router)
	require.Len(t, app.Modules, 1)
	assert.Equal(t, 0, app.Store.Snapshot().Rows(store.EventDetails), "nothing loaded before Start")

	// Other datasets are missing; the service still starts with them empty.
	require.NoError(t, app.Start(context.Background()))
	assert.Equal(t, 2, app.Store.Snapshot().Rows(store.EventDetails))

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/events?page_size=1", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Items []struct {
			EventID string `json:"事件编号"`
		} `json:"items"`
		Total      int `json:"total"`
		TotalPages int `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Total)
	assert.Equal(t, 2, body.TotalPages)
	require.Len(t, body.Items, 1)
	assert.Equal(t, "E2", body.Items[0].EventID)

	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health/ready", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestApplication_ShutdownWithoutComponents(t *testing.T) {
	app := &Application{Config: &config.Config{}}
	assert.NotPanics(t, app.Shutdown)
	assert.NoError(t, app.Start(context.Background()))
}

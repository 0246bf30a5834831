package logger

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func resetLogger() {
	global = nil
	once = sync.Once{}
}

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		level     string
		format    string
		wantLevel zapcore.Level
		wantErr   bool
	}{
		{"json info", "info", "json", zapcore.InfoLevel, false},
		{"console debug", "debug", "console", zapcore.DebugLevel, false},
		{"json warn", "warn", "json", zapcore.WarnLevel, false},
		{"json error", "error", "json", zapcore.ErrorLevel, false},
		{"empty format is json", "info", "", zapcore.InfoLevel, false},
		{"invalid level", "invalid", "json", 0, true},
		{"unknown format", "info", "xml", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetLogger()
			err := Init(tt.level, tt.format)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLevel, GetLevel())
		})
	}
}

func TestSetLevel(t *testing.T) {
	resetLogger()
	require.NoError(t, Init("info", "json"))

	require.NoError(t, SetLevel("debug"))
	assert.Equal(t, zapcore.DebugLevel, GetLevel())

	require.Error(t, SetLevel("bogus"))
	assert.Equal(t, zapcore.DebugLevel, GetLevel(), "failed SetLevel must keep the previous level")

	require.NoError(t, SetLevel("info"))
}

func TestL_NopBeforeInit(t *testing.T) {
	resetLogger()

	assert.NotPanics(t, func() {
		L().Info("dropped")
		Warn("dropped too")
	})
	assert.NotNil(t, L())
}

func TestLoggingFunctions(t *testing.T) {
	resetLogger()
	require.NoError(t, Init("debug", "json"))

	assert.NotPanics(t, func() {
		Debug("test debug")
		Info("test info")
		Warn("test warn")
		Error("test error")
	})
}

func TestLevelHandler(t *testing.T) {
	resetLogger()
	require.NoError(t, Init("info", "json"))

	h := LevelHandler()

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodPut, "/", strings.NewReader(`{"level":"warn"}`)))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, zapcore.WarnLevel, GetLevel())

	require.NoError(t, SetLevel("info"))
}

func TestSync(t *testing.T) {
	resetLogger()
	assert.NoError(t, Sync(), "Sync before Init is a no-op")

	require.NoError(t, Init("info", "json"))
	_ = Sync()
}

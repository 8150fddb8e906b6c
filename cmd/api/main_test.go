package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
)

func TestInitializeApp(t *testing.T) {
	for _, variant := range []string{config.VariantLeaky, config.VariantOptimized} {
		t.Run(variant, func(t *testing.T) {
			cfg := config.Default()
			cfg.App.Variant = variant
			cfg.Server.Mode = gin.TestMode
			cfg.Database.Driver = config.DriverSQLite
			cfg.Database.DBName = filepath.Join(t.TempDir(), "api.db")
			cfg.Database.MaxOpenConns = 1

			engine, cleanup, err := InitializeApp(cfg, zap.NewNop())
			require.NoError(t, err)
			t.Cleanup(cleanup)

			w := httptest.NewRecorder()
			engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var report map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &report))
			assert.Equal(t, variant, report["variant"])
			assert.Equal(t, "ok", report["database"])
		})
	}
}

func TestInitializeApp_BadCacheBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Server.Mode = gin.TestMode
	cfg.Database.DBName = filepath.Join(t.TempDir(), "api.db")
	cfg.Cache.Backend = "memcached"

	_, _, err := InitializeApp(cfg, zap.NewNop())
	assert.Error(t, err)
}

package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
)

func TestNew(t *testing.T) {
	t.Run("json格式写入文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		l, err := New(config.LogConfig{Level: "info", Format: "json", Output: path})
		require.NoError(t, err)

		l.Debug("不应输出")
		l.Info("checkout completed", zap.Int64("order_id", 7))
		require.NoError(t, l.Sync())

		data, err := os.ReadFile(path)
		require.NoError(t, err)

		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		require.Len(t, lines, 1)

		var entry map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
		assert.Equal(t, "checkout completed", entry["msg"])
		assert.Equal(t, float64(7), entry["order_id"])
		assert.Contains(t, entry, "time")
	})

	t.Run("非法级别", func(t *testing.T) {
		_, err := New(config.LogConfig{Level: "verbose"})
		assert.Error(t, err)
	})

	t.Run("非法格式", func(t *testing.T) {
		_, err := New(config.LogConfig{Level: "info", Format: "xml"})
		assert.Error(t, err)
	})
}

func TestSetup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "global.log")
	l, restore, err := Setup(config.LogConfig{Level: "debug", Format: "json", Output: path})
	require.NoError(t, err)
	defer restore()

	assert.Same(t, l, zap.L())
}

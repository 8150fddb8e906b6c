package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, VariantLeaky, cfg.App.Variant)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, 100, cfg.Recommendation.Iterations)
	assert.Equal(t, 10, cfg.Recommendation.TopN)
	assert.Equal(t, 100*time.Millisecond, cfg.Recommendation.ArtificialDelay)
	assert.Equal(t, 200*time.Millisecond, cfg.Checkout.ArtificialDelay)
	assert.False(t, cfg.Metrics.Enabled)
	assert.NoError(t, validate(cfg))
}

func TestCacheBackend(t *testing.T) {
	testCases := []struct {
		name    string
		variant string
		backend string
		want    string
	}{
		{"leaky默认无界map", VariantLeaky, "", CacheMemory},
		{"optimized默认有界缓存", VariantOptimized, "", CacheBounded},
		{"显式配置优先", VariantOptimized, CacheRedis, CacheRedis},
		{"leaky也可显式选择bounded", VariantLeaky, CacheBounded, CacheBounded},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			cfg.App.Variant = tc.variant
			cfg.Cache.Backend = tc.backend
			assert.Equal(t, tc.want, cfg.CacheBackend())
		})
	}
}

func TestLoad(t *testing.T) {
	t.Run("读取YAML文件", func(t *testing.T) {
		path := writeConfig(t, `
app:
  variant: optimized
server:
  port: 8080
database:
  driver: postgres
  host: db
  port: 5432
  user: u
  password: p
  dbname: books
cache:
  ttl: 30s
recommendation:
  iterations: 5
`)
		cfg, err := Load(path)
		require.NoError(t, err)

		assert.True(t, cfg.IsOptimized())
		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, 30*time.Second, cfg.Cache.TTL)
		assert.Equal(t, 5, cfg.Recommendation.Iterations)
		// 文件中未出现的键保持默认值
		assert.Equal(t, 10, cfg.Recommendation.TopN)
		assert.Equal(t, "host=db port=5432 user=u password=p dbname=books sslmode=disable", cfg.Database.ConnString())
	})

	t.Run("环境变量覆盖", func(t *testing.T) {
		path := writeConfig(t, "app:\n  variant: leaky\n")
		t.Setenv("BOOKSTORE_APP_VARIANT", "optimized")
		t.Setenv("BOOKSTORE_CHECKOUT_ARTIFICIAL_DELAY", "0s")

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, VariantOptimized, cfg.App.Variant)
		assert.Equal(t, time.Duration(0), cfg.Checkout.ArtificialDelay)
	})

	t.Run("指定文件不存在时报错", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.Error(t, err)
	})

	t.Run("非法配置被拒绝", func(t *testing.T) {
		path := writeConfig(t, "app:\n  variant: turbo\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "turbo")
	})
}

func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"端口越界", func(c *Config) { c.Server.Port = 70000 }},
		{"未知驱动", func(c *Config) { c.Database.Driver = "oracle" }},
		{"未知缓存后端", func(c *Config) { c.Cache.Backend = "memcached" }},
		{"bounded缺少TTL", func(c *Config) { c.Cache.Backend = CacheBounded; c.Cache.TTL = 0 }},
		{"top_n为0", func(c *Config) { c.Recommendation.TopN = 0 }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.Error(t, validate(cfg))
		})
	}
}

func TestConnString(t *testing.T) {
	d := Default().Database

	d.Driver = DriverMySQL
	d.Loc = "Asia/Shanghai"
	d.DBName = "bookstore"
	assert.Equal(t,
		"bookstore:bookstore@tcp(localhost:3306)/bookstore?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai",
		d.ConnString())

	d.Driver = DriverSQLite
	d.DBName = "/tmp/books.db"
	assert.Equal(t, "/tmp/books.db", d.ConnString())

	d.DSN = "file::memory:"
	assert.Equal(t, "file::memory:", d.ConnString())
}

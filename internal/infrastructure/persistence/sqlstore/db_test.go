package sqlstore

import (
	"errors"
	"path/filepath"
	"testing"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-perflab/pkg/metrics"
)

func TestNewDB_SQLite(t *testing.T) {
	metrics.InitMetrics()

	cfg := config.Default()
	cfg.App.Variant = config.VariantOptimized
	cfg.Database.Driver = config.DriverSQLite
	cfg.Database.DSN = filepath.Join(t.TempDir(), "app.db") + "?_pragma=foreign_keys(1)"
	cfg.Database.MaxOpenConns = 1

	db, err := NewDB(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		_ = sqlDB.Close()
	})

	assert.True(t, db.Migrator().HasTable(&BookModel{}))
	assert.True(t, db.Migrator().HasIndex(&BookModel{}, "idx_books_title"))

	t.Run("每条查询都会计数", func(t *testing.T) {
		counter := metrics.DBQueriesTotal.WithLabelValues("query")
		before := promtestutil.ToFloat64(counter)

		var n int64
		require.NoError(t, db.Model(&BookModel{}).Count(&n).Error)
		require.NoError(t, db.Model(&UserModel{}).Count(&n).Error)

		assert.Equal(t, before+2, promtestutil.ToFloat64(counter))
	})
}

func TestOpenDialector(t *testing.T) {
	for _, driver := range []string{config.DriverMySQL, config.DriverPostgres, config.DriverSQLite} {
		d := config.Default().Database
		d.Driver = driver
		dialector, err := openDialector(d)
		require.NoError(t, err, driver)
		assert.Equal(t, driver, dialector.Name())
	}

	_, err := openDialector(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestIsDuplicateError(t *testing.T) {
	assert.False(t, isDuplicateError(nil))
	assert.True(t, isDuplicateError(gorm.ErrDuplicatedKey))
	assert.True(t, isDuplicateError(errors.New("Error 1062: Duplicate entry '978' for key 'isbn'")))
	assert.True(t, isDuplicateError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_books_isbn" (SQLSTATE 23505)`)))
	assert.True(t, isDuplicateError(errors.New("UNIQUE constraint failed: books.isbn")))
	assert.False(t, isDuplicateError(errors.New("FOREIGN KEY constraint failed")))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, "100!%", escapeLike("100%"))
	assert.Equal(t, "a!_b", escapeLike("a_b"))
	assert.Equal(t, "wow!!", escapeLike("wow!"))
	assert.Equal(t, "plain", escapeLike("plain"))
}

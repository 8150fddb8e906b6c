package health

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookstore-perflab/internal/domain/recommendation"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/cache"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-perflab/internal/testutil"
)

func TestCheck(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	c := cache.NewUnbounded()
	require.NoError(t, c.Set(ctx, recommendation.CacheKey(1), &recommendation.Result{}))

	uc := NewCheckUseCase(db, c, config.Default())

	report := uc.Execute(ctx)
	assert.True(t, report.Healthy())
	assert.Equal(t, StatusOK, report.Database)
	assert.Equal(t, config.VariantLeaky, report.Variant)
	assert.Equal(t, int64(1), report.CacheEntries)
	assert.False(t, report.Timestamp.IsZero())

	t.Run("数据库不可用时报告error", func(t *testing.T) {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		report := uc.Execute(ctx)
		assert.False(t, report.Healthy())
		assert.Equal(t, StatusError, report.Status)
		assert.NotEqual(t, StatusOK, report.Database)
		assert.Equal(t, int64(1), report.CacheEntries, "缓存统计不受数据库影响")
	})
}

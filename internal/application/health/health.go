package health

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-perflab/internal/domain/recommendation"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/persistence/sqlstore"
)

// 状态取值
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// CheckUseCase 健康检查
// 数据库不可达时返回error状态,不panic、不让进程退出
type CheckUseCase struct {
	db      *gorm.DB
	cache   recommendation.Cache
	variant string
}

// NewCheckUseCase 创建健康检查用例
func NewCheckUseCase(db *gorm.DB, cache recommendation.Cache, cfg *config.Config) *CheckUseCase {
	return &CheckUseCase{
		db:      db,
		cache:   cache,
		variant: cfg.App.Variant,
	}
}

// Report 健康检查结果
type Report struct {
	Status       string    `json:"status"`
	Database     string    `json:"database"`
	Variant      string    `json:"variant"`
	CacheEntries int64     `json:"cache_entries"`
	Timestamp    time.Time `json:"timestamp"`
}

// Healthy 数据库可用即视为健康
func (r *Report) Healthy() bool {
	return r.Status == StatusOK
}

// Execute 执行检查
// cache_entries用于压测时观察无界缓存的增长;缓存统计失败记为-1,不影响整体状态
func (uc *CheckUseCase) Execute(ctx context.Context) *Report {
	report := &Report{
		Status:    StatusOK,
		Database:  StatusOK,
		Variant:   uc.variant,
		Timestamp: time.Now().UTC(),
	}

	if err := sqlstore.Ping(ctx, uc.db); err != nil {
		zap.L().Error("健康检查:数据库不可用", zap.Error(err))
		report.Status = StatusError
		report.Database = err.Error()
	}

	n, err := uc.cache.Len(ctx)
	if err != nil {
		zap.L().Warn("健康检查:统计缓存条目失败", zap.Error(err))
		n = -1
	}
	report.CacheEntries = n

	return report
}

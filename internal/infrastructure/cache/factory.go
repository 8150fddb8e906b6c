package cache

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-perflab/internal/domain/recommendation"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookstore-perflab/pkg/circuitbreaker"
)

// New 按配置创建推荐缓存
// 返回的cleanup在进程退出时调用(关闭ristretto后台任务或Redis连接)
func New(cfg *config.Config, zl *zap.Logger) (recommendation.Cache, func(), error) {
	backend := cfg.CacheBackend()

	switch backend {
	case config.CacheMemory:
		zl.Info("推荐缓存: 进程内无界map(永不淘汰)")
		return NewUnbounded(), func() {}, nil

	case config.CacheBounded:
		c, err := NewBounded(cfg.Cache.MaxEntries, cfg.Cache.TTL)
		if err != nil {
			return nil, nil, err
		}
		zl.Info("推荐缓存: 有界TTL缓存",
			zap.Int64("max_entries", cfg.Cache.MaxEntries),
			zap.Duration("ttl", cfg.Cache.TTL),
		)
		return c, c.Close, nil

	case config.CacheRedis:
		client, err := redis.NewClient(cfg, zl)
		if err != nil {
			return nil, nil, err
		}
		zl.Info("推荐缓存: Redis", zap.Duration("ttl", cfg.Cache.TTL))
		cleanup := func() {
			if err := client.Close(); err != nil {
				zl.Warn("关闭Redis连接失败", zap.Error(err))
			}
		}
		return guardRedis(redis.NewRecommendationCache(client, cfg.Cache.TTL), cfg.Redis, zl), cleanup, nil

	default:
		return nil, nil, fmt.Errorf("不支持的缓存后端: %q", backend)
	}
}

// guardRedis 按配置为Redis缓存加上熔断
func guardRedis(c recommendation.Cache, cfg config.RedisConfig, zl *zap.Logger) recommendation.Cache {
	if cfg.BreakerFailures == 0 {
		return c
	}
	breaker := circuitbreaker.New(circuitbreaker.Config{
		Name:             "redis-recommendation-cache",
		FailureThreshold: cfg.BreakerFailures,
		OpenTimeout:      cfg.BreakerTimeout,
		OnStateChange: func(name string, from, to circuitbreaker.State) {
			zl.Warn("熔断器状态变化",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})
	return NewGuarded(c, breaker)
}

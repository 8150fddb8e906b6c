package cache

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/xiebiao/bookstore-perflab/internal/domain/recommendation"
	"github.com/xiebiao/bookstore-perflab/pkg/metrics"
)

// Bounded 有界TTL推荐缓存(optimized默认)
//
// 对Unbounded的两处修复:
// 1. 容量上限maxEntries,超出后由ristretto的TinyLFU策略淘汰低频条目
// 2. 每个条目带TTL,过期后重新计算,推荐结果不会永远停留在第一次的样子
//
// 注意:ristretto的准入策略在缓存已满时可能拒绝新条目,
// 被拒绝的Set不返回错误,下一次请求按未命中重新计算
type Bounded struct {
	cache *ristretto.Cache[string, *recommendation.Result]
	ttl   time.Duration
}

// NewBounded 创建有界缓存
// 每个条目的cost固定为1,MaxCost即条目数上限
func NewBounded(maxEntries int64, ttl time.Duration) (*Bounded, error) {
	if maxEntries <= 0 {
		return nil, errors.New("bounded缓存容量必须大于0")
	}
	if ttl <= 0 {
		return nil, errors.New("bounded缓存TTL必须大于0")
	}

	c, err := ristretto.NewCache(&ristretto.Config[string, *recommendation.Result]{
		NumCounters:        maxEntries * 10, // 计数器数量取条目上限的10倍
		MaxCost:            maxEntries,
		BufferItems:        64,
		Metrics:            true,
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, err
	}

	return &Bounded{cache: c, ttl: ttl}, nil
}

func (c *Bounded) Get(_ context.Context, key string) (*recommendation.Result, bool, error) {
	result, ok := c.cache.Get(key)
	return result, ok, nil
}

// Set 写入后等待缓冲区处理完,保证紧接着的Get能读到
func (c *Bounded) Set(ctx context.Context, key string, result *recommendation.Result) error {
	c.cache.SetWithTTL(key, result, 1, c.ttl)
	c.cache.Wait()

	n, _ := c.Len(ctx)
	metrics.SetGauge(metrics.RecommendationCacheEntries, float64(n))
	return nil
}

// Len 近似条目数:累计写入 - 累计淘汰
func (c *Bounded) Len(_ context.Context) (int64, error) {
	m := c.cache.Metrics
	if m == nil {
		return 0, nil
	}
	added, evicted := m.KeysAdded(), m.KeysEvicted()
	if evicted >= added {
		return 0, nil
	}
	return int64(added - evicted), nil
}

// Close 停止ristretto的后台goroutine
func (c *Bounded) Close() {
	c.cache.Close()
}

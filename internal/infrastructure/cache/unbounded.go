package cache

import (
	"context"
	"sync"

	"github.com/xiebiao/bookstore-perflab/internal/domain/recommendation"
	"github.com/xiebiao/bookstore-perflab/pkg/metrics"
)

// Unbounded 进程内推荐缓存(leaky默认)
//
// 这是故意保留的内存泄漏:
// 1. 没有容量上限,每个新的user_id都新增一个条目
// 2. 没有过期时间,条目写入后永不刷新、永不删除
// 3. 锁只保证map并发安全,没有single-flight,同一个key并发未命中时每个请求都会重新计算
//
// 压测时用随机user_id请求/api/recommendations,观察进程RSS持续上涨
type Unbounded struct {
	mu      sync.RWMutex
	entries map[string]*recommendation.Result
}

// NewUnbounded 创建无界缓存
func NewUnbounded() *Unbounded {
	return &Unbounded{entries: make(map[string]*recommendation.Result)}
}

func (c *Unbounded) Get(_ context.Context, key string) (*recommendation.Result, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result, ok := c.entries[key]
	return result, ok, nil
}

func (c *Unbounded) Set(_ context.Context, key string, result *recommendation.Result) error {
	c.mu.Lock()
	c.entries[key] = result
	n := len(c.entries)
	c.mu.Unlock()

	metrics.SetGauge(metrics.RecommendationCacheEntries, float64(n))
	return nil
}

func (c *Unbounded) Len(_ context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return int64(len(c.entries)), nil
}

package recommendation

import (
	"context"
)

// Cache 推荐结果缓存接口
//
// 实现:
//   - infrastructure/cache.Unbounded: 进程内map,永不淘汰(leaky默认)
//   - infrastructure/cache.Bounded: ristretto,容量上限 + TTL
//   - infrastructure/persistence/redis.RecommendationCache: 外部共享缓存
//
// 约定:
//  1. 未命中返回(nil, false, nil),不是错误
//  2. Set返回后立即可读(调用方依赖这一点保证"第二次请求命中");
//     有界缓存已满时允许丢弃新条目,丢弃不算错误
type Cache interface {
	Get(ctx context.Context, key string) (*Result, bool, error)
	Set(ctx context.Context, key string, result *Result) error
	// Len 当前条目数(健康检查和指标使用,外部缓存可以返回近似值)
	Len(ctx context.Context) (int64, error)
}

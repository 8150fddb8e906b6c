package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookstore-perflab/internal/domain/recommendation"
	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
)

// KeyPrefix 本服务在Redis中的键前缀
const KeyPrefix = "bookstore:"

// RecommendationCache 基于Redis的推荐缓存
//
// 教学要点：
// 1. 与进程内缓存相比，多个实例共享同一份缓存，重启不丢
// 2. 内存占用转移到Redis，但ttl=0时同样会无限增长（只是换了地方泄漏）
// 3. 值用JSON序列化，命中时要付出反序列化的CPU开销
//
// Key设计：bookstore:rec_{user_id}
type RecommendationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRecommendationCache 创建Redis推荐缓存
// ttl<=0表示永不过期
func NewRecommendationCache(client *redis.Client, ttl time.Duration) *RecommendationCache {
	return &RecommendationCache{client: client, ttl: ttl}
}

// Get 读取缓存
func (c *RecommendationCache) Get(ctx context.Context, key string) (*recommendation.Result, bool, error) {
	val, err := c.client.Get(ctx, KeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// 缓存未命中，不是错误
			return nil, false, nil
		}
		return nil, false, apperrors.Wrap(err, "读取推荐缓存失败")
	}

	var result recommendation.Result
	if err := json.Unmarshal(val, &result); err != nil {
		return nil, false, apperrors.Wrap(err, "解析推荐缓存失败")
	}
	return &result, true, nil
}

// Set 写入缓存
func (c *RecommendationCache) Set(ctx context.Context, key string, result *recommendation.Result) error {
	data, err := json.Marshal(result)
	if err != nil {
		return apperrors.Wrap(err, "序列化推荐结果失败")
	}

	ttl := c.ttl
	if ttl < 0 {
		ttl = 0
	}
	// go-redis中expiration=0表示不设置过期时间
	if err := c.client.Set(ctx, KeyPrefix+key, data, ttl).Err(); err != nil {
		return apperrors.Wrap(err, "写入推荐缓存失败")
	}
	return nil
}

// Len 统计推荐缓存键数量
// 使用SCAN而不是KEYS，避免阻塞Redis；键很多时仍然是O(N)，只用于健康检查
func (c *RecommendationCache) Len(ctx context.Context) (int64, error) {
	var (
		cursor uint64
		count  int64
	)
	for {
		keys, next, err := c.client.Scan(ctx, cursor, KeyPrefix+"rec_*", 500).Result()
		if err != nil {
			return 0, apperrors.Wrap(err, "统计推荐缓存失败")
		}
		count += int64(len(keys))
		cursor = next
		if cursor == 0 {
			return count, nil
		}
	}
}

package recommendation

import (
	"fmt"
	"time"

	"github.com/xiebiao/bookstore-perflab/internal/domain/book"
	"github.com/xiebiao/bookstore-perflab/internal/domain/review"
)

// ScoredBook 参与排序的一本书
type ScoredBook struct {
	Book   *book.Book
	Rating review.Summary
	Score  float64
}

// Result 一次推荐的结果,也是缓存中保存的值
// GeneratedAt是计算完成的时刻,缓存命中时原样返回(leaky模式下永不刷新)
type Result struct {
	Items       []ScoredBook
	GeneratedAt time.Time
}

// CacheKey 缓存键:rec_<user_id>
// 每个不同的user_id都会产生一个新条目,无界缓存会随请求的用户数无限增长
func CacheKey(userID int64) string {
	return fmt.Sprintf("rec_%d", userID)
}

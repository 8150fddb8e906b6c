package review

import (
	"context"
)

// Repository 书评仓储接口
//
// 学习要点:对比下面两个方法
//   - SummaryFor: 一次查询只算一本书,循环调用就是典型的N+1
//   - SummariesFor: 一条GROUP BY查询算完一页书
type Repository interface {
	// Create 创建书评
	Create(ctx context.Context, r *Review) error

	// SummaryFor 计算单本书的平均分和书评数(一条聚合查询)
	SummaryFor(ctx context.Context, bookID int64) (Summary, error)

	// SummariesFor 批量计算(一条GROUP BY查询)
	// 没有书评的图书不出现在结果中,调用方按零值处理
	SummariesFor(ctx context.Context, bookIDs []int64) (map[int64]Summary, error)

	// ListByBook 查询某本书的全部书评,按ID升序
	ListByBook(ctx context.Context, bookID int64) ([]*Review, error)
}

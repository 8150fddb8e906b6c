package cart

import (
	"context"

	"github.com/xiebiao/bookstore-perflab/internal/domain/book"
	"github.com/xiebiao/bookstore-perflab/internal/domain/cart"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
)

// LineLoader 为购物车条目加载当前的图书价格
//
// 查看购物车和结算都要"条目 → 图书 → 单价",两种模式:
//   - leaky: 每个条目单独 SELECT * FROM books WHERE id = ?(N+1)
//   - optimized: 一条 WHERE id IN (...)
type LineLoader struct {
	bookRepo book.Repository
	batched  bool
}

// NewLineLoader 创建加载器
func NewLineLoader(bookRepo book.Repository, cfg *config.Config) *LineLoader {
	return &LineLoader{
		bookRepo: bookRepo,
		batched:  cfg.IsOptimized(),
	}
}

// Load 按条目顺序返回购物车行
// 条目引用的图书不存在时返回ErrBookNotFound(外键约束下不应发生)
func (l *LineLoader) Load(ctx context.Context, items []*cart.Item) ([]cart.Line, error) {
	lines := make([]cart.Line, 0, len(items))
	if len(items) == 0 {
		return lines, nil
	}

	if l.batched {
		ids := make([]int64, 0, len(items))
		for _, item := range items {
			ids = append(ids, item.BookID)
		}
		books, err := l.bookRepo.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			b, ok := books[item.BookID]
			if !ok {
				return nil, book.ErrBookNotFound
			}
			lines = append(lines, cart.Line{Item: item, Title: b.Title, Price: b.Price})
		}
		return lines, nil
	}

	for _, item := range items {
		b, err := l.bookRepo.FindByID(ctx, item.BookID)
		if err != nil {
			return nil, err
		}
		lines = append(lines, cart.Line{Item: item, Title: b.Title, Price: b.Price})
	}
	return lines, nil
}

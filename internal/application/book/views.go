package book

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-perflab/internal/domain/book"
	"github.com/xiebiao/bookstore-perflab/internal/domain/review"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
)

// BookView 图书响应DTO(列表、详情、搜索、推荐共用)
// avg_rating、review_count不是books表的列,每次读取时由书评汇总得到
type BookView struct {
	ID            int64           `json:"id"`
	Title         string          `json:"title"`
	Author        string          `json:"author"`
	ISBN          *string         `json:"isbn"`
	Price         decimal.Decimal `json:"price"`
	Description   string          `json:"description"`
	Stock         int             `json:"stock"`
	Category      string          `json:"category"`
	PublishedYear *int            `json:"published_year"`
	CreatedAt     time.Time       `json:"created_at"`
	AvgRating     float64         `json:"avg_rating"`
	ReviewCount   int64           `json:"review_count"`
}

// NewBookView 组装图书响应
func NewBookView(b *book.Book, s review.Summary) BookView {
	return BookView{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		Price:         b.Price,
		Description:   b.Description,
		Stock:         b.Stock,
		Category:      b.Category,
		PublishedYear: b.PublishedYear,
		CreatedAt:     b.CreatedAt,
		AvgRating:     s.AvgRating,
		ReviewCount:   s.ReviewCount,
	}
}

// ReviewView 详情页中的书评
type ReviewView struct {
	UserID    int64     `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// RatingLoader 为一批图书加载评分汇总
//
// 学习要点(本项目最核心的对比):
//   - leaky: 对每本书单独执行一条聚合查询,一页20本书 = 20条SQL(N+1)
//   - optimized: 一条 GROUP BY book_id ... WHERE book_id IN (...) 算完整页
//
// 列表、搜索、推荐三个接口都通过它取评分,切换variant即可对比SQL数量
type RatingLoader struct {
	reviewRepo review.Repository
	batched    bool
}

// NewRatingLoader 创建评分加载器,optimized模式下使用批量查询
func NewRatingLoader(reviewRepo review.Repository, cfg *config.Config) *RatingLoader {
	return &RatingLoader{
		reviewRepo: reviewRepo,
		batched:    cfg.IsOptimized(),
	}
}

// Load 返回 book_id → 评分汇总,没有书评的图书为零值
func (l *RatingLoader) Load(ctx context.Context, books []*book.Book) (map[int64]review.Summary, error) {
	result := make(map[int64]review.Summary, len(books))
	if len(books) == 0 {
		return result, nil
	}

	if l.batched {
		ids := make([]int64, len(books))
		for i, b := range books {
			ids[i] = b.ID
		}
		return l.reviewRepo.SummariesFor(ctx, ids)
	}

	// N+1: 循环内逐本查询
	for _, b := range books {
		s, err := l.reviewRepo.SummaryFor(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		result[b.ID] = s
	}
	return result, nil
}

// toViews 按books的顺序组装响应,结果非nil(空时序列化为[])
func toViews(books []*book.Book, ratings map[int64]review.Summary) []BookView {
	views := make([]BookView, len(books))
	for i, b := range books {
		views[i] = NewBookView(b, ratings[b.ID])
	}
	return views
}

package book

import (
	"context"

	"github.com/xiebiao/bookstore-perflab/internal/domain/book"
	"github.com/xiebiao/bookstore-perflab/internal/domain/review"
	"github.com/xiebiao/bookstore-perflab/pkg/tracing"
)

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookService book.Service
	reviewRepo  review.Repository
}

// NewGetBookUseCase 创建详情用例
func NewGetBookUseCase(bookService book.Service, reviewRepo review.Repository) *GetBookUseCase {
	return &GetBookUseCase{
		bookService: bookService,
		reviewRepo:  reviewRepo,
	}
}

// BookDetail 详情响应:图书 + 全部书评
type BookDetail struct {
	BookView
	Reviews []ReviewView `json:"reviews"`
}

// Execute 执行详情查询
// 三条SQL:图书、评分汇总、书评列表
// 书评列表不分页,热门图书的书评很多时响应会很大
func (uc *GetBookUseCase) Execute(ctx context.Context, id int64) (*BookDetail, error) {
	ctx, span := tracing.StartSpan(ctx, "GetBookUseCase.Execute")
	defer span.End()

	b, err := uc.bookService.GetBook(ctx, id)
	if err != nil {
		return nil, err
	}

	summary, err := uc.reviewRepo.SummaryFor(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	reviews, err := uc.reviewRepo.ListByBook(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	views := make([]ReviewView, len(reviews))
	for i, r := range reviews {
		views[i] = ReviewView{
			UserID:    r.UserID,
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		}
	}

	return &BookDetail{
		BookView: NewBookView(b, summary),
		Reviews:  views,
	}, nil
}

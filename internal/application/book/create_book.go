package book

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-perflab/internal/domain/book"
	"github.com/xiebiao/bookstore-perflab/internal/domain/review"
	"github.com/xiebiao/bookstore-perflab/pkg/tracing"
)

// CreateBookUseCase 图书上架用例
// 设计说明:
// 1. 应用层负责用例编排,业务规则校验由领域服务负责
// 2. 输入输出使用DTO,与HTTP层解耦
// 3. 没有鉴权,任何调用方都可以上架
type CreateBookUseCase struct {
	bookService book.Service
}

// NewCreateBookUseCase 创建上架用例
func NewCreateBookUseCase(bookService book.Service) *CreateBookUseCase {
	return &CreateBookUseCase{
		bookService: bookService,
	}
}

// CreateBookRequest 上架请求DTO
// 可选字段用指针表示"未提供"
type CreateBookRequest struct {
	Title         string
	Author        string
	Price         decimal.Decimal
	ISBN          *string
	Description   string
	Stock         *int
	Category      string
	PublishedYear *int
}

// Execute 执行上架用例
// 新书还没有书评,avg_rating和review_count直接为0,不查询数据库
func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookView, error) {
	ctx, span := tracing.StartSpan(ctx, "CreateBookUseCase.Execute")
	defer span.End()

	b, err := uc.bookService.CreateBook(ctx, book.NewBookParams{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Price:         req.Price,
		Description:   req.Description,
		Stock:         req.Stock,
		Category:      req.Category,
		PublishedYear: req.PublishedYear,
	})
	if err != nil {
		return nil, err
	}

	view := NewBookView(b, review.Summary{})
	return &view, nil
}

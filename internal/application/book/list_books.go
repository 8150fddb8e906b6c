package book

import (
	"context"
	"math"

	"github.com/xiebiao/bookstore-perflab/internal/domain/book"
	"github.com/xiebiao/bookstore-perflab/pkg/tracing"
)

// 分页默认值
const (
	DefaultPage    = 1
	DefaultPerPage = 20
)

// ListBooksUseCase 图书列表查询用例
// 设计说明:
// 1. 按ID升序分页
// 2. 每本书附带avg_rating、review_count(评分加载方式见RatingLoader)
// 3. per_page没有上限:per_page=100000会一次加载全表,压测时可以用来制造大响应
type ListBooksUseCase struct {
	bookRepo book.Repository
	ratings  *RatingLoader
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookRepo book.Repository, ratings *RatingLoader) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookRepo: bookRepo,
		ratings:  ratings,
	}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page    int // 页码(从1开始)
	PerPage int // 每页数量
}

// ListBooksResponse 列表查询响应DTO
type ListBooksResponse struct {
	Books   []BookView `json:"books"`
	Total   int64      `json:"total"`
	Page    int        `json:"page"`
	PerPage int        `json:"per_page"`
	Pages   int        `json:"pages"`
}

// Execute 执行列表查询用例
// 学习要点:
// 1. 参数默认值处理(page默认1, per_page默认20),非正数同样回退默认值
// 2. 故意不限制per_page的上限
// 3. 列表1条 + 计数1条 + 评分(leaky每本1条 / optimized共1条)
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "ListBooksUseCase.Execute")
	defer span.End()

	// 1. 参数默认值
	if req.Page < 1 {
		req.Page = DefaultPage
	}
	if req.PerPage < 1 {
		req.PerPage = DefaultPerPage
	}

	// 2. 分页查询
	// (page-1) × per_page可能溢出,回绕后甚至恰好为0,必须在相乘之前判断
	offset := math.MaxInt
	if req.Page-1 <= math.MaxInt/req.PerPage {
		offset = (req.Page - 1) * req.PerPage
	}
	books, err := uc.bookRepo.List(ctx, offset, req.PerPage)
	if err != nil {
		return nil, err
	}

	total, err := uc.bookRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	// 3. 评分
	ratings, err := uc.ratings.Load(ctx, books)
	if err != nil {
		return nil, err
	}

	// 4. 计算总页数
	pages := int(total) / req.PerPage
	if int(total)%req.PerPage != 0 {
		pages++
	}

	return &ListBooksResponse{
		Books:   toViews(books, ratings),
		Total:   total,
		Page:    req.Page,
		PerPage: req.PerPage,
		Pages:   pages,
	}, nil
}

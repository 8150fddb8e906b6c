package book

import (
	"context"

	"github.com/xiebiao/bookstore-perflab/internal/domain/book"
	"github.com/xiebiao/bookstore-perflab/pkg/tracing"
)

// SearchBooksUseCase 图书搜索用例
//
// 性能缺陷(leaky):
// 1. LOWER(title) LIKE '%q%':前导通配符让任何B-Tree索引都用不上,每次全表扫描
// 2. 结果不分页,匹配"e"这样的关键词会返回大半张表
// 3. 每条结果单独查询评分
//
// optimized模式只修复第3点;前导通配符的LIKE即使有索引也无法走索引查找,
// 这是留给学生思考的问题(全文索引、trigram索引、搜索引擎)
type SearchBooksUseCase struct {
	bookRepo book.Repository
	ratings  *RatingLoader
}

// NewSearchBooksUseCase 创建搜索用例
func NewSearchBooksUseCase(bookRepo book.Repository, ratings *RatingLoader) *SearchBooksUseCase {
	return &SearchBooksUseCase{
		bookRepo: bookRepo,
		ratings:  ratings,
	}
}

// SearchBooksResponse 搜索响应DTO
type SearchBooksResponse struct {
	Results []BookView `json:"results"`
	Total   int        `json:"total"`
	Query   string     `json:"query"`
}

// Execute 执行搜索
// 空关键词直接返回空结果,不访问数据库
func (uc *SearchBooksUseCase) Execute(ctx context.Context, query string) (*SearchBooksResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "SearchBooksUseCase.Execute")
	defer span.End()

	if query == "" {
		return &SearchBooksResponse{Results: []BookView{}, Total: 0}, nil
	}

	books, err := uc.bookRepo.Search(ctx, query)
	if err != nil {
		return nil, err
	}

	ratings, err := uc.ratings.Load(ctx, books)
	if err != nil {
		return nil, err
	}

	return &SearchBooksResponse{
		Results: toViews(books, ratings),
		Total:   len(books),
		Query:   query,
	}, nil
}

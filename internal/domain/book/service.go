package book

import (
	"context"
)

// Service 图书领域服务接口
// 设计说明:
// 1. 领域服务封装业务规则校验,不依赖具体的Repository实现
// 2. 读路径(列表、搜索)需要拼装评分,由应用层组合Repository完成
type Service interface {
	// CreateBook 上架图书
	// 业务规则:
	// - title、author必填
	// - price、stock不能为负
	// - ISBN非空时不能重复
	CreateBook(ctx context.Context, params NewBookParams) (*Book, error)

	// GetBook 根据ID获取图书
	GetBook(ctx context.Context, id int64) (*Book, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// CreateBook 上架图书
// ISBN重复不做预查询:直接插入,由唯一约束兜底并转换为ErrISBNDuplicate
// 预查询+插入之间存在竞态,并发上架同一ISBN时仍然只能靠约束
func (s *service) CreateBook(ctx context.Context, params NewBookParams) (*Book, error) {
	b, err := NewBook(params)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

// GetBook 根据ID获取图书
func (s *service) GetBook(ctx context.Context, id int64) (*Book, error) {
	return s.repo.FindByID(ctx, id)
}

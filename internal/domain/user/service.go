package user

import (
	"context"
)

// Service 用户领域服务
// 加购和结算都要先确认用户存在，校验规则集中在这里
type Service interface {
	// EnsureExists 用户不存在时返回ErrUserNotFound
	// id<=0直接判定为不存在，不访问数据库
	EnsureExists(ctx context.Context, id int64) error
}

type service struct {
	repo Repository
}

// NewService 创建用户领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) EnsureExists(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrUserNotFound
	}

	ok, err := s.repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUserNotFound
	}
	return nil
}

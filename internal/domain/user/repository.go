package user

import (
	"context"
)

// Repository 用户仓储接口
// DDD设计说明：
// 1. 接口定义在domain层（依赖倒置原则）
// 2. 具体实现在infrastructure/persistence/sqlstore
type Repository interface {
	// Create 创建用户
	Create(ctx context.Context, user *User) error

	// Exists 用户是否存在（只查主键，不加载整行）
	Exists(ctx context.Context, id int64) (bool, error)
}

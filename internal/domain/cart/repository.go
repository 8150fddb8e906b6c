package cart

import (
	"context"
)

// Repository 购物车仓储接口
type Repository interface {
	// Add 插入一行(总是新增,不与已有行合并)
	Add(ctx context.Context, item *Item) error

	// ListByUser 查询用户的全部条目,按ID升序
	ListByUser(ctx context.Context, userID int64) ([]*Item, error)

	// DeleteByIDs 按ID删除条目,返回实际删除的行数
	// 结算时只删除"读到的那些行",读之后新加入的行保留在购物车
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
}

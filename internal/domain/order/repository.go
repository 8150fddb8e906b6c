package order

import (
	"context"
)

// Repository 订单仓储接口(依赖倒置原则)
// 教学要点:
// 支持事务操作(通过context传递事务),optimized模式下
// 结算的"建单 + 清空购物车"在同一事务中完成
type Repository interface {
	// Create 创建订单,回填ID
	// 服务不提供订单查询接口,订单只写不读
	Create(ctx context.Context, order *Order) error
}

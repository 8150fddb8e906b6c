package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status 订单状态
// 教学要点:
// 1. 结算只创建pending订单,支付环节用人为延迟模拟,不会推进状态
// 2. 用string存储,与数据库默认值'pending'一致,JSON中可读
type Status string

const (
	StatusPending Status = "pending"
)

// Order 订单实体(聚合根)
// 教学要点:
// 1. Total是结算时刻的价格快照(单价 × 数量之和),之后改价不影响已有订单
// 2. 不保存订单明细:购物车条目在结算后直接删除
type Order struct {
	ID        int64
	UserID    int64
	Total     decimal.Decimal
	Status    Status
	CreatedAt time.Time
}

// NewOrder 创建待支付订单
func NewOrder(userID int64, total decimal.Decimal) (*Order, error) {
	if total.IsNegative() {
		return nil, ErrInvalidTotal
	}
	return &Order{
		UserID:    userID,
		Total:     total.Round(2),
		Status:    StatusPending,
		CreatedAt: time.Now().UTC(),
	}, nil
}

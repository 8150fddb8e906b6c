package cart

import (
	"time"

	"github.com/shopspring/decimal"

	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
)

var (
	// ErrCartEmpty 购物车为空(结算时)
	// 消息文本被压测脚本用来判断"空车结算"是预期失败
	ErrCartEmpty = apperrors.New(apperrors.ErrCodeCartEmpty, "Cart is empty")

	// ErrInvalidQuantity 数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "quantity must be a positive integer")
)

// Item 购物车条目
// 设计说明:
// 1. 同一用户重复加购同一本书会产生多行(不合并),结算时逐行累加
// 2. 条目只在结算时被删除
type Item struct {
	ID       int64
	UserID   int64
	BookID   int64
	Quantity int
	AddedAt  time.Time
}

// NewItem 创建购物车条目
// quantity为0表示未提供,按1处理
func NewItem(userID, bookID int64, quantity int) (*Item, error) {
	if quantity == 0 {
		quantity = 1
	}
	if quantity < 1 {
		return nil, ErrInvalidQuantity
	}
	return &Item{
		UserID:   userID,
		BookID:   bookID,
		Quantity: quantity,
		AddedAt:  time.Now().UTC(),
	}, nil
}

// Line 购物车中的一行(条目 + 下单时刻的图书价格)
type Line struct {
	Item  *Item
	Title string
	Price decimal.Decimal
}

// Subtotal 小计 = 单价 × 数量
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Item.Quantity)))
}

// Total 所有行小计之和
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

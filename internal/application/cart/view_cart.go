package cart

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/xiebiao/bookstore-perflab/internal/domain/cart"
	"github.com/xiebiao/bookstore-perflab/pkg/tracing"
)

// ViewCartUseCase 查看购物车用例
// 价格取图书的当前价格,加购后改价会反映在购物车里
type ViewCartUseCase struct {
	cartRepo cart.Repository
	lines    *LineLoader
}

// NewViewCartUseCase 创建查看购物车用例
func NewViewCartUseCase(cartRepo cart.Repository, lines *LineLoader) *ViewCartUseCase {
	return &ViewCartUseCase{
		cartRepo: cartRepo,
		lines:    lines,
	}
}

// LineView 购物车行响应
type LineView struct {
	ID       int64           `json:"id"`
	BookID   int64           `json:"book_id"`
	Title    string          `json:"title"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// ViewCartResponse 查看购物车响应DTO
type ViewCartResponse struct {
	Items []LineView      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// Execute 查看购物车
// 不校验用户是否存在:不存在的用户看到的就是空购物车
func (uc *ViewCartUseCase) Execute(ctx context.Context, userID int64) (*ViewCartResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "ViewCartUseCase.Execute")
	defer span.End()

	items, err := uc.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	lines, err := uc.lines.Load(ctx, items)
	if err != nil {
		return nil, err
	}

	views := make([]LineView, len(lines))
	for i, l := range lines {
		views[i] = LineView{
			ID:       l.Item.ID,
			BookID:   l.Item.BookID,
			Title:    l.Title,
			Price:    l.Price,
			Quantity: l.Item.Quantity,
			Subtotal: l.Subtotal(),
		}
	}

	return &ViewCartResponse{
		Items: views,
		Total: cart.Total(lines),
	}, nil
}

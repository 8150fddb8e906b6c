package cart

import (
	"context"
	"time"

	"github.com/xiebiao/bookstore-perflab/internal/domain/book"
	"github.com/xiebiao/bookstore-perflab/internal/domain/cart"
	"github.com/xiebiao/bookstore-perflab/internal/domain/user"
	"github.com/xiebiao/bookstore-perflab/pkg/tracing"
)

// AddToCartUseCase 加入购物车用例
// 设计说明:
// 1. 用户、图书必须存在,否则返回404
// 2. 每次调用都插入新行,同一本书加两次就是两行(结算时分别计价)
// 3. 不检查库存,stock只是展示字段
type AddToCartUseCase struct {
	userService user.Service
	bookService book.Service
	cartRepo    cart.Repository
}

// NewAddToCartUseCase 创建加购用例
func NewAddToCartUseCase(
	userService user.Service,
	bookService book.Service,
	cartRepo cart.Repository,
) *AddToCartUseCase {
	return &AddToCartUseCase{
		userService: userService,
		bookService: bookService,
		cartRepo:    cartRepo,
	}
}

// AddToCartRequest 加购请求DTO
type AddToCartRequest struct {
	UserID   int64
	BookID   int64
	Quantity *int // nil表示未提供,默认1
}

// ItemView 购物车条目响应
type ItemView struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	BookID   int64     `json:"book_id"`
	Quantity int       `json:"quantity"`
	AddedAt  time.Time `json:"added_at"`
}

// AddToCartResponse 加购响应DTO
type AddToCartResponse struct {
	Message string   `json:"message"`
	Item    ItemView `json:"item"`
}

// Execute 执行加购
// 校验顺序:数量(不查库) → 用户 → 图书
func (uc *AddToCartUseCase) Execute(ctx context.Context, req AddToCartRequest) (*AddToCartResponse, error) {
	ctx, span := tracing.StartSpan(ctx, "AddToCartUseCase.Execute")
	defer span.End()

	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	if quantity < 1 {
		return nil, cart.ErrInvalidQuantity
	}

	if err := uc.userService.EnsureExists(ctx, req.UserID); err != nil {
		return nil, err
	}
	if req.BookID <= 0 {
		return nil, book.ErrBookNotFound
	}
	if _, err := uc.bookService.GetBook(ctx, req.BookID); err != nil {
		return nil, err
	}

	item, err := cart.NewItem(req.UserID, req.BookID, quantity)
	if err != nil {
		return nil, err
	}
	if err := uc.cartRepo.Add(ctx, item); err != nil {
		return nil, err
	}

	return &AddToCartResponse{
		Message: "Added to cart",
		Item: ItemView{
			ID:       item.ID,
			UserID:   item.UserID,
			BookID:   item.BookID,
			Quantity: item.Quantity,
			AddedAt:  item.AddedAt,
		},
	}, nil
}

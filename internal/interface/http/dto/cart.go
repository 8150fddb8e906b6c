package dto

// AddToCartRequest HTTP加购请求
type AddToCartRequest struct {
	UserID   int64 `json:"user_id" binding:"required,gt=0" example:"1"`
	BookID   int64 `json:"book_id" binding:"required,gt=0" example:"1"`
	Quantity *int  `json:"quantity" example:"2"` // 缺省为1
}

// CheckoutRequest HTTP结算请求
type CheckoutRequest struct {
	UserID int64 `json:"user_id" binding:"required,gt=0" example:"1"`
}

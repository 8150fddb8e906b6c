package handler

import (
	"github.com/gin-gonic/gin"

	appcart "github.com/xiebiao/bookstore-perflab/internal/application/cart"
	"github.com/xiebiao/bookstore-perflab/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
	"github.com/xiebiao/bookstore-perflab/pkg/response"
)

// CartHandler 购物车HTTP处理器
type CartHandler struct {
	addToCart *appcart.AddToCartUseCase
	viewCart  *appcart.ViewCartUseCase
}

// NewCartHandler 创建购物车处理器
func NewCartHandler(addToCart *appcart.AddToCartUseCase, viewCart *appcart.ViewCartUseCase) *CartHandler {
	return &CartHandler{
		addToCart: addToCart,
		viewCart:  viewCart,
	}
}

// AddToCart 加入购物车
// @Summary      加入购物车
// @Description  每次调用都插入新行,同一本书不合并数量
// @Tags         购物车
// @Accept       json
// @Produce      json
// @Param        request body dto.AddToCartRequest true "加购信息"
// @Success      200 {object} appcart.AddToCartResponse
// @Failure      400 {object} response.ErrorBody "参数错误"
// @Failure      404 {object} response.ErrorBody "用户或图书不存在"
// @Router       /api/cart/add [post]
func (h *CartHandler) AddToCart(c *gin.Context) {
	var req dto.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, dto.BindingMessage(err))
		return
	}

	result, err := h.addToCart.Execute(c.Request.Context(), appcart.AddToCartRequest{
		UserID:   req.UserID,
		BookID:   req.BookID,
		Quantity: req.Quantity,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// ViewCart 查看购物车
// @Summary      查看购物车
// @Description  leaky模式下每个条目单独查询一次图书
// @Tags         购物车
// @Produce      json
// @Param        user_id query int true "用户ID"
// @Success      200 {object} appcart.ViewCartResponse
// @Failure      400 {object} response.ErrorBody "user_id缺失或不是正整数"
// @Router       /api/cart [get]
func (h *CartHandler) ViewCart(c *gin.Context) {
	userID, err := dto.PositiveInt64("user_id", c.Query("user_id"))
	if err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeInvalidParams, err.Error())
		return
	}

	result, err := h.viewCart.Execute(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

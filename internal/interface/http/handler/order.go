package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookstore-perflab/internal/application/order"
	"github.com/xiebiao/bookstore-perflab/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
	"github.com/xiebiao/bookstore-perflab/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	checkout *apporder.CheckoutUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(checkout *apporder.CheckoutUseCase) *OrderHandler {
	return &OrderHandler{checkout: checkout}
}

// Checkout 结算购物车
// @Summary      结算
// @Description  按当前价格计算总额,创建pending订单并清空购物车,之后模拟支付延迟
// @Tags         订单
// @Accept       json
// @Produce      json
// @Param        request body dto.CheckoutRequest true "结算信息"
// @Success      200 {object} apporder.CheckoutResponse
// @Failure      400 {object} response.ErrorBody "购物车为空或参数错误"
// @Failure      404 {object} response.ErrorBody "用户不存在"
// @Router       /api/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req dto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, apperrors.ErrCodeBindError, dto.BindingMessage(err))
		return
	}

	result, err := h.checkout.Execute(c.Request.Context(), req.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

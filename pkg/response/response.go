package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
)

func init() {
	// 价格、小计、总额在JSON中输出为数字而不是字符串
	// 压测脚本与原有客户端都按数字解析price字段
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorBody 统一错误响应结构
// 设计说明：
// 1. 成功响应直接返回业务数据（{books: [...], total: ...}），不再包一层code/data
// 2. 失败响应统一为{"error": "..."}，HTTP状态码由业务错误码推导
type ErrorBody struct {
	Error string `json:"error"`
	Code  int    `json:"code,omitempty"`
}

// Success 成功响应（200）
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created 创建成功响应（201）
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	result, err := uc.Execute(ctx, req)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := apperrors.HTTPStatus(appErr.Code)

	// 内部错误只进日志，不返回给客户端
	if appErr.Err != nil || status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Int("code", appErr.Code),
			zap.Error(err),
		)
	}
	_ = c.Error(err)

	c.AbortWithStatusJSON(status, ErrorBody{
		Error: appErr.Message,
		Code:  appErr.Code,
	})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	Error(c, apperrors.New(code, message))
}

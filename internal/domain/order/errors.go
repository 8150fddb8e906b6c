package order

import (
	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrInvalidTotal 订单金额不合法
	ErrInvalidTotal = apperrors.New(apperrors.ErrCodeBusinessError, "order total must be non-negative")
)

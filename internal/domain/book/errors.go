package book

import (
	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
)

// 图书领域错误定义
// Message直接返回给客户端,压测脚本和原有客户端按英文消息匹配
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "book not found")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "isbn already exists")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "price must be a non-negative number")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "stock must be a non-negative integer")

	// ErrTitleRequired 书名必填
	ErrTitleRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "title is required")

	// ErrAuthorRequired 作者必填
	ErrAuthorRequired = apperrors.New(apperrors.ErrCodeInvalidParams, "author is required")

	// 超出列宽
	ErrTitleTooLong    = apperrors.New(apperrors.ErrCodeInvalidParams, "title must be at most 255 characters")
	ErrAuthorTooLong   = apperrors.New(apperrors.ErrCodeInvalidParams, "author must be at most 255 characters")
	ErrISBNTooLong     = apperrors.New(apperrors.ErrCodeInvalidParams, "isbn must be at most 13 characters")
	ErrCategoryTooLong = apperrors.New(apperrors.ErrCodeInvalidParams, "category must be at most 100 characters")
	ErrPriceTooLarge   = apperrors.New(apperrors.ErrCodeInvalidParams, "price must not exceed 99999999.99")
)

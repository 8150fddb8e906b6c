package dto

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount 金额既不是数字也不是数字字符串
var ErrInvalidAmount = errors.New("price must be a non-negative number")

// Amount 金额
// 同时接受JSON数字(19.99)和数字字符串("19.99"),统一转换为decimal
type Amount decimal.Decimal

// UnmarshalJSON 解析金额
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return ErrInvalidAmount
		}
		data = []byte(s)
	}

	d, err := decimal.NewFromString(string(data))
	if err != nil {
		return ErrInvalidAmount
	}
	*a = Amount(d)
	return nil
}

// Decimal 转换为decimal.Decimal
func (a Amount) Decimal() decimal.Decimal {
	return decimal.Decimal(a)
}

// CreateBookRequest HTTP上架请求
// validator tag说明:
// - required: 必填字段(title/author不能为空字符串,price不能缺失或为null)
// - max: 与表结构的列宽一致,按字符计数(领域层有同样的校验)
// - 非负校验和价格上限由领域层完成,错误消息与这里一致
// 未知字段会被拒绝(router中开启了DisallowUnknownFields)
type CreateBookRequest struct {
	Title         string  `json:"title" binding:"required,max=255" example:"The Go Programming Language"`
	Author        string  `json:"author" binding:"required,max=255" example:"Alan Donovan"`
	Price         *Amount `json:"price" binding:"required" swaggertype:"number" example:"39.99"`
	ISBN          *string `json:"isbn" binding:"omitempty,max=13" example:"9780134190440"`
	Description   string  `json:"description" example:"The authoritative resource"`
	Stock         *int    `json:"stock" example:"10"`
	Category      string  `json:"category" binding:"omitempty,max=100" example:"Programming"`
	PublishedYear *int    `json:"published_year" example:"2015"`
}

package book

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestNewBook(t *testing.T) {
	t.Run("默认库存为0,价格保留两位小数", func(t *testing.T) {
		b, err := NewBook(NewBookParams{
			Title:  "Dune",
			Author: "Frank Herbert",
			Price:  decimal.RequireFromString("12.345"),
		})
		require.NoError(t, err)
		assert.Equal(t, 0, b.Stock)
		assert.Equal(t, "12.35", b.Price.StringFixed(2))
		assert.Nil(t, b.ISBN)
		assert.False(t, b.CreatedAt.IsZero())
	})

	t.Run("长度按字符计算,恰好到上限可以通过", func(t *testing.T) {
		b, err := NewBook(NewBookParams{
			Title:    strings.Repeat("é", MaxTitleLen),
			Author:   "A",
			Price:    MaxPrice,
			Category: strings.Repeat("c", MaxCategoryLen),
			ISBN:     strPtr("9780441172719"),
		})
		require.NoError(t, err)
		assert.True(t, b.Price.Equal(MaxPrice))
	})

	t.Run("空ISBN视为未提供", func(t *testing.T) {
		b, err := NewBook(NewBookParams{Title: "T", Author: "A", ISBN: strPtr("")})
		require.NoError(t, err)
		assert.Nil(t, b.ISBN)
	})

	testCases := []struct {
		name   string
		params NewBookParams
		want   error
	}{
		{"缺少书名", NewBookParams{Author: "A"}, ErrTitleRequired},
		{"缺少作者", NewBookParams{Title: "T"}, ErrAuthorRequired},
		{"负价格", NewBookParams{Title: "T", Author: "A", Price: decimal.NewFromInt(-1)}, ErrInvalidPrice},
		{"负库存", NewBookParams{Title: "T", Author: "A", Stock: intPtr(-3)}, ErrInvalidStock},
		{"书名超长", NewBookParams{Title: strings.Repeat("t", 256), Author: "A"}, ErrTitleTooLong},
		{"作者超长", NewBookParams{Title: "T", Author: strings.Repeat("a", 256)}, ErrAuthorTooLong},
		{"ISBN超长", NewBookParams{Title: "T", Author: "A", ISBN: strPtr("12345678901234")}, ErrISBNTooLong},
		{"分类超长", NewBookParams{Title: "T", Author: "A", Category: strings.Repeat("c", 101)}, ErrCategoryTooLong},
		{"价格超出decimal(10,2)", NewBookParams{Title: "T", Author: "A", Price: decimal.RequireFromString("123456789012.345")}, ErrPriceTooLarge},
		{"舍入后进位超限", NewBookParams{Title: "T", Author: "A", Price: decimal.RequireFromString("99999999.995")}, ErrPriceTooLarge},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewBook(tc.params)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

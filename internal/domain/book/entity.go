package book

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// 字段上限与表结构一致(books表的varchar长度和decimal(10,2))
// 超限的输入在这里拒绝,否则MySQL/PostgreSQL插入失败会变成500,而SQLite会原样存下
const (
	MaxTitleLen    = 255
	MaxAuthorLen   = 255
	MaxISBNLen     = 13
	MaxCategoryLen = 100
)

// MaxPrice decimal(10,2)能存下的最大值
var MaxPrice = decimal.RequireFromString("99999999.99")

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 价格使用decimal.Decimal(对应数据库decimal(10,2)),避免float64的精度问题
// 2. ISBN可以为空,但非空时全局唯一(数据库唯一约束保证)
// 3. PublishedYear可以为空,用指针区分"未知"和"0年"
// 4. title/author上刻意不建索引,搜索走全表扫描(对照组optimized会补上索引)
type Book struct {
	ID            int64
	Title         string
	Author        string
	ISBN          *string
	Price         decimal.Decimal
	Description   string
	Stock         int
	Category      string
	PublishedYear *int
	CreatedAt     time.Time
}

// NewBookParams 创建图书的参数
// 可选字段用指针表示"未提供"
type NewBookParams struct {
	Title         string
	Author        string
	ISBN          *string
	Price         decimal.Decimal
	Description   string
	Stock         *int
	Category      string
	PublishedYear *int
}

// NewBook 创建新图书(工厂方法)
// 业务规则:
// - title、author不能为空
// - price >= 0,四舍五入到分后不超过MaxPrice
// - stock >= 0,未提供时为0
// - 字符串字段按字符数(不是字节数)限制长度
func NewBook(p NewBookParams) (*Book, error) {
	if p.Title == "" {
		return nil, ErrTitleRequired
	}
	if utf8.RuneCountInString(p.Title) > MaxTitleLen {
		return nil, ErrTitleTooLong
	}
	if p.Author == "" {
		return nil, ErrAuthorRequired
	}
	if utf8.RuneCountInString(p.Author) > MaxAuthorLen {
		return nil, ErrAuthorTooLong
	}
	if p.Price.IsNegative() {
		return nil, ErrInvalidPrice
	}
	price := p.Price.Round(2)
	if price.GreaterThan(MaxPrice) {
		return nil, ErrPriceTooLarge
	}
	if p.ISBN != nil && utf8.RuneCountInString(*p.ISBN) > MaxISBNLen {
		return nil, ErrISBNTooLong
	}
	if utf8.RuneCountInString(p.Category) > MaxCategoryLen {
		return nil, ErrCategoryTooLong
	}

	stock := 0
	if p.Stock != nil {
		stock = *p.Stock
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	isbn := p.ISBN
	if isbn != nil && *isbn == "" {
		isbn = nil
	}

	return &Book{
		Title:         p.Title,
		Author:        p.Author,
		ISBN:          isbn,
		Price:         price,
		Description:   p.Description,
		Stock:         stock,
		Category:      p.Category,
		PublishedYear: p.PublishedYear,
		CreatedAt:     time.Now().UTC(),
	}, nil
}

package sqlstore

import (
	"time"

	"github.com/shopspring/decimal"
)

// GORM数据模型
// 设计说明：
// 1. 这是infrastructure层的数据模型，包含GORM tag
// 2. domain层实体不依赖GORM，Repository负责两者之间的转换
// 3. 外键统一声明ON DELETE RESTRICT：服务从不删除图书/用户，删除父记录会被数据库拒绝
// 4. books.title、books.author以及各外键列刻意不建索引（leaky模式的性能缺陷）
//    optimized模式由createOptimizedIndexes补建

// UserModel GORM用户模型
type UserModel struct {
	ID        int64     `gorm:"primaryKey"`
	Username  string    `gorm:"size:80;uniqueIndex;not null"`
	Email     string    `gorm:"size:120;uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName 指定表名
func (UserModel) TableName() string {
	return "users"
}

// BookModel GORM图书模型
// 学习要点：
// 1. 价格使用decimal(10,2)，Go侧用shopspring/decimal映射（实现了Scanner/Valuer）
// 2. ISBN可空且唯一：多个NULL不冲突
// 3. CHECK约束保证price、stock非负
type BookModel struct {
	ID            int64           `gorm:"primaryKey"`
	Title         string          `gorm:"size:255;not null"`
	Author        string          `gorm:"size:255;not null"`
	ISBN          *string         `gorm:"column:isbn;size:13;uniqueIndex"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null;check:chk_books_price,price >= 0"`
	Description   string          `gorm:"type:text"`
	Stock         int             `gorm:"not null;default:0;check:chk_books_stock,stock >= 0"`
	Category      string          `gorm:"size:100"`
	PublishedYear *int
	CreatedAt     time.Time `gorm:"not null"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}

// ReviewModel GORM书评模型
// book_id上没有索引：按书汇总评分时每次都是全表扫描（N+1 × 全表扫描）
type ReviewModel struct {
	ID        int64      `gorm:"primaryKey"`
	BookID    int64      `gorm:"not null"`
	Book      *BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT"`
	UserID    int64      `gorm:"not null"`
	User      *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Rating    int        `gorm:"not null;check:chk_reviews_rating,rating >= 1 AND rating <= 5"`
	Comment   string     `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"not null"`
}

// TableName 指定表名
func (ReviewModel) TableName() string {
	return "reviews"
}

// CartItemModel GORM购物车模型
// 没有(user_id, book_id)唯一约束：重复加购产生多行
type CartItemModel struct {
	ID       int64      `gorm:"primaryKey"`
	UserID   int64      `gorm:"not null"`
	User     *UserModel `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	BookID   int64      `gorm:"not null"`
	Book     *BookModel `gorm:"foreignKey:BookID;constraint:OnDelete:RESTRICT"`
	Quantity int        `gorm:"not null;default:1;check:chk_cart_items_quantity,quantity >= 1"`
	AddedAt  time.Time  `gorm:"not null"`
}

// TableName 指定表名
func (CartItemModel) TableName() string {
	return "cart_items"
}

// OrderModel GORM订单模型
type OrderModel struct {
	ID        int64           `gorm:"primaryKey"`
	UserID    int64           `gorm:"not null"`
	User      *UserModel      `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT"`
	Total     decimal.Decimal `gorm:"type:decimal(10,2);not null;check:chk_orders_total,total >= 0"`
	Status    string          `gorm:"size:50;not null;default:pending"`
	CreatedAt time.Time       `gorm:"not null"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// allModels 迁移顺序：先父表后子表
func allModels() []interface{} {
	return []interface{}{
		&UserModel{},
		&BookModel{},
		&ReviewModel{},
		&CartItemModel{},
		&OrderModel{},
	}
}

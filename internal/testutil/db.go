// Package testutil 测试辅助：临时SQLite数据库、测试数据、SQL计数
package testutil

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-perflab/internal/domain/book"
	"github.com/xiebiao/bookstore-perflab/internal/domain/review"
	"github.com/xiebiao/bookstore-perflab/internal/domain/user"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/persistence/sqlstore"
)

// NewTestDB 在t.TempDir()中创建SQLite数据库并迁移表结构（leaky模式，无额外索引）
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDB(t, false)
}

// NewOptimizedTestDB 同NewTestDB，但额外创建optimized模式的索引
func NewOptimizedTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openTestDB(t, true)
}

func openTestDB(t *testing.T, optimized bool) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "bookstore.db") + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		NowFunc:        func() time.Time { return time.Now().UTC() },
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// SQLite同一时刻只允许一个写连接，测试中串行化所有访问
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, sqlstore.Migrate(db, optimized))
	return db
}

// CreateUser 插入一个用户
func CreateUser(t *testing.T, db *gorm.DB, username string) *user.User {
	t.Helper()
	u := user.NewUser(username, username+"@example.com")
	require.NoError(t, sqlstore.NewUserRepository(db).Create(context.Background(), u))
	return u
}

// CreateBook 插入一本图书，price为十进制字符串（如"19.99"）
func CreateBook(t *testing.T, db *gorm.DB, title, author, price string) *book.Book {
	t.Helper()
	b, err := book.NewBook(book.NewBookParams{
		Title:  title,
		Author: author,
		Price:  decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	require.NoError(t, sqlstore.NewBookRepository(db).Create(context.Background(), b))
	return b
}

// CreateReview 插入一条书评
func CreateReview(t *testing.T, db *gorm.DB, bookID, userID int64, rating int) *review.Review {
	t.Helper()
	r, err := review.NewReview(bookID, userID, rating, "test review")
	require.NoError(t, err)
	require.NoError(t, sqlstore.NewReviewRepository(db).Create(context.Background(), r))
	return r
}

// UserOrders 按ID升序读取用户的订单
// 服务本身没有订单查询接口,测试直接查表核对结算结果
func UserOrders(t *testing.T, db *gorm.DB, userID int64) []sqlstore.OrderModel {
	t.Helper()
	var orders []sqlstore.OrderModel
	require.NoError(t, db.Where("user_id = ?", userID).Order("id ASC").Find(&orders).Error)
	return orders
}

// QueryCounter 统计db上执行的SQL语句数
// 用于断言N+1（leaky）和批量查询（optimized）的语句数差异
type QueryCounter struct {
	n atomic.Int64
}

// Count 当前计数
func (c *QueryCounter) Count() int64 { return c.n.Load() }

// Reset 清零
func (c *QueryCounter) Reset() { c.n.Store(0) }

// CountQueries 在db上注册计数回调
func CountQueries(t *testing.T, db *gorm.DB) *QueryCounter {
	t.Helper()

	c := &QueryCounter{}
	inc := func(*gorm.DB) { c.n.Add(1) }

	cb := db.Callback()
	require.NoError(t, cb.Query().After("gorm:query").Register("testutil:count_query", inc))
	require.NoError(t, cb.Row().After("gorm:row").Register("testutil:count_row", inc))
	require.NoError(t, cb.Raw().After("gorm:raw").Register("testutil:count_raw", inc))
	require.NoError(t, cb.Create().After("gorm:create").Register("testutil:count_create", inc))
	require.NoError(t, cb.Update().After("gorm:update").Register("testutil:count_update", inc))
	require.NoError(t, cb.Delete().After("gorm:delete").Register("testutil:count_delete", inc))
	return c
}

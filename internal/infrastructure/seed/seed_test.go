package seed

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/bookstore-perflab/internal/testutil"
)

func count(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Users = 12
	opts.Books = 30
	opts.Reviews = 50
	opts.BatchSize = 7
	opts.BookPool = 5
	opts.UserPool = 4
	return opts
}

func TestSeeder_Run(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	s := New(db, 42, zap.NewNop())

	summary, err := s.Run(ctx, smallOptions())
	require.NoError(t, err)
	assert.Equal(t, &Summary{Users: 12, Books: 30, Reviews: 50}, summary)

	assert.Equal(t, int64(12), count(t, db, &sqlstore.UserModel{}))
	assert.Equal(t, int64(30), count(t, db, &sqlstore.BookModel{}))
	assert.Equal(t, int64(50), count(t, db, &sqlstore.ReviewModel{}))

	t.Run("图书字段在合法范围内", func(t *testing.T) {
		var books []sqlstore.BookModel
		require.NoError(t, db.Find(&books).Error)
		for _, b := range books {
			assert.NotEmpty(t, b.Title)
			assert.NotEmpty(t, b.Author)
			require.NotNil(t, b.ISBN)
			assert.Len(t, *b.ISBN, 13)
			assert.True(t, b.Price.GreaterThanOrEqual(decimal.RequireFromString("9.99")), b.Price.String())
			assert.True(t, b.Price.LessThanOrEqual(decimal.RequireFromString("99.99")), b.Price.String())
			assert.Contains(t, Categories, b.Category)
			require.NotNil(t, b.PublishedYear)
			assert.GreaterOrEqual(t, *b.PublishedYear, 1950)
			assert.LessOrEqual(t, *b.PublishedYear, 2024)
		}
	})

	t.Run("书评只引用前N本书和前N个用户", func(t *testing.T) {
		var maxBook, maxUser int64
		var bookIDs, userIDs []int64
		require.NoError(t, db.Model(&sqlstore.BookModel{}).Order("id").Limit(5).Pluck("id", &bookIDs).Error)
		require.NoError(t, db.Model(&sqlstore.UserModel{}).Order("id").Limit(4).Pluck("id", &userIDs).Error)
		require.NoError(t, db.Model(&sqlstore.ReviewModel{}).Select("MAX(book_id)").Scan(&maxBook).Error)
		require.NoError(t, db.Model(&sqlstore.ReviewModel{}).Select("MAX(user_id)").Scan(&maxUser).Error)
		assert.LessOrEqual(t, maxBook, bookIDs[len(bookIDs)-1])
		assert.LessOrEqual(t, maxUser, userIDs[len(userIDs)-1])

		var ratings []int
		require.NoError(t, db.Model(&sqlstore.ReviewModel{}).Pluck("rating", &ratings).Error)
		for _, r := range ratings {
			assert.True(t, r >= 1 && r <= 5)
		}
	})

	t.Run("再次运行先清空", func(t *testing.T) {
		_, err := s.Run(ctx, smallOptions())
		require.NoError(t, err)
		assert.Equal(t, int64(12), count(t, db, &sqlstore.UserModel{}))
		assert.Equal(t, int64(30), count(t, db, &sqlstore.BookModel{}))
		assert.Equal(t, int64(50), count(t, db, &sqlstore.ReviewModel{}))
	})

	t.Run("Keep模式追加写入", func(t *testing.T) {
		opts := smallOptions()
		opts.Keep = true
		_, err := s.Run(ctx, opts)
		require.NoError(t, err)
		assert.Equal(t, int64(24), count(t, db, &sqlstore.UserModel{}))
		assert.Equal(t, int64(60), count(t, db, &sqlstore.BookModel{}))
		assert.Equal(t, int64(100), count(t, db, &sqlstore.ReviewModel{}))
	})
}

func TestSeeder_ClearRemovesCartAndOrders(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDB(t)
	u := testutil.CreateUser(t, db, "alice")
	b := testutil.CreateBook(t, db, "Go", "Rob", "10.00")
	require.NoError(t, db.Create(&sqlstore.CartItemModel{UserID: u.ID, BookID: b.ID, Quantity: 1, AddedAt: b.CreatedAt}).Error)
	require.NoError(t, db.Create(&sqlstore.OrderModel{UserID: u.ID, Total: decimal.RequireFromString("10.00"), Status: "pending", CreatedAt: b.CreatedAt}).Error)

	require.NoError(t, New(db, 1, zap.NewNop()).Clear(ctx))

	assert.Zero(t, count(t, db, &sqlstore.CartItemModel{}))
	assert.Zero(t, count(t, db, &sqlstore.OrderModel{}))
	assert.Zero(t, count(t, db, &sqlstore.BookModel{}))
	assert.Zero(t, count(t, db, &sqlstore.UserModel{}))
}

func TestSeeder_ReviewsWithoutBooks(t *testing.T) {
	db := testutil.NewTestDB(t)
	opts := smallOptions()
	opts.Books = 0

	summary, err := New(db, 7, zap.NewNop()).Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Reviews)
	assert.Zero(t, count(t, db, &sqlstore.ReviewModel{}))
}

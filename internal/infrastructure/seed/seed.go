// Package seed 生成压测用的假数据
//
// 默认规模与压测脚本约定一致:1000个用户、10000本书、5000条书评。
// 书评只挂在前1000本书和前500个用户上,这样热门图书的评分聚合会扫描到真实数据,
// 其余图书的评分为0。
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/persistence/sqlstore"
)

// 默认规模
const (
	DefaultUsers      = 1000
	DefaultBooks      = 10000
	DefaultReviews    = 5000
	DefaultBatchSize  = 500
	DefaultBookPool   = 1000
	DefaultReviewUser = 500
)

// Categories 图书分类
var Categories = []string{
	"Fiction", "Non-Fiction", "Science Fiction", "Fantasy",
	"Mystery", "Thriller", "Romance", "Biography",
	"History", "Science", "Technology", "Business",
	"Self-Help", "Poetry", "Drama", "Horror",
}

// Options 生成参数
type Options struct {
	Users     int
	Books     int
	Reviews   int
	Keep      bool // true时保留已有数据,追加写入
	BatchSize int

	// 书评引用的图书/用户范围(按id升序取前N个)
	BookPool int
	UserPool int
}

// DefaultOptions 默认参数
func DefaultOptions() Options {
	return Options{
		Users:     DefaultUsers,
		Books:     DefaultBooks,
		Reviews:   DefaultReviews,
		BatchSize: DefaultBatchSize,
		BookPool:  DefaultBookPool,
		UserPool:  DefaultReviewUser,
	}
}

// Summary 本次写入的行数
type Summary struct {
	Users   int `json:"users"`
	Books   int `json:"books"`
	Reviews int `json:"reviews"`
}

// Seeder 数据生成器
type Seeder struct {
	db     *gorm.DB
	faker  *gofakeit.Faker
	logger *zap.Logger
	now    func() time.Time
}

// New 创建Seeder
// seed为0时每次运行生成不同的数据
func New(db *gorm.DB, seed uint64, zl *zap.Logger) *Seeder {
	return &Seeder{
		db:     db,
		faker:  gofakeit.New(seed),
		logger: zl,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Run 清空(除非Keep)并写入用户、图书、书评
func (s *Seeder) Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.BatchSize <= 0 {
		opts.BatchSize = DefaultBatchSize
	}

	if !opts.Keep {
		if err := s.Clear(ctx); err != nil {
			return nil, err
		}
	}

	summary := &Summary{}
	var err error

	if summary.Users, err = s.loadUsers(ctx, opts.Users, opts.BatchSize); err != nil {
		return nil, err
	}
	if summary.Books, err = s.loadBooks(ctx, opts.Books, opts.BatchSize); err != nil {
		return nil, err
	}
	if summary.Reviews, err = s.loadReviews(ctx, opts); err != nil {
		return nil, err
	}

	s.logger.Info("数据生成完成",
		zap.Int("users", summary.Users),
		zap.Int("books", summary.Books),
		zap.Int("reviews", summary.Reviews),
	)
	return summary, nil
}

// Clear 删除全部业务数据
// 外键是RESTRICT,必须先删子表
func (s *Seeder) Clear(ctx context.Context) error {
	db := s.db.WithContext(ctx)
	for _, m := range []interface{}{
		&sqlstore.OrderModel{},
		&sqlstore.CartItemModel{},
		&sqlstore.ReviewModel{},
		&sqlstore.BookModel{},
		&sqlstore.UserModel{},
	} {
		if err := db.Where("1 = 1").Delete(m).Error; err != nil {
			return fmt.Errorf("清空数据失败: %w", err)
		}
	}
	s.logger.Info("已清空现有数据")
	return nil
}

func (s *Seeder) loadUsers(ctx context.Context, count, batchSize int) (int, error) {
	if count <= 0 {
		return 0, nil
	}

	// 用时间戳做前缀,--keep追加写入时也不会撞上唯一约束
	prefix := s.now().UnixNano()
	users := make([]sqlstore.UserModel, 0, count)
	for i := 0; i < count; i++ {
		users = append(users, sqlstore.UserModel{
			Username:  fmt.Sprintf("user_%d_%d_%d", prefix, i, s.faker.IntRange(1000, 9999)),
			Email:     fmt.Sprintf("user%d_%d@example%d.com", prefix, i, s.faker.IntRange(1, 999)),
			CreatedAt: s.createdAt(),
		})
	}

	if err := s.db.WithContext(ctx).CreateInBatches(users, batchSize).Error; err != nil {
		return 0, fmt.Errorf("写入用户失败: %w", err)
	}
	s.logger.Info("用户写入完成", zap.Int("count", count))
	return count, nil
}

func (s *Seeder) loadBooks(ctx context.Context, count, batchSize int) (int, error) {
	if count <= 0 {
		return 0, nil
	}

	// 已有ISBN也要避开(--keep模式)
	var existing []string
	if err := s.db.WithContext(ctx).Model(&sqlstore.BookModel{}).
		Where("isbn IS NOT NULL").Pluck("isbn", &existing).Error; err != nil {
		return 0, fmt.Errorf("读取已有ISBN失败: %w", err)
	}
	used := make(map[string]struct{}, len(existing)+count)
	for _, isbn := range existing {
		used[isbn] = struct{}{}
	}

	books := make([]sqlstore.BookModel, 0, count)
	for i := 0; i < count; i++ {
		isbn := s.uniqueISBN(used)
		year := s.faker.IntRange(1950, 2024)
		books = append(books, sqlstore.BookModel{
			Title:         s.faker.BookTitle() + " " + capitalize(s.faker.Noun()),
			Author:        s.faker.Name(),
			ISBN:          &isbn,
			Price:         decimal.NewFromFloat(s.faker.Float64Range(9.99, 99.99)).Round(2),
			Description:   truncate(s.faker.Sentence(30), 200),
			Stock:         s.faker.IntRange(0, 100),
			Category:      s.faker.RandomString(Categories),
			PublishedYear: &year,
			CreatedAt:     s.createdAt(),
		})
	}

	if err := s.db.WithContext(ctx).CreateInBatches(books, batchSize).Error; err != nil {
		return 0, fmt.Errorf("写入图书失败: %w", err)
	}
	s.logger.Info("图书写入完成", zap.Int("count", count))
	return count, nil
}

func (s *Seeder) loadReviews(ctx context.Context, opts Options) (int, error) {
	if opts.Reviews <= 0 {
		return 0, nil
	}

	db := s.db.WithContext(ctx)
	var bookIDs, userIDs []int64
	if err := db.Model(&sqlstore.BookModel{}).Order("id").Limit(opts.BookPool).Pluck("id", &bookIDs).Error; err != nil {
		return 0, fmt.Errorf("读取图书ID失败: %w", err)
	}
	if err := db.Model(&sqlstore.UserModel{}).Order("id").Limit(opts.UserPool).Pluck("id", &userIDs).Error; err != nil {
		return 0, fmt.Errorf("读取用户ID失败: %w", err)
	}
	if len(bookIDs) == 0 || len(userIDs) == 0 {
		s.logger.Warn("没有图书或用户,跳过书评生成")
		return 0, nil
	}

	reviews := make([]sqlstore.ReviewModel, 0, opts.Reviews)
	for i := 0; i < opts.Reviews; i++ {
		reviews = append(reviews, sqlstore.ReviewModel{
			BookID:    bookIDs[s.faker.IntRange(0, len(bookIDs)-1)],
			UserID:    userIDs[s.faker.IntRange(0, len(userIDs)-1)],
			Rating:    s.faker.IntRange(1, 5),
			Comment:   s.faker.Paragraph(1, 3, 12, " "),
			CreatedAt: s.createdAt(),
		})
	}

	if err := db.CreateInBatches(reviews, opts.BatchSize).Error; err != nil {
		return 0, fmt.Errorf("写入书评失败: %w", err)
	}
	s.logger.Info("书评写入完成", zap.Int("count", opts.Reviews))
	return opts.Reviews, nil
}

// createdAt 今年以内的随机时间
func (s *Seeder) createdAt() time.Time {
	now := s.now()
	start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	return s.faker.DateRange(start, now).UTC()
}

// uniqueISBN 生成不重复的13位ISBN
func (s *Seeder) uniqueISBN(used map[string]struct{}) string {
	for {
		isbn := s.faker.Numerify("978##########")
		if _, ok := used[isbn]; !ok {
			used[isbn] = struct{}{}
			return isbn
		}
	}
}

func capitalize(w string) string {
	if w == "" {
		return w
	}
	return strings.ToUpper(w[:1]) + w[1:]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

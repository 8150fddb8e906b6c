package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-perflab/internal/domain/review"
	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建书评仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// summaryRow 聚合查询的扫描目标
type summaryRow struct {
	BookID      int64
	AvgRating   float64
	ReviewCount int64
}

func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		BookID:    rv.BookID,
		UserID:    rv.UserID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建书评失败")
	}
	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	return nil
}

// SummaryFor 单本书的评分汇总
// SQL: SELECT COALESCE(AVG(rating),0), COUNT(*) FROM reviews WHERE book_id = ?
// reviews.book_id没有索引时,每次调用都是一次全表扫描
func (r *reviewRepository) SummaryFor(ctx context.Context, bookID int64) (review.Summary, error) {
	var row summaryRow
	err := getDB(ctx, r.db).
		Model(&ReviewModel{}).
		Select("COALESCE(AVG(rating), 0) AS avg_rating, COUNT(*) AS review_count").
		Where("book_id = ?", bookID).
		Scan(&row).Error
	if err != nil {
		return review.Summary{}, apperrors.Wrap(err, "查询评分失败")
	}
	return review.Summary{AvgRating: row.AvgRating, ReviewCount: row.ReviewCount}, nil
}

// SummariesFor 批量评分汇总
// SQL: SELECT book_id, AVG(rating), COUNT(*) FROM reviews WHERE book_id IN (...) GROUP BY book_id
func (r *reviewRepository) SummariesFor(ctx context.Context, bookIDs []int64) (map[int64]review.Summary, error) {
	result := make(map[int64]review.Summary, len(bookIDs))
	if len(bookIDs) == 0 {
		return result, nil
	}

	var rows []summaryRow
	err := getDB(ctx, r.db).
		Model(&ReviewModel{}).
		Select("book_id, AVG(rating) AS avg_rating, COUNT(*) AS review_count").
		Where("book_id IN ?", bookIDs).
		Group("book_id").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "批量查询评分失败")
	}

	for _, row := range rows {
		result[row.BookID] = review.Summary{AvgRating: row.AvgRating, ReviewCount: row.ReviewCount}
	}
	return result, nil
}

// ListByBook 某本书的全部书评
func (r *reviewRepository) ListByBook(ctx context.Context, bookID int64) ([]*review.Review, error) {
	var models []ReviewModel
	err := getDB(ctx, r.db).
		Where("book_id = ?", bookID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询书评失败")
	}

	reviews := make([]*review.Review, len(models))
	for i, m := range models {
		reviews[i] = &review.Review{
			ID:        m.ID,
			BookID:    m.BookID,
			UserID:    m.UserID,
			Rating:    m.Rating,
			Comment:   m.Comment,
			CreatedAt: m.CreatedAt,
		}
	}
	return reviews, nil
}

package review

import (
	"time"

	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
)

// 评分范围(数据库CHECK约束同样保证)
const (
	MinRating = 1
	MaxRating = 5
)

// ErrInvalidRating 评分超出范围
var ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "rating must be between 1 and 5")

// Review 书评实体
// 服务本身不提供写书评接口,数据由seed命令批量导入
type Review struct {
	ID        int64
	BookID    int64
	UserID    int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}

// NewReview 创建书评
func NewReview(bookID, userID int64, rating int, comment string) (*Review, error) {
	if rating < MinRating || rating > MaxRating {
		return nil, ErrInvalidRating
	}
	return &Review{
		BookID:    bookID,
		UserID:    userID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Summary 单本书的评分汇总
// 没有书评时AvgRating=0、ReviewCount=0
type Summary struct {
	AvgRating   float64
	ReviewCount int64
}

package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-perflab/internal/domain/user"
	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
)

// ErrUserDuplicate 用户名或邮箱已存在
var ErrUserDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "username or email already exists")

// userRepository 用户仓储实现
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

// Create 创建用户
func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := &UserModel{
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return ErrUserDuplicate
		}
		return apperrors.Wrap(err, "创建用户失败")
	}

	u.ID = model.ID
	u.CreatedAt = model.CreatedAt
	return nil
}

// Exists 用户是否存在
// SQL: SELECT count(*) FROM users WHERE id = ?（主键查询）
func (r *userRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var count int64
	if err := getDB(ctx, r.db).Model(&UserModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询用户失败")
	}
	return count > 0, nil
}

package sqlstore

import (
	"context"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-perflab/internal/domain/cart"
	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓储
func NewCartRepository(db *gorm.DB) cart.Repository {
	return &cartRepository{db: db}
}

// Add 插入一行
func (r *cartRepository) Add(ctx context.Context, item *cart.Item) error {
	model := &CartItemModel{
		UserID:   item.UserID,
		BookID:   item.BookID,
		Quantity: item.Quantity,
		AddedAt:  item.AddedAt,
	}
	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "加入购物车失败")
	}
	item.ID = model.ID
	return nil
}

// ListByUser 用户的购物车条目
// cart_items.user_id没有索引(leaky),每次都是全表扫描
func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]*cart.Item, error) {
	var models []CartItemModel
	err := getDB(ctx, r.db).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询购物车失败")
	}

	items := make([]*cart.Item, len(models))
	for i, m := range models {
		items[i] = &cart.Item{
			ID:       m.ID,
			UserID:   m.UserID,
			BookID:   m.BookID,
			Quantity: m.Quantity,
			AddedAt:  m.AddedAt,
		}
	}
	return items, nil
}

// DeleteByIDs 按ID删除
func (r *cartRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := getDB(ctx, r.db).Where("id IN ?", ids).Delete(&CartItemModel{})
	if result.Error != nil {
		return 0, apperrors.Wrap(result.Error, "清空购物车失败")
	}
	return result.RowsAffected, nil
}

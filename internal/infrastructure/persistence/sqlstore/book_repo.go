package sqlstore

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-perflab/internal/domain/book"
	apperrors "github.com/xiebiao/bookstore-perflab/pkg/errors"
)

// bookRepository 图书仓储实现(GORM)
// 设计说明:
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

// Create 创建图书
func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)

	if err := getDB(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}

	// 回填自增ID
	b.ID = model.ID
	b.CreatedAt = model.CreatedAt
	return nil
}

// FindByID 根据ID查找图书
func (r *bookRepository) FindByID(ctx context.Context, id int64) (*book.Book, error) {
	var model BookModel
	err := getDB(ctx, r.db).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// FindByIDs 批量查找图书: SELECT * FROM books WHERE id IN (...)
func (r *bookRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*book.Book, error) {
	result := make(map[int64]*book.Book, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var models []BookModel
	if err := getDB(ctx, r.db).Where("id IN ?", ids).Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "批量查询图书失败")
	}

	for i := range models {
		result[models[i].ID] = toBookEntity(&models[i])
	}
	return result, nil
}

// List 按ID升序分页
func (r *bookRepository) List(ctx context.Context, offset, limit int) ([]*book.Book, error) {
	var models []BookModel
	err := getDB(ctx, r.db).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书列表失败")
	}
	return toBookEntities(models), nil
}

// ListAll 全表加载
// 学习要点:推荐算法每次缓存未命中都会把整张books表读进内存
func (r *bookRepository) ListAll(ctx context.Context) ([]*book.Book, error) {
	var models []BookModel
	if err := getDB(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.Wrap(err, "查询全部图书失败")
	}
	return toBookEntities(models), nil
}

// Count 图书总数
func (r *bookRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := getDB(ctx, r.db).Model(&BookModel{}).Count(&total).Error; err != nil {
		return 0, apperrors.Wrap(err, "查询图书总数失败")
	}
	return total, nil
}

// Search 标题或作者模糊匹配(不区分大小写)
// SQL: WHERE LOWER(title) LIKE '%kw%' OR LOWER(author) LIKE '%kw%'
// 前导通配符+函数包裹列,即使optimized模式建了索引也用不上,只能全表扫描
func (r *bookRepository) Search(ctx context.Context, keyword string) ([]*book.Book, error) {
	if r.db.Dialector.Name() == "sqlite" {
		return r.searchFolded(ctx, keyword)
	}

	pattern := "%" + escapeLike(strings.ToLower(keyword)) + "%"

	var models []BookModel
	err := getDB(ctx, r.db).
		Where("LOWER(title) LIKE ? ESCAPE '!' OR LOWER(author) LIKE ? ESCAPE '!'", pattern, pattern).
		Order("id ASC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "搜索图书失败")
	}
	return toBookEntities(models), nil
}

// searchBatchSize SQLite下逐批扫描的批大小
const searchBatchSize = 1000

// searchFolded SQLite的LOWER只转换ASCII字母,"Émile"在SQL里永远匹配不到"émile"
// 这里仍然全表扫描,但大小写折叠和子串匹配放到Go里做,两侧使用同一套Unicode规则
func (r *bookRepository) searchFolded(ctx context.Context, keyword string) ([]*book.Book, error) {
	needle := strings.ToLower(keyword)

	var (
		matched []*book.Book
		batch   []BookModel
	)
	err := getDB(ctx, r.db).FindInBatches(&batch, searchBatchSize, func(tx *gorm.DB, _ int) error {
		for i := range batch {
			m := &batch[i]
			if strings.Contains(strings.ToLower(m.Title), needle) ||
				strings.Contains(strings.ToLower(m.Author), needle) {
				matched = append(matched, toBookEntity(m))
			}
		}
		return nil
	}).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "搜索图书失败")
	}
	return matched, nil
}

// escapeLike 转义LIKE通配符,让关键词按字面量匹配
// 用'!'作转义符:反斜杠在MySQL和PostgreSQL字符串字面量中的含义不一致
func escapeLike(s string) string {
	r := strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")
	return r.Replace(s)
}

// =========================================
// 辅助函数:模型转换
// =========================================

// toBookModel 领域实体 → GORM模型
func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		Price:         b.Price,
		Description:   b.Description,
		Stock:         b.Stock,
		Category:      b.Category,
		PublishedYear: b.PublishedYear,
		CreatedAt:     b.CreatedAt,
	}
}

// toBookEntity GORM模型 → 领域实体
func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:            model.ID,
		Title:         model.Title,
		Author:        model.Author,
		ISBN:          model.ISBN,
		Price:         model.Price,
		Description:   model.Description,
		Stock:         model.Stock,
		Category:      model.Category,
		PublishedYear: model.PublishedYear,
		CreatedAt:     model.CreatedAt,
	}
}

func toBookEntities(models []BookModel) []*book.Book {
	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books
}

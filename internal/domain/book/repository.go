package book

import (
	"context"
)

// Repository 图书仓储接口(依赖倒置原则)
// 设计说明:
// 1. 由domain层定义接口,infrastructure层实现
// 2. 便于替换数据库(mysql/postgres/sqlite)而不影响domain层
type Repository interface {
	// Create 创建图书
	// ISBN重复时返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id int64) (*Book, error)

	// FindByIDs 批量查找图书(一条IN查询),返回 id → Book
	// 不存在的ID不会出现在结果中
	FindByIDs(ctx context.Context, ids []int64) (map[int64]*Book, error)

	// List 按ID升序分页查询
	List(ctx context.Context, offset, limit int) ([]*Book, error)

	// ListAll 查询全部图书(推荐算法使用,全表加载)
	ListAll(ctx context.Context) ([]*Book, error)

	// Count 图书总数
	Count(ctx context.Context) (int64, error)

	// Search 标题或作者包含关键词(不区分大小写),按ID升序
	Search(ctx context.Context, keyword string) ([]*Book, error)
}

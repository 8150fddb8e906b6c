package sqlstore

import (
	"context"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架，按配置选择mysql/postgres/sqlite方言
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. SQL日志通过zap输出：debug模式打印每条SQL，其余模式只打印慢SQL
// 4. 注册指标回调，统计每类语句的数量（观察N+1）
// 5. 自动迁移表结构；optimized模式额外创建索引
func NewDB(cfg *config.Config, zl *zap.Logger) (*gorm.DB, error) {
	dialector, err := openDialector(cfg.Database)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: newGormLogger(zl, cfg.Server.Mode),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
		// 把各驱动的唯一约束错误统一翻译为gorm.ErrDuplicatedKey
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 学习要点：合理的连接池配置对性能至关重要
	// 压测时连接池耗尽表现为请求排队，P99飙升但数据库CPU并不高
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	if err := registerMetricsCallbacks(db); err != nil {
		return nil, fmt.Errorf("注册指标回调失败: %w", err)
	}

	if err := Migrate(db, cfg.IsOptimized()); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	zl.Info("数据库连接成功",
		zap.String("driver", cfg.Database.Driver),
		zap.String("variant", cfg.App.Variant),
	)
	return db, nil
}

// openDialector 按驱动名创建GORM方言
func openDialector(d config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := d.ConnString()
	switch d.Driver {
	case config.DriverMySQL:
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(dsn), nil
	default:
		return nil, fmt.Errorf("不支持的数据库驱动: %q", d.Driver)
	}
}

// newGormLogger 把GORM日志接到zap上
func newGormLogger(zl *zap.Logger, mode string) logger.Interface {
	level := logger.Warn
	if mode == "debug" {
		level = logger.Info // 开发环境打印每条SQL
	}

	return logger.New(
		zap.NewStdLog(zl.Named("gorm")),
		logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true, // 404是正常业务结果，不算SQL错误
			Colorful:                  false,
		},
	)
}

// Migrate 迁移表结构
// 学习要点：
// 1. AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
// 2. optimized=true时额外创建leaky模式缺失的索引
// 3. seed命令和测试也通过它建表
func Migrate(db *gorm.DB, optimized bool) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return err
	}
	if optimized {
		return createOptimizedIndexes(db)
	}
	return nil
}

// optimizedIndexes optimized模式补建的索引
var optimizedIndexes = []struct {
	model  interface{}
	name   string
	table  string
	column string
}{
	{&BookModel{}, "idx_books_title", "books", "title"},
	{&BookModel{}, "idx_books_author", "books", "author"},
	{&ReviewModel{}, "idx_reviews_book_id", "reviews", "book_id"},
	{&CartItemModel{}, "idx_cart_items_user_id", "cart_items", "user_id"},
}

// createOptimizedIndexes 创建索引（已存在则跳过）
// 这些索引不在模型tag里声明，否则leaky模式的AutoMigrate也会建出来
func createOptimizedIndexes(db *gorm.DB) error {
	m := db.Migrator()
	for _, idx := range optimizedIndexes {
		if m.HasIndex(idx.model, idx.name) {
			continue
		}
		stmt := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.column)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("创建索引%s失败: %w", idx.name, err)
		}
	}
	return nil
}

// Ping 检查数据库连通性（健康检查使用）
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// seed 向数据库写入压测用的假数据
//
// 用法:
//
//	seed --users 1000 --books 10000 --reviews 5000
//	seed --keep --books 5000          # 保留已有数据,追加5000本书
//	BOOKSTORE_DATABASE_DRIVER=sqlite seed
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/logger"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/seed"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		randSeed   uint64
		opts       = seed.DefaultOptions()
	)

	cmd := &cobra.Command{
		Use:          "seed",
		Short:        "生成用户、图书、书评假数据",
		Long:         "默认先清空users/books/reviews(以及引用它们的购物车和订单),再批量写入。--keep保留已有数据。",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configFile, randSeed, opts)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configFile, "config", "c", "", "配置文件路径(默认查找./config/config.yaml)")
	f.IntVar(&opts.Users, "users", opts.Users, "用户数量")
	f.IntVar(&opts.Books, "books", opts.Books, "图书数量")
	f.IntVar(&opts.Reviews, "reviews", opts.Reviews, "书评数量")
	f.BoolVar(&opts.Keep, "keep", false, "保留已有数据")
	f.IntVar(&opts.BatchSize, "batch-size", opts.BatchSize, "每批插入的行数")
	f.Uint64Var(&randSeed, "seed", 0, "随机种子,0表示每次不同")

	return cmd
}

func run(ctx context.Context, configFile string, randSeed uint64, opts seed.Options) error {
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	zl, restore, err := logger.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer restore()
	defer func() { _ = zl.Sync() }()

	// NewDB会按当前变体迁移表结构,seed之后直接可以启动服务
	db, err := sqlstore.NewDB(cfg, zl)
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	summary, err := seed.New(db, randSeed, zl).Run(ctx, opts)
	if err != nil {
		zl.Error("数据生成失败", zap.Error(err))
		return err
	}

	fmt.Printf("users=%d books=%d reviews=%d\n", summary.Users, summary.Books, summary.Reviews)
	return nil
}

// Bookstore Perflab API
//
// 带有刻意性能缺陷的书店服务,用于压测与性能分析实验。
// app.variant=leaky运行缺陷版本,app.variant=optimized运行修复后的对照组。
//
// @title        Bookstore Perflab API
// @version      1.0
// @description  带有刻意性能缺陷的书店API,用于压测与性能分析实验
// @host         localhost:5000
// @BasePath     /
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/logger"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/bookstore-perflab/pkg/metrics"
	"github.com/xiebiao/bookstore-perflab/pkg/tracing"
)

// shutdownTimeout 优雅退出时等待在途请求的最长时间
// 结算请求自带200ms模拟延迟,推荐冷启动可能更久
const shutdownTimeout = 15 * time.Second

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "api",
		Short:         "启动书店HTTP服务",
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), configFile)
		},
	}
	cmd.Flags().StringVarP(&configFile, "config", "c", "", "配置文件路径(默认查找./config/config.yaml)")
	return cmd
}

func run(ctx context.Context, configFile string) error {
	// 1. 加载配置
	cfg, err := config.Load(configFile)
	if err != nil {
		return err
	}

	// 2. 日志:替换zap全局Logger,之后各层统一用zap.L()
	zl, restore, err := logger.Setup(cfg.Log)
	if err != nil {
		return fmt.Errorf("初始化日志失败: %w", err)
	}
	defer restore()
	defer func() { _ = zl.Sync() }()

	// 3. 追踪:未启用时保持otel默认的no-op Provider
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
		if err != nil {
			return err
		}
		defer func() {
			if err := shutdown(context.Background()); err != nil {
				zl.Warn("关闭TracerProvider失败", zap.Error(err))
			}
		}()
	}

	// 4. 指标:必须在注册回调(NewDB)之前初始化,否则计数器为nil被忽略
	if cfg.Metrics.Enabled {
		metrics.InitMetrics()
	}

	// 5. 依赖注入
	engine, cleanup, err := InitializeApp(cfg, zl)
	if err != nil {
		return fmt.Errorf("初始化应用失败: %w", err)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		zl.Info("服务启动",
			zap.String("addr", srv.Addr),
			zap.String("variant", cfg.App.Variant),
			zap.String("cache", cfg.CacheBackend()),
			zap.String("driver", cfg.Database.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("HTTP服务异常退出: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zl.Info("收到退出信号,开始优雅关闭")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭HTTP服务失败: %w", err)
	}
	zl.Info("服务已停止")
	return nil
}

// provideDB 创建数据库连接并返回关闭函数
func provideDB(cfg *config.Config, zl *zap.Logger) (*gorm.DB, func(), error) {
	db, err := sqlstore.NewDB(cfg, zl)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
	return db, cleanup, nil
}

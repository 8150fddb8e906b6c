package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
)

// New 根据日志配置创建zap.Logger
//
// 学习要点：
// 1. console格式适合本地开发（人眼阅读），json格式适合压测时采集到Loki/ELK
// 2. 压测期间日志本身也是开销：高RPS下建议level=warn，只留慢请求和错误
// 3. Output支持stdout、stderr或文件路径（zap按路径打开文件并追加写入）
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zc.DisableCaller = !cfg.EnableCaller
	// 压测时保留全部日志行，不做采样
	zc.Sampling = nil

	switch cfg.Format {
	case "", "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	case "json":
		zc.Encoding = "json"
	default:
		return nil, fmt.Errorf("无效的日志格式: %q", cfg.Format)
	}

	output := cfg.Output
	if output == "" {
		output = "stdout"
	}
	zc.OutputPaths = []string{output}
	zc.ErrorOutputPaths = []string{"stderr"}

	return zc.Build()
}

// Setup 创建Logger并替换zap全局Logger
// 返回的restore用于恢复旧的全局Logger（主要给测试用）
func Setup(cfg config.LogConfig) (*zap.Logger, func(), error) {
	l, err := New(cfg)
	if err != nil {
		return nil, nil, err
	}
	restore := zap.ReplaceGlobals(l)
	return l, restore, nil
}

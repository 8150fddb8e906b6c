package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// 运行模式
// leaky: 原样保留所有性能缺陷（N+1、无索引、无界缓存），默认
// optimized: 对照组，修复上述缺陷，便于压测前后对比
const (
	VariantLeaky     = "leaky"
	VariantOptimized = "optimized"
)

// 数据库驱动
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// 推荐缓存后端
const (
	CacheMemory  = "memory"  // 进程内无界map，永不淘汰
	CacheBounded = "bounded" // 进程内有界TTL缓存（ristretto）
	CacheRedis   = "redis"   // 外部共享缓存
)

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件、环境变量覆盖
// 所有性能缺陷相关的"旋钮"（迭代次数、人为延迟、缓存后端）都在这里集中配置
type Config struct {
	App            AppConfig            `mapstructure:"app"`
	Server         ServerConfig         `mapstructure:"server"`
	Database       DatabaseConfig       `mapstructure:"database"`
	Redis          RedisConfig          `mapstructure:"redis"`
	Cache          CacheConfig          `mapstructure:"cache"`
	Recommendation RecommendationConfig `mapstructure:"recommendation"`
	Checkout       CheckoutConfig       `mapstructure:"checkout"`
	Log            LogConfig            `mapstructure:"log"`
	Metrics        MetricsConfig        `mapstructure:"metrics"`
	Tracing        TracingConfig        `mapstructure:"tracing"`
}

type AppConfig struct {
	Name    string `mapstructure:"name"`
	Variant string `mapstructure:"variant"` // leaky | optimized
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Swagger      bool          `mapstructure:"swagger"` // 是否挂载/swagger/*any
}

type DatabaseConfig struct {
	Driver          string        `mapstructure:"driver"` // mysql | postgres | sqlite
	DSN             string        `mapstructure:"dsn"`    // 非空时直接使用，忽略下面的分项
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"` // sqlite下为文件路径
	Charset         string        `mapstructure:"charset"`
	ParseTime       bool          `mapstructure:"parse_time"`
	Loc             string        `mapstructure:"loc"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// ConnString 按驱动生成连接字符串
//
//	mysql:    user:password@tcp(host:port)/dbname?charset=utf8mb4&parseTime=True&loc=Local
//	postgres: host=... port=... user=... password=... dbname=... sslmode=disable
//	sqlite:   bookstore.db
//
// 注意：mysql的loc参数需要URL编码（Asia/Shanghai → Asia%2FShanghai）
func (d DatabaseConfig) ConnString() string {
	if d.DSN != "" {
		return d.DSN
	}

	switch d.Driver {
	case DriverPostgres:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
	case DriverSQLite:
		return d.DBName
	default:
		loc := url.QueryEscape(d.Loc)
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=%s",
			d.User, d.Password, d.Host, d.Port, d.DBName, d.Charset, d.ParseTime, loc)
	}
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// 熔断:连续BreakerFailures次访问失败后,BreakerTimeout内不再访问Redis,推荐直接重新计算
	// BreakerFailures为0时不启用熔断
	BreakerFailures uint32        `mapstructure:"breaker_failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// CacheConfig 推荐缓存配置
type CacheConfig struct {
	Backend    string        `mapstructure:"backend"`     // memory | bounded | redis，留空时按variant选择
	MaxEntries int64         `mapstructure:"max_entries"` // bounded后端的容量上限
	TTL        time.Duration `mapstructure:"ttl"`         // bounded必填；redis为0表示永不过期
}

// RecommendationConfig 推荐打分参数
type RecommendationConfig struct {
	Iterations      int           `mapstructure:"iterations"`       // 每本书的打分循环次数
	TopN            int           `mapstructure:"top_n"`            // 返回条数
	ArtificialDelay time.Duration `mapstructure:"artificial_delay"` // 计算完成后的人为延迟
}

// CheckoutConfig 结算参数
type CheckoutConfig struct {
	ArtificialDelay time.Duration `mapstructure:"artificial_delay"` // 模拟支付网关耗时
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type TracingConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Endpoint    string  `mapstructure:"endpoint"` // OTLP gRPC，如localhost:4317
	SampleRatio float64 `mapstructure:"sample_ratio"`
	ServiceName string  `mapstructure:"service_name"`
}

// IsOptimized 是否运行对照组（已修复版本）
func (c *Config) IsOptimized() bool {
	return c.App.Variant == VariantOptimized
}

// CacheBackend 返回实际使用的缓存后端
// 显式配置优先；未配置时leaky用无界map，optimized用有界TTL缓存
func (c *Config) CacheBackend() string {
	if c.Cache.Backend != "" {
		return c.Cache.Backend
	}
	if c.IsOptimized() {
		return CacheBounded
	}
	return CacheMemory
}

// Default 返回内置默认配置（不读取文件和环境变量）
// 测试和seed命令直接使用它作为基础
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	// 默认值都是合法类型，Unmarshal不会失败
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults 注册默认值
// 同时让AutomaticEnv知道有哪些key（viper只对已知key做环境变量覆盖）
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "bookstore-perflab")
	v.SetDefault("app.variant", VariantLeaky)

	v.SetDefault("server.port", 5000)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 30*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.swagger", false)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.user", "bookstore")
	v.SetDefault("database.password", "bookstore")
	v.SetDefault("database.dbname", "bookstore.db")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parse_time", true)
	v.SetDefault("database.loc", "Local")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_open_conns", 20)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", time.Hour)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)
	v.SetDefault("redis.breaker_failures", 5)
	v.SetDefault("redis.breaker_timeout", 30*time.Second)

	v.SetDefault("cache.backend", "")
	v.SetDefault("cache.max_entries", 1000)
	v.SetDefault("cache.ttl", time.Minute)

	v.SetDefault("recommendation.iterations", 100)
	v.SetDefault("recommendation.top_n", 10)
	v.SetDefault("recommendation.artificial_delay", 100*time.Millisecond)

	v.SetDefault("checkout.artificial_delay", 200*time.Millisecond)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")
	v.SetDefault("log.enable_caller", false)

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.path", "/metrics")

	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.endpoint", "localhost:4317")
	v.SetDefault("tracing.sample_ratio", 0.1)
	v.SetDefault("tracing.service_name", "bookstore-perflab")
}

// Load 加载配置
// 支持：
// 1. configFile非空时读取指定文件
// 2. 否则查找./config/config.yaml或./config.yaml，找不到则只用默认值
// 3. 环境变量覆盖（如BOOKSTORE_DATABASE_DRIVER=sqlite、BOOKSTORE_APP_VARIANT=optimized）
func Load(configFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// 未显式指定文件时允许没有配置文件
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	// 环境变量绑定（database.driver → BOOKSTORE_DATABASE_DRIVER）
	v.SetEnvPrefix("BOOKSTORE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	switch cfg.App.Variant {
	case VariantLeaky, VariantOptimized:
	default:
		return fmt.Errorf("无效的运行模式: %q（可选leaky、optimized）", cfg.App.Variant)
	}

	switch cfg.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("不支持的数据库驱动: %q", cfg.Database.Driver)
	}

	switch cfg.CacheBackend() {
	case CacheMemory, CacheRedis:
	case CacheBounded:
		if cfg.Cache.MaxEntries <= 0 {
			return fmt.Errorf("bounded缓存必须设置cache.max_entries")
		}
		if cfg.Cache.TTL <= 0 {
			return fmt.Errorf("bounded缓存必须设置cache.ttl")
		}
	default:
		return fmt.Errorf("不支持的缓存后端: %q", cfg.Cache.Backend)
	}

	if cfg.Recommendation.TopN <= 0 {
		return fmt.Errorf("recommendation.top_n必须大于0")
	}
	if cfg.Recommendation.Iterations < 0 {
		return fmt.Errorf("recommendation.iterations不能为负数")
	}

	return nil
}

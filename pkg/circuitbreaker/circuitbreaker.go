// Package circuitbreaker 熔断器
//
// 本服务里唯一的远程依赖(除数据库外)是Redis推荐缓存。
// Redis宕机时,如果每个推荐请求都等满dial_timeout(默认5s)才降级为重新计算,
// 压测下goroutine会迅速堆积。熔断器在连续失败后直接返回ErrOpen,
// 调用方立即降级,过一段时间再放少量请求探测Redis是否恢复。
//
// 状态转换:
//
//	CLOSED --连续失败达到阈值--> OPEN --OpenTimeout到期--> HALF_OPEN
//	HALF_OPEN --探测成功--> CLOSED
//	HALF_OPEN --探测失败--> OPEN
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 正常放行,统计连续失败
	StateOpen                  // 快速失败,不调用下游
	StateHalfOpen              // 放行有限的探测请求
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half_open"
	default:
		return "unknown"
	}
}

// ErrOpen 熔断器打开(或半开状态探测名额已满)
var ErrOpen = errors.New("circuit breaker is open")

// 默认值
const (
	DefaultFailureThreshold    = 5
	DefaultOpenTimeout         = 30 * time.Second
	DefaultHalfOpenMaxRequests = 1
)

// Config 熔断器配置,零值字段使用默认值
type Config struct {
	Name                string
	FailureThreshold    uint32        // 连续失败多少次后打开
	OpenTimeout         time.Duration // OPEN状态持续时间
	HalfOpenMaxRequests uint32        // 半开状态允许的并发探测数

	// OnStateChange 状态变化回调(在持锁状态下调用,不要在回调里调用Breaker的方法)
	OnStateChange func(name string, from, to State)
}

// Breaker 基于连续失败次数的熔断器,并发安全
type Breaker struct {
	cfg Config
	now func() time.Time

	mu         sync.Mutex
	state      State
	generation uint64 // 每次状态切换递增,丢弃旧状态下发出的请求结果
	failures   uint32 // CLOSED下的连续失败数
	inFlight   uint32 // HALF_OPEN下已放行的探测数
	openUntil  time.Time
}

// New 创建熔断器
func New(cfg Config) *Breaker {
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = DefaultFailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = DefaultOpenTimeout
	}
	if cfg.HalfOpenMaxRequests == 0 {
		cfg.HalfOpenMaxRequests = DefaultHalfOpenMaxRequests
	}
	return &Breaker{cfg: cfg, now: time.Now}
}

// Execute 在熔断器保护下执行fn
// 熔断时不调用fn,直接返回ErrOpen;否则返回fn的错误
func (b *Breaker) Execute(fn func() error) error {
	generation, err := b.before()
	if err != nil {
		return err
	}

	err = fn()
	b.after(generation, err == nil)
	return err
}

// State 当前状态
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.current(b.now())
}

func (b *Breaker) before() (uint64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch b.current(b.now()) {
	case StateOpen:
		return b.generation, ErrOpen
	case StateHalfOpen:
		if b.inFlight >= b.cfg.HalfOpenMaxRequests {
			return b.generation, ErrOpen
		}
		b.inFlight++
	}
	return b.generation, nil
}

func (b *Breaker) after(generation uint64, success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	state := b.current(now)
	if generation != b.generation {
		return
	}

	switch state {
	case StateClosed:
		if success {
			b.failures = 0
			return
		}
		b.failures++
		if b.failures >= b.cfg.FailureThreshold {
			b.setState(StateOpen, now)
		}
	case StateHalfOpen:
		if success {
			b.setState(StateClosed, now)
		} else {
			b.setState(StateOpen, now)
		}
	}
}

// current 处理OPEN超时,返回当前状态(调用方持锁)
func (b *Breaker) current(now time.Time) State {
	if b.state == StateOpen && !now.Before(b.openUntil) {
		b.setState(StateHalfOpen, now)
	}
	return b.state
}

func (b *Breaker) setState(to State, now time.Time) {
	if b.state == to {
		return
	}
	from := b.state
	b.state = to
	b.generation++
	b.failures = 0
	b.inFlight = 0
	if to == StateOpen {
		b.openUntil = now.Add(b.cfg.OpenTimeout)
	}

	if b.cfg.OnStateChange != nil {
		b.cfg.OnStateChange(b.cfg.Name, from, to)
	}
}

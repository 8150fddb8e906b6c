package cache

import (
	"context"
	"errors"

	"github.com/xiebiao/bookstore-perflab/internal/domain/recommendation"
	"github.com/xiebiao/bookstore-perflab/pkg/circuitbreaker"
)

// Guarded 用熔断器包装远程缓存
// 熔断期间Get/Set/Len直接返回circuitbreaker.ErrOpen,推荐用例按未命中处理
type Guarded struct {
	next    recommendation.Cache
	breaker *circuitbreaker.Breaker
}

// NewGuarded 创建带熔断的缓存
func NewGuarded(next recommendation.Cache, breaker *circuitbreaker.Breaker) *Guarded {
	return &Guarded{next: next, breaker: breaker}
}

func (g *Guarded) Get(ctx context.Context, key string) (*recommendation.Result, bool, error) {
	var (
		result *recommendation.Result
		ok     bool
	)
	err := g.do(ctx, func() error {
		var err error
		result, ok, err = g.next.Get(ctx, key)
		return err
	})
	return result, ok, err
}

func (g *Guarded) Set(ctx context.Context, key string, result *recommendation.Result) error {
	return g.do(ctx, func() error {
		return g.next.Set(ctx, key, result)
	})
}

func (g *Guarded) Len(ctx context.Context) (int64, error) {
	var n int64
	err := g.do(ctx, func() error {
		var err error
		n, err = g.next.Len(ctx)
		return err
	})
	return n, err
}

// do 调用方取消请求导致的失败不计入熔断统计
func (g *Guarded) do(ctx context.Context, fn func() error) error {
	var callErr error
	err := g.breaker.Execute(func() error {
		callErr = fn()
		if callErr != nil && ctx.Err() != nil && errors.Is(callErr, ctx.Err()) {
			return nil
		}
		return callErr
	})
	if err != nil {
		return err
	}
	return callErr
}

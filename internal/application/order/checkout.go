package order

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	cartapp "github.com/xiebiao/bookstore-perflab/internal/application/cart"
	"github.com/xiebiao/bookstore-perflab/internal/domain/cart"
	"github.com/xiebiao/bookstore-perflab/internal/domain/order"
	"github.com/xiebiao/bookstore-perflab/internal/domain/user"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/bookstore-perflab/pkg/metrics"
	"github.com/xiebiao/bookstore-perflab/pkg/tracing"
)

// CheckoutUseCase 结算用例
// 教学要点:这是整个项目并发问题最集中的用例
//
// 流程:读购物车 → 逐条取当前价格算总价 → 建订单 → 删除购物车条目 → 模拟支付
//
// leaky模式的问题:
//  1. 建订单和清购物车是两条独立语句,中间失败会留下"订单已建、购物车未清"
//  2. 没有任何锁,同一用户并发结算会读到同一份购物车,产生两张订单
//  3. 价格逐条查询(N+1)
//
// optimized模式:建单 + 清购物车在同一个事务里,价格一次IN查询
// 并发重复结算仍然可能发生(需要SELECT FOR UPDATE或唯一约束),留作练习
type CheckoutUseCase struct {
	userService user.Service
	cartRepo    cart.Repository
	orderRepo   order.Repository
	lines       *cartapp.LineLoader
	txManager   *sqlstore.TxManager
	useTx       bool
	payDelay    time.Duration
}

// NewCheckoutUseCase 创建结算用例
func NewCheckoutUseCase(
	userService user.Service,
	cartRepo cart.Repository,
	orderRepo order.Repository,
	lines *cartapp.LineLoader,
	txManager *sqlstore.TxManager,
	cfg *config.Config,
) *CheckoutUseCase {
	return &CheckoutUseCase{
		userService: userService,
		cartRepo:    cartRepo,
		orderRepo:   orderRepo,
		lines:       lines,
		txManager:   txManager,
		useTx:       cfg.IsOptimized(),
		payDelay:    cfg.Checkout.ArtificialDelay,
	}
}

// CheckoutResponse 结算响应DTO
type CheckoutResponse struct {
	OrderID   int64           `json:"order_id"`
	UserID    int64           `json:"user_id"`
	Total     decimal.Decimal `json:"total"`
	Status    order.Status    `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// Execute 执行结算
func (uc *CheckoutUseCase) Execute(ctx context.Context, userID int64) (resp *CheckoutResponse, err error) {
	ctx, span := tracing.StartSpan(ctx, "CheckoutUseCase.Execute")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", userID))

	start := time.Now()
	defer func() {
		metrics.ObserveHistogram(metrics.CheckoutDuration, time.Since(start).Seconds())
		if err != nil {
			metrics.IncCounter(metrics.OrdersFailedTotal)
			span.RecordError(err)
		}
	}()

	// 1. 用户必须存在
	if err := uc.userService.EnsureExists(ctx, userID); err != nil {
		return nil, err
	}

	// 2. 建单 + 清购物车
	var created *order.Order
	placeOrder := func(ctx context.Context) error {
		o, err := uc.placeOrder(ctx, userID)
		if err != nil {
			return err
		}
		created = o
		return nil
	}

	if uc.useTx {
		err = uc.txManager.Transaction(ctx, placeOrder)
	} else {
		err = placeOrder(ctx)
	}
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.OrdersCreatedTotal)

	// 3. 模拟支付网关耗时(订单已经提交,这段时间里数据库连接已归还)
	if uc.payDelay > 0 {
		time.Sleep(uc.payDelay)
	}

	zap.L().Debug("结算完成",
		zap.Int64("order_id", created.ID),
		zap.Int64("user_id", userID),
		zap.String("total", created.Total.StringFixed(2)),
		zap.String("trace_id", tracing.ExtractTraceID(ctx)),
	)

	return &CheckoutResponse{
		OrderID:   created.ID,
		UserID:    created.UserID,
		Total:     created.Total,
		Status:    created.Status,
		CreatedAt: created.CreatedAt,
	}, nil
}

// placeOrder 读购物车、计价、建单、删除读到的条目
// 只删除本次读到的行:读取之后新加入的条目留在购物车里,不会被静默丢弃
func (uc *CheckoutUseCase) placeOrder(ctx context.Context, userID int64) (*order.Order, error) {
	items, err := uc.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, cart.ErrCartEmpty
	}

	lines, err := uc.lines.Load(ctx, items)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(userID, cart.Total(lines))
	if err != nil {
		return nil, err
	}
	if err := uc.orderRepo.Create(ctx, o); err != nil {
		return nil, err
	}

	ids := make([]int64, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}
	if _, err := uc.cartRepo.DeleteByIDs(ctx, ids); err != nil {
		return nil, err
	}

	return o, nil
}

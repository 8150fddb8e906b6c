package recommendation

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	bookapp "github.com/xiebiao/bookstore-perflab/internal/application/book"
	"github.com/xiebiao/bookstore-perflab/internal/domain/book"
	"github.com/xiebiao/bookstore-perflab/internal/domain/recommendation"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-perflab/pkg/metrics"
	"github.com/xiebiao/bookstore-perflab/pkg/tracing"
)

// DefaultUserID 未提供或无法解析user_id时使用的用户
const DefaultUserID = 1

// RecommendUseCase 个性化推荐用例
//
// 一次未命中的代价:
//  1. 全表加载图书(SELECT * FROM books,没有分页)
//  2. 每本书一条评分查询(leaky)
//  3. 每本书Iterations次打分循环,再对全部图书排序
//  4. 固定的人为延迟
//
// 命中时直接返回缓存里的结果,不看生成时间
// user_id不校验,任何整数都会产生一个新的缓存条目
type RecommendUseCase struct {
	bookRepo book.Repository
	ratings  *bookapp.RatingLoader
	cache    recommendation.Cache
	scorer   *recommendation.Scorer
	delay    time.Duration
}

// NewRecommendUseCase 创建推荐用例
func NewRecommendUseCase(
	bookRepo book.Repository,
	ratings *bookapp.RatingLoader,
	cache recommendation.Cache,
	scorer *recommendation.Scorer,
	cfg *config.Config,
) *RecommendUseCase {
	return &RecommendUseCase{
		bookRepo: bookRepo,
		ratings:  ratings,
		cache:    cache,
		scorer:   scorer,
		delay:    cfg.Recommendation.ArtificialDelay,
	}
}

// NewScorer 按配置创建打分器
func NewScorer(cfg *config.Config) *recommendation.Scorer {
	return recommendation.NewScorer(cfg.Recommendation.Iterations, cfg.Recommendation.TopN)
}

// Item 一条推荐
type Item struct {
	Book  bookapp.BookView `json:"book"`
	Score float64          `json:"score"`
}

// Response 推荐响应DTO
type Response struct {
	Recommendations []Item    `json:"recommendations"`
	GeneratedAt     time.Time `json:"generated_at"`
}

// Execute 执行推荐
// 缓存读写失败只记录日志:Redis抖动时退化为每次重新计算,而不是让接口报错
func (uc *RecommendUseCase) Execute(ctx context.Context, userID int64) (*Response, error) {
	ctx, span := tracing.StartSpan(ctx, "RecommendUseCase.Execute")
	defer span.End()
	span.SetAttributes(attribute.Int64("user.id", userID))

	key := recommendation.CacheKey(userID)

	cached, ok, err := uc.cache.Get(ctx, key)
	if err != nil {
		zap.L().Warn("读取推荐缓存失败", zap.String("key", key), zap.Error(err))
	}
	if ok {
		metrics.IncCounterVec(metrics.RecommendationCacheRequests, map[string]string{"result": "hit"})
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return toResponse(cached), nil
	}
	metrics.IncCounterVec(metrics.RecommendationCacheRequests, map[string]string{"result": "miss"})
	span.SetAttributes(attribute.Bool("cache.hit", false))

	result, err := uc.compute(ctx)
	if err != nil {
		return nil, err
	}

	if err := uc.cache.Set(ctx, key, result); err != nil {
		zap.L().Warn("写入推荐缓存失败", zap.String("key", key), zap.Error(err))
	}

	return toResponse(result), nil
}

// compute 缓存未命中时的完整计算
func (uc *RecommendUseCase) compute(ctx context.Context) (*recommendation.Result, error) {
	start := time.Now()

	books, err := uc.bookRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	ratings, err := uc.ratings.Load(ctx, books)
	if err != nil {
		return nil, err
	}

	candidates := make([]recommendation.ScoredBook, len(books))
	for i, b := range books {
		candidates[i] = recommendation.ScoredBook{Book: b, Rating: ratings[b.ID]}
	}
	top := uc.scorer.Rank(candidates)

	if uc.delay > 0 {
		time.Sleep(uc.delay)
	}

	metrics.ObserveHistogram(metrics.RecommendationComputeDuration, time.Since(start).Seconds())

	return &recommendation.Result{
		Items:       top,
		GeneratedAt: time.Now().UTC(),
	}, nil
}

func toResponse(r *recommendation.Result) *Response {
	items := make([]Item, len(r.Items))
	for i, sb := range r.Items {
		items[i] = Item{
			Book:  bookapp.NewBookView(sb.Book, sb.Rating),
			Score: sb.Score,
		}
	}
	return &Response{
		Recommendations: items,
		GeneratedAt:     r.GeneratedAt,
	}
}

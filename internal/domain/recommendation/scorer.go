package recommendation

import (
	"math/rand/v2"
	"sort"
	"time"
	"unicode/utf8"
)

// 打分权重
const (
	ratingWeight  = 10.0 // 平均分每1分的权重
	recencyWeight = 5.0  // 出版越近权重越高,满分对应当年出版
	recencyWindow = 50   // 超过50年的书不再有新近度加分
)

// Scorer 推荐打分器
//
// 学习要点(这是故意写"慢"的代码):
// 1. 每本书固定循环Iterations次,没有提前退出,CPU时间 = 书数 × 迭代次数
// 2. 每次迭代都混入随机噪声,结果无法被记忆化
// 3. 调用方对全部图书打分后整体排序,只取TopN,排序开销O(n log n)而不是堆的O(n log k)
type Scorer struct {
	Iterations int
	TopN       int

	// Rand 返回[0,1)随机数,测试中可替换为确定序列
	Rand func() float64
	// Now 用于计算新近度
	Now func() time.Time
}

// NewScorer 创建打分器
func NewScorer(iterations, topN int) *Scorer {
	return &Scorer{
		Iterations: iterations,
		TopN:       topN,
		Rand:       rand.Float64,
		Now:        time.Now,
	}
}

// Score 计算一本书的得分
// 每次迭代:随机数 × len(title) × len(author) + 平均分因子 + 新近度因子
func (s *Scorer) Score(b ScoredBook) float64 {
	noise := float64(utf8.RuneCountInString(b.Book.Title) * utf8.RuneCountInString(b.Book.Author))
	rating := b.Rating.AvgRating * ratingWeight
	recency := s.recency(b.Book.PublishedYear) * recencyWeight

	var score float64
	for i := 0; i < s.Iterations; i++ {
		score += s.Rand()*noise + rating + recency
	}
	return score
}

// recency 新近度,范围[0,1]
// 出版年未知按0处理
func (s *Scorer) recency(year *int) float64 {
	if year == nil {
		return 0
	}
	age := s.Now().Year() - *year
	if age < 0 {
		age = 0
	}
	if age >= recencyWindow {
		return 0
	}
	return float64(recencyWindow-age) / recencyWindow
}

// Rank 为所有图书打分,整体按得分降序排序后取前TopN
// 得分相同按图书ID升序,保证结果稳定
func (s *Scorer) Rank(candidates []ScoredBook) []ScoredBook {
	for i := range candidates {
		candidates[i].Score = s.Score(candidates[i])
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Book.ID < candidates[j].Book.ID
	})

	n := s.TopN
	if n > len(candidates) {
		n = len(candidates)
	}
	top := make([]ScoredBook, n)
	copy(top, candidates[:n])
	return top
}

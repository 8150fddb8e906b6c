package sqlstore

import (
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-perflab/pkg/metrics"
)

// registerMetricsCallbacks 在每类GORM操作之后计数
//
// 学习要点：
// 压测时对比db_queries_total的增长速度和http_requests_total，
// 就能算出"每个请求平均发了多少条SQL"。
// leaky模式下GET /api/books?per_page=20约21条，optimized模式下3条。
func registerMetricsCallbacks(db *gorm.DB) error {
	cb := db.Callback()

	hooks := []struct {
		name     string
		register func(name string, fn func(*gorm.DB)) error
	}{
		{"query", func(n string, fn func(*gorm.DB)) error { return cb.Query().After("gorm:query").Register(n, fn) }},
		{"create", func(n string, fn func(*gorm.DB)) error { return cb.Create().After("gorm:create").Register(n, fn) }},
		{"update", func(n string, fn func(*gorm.DB)) error { return cb.Update().After("gorm:update").Register(n, fn) }},
		{"delete", func(n string, fn func(*gorm.DB)) error { return cb.Delete().After("gorm:delete").Register(n, fn) }},
		{"row", func(n string, fn func(*gorm.DB)) error { return cb.Row().After("gorm:row").Register(n, fn) }},
		{"raw", func(n string, fn func(*gorm.DB)) error { return cb.Raw().After("gorm:raw").Register(n, fn) }},
	}

	for _, h := range hooks {
		op := h.name
		if err := h.register("metrics:"+op, func(*gorm.DB) {
			metrics.IncCounterVec(metrics.DBQueriesTotal, map[string]string{"operation": op})
		}); err != nil {
			return err
		}
	}
	return nil
}

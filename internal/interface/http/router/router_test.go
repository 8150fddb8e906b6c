package router_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookstore-perflab/internal/application/book"
	appcart "github.com/xiebiao/bookstore-perflab/internal/application/cart"
	apphealth "github.com/xiebiao/bookstore-perflab/internal/application/health"
	apporder "github.com/xiebiao/bookstore-perflab/internal/application/order"
	apprec "github.com/xiebiao/bookstore-perflab/internal/application/recommendation"
	"github.com/xiebiao/bookstore-perflab/internal/domain/book"
	"github.com/xiebiao/bookstore-perflab/internal/domain/user"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/cache"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-perflab/internal/infrastructure/persistence/sqlstore"
	"github.com/xiebiao/bookstore-perflab/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-perflab/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-perflab/internal/interface/http/router"
	"github.com/xiebiao/bookstore-perflab/internal/testutil"
	"github.com/xiebiao/bookstore-perflab/pkg/metrics"
)

type testApp struct {
	engine *gin.Engine
	db     *gorm.DB
}

func newTestConfig(variant string) *config.Config {
	cfg := config.Default()
	cfg.App.Variant = variant
	cfg.Server.Mode = gin.TestMode
	cfg.Recommendation.Iterations = 3
	cfg.Recommendation.ArtificialDelay = 0
	cfg.Checkout.ArtificialDelay = 0
	return cfg
}

// newTestApp 按cmd/api的依赖图手工组装,数据库换成临时SQLite
func newTestApp(t *testing.T, cfg *config.Config) *testApp {
	t.Helper()

	var db *gorm.DB
	if cfg.IsOptimized() {
		db = testutil.NewOptimizedTestDB(t)
	} else {
		db = testutil.NewTestDB(t)
	}

	recCache, cleanup, err := cache.New(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(cleanup)

	bookRepo := sqlstore.NewBookRepository(db)
	reviewRepo := sqlstore.NewReviewRepository(db)
	cartRepo := sqlstore.NewCartRepository(db)
	bookService := book.NewService(bookRepo)
	userService := user.NewService(sqlstore.NewUserRepository(db))
	ratings := appbook.NewRatingLoader(reviewRepo, cfg)
	lines := appcart.NewLineLoader(bookRepo, cfg)

	h := &router.Handlers{
		Book: handler.NewBookHandler(
			appbook.NewListBooksUseCase(bookRepo, ratings),
			appbook.NewGetBookUseCase(bookService, reviewRepo),
			appbook.NewCreateBookUseCase(bookService),
			appbook.NewSearchBooksUseCase(bookRepo, ratings),
		),
		Cart: handler.NewCartHandler(
			appcart.NewAddToCartUseCase(userService, bookService, cartRepo),
			appcart.NewViewCartUseCase(cartRepo, lines),
		),
		Order: handler.NewOrderHandler(apporder.NewCheckoutUseCase(
			userService, cartRepo, sqlstore.NewOrderRepository(db), lines, sqlstore.NewTxManager(db), cfg,
		)),
		Recommendation: handler.NewRecommendationHandler(apprec.NewRecommendUseCase(
			bookRepo, ratings, recCache, apprec.NewScorer(cfg), cfg,
		)),
		Health: handler.NewHealthHandler(apphealth.NewCheckUseCase(db, recCache, cfg)),
	}

	return &testApp{engine: router.New(cfg, h), db: db}
}

func (a *testApp) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var out map[string]interface{}
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	}
	return w, out
}

var variants = []string{config.VariantLeaky, config.VariantOptimized}

func TestHealth(t *testing.T) {
	app := newTestApp(t, newTestConfig(config.VariantLeaky))

	w, body := app.do(t, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["database"])
	assert.Equal(t, "leaky", body["variant"])
	assert.Equal(t, float64(0), body["cache_entries"])
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	t.Run("沿用调用方的请求ID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set(middleware.RequestIDHeader, "load-test-42")
		w := httptest.NewRecorder()
		app.engine.ServeHTTP(w, req)
		assert.Equal(t, "load-test-42", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("数据库不可用返回503", func(t *testing.T) {
		sqlDB, err := app.db.DB()
		require.NoError(t, err)
		require.NoError(t, sqlDB.Close())

		w, body := app.do(t, http.MethodGet, "/health", "")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Equal(t, "error", body["status"])
		assert.NotEqual(t, "ok", body["database"])
	})
}

func TestCreateBook(t *testing.T) {
	app := newTestApp(t, newTestConfig(config.VariantLeaky))

	w, body := app.do(t, http.MethodPost, "/api/books",
		`{"title":"Dune","author":"Frank Herbert","price":19.99,"isbn":"9780441172719","stock":3,"category":"Science Fiction","published_year":1965}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotZero(t, body["id"])
	assert.Equal(t, "Dune", body["title"])
	assert.Equal(t, 19.99, body["price"], "价格输出为JSON数字")
	assert.Equal(t, float64(3), body["stock"])
	assert.Equal(t, float64(0), body["avg_rating"])
	assert.Equal(t, float64(0), body["review_count"])

	t.Run("价格可以是数字字符串", func(t *testing.T) {
		w, body := app.do(t, http.MethodPost, "/api/books", `{"title":"Emma","author":"Jane Austen","price":"7.50"}`)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, 7.5, body["price"])
		assert.Equal(t, float64(0), body["stock"], "stock缺省为0")
	})

	tests := []struct {
		name    string
		body    string
		status  int
		message string
	}{
		{"缺少title", `{"author":"A","price":1}`, http.StatusBadRequest, "title is required"},
		{"title为空字符串", `{"title":"","author":"A","price":1}`, http.StatusBadRequest, "title is required"},
		{"缺少author", `{"title":"T","price":1}`, http.StatusBadRequest, "author is required"},
		{"缺少price", `{"title":"T","author":"A"}`, http.StatusBadRequest, "price is required"},
		{"price为null", `{"title":"T","author":"A","price":null}`, http.StatusBadRequest, "price is required"},
		{"price不是数字", `{"title":"T","author":"A","price":"abc"}`, http.StatusBadRequest, "price must be a non-negative number"},
		{"price为布尔值", `{"title":"T","author":"A","price":true}`, http.StatusBadRequest, "price must be a non-negative number"},
		{"price为负数", `{"title":"T","author":"A","price":-1}`, http.StatusBadRequest, "price must be a non-negative number"},
		{"stock为负数", `{"title":"T","author":"A","price":1,"stock":-2}`, http.StatusBadRequest, "stock must be a non-negative integer"},
		{"stock不是整数", `{"title":"T","author":"A","price":1,"stock":"many"}`, http.StatusBadRequest, "stock must be a non-negative integer"},
		{"未知字段", `{"title":"T","author":"A","price":1,"foo":"bar"}`, http.StatusBadRequest, `unknown field "foo"`},
		{"JSON格式错误", `{"title":`, http.StatusBadRequest, "malformed JSON body"},
		{"title超长", `{"title":"` + strings.Repeat("t", 256) + `","author":"A","price":1}`, http.StatusBadRequest, "title must be at most 255 characters"},
		{"author超长", `{"title":"T","author":"` + strings.Repeat("a", 256) + `","price":1}`, http.StatusBadRequest, "author must be at most 255 characters"},
		{"isbn超长", `{"title":"T","author":"A","price":1,"isbn":"12345678901234567890"}`, http.StatusBadRequest, "isbn must be at most 13 characters"},
		{"category超长", `{"title":"T","author":"A","price":1,"category":"` + strings.Repeat("c", 101) + `"}`, http.StatusBadRequest, "category must be at most 100 characters"},
		{"price超出decimal(10,2)", `{"title":"T","author":"A","price":"123456789012.345"}`, http.StatusBadRequest, "price must not exceed 99999999.99"},
		{"ISBN重复", `{"title":"Dune II","author":"Frank Herbert","price":1,"isbn":"9780441172719"}`, http.StatusConflict, "isbn already exists"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := app.do(t, http.MethodPost, "/api/books", tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.message, body["error"])
		})
	}
}

func TestGetBook(t *testing.T) {
	app := newTestApp(t, newTestConfig(config.VariantLeaky))
	b := testutil.CreateBook(t, app.db, "Neuromancer", "William Gibson", "11.00")
	u := testutil.CreateUser(t, app.db, "case")
	testutil.CreateReview(t, app.db, b.ID, u.ID, 5)
	testutil.CreateReview(t, app.db, b.ID, u.ID, 3)

	w, body := app.do(t, http.MethodGet, fmt.Sprintf("/api/books/%d", b.ID), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Neuromancer", body["title"])
	assert.Equal(t, "William Gibson", body["author"])
	assert.Equal(t, float64(11), body["price"])
	assert.Equal(t, float64(4), body["avg_rating"])
	assert.Equal(t, float64(2), body["review_count"])
	assert.Len(t, body["reviews"], 2)

	w, body = app.do(t, http.MethodGet, "/api/books/abc", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "id must be a positive integer", body["error"])

	w, body = app.do(t, http.MethodGet, "/api/books/999999", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "book not found", body["error"])
}

func TestListBooks(t *testing.T) {
	for _, variant := range variants {
		t.Run(variant, func(t *testing.T) {
			app := newTestApp(t, newTestConfig(variant))
			for i := 0; i < 25; i++ {
				testutil.CreateBook(t, app.db, fmt.Sprintf("Book %02d", i), "Author", "5.00")
			}

			w, body := app.do(t, http.MethodGet, "/api/books?page=2&per_page=10", "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, body["books"], 10)
			assert.Equal(t, float64(25), body["total"])
			assert.Equal(t, float64(2), body["page"])
			assert.Equal(t, float64(10), body["per_page"])
			assert.Equal(t, float64(3), body["pages"])

			first := body["books"].([]interface{})[0].(map[string]interface{})
			assert.Equal(t, "Book 10", first["title"], "按id升序分页")

			w, body = app.do(t, http.MethodGet, "/api/books?page=abc&per_page=-5", "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, body["books"], 20)
			assert.Equal(t, float64(1), body["page"])
			assert.Equal(t, float64(20), body["per_page"])

			w, body = app.do(t, http.MethodGet, "/api/books?per_page=1000", "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Len(t, body["books"], 25, "per_page没有上限")
		})
	}
}

func TestSearch(t *testing.T) {
	app := newTestApp(t, newTestConfig(config.VariantLeaky))
	testutil.CreateBook(t, app.db, "The Go Programming Language", "Alan Donovan", "39.99")
	testutil.CreateBook(t, app.db, "Learning Python", "Mark Lutz", "49.99")

	w, body := app.do(t, http.MethodGet, "/api/search?q=GO", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, "GO", body["query"])

	w, body = app.do(t, http.MethodGet, "/api/search?q=lutz", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), body["total"], "作者也参与匹配")

	testutil.CreateBook(t, app.db, "Émile", "Jean-Jacques Rousseau", "8.00")
	for _, q := range []string{"%C3%A9mile", "%C3%89MILE"} { // émile、ÉMILE
		w, body = app.do(t, http.MethodGet, "/api/search?q="+q, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), body["total"], q)
	}

	w, body = app.do(t, http.MethodGet, "/api/search?q=nothing-matches", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, []interface{}{}, body["results"])

	w, body = app.do(t, http.MethodGet, "/api/search", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), body["total"])
	assert.Equal(t, []interface{}{}, body["results"])
}

func TestCartAndCheckout(t *testing.T) {
	for _, variant := range variants {
		t.Run(variant, func(t *testing.T) {
			app := newTestApp(t, newTestConfig(variant))
			u := testutil.CreateUser(t, app.db, "buyer")
			b := testutil.CreateBook(t, app.db, "SICP", "Abelson", "12.50")

			w, body := app.do(t, http.MethodPost, "/api/cart/add",
				fmt.Sprintf(`{"user_id":%d,"book_id":%d,"quantity":2}`, u.ID, b.ID))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.Equal(t, "Added to cart", body["message"])
			item := body["item"].(map[string]interface{})
			assert.Equal(t, float64(2), item["quantity"])

			w, body = app.do(t, http.MethodGet, fmt.Sprintf("/api/cart?user_id=%d", u.ID), "")
			require.Equal(t, http.StatusOK, w.Code)
			items := body["items"].([]interface{})
			require.Len(t, items, 1)
			line := items[0].(map[string]interface{})
			assert.Equal(t, "SICP", line["title"])
			assert.Equal(t, 12.5, line["price"])
			assert.Equal(t, float64(25), line["subtotal"])
			assert.Equal(t, float64(25), body["total"])

			w, body = app.do(t, http.MethodPost, "/api/checkout", fmt.Sprintf(`{"user_id":%d}`, u.ID))
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())
			assert.NotZero(t, body["order_id"])
			assert.Equal(t, float64(25), body["total"])
			assert.Equal(t, "pending", body["status"])

			w, body = app.do(t, http.MethodGet, fmt.Sprintf("/api/cart?user_id=%d", u.ID), "")
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, []interface{}{}, body["items"])
			assert.Equal(t, float64(0), body["total"])

			w, body = app.do(t, http.MethodPost, "/api/checkout", fmt.Sprintf(`{"user_id":%d}`, u.ID))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "Cart is empty", body["error"])
		})
	}
}

func TestCartValidation(t *testing.T) {
	app := newTestApp(t, newTestConfig(config.VariantLeaky))
	u := testutil.CreateUser(t, app.db, "buyer")
	b := testutil.CreateBook(t, app.db, "SICP", "Abelson", "12.50")

	tests := []struct {
		name    string
		method  string
		path    string
		body    string
		status  int
		message string
	}{
		{"缺少user_id", http.MethodPost, "/api/cart/add", fmt.Sprintf(`{"book_id":%d}`, b.ID), http.StatusBadRequest, "user_id is required"},
		{"user_id不是整数", http.MethodPost, "/api/cart/add", fmt.Sprintf(`{"user_id":"x","book_id":%d}`, b.ID), http.StatusBadRequest, "user_id must be a positive integer"},
		{"book_id为负数", http.MethodPost, "/api/cart/add", fmt.Sprintf(`{"user_id":%d,"book_id":-1}`, u.ID), http.StatusBadRequest, "book_id must be a positive integer"},
		{"数量为0", http.MethodPost, "/api/cart/add", fmt.Sprintf(`{"user_id":%d,"book_id":%d,"quantity":0}`, u.ID, b.ID), http.StatusBadRequest, "quantity must be a positive integer"},
		{"用户不存在", http.MethodPost, "/api/cart/add", fmt.Sprintf(`{"user_id":9999,"book_id":%d}`, b.ID), http.StatusNotFound, "invalid user"},
		{"图书不存在", http.MethodPost, "/api/cart/add", fmt.Sprintf(`{"user_id":%d,"book_id":9999}`, u.ID), http.StatusNotFound, "book not found"},
		{"查看购物车缺少user_id", http.MethodGet, "/api/cart", "", http.StatusBadRequest, "user_id is required"},
		{"查看购物车user_id非法", http.MethodGet, "/api/cart?user_id=abc", "", http.StatusBadRequest, "user_id must be a positive integer"},
		{"结算用户不存在", http.MethodPost, "/api/checkout", `{"user_id":9999}`, http.StatusNotFound, "invalid user"},
		{"结算缺少请求体", http.MethodPost, "/api/checkout", "", http.StatusBadRequest, "request body is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := app.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
			assert.Equal(t, tt.message, body["error"])
		})
	}

	t.Run("数量缺省为1", func(t *testing.T) {
		w, body := app.do(t, http.MethodPost, "/api/cart/add", fmt.Sprintf(`{"user_id":%d,"book_id":%d}`, u.ID, b.ID))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, float64(1), body["item"].(map[string]interface{})["quantity"])
	})
}

func TestRecommendations(t *testing.T) {
	cfg := newTestConfig(config.VariantLeaky)
	cfg.Recommendation.TopN = 3
	app := newTestApp(t, cfg)
	for i := 0; i < 5; i++ {
		testutil.CreateBook(t, app.db, fmt.Sprintf("Book %d", i), "Author", "9.99")
	}

	w, first := app.do(t, http.MethodGet, "/api/recommendations?user_id=7", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Len(t, first["recommendations"], 3)
	assert.NotEmpty(t, first["generated_at"])

	// 新增图书不影响已缓存的结果
	testutil.CreateBook(t, app.db, "Latecomer", "Author", "1.00")
	_, second := app.do(t, http.MethodGet, "/api/recommendations?user_id=7", "")
	assert.Equal(t, first, second)

	t.Run("user_id非法时按1处理", func(t *testing.T) {
		w, _ := app.do(t, http.MethodGet, "/api/recommendations?user_id=abc", "")
		require.Equal(t, http.StatusOK, w.Code)

		_, health := app.do(t, http.MethodGet, "/health", "")
		assert.Equal(t, float64(2), health["cache_entries"], "rec_7和rec_1")
	})
}

func TestUnknownRoute(t *testing.T) {
	app := newTestApp(t, newTestConfig(config.VariantLeaky))

	w, body := app.do(t, http.MethodGet, "/api/v1/books", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "resource not found", body["error"])
}

func TestOptionalSurfaces(t *testing.T) {
	t.Run("默认不暴露metrics和swagger", func(t *testing.T) {
		app := newTestApp(t, newTestConfig(config.VariantLeaky))
		w, _ := app.do(t, http.MethodGet, "/metrics", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		w, _ = app.do(t, http.MethodGet, "/swagger/doc.json", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("开启后可访问", func(t *testing.T) {
		metrics.InitMetrics()
		cfg := newTestConfig(config.VariantLeaky)
		cfg.Metrics.Enabled = true
		cfg.Server.Swagger = true
		app := newTestApp(t, cfg)

		app.do(t, http.MethodGet, "/health", "")

		w, _ := app.do(t, http.MethodGet, "/metrics", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/health",status="200"}`)

		w, _ = app.do(t, http.MethodGet, "/swagger/doc.json", "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "/api/recommendations")
	})
}

package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
	"gocloud.dev/blob/memblob"
	"golang.org/x/crypto/bcrypt"

	appbook "github.com/xiebiao/bookstore-backend/internal/application/book"
	"github.com/xiebiao/bookstore-backend/internal/application/catalog"
	applookup "github.com/xiebiao/bookstore-backend/internal/application/lookup"
	apporder "github.com/xiebiao/bookstore-backend/internal/application/order"
	appreview "github.com/xiebiao/bookstore-backend/internal/application/review"
	appuser "github.com/xiebiao/bookstore-backend/internal/application/user"
	"github.com/xiebiao/bookstore-backend/internal/domain/author"
	"github.com/xiebiao/bookstore-backend/internal/domain/book"
	"github.com/xiebiao/bookstore-backend/internal/domain/genre"
	"github.com/xiebiao/bookstore-backend/internal/domain/lookup"
	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	"github.com/xiebiao/bookstore-backend/internal/domain/publisher"
	"github.com/xiebiao/bookstore-backend/internal/domain/review"
	"github.com/xiebiao/bookstore-backend/internal/domain/user"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/messaging"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/openlibrary"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/persistence/mysql/sqlitetest"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/storage"
	apihttp "github.com/xiebiao/bookstore-backend/internal/interface/http"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/handler"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-backend/pkg/circuitbreaker"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/jwt"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// memorySessions 内存版会话存储+黑名单
type memorySessions struct {
	mu        sync.Mutex
	sessions  map[uint]map[string]string
	blacklist map[string]bool
}

func newMemorySessions() *memorySessions {
	return &memorySessions{sessions: map[uint]map[string]string{}, blacklist: map[string]bool{}}
}

func (m *memorySessions) SaveSession(_ context.Context, userID uint, data map[string]interface{}, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := map[string]string{}
	for k, v := range data {
		s[k] = jsonString(v)
	}
	m.sessions[userID] = s
	return nil
}

func (m *memorySessions) GetSession(_ context.Context, userID uint) (map[string]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[userID]
	if !ok {
		return nil, apperrors.ErrUnauthorized
	}
	return s, nil
}

func (m *memorySessions) DeleteSession(_ context.Context, userID uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

func (m *memorySessions) AddToBlacklist(_ context.Context, token string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ttl > 0 {
		m.blacklist[token] = true
	}
	return nil
}

func (m *memorySessions) IsInBlacklist(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.blacklist[token], nil
}

func jsonString(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}

// noCache 不缓存
type noCache struct{}

func (noCache) Get(context.Context, string, int) (*lookup.Result, error) { return nil, nil }
func (noCache) Set(context.Context, string, int, *lookup.Result) error   { return nil }

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type RouterSuite struct {
	suite.Suite
	router http.Handler
	token  string
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	t := s.T()
	log := zap.NewNop()
	db := sqlitetest.Open(t)

	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.Server.DefaultPageSize = 5
	cfg.Server.MaxPageSize = 100

	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"numFound":1,"docs":[{"key":"/works/OL1W","title":"Dune","author_name":["Frank Herbert"],"edition_count":3}]}`))
	}))
	t.Cleanup(upstream.Close)

	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	covers := storage.NewCoverStoreWithBucket(bucket, 1<<20)

	sessions := newMemorySessions()
	jwtManager := jwt.NewManager("test-secret", time.Hour, 24*time.Hour)

	userRepo := mysql.NewUserRepository(db)
	bookRepo := mysql.NewBookRepository(db)
	orderRepo := mysql.NewOrderRepository(db)

	userService := user.NewService(userRepo, bcrypt.MinCost)
	bookService := book.NewService(bookRepo, mysql.NewBookReferences(db))
	reviewUseCase := appreview.NewReviewUseCase(review.NewService(mysql.NewReviewRepository(db), bookRepo))
	events := messaging.NewOrderEvents(nil, log)
	paging := handler.NewPaging(cfg)

	catalogClient := openlibrary.New(upstream.URL, upstream.Client(), circuitbreaker.Config{Timeout: time.Minute}, log)

	handlers := &apihttp.Handlers{
		User: handler.NewUserHandler(
			appuser.NewRegisterUseCase(userService),
			appuser.NewLoginUseCase(userService, jwtManager, sessions, log),
			appuser.NewRefreshTokenUseCase(userService, jwtManager, sessions),
			appuser.NewLogoutUseCase(sessions),
		),
		Book: handler.NewBookHandler(
			appbook.NewPublishBookUseCase(bookService, covers, log),
			appbook.NewListBooksUseCase(bookService),
			appbook.NewManageBookUseCase(bookService, mysql.NewTxManager(db), covers, log),
			appbook.NewCoverUseCase(bookService, covers, log),
			reviewUseCase,
			paging,
		),
		Publisher: handler.NewPublisherHandler(catalog.NewPublisherUseCase(publisher.NewService(mysql.NewPublisherRepository(db))), paging),
		Author:    handler.NewAuthorHandler(catalog.NewAuthorUseCase(author.NewService(mysql.NewAuthorRepository(db))), paging),
		Genre:     handler.NewGenreHandler(catalog.NewGenreUseCase(genre.NewService(mysql.NewGenreRepository(db))), paging),
		Review:    handler.NewReviewHandler(reviewUseCase, paging),
		Order: handler.NewOrderHandler(
			apporder.NewPlaceOrderUseCase(orderRepo, bookRepo, mysql.NewTxManager(db), events, log),
			apporder.NewManageOrderUseCase(orderRepo, order.NewService(bookRepo), events, log),
			paging,
		),
		Lookup: handler.NewLookupHandler(applookup.NewSearchUseCase(catalogClient, noCache{}, 10, 50, log)),
	}

	s.router = apihttp.NewRouter(cfg, log, handlers, middleware.NewAuthMiddleware(jwtManager, sessions))
	s.token = s.login("reader@example.com")
}

func (s *RouterSuite) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.T(), json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	return s.serve(req)
}

func (s *RouterSuite) serve(req *http.Request) (*httptest.ResponseRecorder, envelope) {
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func (s *RouterSuite) login(email string) string {
	s.token = ""
	w, _ := s.do(http.MethodPost, "/api/v1/users/register", obj{"email": email, "password": "secret123", "nickname": "reader"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	w, env := s.do(http.MethodPost, "/api/v1/users/login", obj{"email": email, "password": "secret123"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var data struct {
		AccessToken string `json:"access_token"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	return data.AccessToken
}

// obj JSON请求体
type obj map[string]interface{}

func (s *RouterSuite) create(path string, body interface{}) uint {
	w, env := s.do(http.MethodPost, path, body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var data struct {
		ID uint `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	return data.ID
}

func (s *RouterSuite) createBook(publisherID uint, title, price string, stock int) uint {
	return s.create("/api/v1/books", obj{
		"title":          title,
		"publisher_id":   publisherID,
		"published_date": "2001-02-03",
		"price":          price,
		"stock_quantity": stock,
	})
}

func (s *RouterSuite) publisher() uint {
	return s.create("/api/v1/publishers", obj{"name": "Penguin", "location": "London", "established_year": 1935})
}

func (s *RouterSuite) TestRequiresAuth() {
	s.token = ""
	w, env := s.do(http.MethodGet, "/api/v1/books", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(apperrors.ErrCodeUnauthorized, env.Code)

	s.token = "garbage"
	w, env = s.do(http.MethodGet, "/api/v1/books", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(apperrors.ErrCodeInvalidToken, env.Code)

	w, _ = s.do(http.MethodGet, "/ping", nil)
	s.Equal(http.StatusOK, w.Code)
}

func (s *RouterSuite) TestLogoutBlacklistsToken() {
	w, _ := s.do(http.MethodPost, "/api/v1/users/logout", nil)
	s.Require().Equal(http.StatusNoContent, w.Code)

	w, env := s.do(http.MethodGet, "/api/v1/books", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
	s.Equal(apperrors.ErrCodeTokenExpired, env.Code)
}

func (s *RouterSuite) TestPlaceOrder() {
	pub := s.publisher()
	a := s.createBook(pub, "A", "10.00", 3)
	b := s.createBook(pub, "B", "25.50", 1)

	// [(A,2),(B,1)] → 45.50，A剩1本，B剩0本
	w, env := s.do(http.MethodPost, "/api/v1/orders", obj{
		"books": []uint{a, a, b},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var placed struct {
		ID         uint   `json:"id"`
		TotalPrice string `json:"total_price"`
		Status     string `json:"status"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &placed))
	s.Equal("45.50", placed.TotalPrice)
	s.Equal("P", placed.Status)

	s.assertStock(a, 1)
	s.assertStock(b, 0)

	// [(B,2)] 库存不足，库存不变
	w, env = s.do(http.MethodPost, "/api/v1/orders", obj{
		"items": []obj{{"book_id": b, "quantity": 2}},
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(apperrors.ErrCodeInsufficientStock, env.Code)
	var shortage order.Shortage
	s.Require().NoError(json.Unmarshal(env.Data, &shortage))
	s.Equal(order.Shortage{BookID: b, Title: "B", Available: 0, Requested: 2}, shortage)
	s.assertStock(a, 1)

	// 状态修改、总价核对
	w, env = s.do(http.MethodPatch, "/api/v1/orders/"+strconv.Itoa(int(placed.ID)), obj{"status": "C"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(string(env.Data), `"status":"C"`)

	w, _ = s.do(http.MethodPut, "/api/v1/orders/"+strconv.Itoa(int(placed.ID)), obj{"status": "X"})
	s.Equal(http.StatusBadRequest, w.Code)

	w, env = s.do(http.MethodGet, "/api/v1/orders/"+strconv.Itoa(int(placed.ID))+"/total", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(string(env.Data), `"consistent":true`)

	w, _ = s.do(http.MethodPost, "/api/v1/orders", obj{"books": []uint{}})
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *RouterSuite) assertStock(bookID uint, want int) {
	w, env := s.do(http.MethodGet, "/api/v1/books/"+strconv.Itoa(int(bookID)), nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var got struct {
		StockQuantity int `json:"stock_quantity"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &got))
	s.Equal(want, got.StockQuantity, "book %d", bookID)
}

func (s *RouterSuite) TestBookFiltersAndPaging() {
	pub := s.publisher()
	for _, price := range []string{"15.00", "20.00", "35.00", "50.00", "50.01"} {
		s.createBook(pub, "Book "+price, price, 1)
	}

	w, env := s.do(http.MethodGet, "/api/v1/books?price_min=20&price_max=50&ordering=price", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var page struct {
		List []struct {
			Price string `json:"price"`
		} `json:"list"`
		Total    int64 `json:"total"`
		PageSize int   `json:"page_size"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &page))
	s.Equal(int64(3), page.Total)
	s.Equal(5, page.PageSize)
	prices := make([]string, 0, len(page.List))
	for _, b := range page.List {
		prices = append(prices, b.Price)
	}
	s.Equal([]string{"20.00", "35.00", "50.00"}, prices)

	// page_size超过上限时截断
	w, env = s.do(http.MethodGet, "/api/v1/books?page_size=1000", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(env.Data, &page))
	s.Equal(100, page.PageSize)

	w, env = s.do(http.MethodGet, "/api/v1/books?page=abc", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(apperrors.ErrCodeInvalidParams, env.Code)
	s.Contains(string(env.Data), "page")

	w, env = s.do(http.MethodGet, "/api/v1/books?price_min=abc", nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(string(env.Data), "price_min")
}

func (s *RouterSuite) TestBookValidation() {
	pub := s.publisher()
	w, env := s.do(http.MethodPost, "/api/v1/books", obj{
		"title":          "Bad",
		"publisher_id":   pub,
		"published_date": "03/02/2001",
		"price":          "1.999",
		"stock_quantity": -1,
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal(apperrors.ErrCodeInvalidParams, env.Code)
	var details map[string]string
	s.Require().NoError(json.Unmarshal(env.Data, &details))
	s.Contains(details, "published_date")
	s.Contains(details, "price")
	s.Contains(details, "stock_quantity")

	w, env = s.do(http.MethodPost, "/api/v1/books", obj{
		"title":          "Orphan",
		"publisher_id":   pub,
		"author_ids":     []uint{42},
		"published_date": "2001-02-03",
		"price":          "9.99",
		"stock_quantity": 1,
	})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(string(env.Data), "author_ids")
}

func (s *RouterSuite) TestBookCoverUpload() {
	pub := s.publisher()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range map[string]string{
		"title":          "Covered",
		"publisher_id":   strconv.Itoa(int(pub)),
		"published_date": "2001-02-03",
		"price":          "12.50",
		"stock_quantity": "2",
	} {
		s.Require().NoError(mw.WriteField(k, v))
	}
	fw, err := mw.CreateFormFile("cover_image", "cover.png")
	s.Require().NoError(err)
	_, err = fw.Write(pngHeader)
	s.Require().NoError(err)
	s.Require().NoError(mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/books", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)
	w, env := s.serve(req)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		ID       uint   `json:"id"`
		Price    string `json:"price"`
		CoverURL string `json:"cover_url"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &created))
	s.Equal("12.50", created.Price)
	s.Require().NotEmpty(created.CoverURL)

	req = httptest.NewRequest(http.MethodGet, created.CoverURL, nil)
	req.Header.Set("Authorization", "Bearer "+s.token)
	w = httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	s.Equal(http.StatusOK, w.Code)
	s.Equal("image/png", w.Header().Get("Content-Type"))
	s.Equal(pngHeader, w.Body.Bytes())

	// 没有文件
	w, env = s.do(http.MethodPut, created.CoverURL, nil)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(string(env.Data), "cover_image")
}

func (s *RouterSuite) TestReviews() {
	pub := s.publisher()
	bookID := s.createBook(pub, "Dune", "29.99", 1)

	for _, rating := range []int{0, 6} {
		w, env := s.do(http.MethodPost, "/api/v1/reviews", obj{"book_id": bookID, "review_text": "ok", "rating": rating})
		s.Equal(http.StatusBadRequest, w.Code, "rating=%d", rating)
		s.Contains(string(env.Data), "rating")
	}
	for _, rating := range []int{1, 5} {
		s.create("/api/v1/reviews", obj{"book_id": bookID, "review_text": "ok", "rating": rating})
	}

	w, env := s.do(http.MethodGet, "/api/v1/books/"+strconv.Itoa(int(bookID))+"/reviews", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(string(env.Data), `"total":2`)

	// 其他用户不能修改
	reviewID := s.create("/api/v1/reviews", obj{"book_id": bookID, "review_text": "mine", "rating": 3})
	s.token = s.login("other@example.com")
	w, env = s.do(http.MethodDelete, "/api/v1/reviews/"+strconv.Itoa(int(reviewID)), nil)
	s.Equal(http.StatusForbidden, w.Code)
	s.Equal(apperrors.ErrCodeForbidden, env.Code)
}

func (s *RouterSuite) TestCatalogCRUD() {
	id := s.publisher()
	path := "/api/v1/publishers/" + strconv.Itoa(int(id))

	w, env := s.do(http.MethodPatch, path, obj{"location": "New York"})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.Contains(string(env.Data), `"location":"New York"`)
	s.Contains(string(env.Data), `"name":"Penguin"`)

	w, env = s.do(http.MethodPost, "/api/v1/publishers", obj{"name": "Penguin", "location": "London", "established_year": 1935})
	s.Equal(http.StatusConflict, w.Code)
	s.Equal(apperrors.ErrCodeDuplicateEntry, env.Code)

	w, _ = s.do(http.MethodDelete, path, nil)
	s.Equal(http.StatusNoContent, w.Code)
	w, _ = s.do(http.MethodGet, path, nil)
	s.Equal(http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodGet, "/api/v1/publishers/abc", nil)
	s.Equal(http.StatusBadRequest, w.Code)

	authorID := s.create("/api/v1/authors", obj{"first_name": "George", "last_name": "Orwell"})
	s.NotZero(authorID)
	genreID := s.create("/api/v1/genres", obj{"name": "Classic"})
	s.NotZero(genreID)
}

func (s *RouterSuite) TestCatalogSearch() {
	w, env := s.do(http.MethodGet, "/api/v1/catalog/search?q=dune&limit=1", nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var result struct {
		Query    string `json:"query"`
		NumFound int    `json:"num_found"`
		Works    []struct {
			Title string `json:"title"`
		} `json:"works"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &result))
	s.Equal("dune", result.Query)
	s.Equal(1, result.NumFound)
	s.Equal("Dune", result.Works[0].Title)

	w, _ = s.do(http.MethodGet, "/api/v1/catalog/search", nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = "test"
	cfg.CORS = config.CORSConfig{
		Enabled:      true,
		AllowOrigins: []string{"http://localhost:3000"},
		AllowMethods: []string{"GET", "POST"},
		MaxAge:       time.Minute,
	}
	r := apihttp.NewRouter(cfg, zap.NewNop(), &apihttp.Handlers{}, middleware.NewAuthMiddleware(nil, nil))

	// 未注册OPTIONS路由也能完成预检，且不经过认证
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/books", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	require.Equal(t, "60", w.Header().Get("Access-Control-Max-Age"))
}

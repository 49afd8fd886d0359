package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	appcategory "github.com/xiebiao/bookshelf/internal/application/category"
	apporder "github.com/xiebiao/bookshelf/internal/application/order"
	appreview "github.com/xiebiao/bookshelf/internal/application/review"
	appuser "github.com/xiebiao/bookshelf/internal/application/user"
	"github.com/xiebiao/bookshelf/internal/domain/user"
	"github.com/xiebiao/bookshelf/internal/infrastructure/config"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/sqldb"
	"github.com/xiebiao/bookshelf/internal/interface/http/handler"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/jwt"
)

type testServer struct {
	engine *gin.Engine
	db     *gorm.DB
	jwt    *jwt.Manager
	users  user.Repository
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	db, err := sqldb.OpenSQLite(":memory:")
	require.NoError(t, err)

	jwtManager := jwt.NewManager("router-test-secret", time.Hour, 24*time.Hour)
	hasher := user.NewPasswordHasher(bcrypt.MinCost)
	blacklist := redis.NewMemoryBlacklist()
	tx := sqldb.NewTxManager(db)

	users := sqldb.NewUserRepository(db)
	profiles := sqldb.NewProfileRepository(db)
	categories := sqldb.NewCategoryRepository(db)
	books := sqldb.NewBookRepository(db)
	reviews := sqldb.NewReviewRepository(db)
	orders := sqldb.NewOrderRepository(db)

	h := &Handlers{
		Auth: handler.NewAuthHandler(
			appuser.NewRegisterUseCase(users, profiles, hasher, tx),
			appuser.NewTokenUseCase(users, hasher, jwtManager),
			appuser.NewRefreshUseCase(jwtManager),
			appuser.NewLogoutUseCase(jwtManager, blacklist),
		),
		Category: handler.NewCategoryHandler(
			appcategory.NewListCategoriesUseCase(categories),
			appcategory.NewGetCategoryUseCase(categories),
			appcategory.NewCreateCategoryUseCase(categories),
			appcategory.NewUpdateCategoryUseCase(categories),
			appcategory.NewDeleteCategoryUseCase(categories),
		),
		Book: handler.NewBookHandler(
			appbook.NewListBooksUseCase(books, reviews),
			appbook.NewGetBookUseCase(books, reviews),
			appbook.NewCreateBookUseCase(books, categories),
			appbook.NewUpdateBookUseCase(books, categories, reviews),
			appbook.NewDeleteBookUseCase(books),
		),
		Review: handler.NewReviewHandler(
			appreview.NewListReviewsUseCase(reviews),
			appreview.NewGetReviewUseCase(reviews),
			appreview.NewCreateReviewUseCase(reviews, books, orders),
			appreview.NewUpdateReviewUseCase(reviews),
			appreview.NewDeleteReviewUseCase(reviews),
		),
		Order: handler.NewOrderHandler(
			apporder.NewCreateOrderUseCase(orders, books, tx),
			apporder.NewListOrdersUseCase(orders),
			apporder.NewGetOrderUseCase(orders),
			apporder.NewUpdateStatusUseCase(orders),
			apporder.NewDeleteOrderUseCase(orders),
		),
	}

	cfg := &config.Config{Server: config.ServerConfig{Mode: gin.TestMode}}
	auth := middleware.NewAuthMiddleware(jwtManager, blacklist, users)
	return &testServer{
		engine: New(cfg, h, auth, nil),
		db:     db,
		jwt:    jwtManager,
		users:  users,
	}
}

// createUser 直接写库并签发Token
func (s *testServer) createUser(t *testing.T, name string, staff bool) string {
	t.Helper()
	u := user.NewUser(name, "hashed", "")
	u.IsStaff = staff
	require.NoError(t, s.users.Create(context.Background(), u))
	pair, err := s.jwt.GenerateToken(u.ID, u.Username)
	require.NoError(t, err)
	return pair.AccessToken
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w, env
}

func decode[T any](t *testing.T, raw json.RawMessage) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(raw, &v))
	return v
}

// seedBook 管理员通过API创建分类和图书
func (s *testServer) seedBook(t *testing.T, adminToken string, stock int) uint {
	t.Helper()
	w, env := s.do(t, http.MethodPost, "/api/v1/categories/", adminToken, gin.H{"name": "技术"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cat := decode[struct {
		ID uint `json:"id"`
	}](t, env.Data)

	w, env = s.do(t, http.MethodPost, "/api/v1/books/", adminToken, gin.H{
		"title":          "Go语言实战",
		"author":         "威廉·肯尼迪",
		"isbn":           "9787115428028",
		"price":          "10.00",
		"stock":          stock,
		"published_date": "2017-01-01",
		"category":       cat.ID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	b := decode[appbook.BookDTO](t, env.Data)
	return b.ID
}

func TestPublicEndpoints(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.do(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")

	w, _ = s.do(t, http.MethodGet, "/swagger/doc.json", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/v1/books/")

	w, _ = s.do(t, http.MethodGet, "/swagger/", "", nil)
	assert.Equal(t, http.StatusMovedPermanently, w.Code)
	assert.Equal(t, "/swagger/index.html", w.Header().Get("Location"))

	w, _ = s.do(t, http.MethodGet, "/swagger/index.html", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/redoc/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/swagger/doc.json")

	w, _ = s.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, env := s.do(t, http.MethodGet, "/api/v1/books/", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, env.Code)

	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestCatalogWritePermissions(t *testing.T) {
	s := newTestServer(t)
	alice := s.createUser(t, "alice", false)

	w, env := s.do(t, http.MethodPost, "/api/v1/categories/", "", gin.H{"name": "小说"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.ErrCodeUnauthorized, env.Code)

	w, env = s.do(t, http.MethodPost, "/api/v1/categories/", alice, gin.H{"name": "小说"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperrors.ErrCodeNotStaff, env.Code)

	admin := s.createUser(t, "admin", true)
	w, _ = s.do(t, http.MethodPost, "/api/v1/categories/", admin, gin.H{"name": "小说"})
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/categories/", alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/categories/abc/", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestInvalidToken(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/v1/books/", "not-a-jwt", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.ErrCodeInvalidToken, env.Code)
}

func TestOrderFlow(t *testing.T) {
	s := newTestServer(t)
	admin := s.createUser(t, "admin", true)
	alice := s.createUser(t, "alice", false)
	bookID := s.seedBook(t, admin, 5)

	// 未登录不能下单
	w, _ := s.do(t, http.MethodPost, "/api/v1/orders/", "", gin.H{
		"items": []gin.H{{"book_id": bookID, "quantity": 1}},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := s.do(t, http.MethodPost, "/api/v1/orders/", alice, gin.H{
		"items": []gin.H{{"book_id": bookID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[apporder.OrderDTO](t, env.Data)
	assert.Equal(t, "20.00", created.TotalPrice)
	assert.Equal(t, "pending", created.Status)
	require.Len(t, created.Items, 1)
	assert.Equal(t, "10.00", created.Items[0].PriceAtPurchase)

	w, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d/", bookID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 3, decode[appbook.BookDetailDTO](t, env.Data).Stock)

	// 库存不足
	w, env = s.do(t, http.MethodPost, "/api/v1/orders/", alice, gin.H{
		"items": []gin.H{{"book_id": bookID, "quantity": 4}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apperrors.ErrCodeInsufficientStock, env.Code)

	// 普通用户不能修改状态
	statusPath := fmt.Sprintf("/api/v1/orders/%d/update_status/", created.ID)
	w, _ = s.do(t, http.MethodPatch, statusPath, alice, gin.H{"status": "shipped"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = s.do(t, http.MethodPatch, statusPath, admin, gin.H{"status": "shipped"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"status":"shipped"}`, string(env.Data))

	w, _ = s.do(t, http.MethodPatch, statusPath, admin, gin.H{"status": "lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// 其他用户看不到该订单
	bob := s.createUser(t, "bob", false)
	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d/", created.ID), bob, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = s.do(t, http.MethodDelete, fmt.Sprintf("/api/v1/orders/%d/", created.ID), admin, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestReviewRequiresPurchase(t *testing.T) {
	s := newTestServer(t)
	admin := s.createUser(t, "admin", true)
	alice := s.createUser(t, "alice", false)
	bob := s.createUser(t, "bob", false)
	bookID := s.seedBook(t, admin, 5)

	review := gin.H{"book": bookID, "rating": 5, "comment": "很好"}

	w, _ := s.do(t, http.MethodPost, "/api/v1/reviews/", "", review)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env := s.do(t, http.MethodPost, "/api/v1/reviews/", alice, review)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, apperrors.ErrCodeNotPurchased, env.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/orders/", alice, gin.H{
		"items": []gin.H{{"book_id": bookID, "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, env = s.do(t, http.MethodPost, "/api/v1/reviews/", alice, review)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	created := decode[appreview.ReviewDTO](t, env.Data)
	assert.Equal(t, "alice", created.User)

	w, _ = s.do(t, http.MethodPost, "/api/v1/reviews/", alice, review)
	assert.Equal(t, http.StatusBadRequest, w.Code, "同一本书只能评价一次")

	// 只有作者能修改
	path := fmt.Sprintf("/api/v1/reviews/%d/", created.ID)
	w, _ = s.do(t, http.MethodPatch, path, bob, gin.H{"rating": 1})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = s.do(t, http.MethodPatch, path, alice, gin.H{"rating": 4})
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d/", bookID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	detail := decode[appbook.BookDetailDTO](t, env.Data)
	require.Len(t, detail.Reviews, 1)
	require.NotNil(t, detail.AverageRating)
	assert.InDelta(t, 4.0, *detail.AverageRating, 0.001)

	w, _ = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/books/%d/reviews/", bookID), "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodDelete, path, alice, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestAuthFlow(t *testing.T) {
	s := newTestServer(t)

	register := gin.H{
		"username": "carol",
		"password": "wonderland42",
		"email":    "carol@example.com",
		"address":  "上海市浦东新区1号",
		"phone":    "13900000001",
	}
	w, env := s.do(t, http.MethodPost, "/api/v1/auth/register/", "", register)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, string(env.Data), "password")

	// 用户名、手机号、地址任一重复都被拒绝
	for _, field := range []string{"username", "phone", "address"} {
		dup := gin.H{
			"username": "dave",
			"password": "wonderland42",
			"address":  "广州市天河区2号",
			"phone":    "13900000002",
		}
		dup[field] = register[field]
		w, _ = s.do(t, http.MethodPost, "/api/v1/auth/register/", "", dup)
		assert.Equal(t, http.StatusBadRequest, w.Code, field)
	}

	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/token/", "", gin.H{"username": "carol", "password": "wrong-pass"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, env = s.do(t, http.MethodPost, "/api/v1/auth/token/", "", gin.H{"username": "carol", "password": "wonderland42"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	pair := decode[jwt.TokenPair](t, env.Data)
	require.NotEmpty(t, pair.AccessToken)

	w, env = s.do(t, http.MethodPost, "/api/v1/auth/token/refresh/", "", gin.H{"refresh_token": pair.RefreshToken})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode[appuser.RefreshResponse](t, env.Data).AccessToken)

	// Access Token不能当作Refresh Token使用
	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/token/refresh/", "", gin.H{"refresh_token": pair.AccessToken})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/orders/", pair.AccessToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/logout/", pair.AccessToken, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/v1/orders/", pair.AccessToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apperrors.ErrCodeTokenRevoked, env.Code)
}

func TestCORSConfig(t *testing.T) {
	c := corsConfig(config.CORSConfig{AllowOrigins: []string{"*"}})
	assert.True(t, c.AllowAllOrigins)
	assert.False(t, c.AllowCredentials)

	c = corsConfig(config.CORSConfig{AllowOrigins: []string{"https://shop.example.com"}})
	assert.False(t, c.AllowAllOrigins)
	assert.True(t, c.AllowCredentials)
	assert.Equal(t, []string{"https://shop.example.com"}, c.AllowOrigins)
}

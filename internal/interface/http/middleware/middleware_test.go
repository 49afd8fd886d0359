package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/permission"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestIPRateLimiter(t *testing.T) {
	assert.Nil(t, NewIPRateLimiter(0, 5))

	l := NewIPRateLimiter(1, 2)
	require.NotNil(t, l)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.Allow("1.1.1.1"))
	assert.True(t, l.Allow("1.1.1.1"))
	assert.False(t, l.Allow("1.1.1.1"), "突发额度用完")
	assert.True(t, l.Allow("2.2.2.2"), "不同IP互不影响")

	now = now.Add(time.Second)
	assert.True(t, l.Allow("1.1.1.1"), "一秒后补充一个令牌")

	now = now.Add(time.Hour)
	l.Allow("3.3.3.3")
	assert.Len(t, l.visitors, 1, "过期的IP被清理")
}

func TestIPRateLimiter_SweepsOncePerTTL(t *testing.T) {
	l := NewIPRateLimiter(1, 1)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	l.now = func() time.Time { return now }

	l.Allow("a")
	now = start.Add(9 * time.Minute)
	l.Allow("b")

	// 距上次清理已超过ttl:a过期被清理,b保留
	now = start.Add(15 * time.Minute)
	l.Allow("c")
	assert.Len(t, l.visitors, 2)
	assert.NotContains(t, l.visitors, "a")

	// 距上次清理不足ttl:b虽已过期也不清理
	now = start.Add(21 * time.Minute)
	l.Allow("d")
	assert.Len(t, l.visitors, 3)
	assert.Contains(t, l.visitors, "b")
}

func TestRateLimitMiddleware(t *testing.T) {
	l := NewIPRateLimiter(0.001, 1)
	r := gin.New()
	r.POST("/token", RateLimit(l), func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/token", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		return w.Code
	}
	assert.Equal(t, http.StatusOK, do())
	assert.Equal(t, http.StatusTooManyRequests, do())

	// nil表示不限流
	open := gin.New()
	open.POST("/token", RateLimit(nil), func(c *gin.Context) { c.Status(http.StatusOK) })
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		open.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/token", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}

func TestActionOf(t *testing.T) {
	tests := []struct {
		method string
		path   string
		want   permission.Action
	}{
		{http.MethodGet, "/books/", permission.ActionList},
		{http.MethodGet, "/books/1/", permission.ActionRetrieve},
		{http.MethodPost, "/books/", permission.ActionCreate},
		{http.MethodPut, "/books/1/", permission.ActionUpdate},
		{http.MethodPatch, "/books/1/", permission.ActionPartialUpdate},
		{http.MethodDelete, "/books/1/", permission.ActionDestroy},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			var got permission.Action
			r := gin.New()
			capture := func(c *gin.Context) { got = ActionOf(c) }
			r.Handle(tt.method, "/books/", capture)
			r.Handle(tt.method, "/books/:id/", capture)

			r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPermit_Anonymous(t *testing.T) {
	r := gin.New()
	r.POST("/books/", Permit(permission.AdminOrReadOnly()), func(c *gin.Context) { c.Status(http.StatusCreated) })
	r.GET("/books/", Permit(permission.AdminOrReadOnly()), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/books/", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

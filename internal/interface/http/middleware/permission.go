package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookshelf/internal/domain/permission"
)

// Permit 在Handler之前执行方法级权限策略
//
//	books := v1.Group("/books")
//	books.Use(middleware.Permit(permission.AdminOrReadOnly()))
//
// 对象级权限(如OwnerOrReadOnly)需要先加载目标记录,在用例中检查
func Permit(policies ...permission.Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		req := permission.Request{
			Principal: GetPrincipal(c),
			Action:    ActionOf(c),
		}
		if err := permission.Check(c.Request.Context(), req, policies...); err != nil {
			abort(c, err)
			return
		}
		c.Next()
	}
}

// ActionOf 根据HTTP方法推导动作;带:id参数的GET视为retrieve
func ActionOf(c *gin.Context) permission.Action {
	switch c.Request.Method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		if c.Param("id") != "" {
			return permission.ActionRetrieve
		}
		return permission.ActionList
	case http.MethodPost:
		return permission.ActionCreate
	case http.MethodPut:
		return permission.ActionUpdate
	case http.MethodPatch:
		return permission.ActionPartialUpdate
	case http.MethodDelete:
		return permission.ActionDestroy
	}
	return permission.ActionCreate
}

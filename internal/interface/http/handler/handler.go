// Package handler HTTP处理器
//
// Handler只负责HTTP相关的事情:绑定参数、取出调用方身份、调用用例、返回响应。
// 业务规则与对象级权限在application层和domain层。
package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// pathID 解析路径中的正整数ID,失败时写入404响应
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, apperrors.ErrNotFound)
		return 0, false
	}
	return uint(id), true
}

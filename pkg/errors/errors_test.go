package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code int
		want int
	}{
		{"业务校验", ErrCodeInsufficientStock, http.StatusBadRequest},
		{"参数错误", ErrCodeInvalidParams, http.StatusBadRequest},
		{"未登录", ErrCodeUnauthorized, http.StatusUnauthorized},
		{"Token过期", ErrCodeTokenExpired, http.StatusUnauthorized},
		{"无权限", ErrCodeNotStaff, http.StatusForbidden},
		{"不存在", ErrCodeBookNotFound, http.StatusNotFound},
		{"限流", ErrCodeTooManyRequests, http.StatusTooManyRequests},
		{"内部错误", ErrCodeDatabaseError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.code, "x").HTTPStatus())
		})
	}
}

func TestGetAppError(t *testing.T) {
	t.Run("包装后的AppError可以被提取", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", ErrNotOwner)
		appErr := GetAppError(err)
		assert.Equal(t, ErrCodeNotOwner, appErr.Code)
		assert.True(t, HasCode(err, ErrCodeNotOwner))
	})

	t.Run("普通错误转换为内部错误", func(t *testing.T) {
		cause := errors.New("connection refused")
		appErr := GetAppError(cause)
		assert.Equal(t, ErrCodeInternal, appErr.Code)
		assert.ErrorIs(t, appErr, cause)
		assert.False(t, IsAppError(cause))
	})
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "[40900] 参数错误", ErrInvalidParams.Error())

	wrapped := Wrap(errors.New("disk full"), "保存失败")
	assert.Equal(t, "[50000] 保存失败: disk full", wrapped.Error())

	assert.Equal(t, "数量必须大于0: 0", InvalidParams("数量必须大于0: %d", 0).Message)
}

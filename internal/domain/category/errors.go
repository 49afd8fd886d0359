package category

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 分类领域错误定义
var (
	// ErrCategoryNotFound 分类不存在
	ErrCategoryNotFound = apperrors.New(apperrors.ErrCodeCategoryNotFound, "分类不存在")

	// ErrNameDuplicate 分类名称已存在
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeCategoryDuplicate, "分类名称已存在")

	// ErrInvalidName 分类名称不合法
	ErrInvalidName = apperrors.New(apperrors.ErrCodeInvalidParams, "分类名称不能为空且不超过100个字符")
)

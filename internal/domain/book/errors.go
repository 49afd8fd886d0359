package book

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 图书领域错误定义
var (
	// ErrBookNotFound 图书不存在
	ErrBookNotFound = apperrors.New(apperrors.ErrCodeBookNotFound, "图书不存在")

	// ErrISBNDuplicate ISBN已存在
	ErrISBNDuplicate = apperrors.New(apperrors.ErrCodeISBNDuplicate, "ISBN号已存在")

	// ErrInvalidISBN ISBN长度不正确
	ErrInvalidISBN = apperrors.New(apperrors.ErrCodeInvalidParams, "ISBN必须为13个字符")

	// ErrInvalidPrice 无效的价格
	ErrInvalidPrice = apperrors.New(apperrors.ErrCodeInvalidParams, "价格必须在0到999999.99之间且最多两位小数")

	// ErrInvalidStock 无效的库存
	ErrInvalidStock = apperrors.New(apperrors.ErrCodeInvalidParams, "库存不能为负数")

	ErrInvalidTitle  = apperrors.New(apperrors.ErrCodeInvalidParams, "书名不能为空且不超过200个字符")
	ErrInvalidAuthor = apperrors.New(apperrors.ErrCodeInvalidParams, "作者不能为空且不超过100个字符")

	// ErrInvalidPublishedDate 出版日期格式不正确
	ErrInvalidPublishedDate = apperrors.New(apperrors.ErrCodeInvalidParams, "出版日期格式应为YYYY-MM-DD")

	// ErrInvalidCategory 分类必填
	ErrInvalidCategory = apperrors.New(apperrors.ErrCodeInvalidParams, "分类不能为空")
)

// CategoryNotExistError 图书引用的分类不存在(校验错误,返回400)
func CategoryNotExistError(categoryID uint) error {
	return apperrors.Newf(apperrors.ErrCodeInvalidParams, "分类(id=%d)不存在", categoryID)
}

package review

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 评价领域错误定义
var (
	// ErrReviewNotFound 评价不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "评价不存在")

	// ErrAlreadyReviewed 同一用户重复评价同一本书
	ErrAlreadyReviewed = apperrors.New(apperrors.ErrCodeReviewDuplicate, "您已经评价过这本书，请修改已有评价")

	// ErrInvalidRating 评分超出范围
	ErrInvalidRating = apperrors.New(apperrors.ErrCodeInvalidParams, "评分必须在1到5之间")
)

package order

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 订单领域错误定义
var (
	// ErrOrderNotFound 订单不存在(包括无权查看他人订单)
	ErrOrderNotFound = apperrors.New(apperrors.ErrCodeOrderNotFound, "订单不存在")

	// ErrEmptyItems 订单明细为空
	ErrEmptyItems = apperrors.New(apperrors.ErrCodeEmptyOrder, "订单至少需要包含一个商品")

	// ErrInvalidQuantity 购买数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidParams, "购买数量必须大于0")

	// ErrInvalidStatus 未知的订单状态
	ErrInvalidStatus = apperrors.New(apperrors.ErrCodeInvalidOrderStatus, "无效的订单状态")
)

// BookNotFoundError 下单的图书不存在(校验错误,返回400)
func BookNotFoundError(bookID uint) error {
	return apperrors.Newf(apperrors.ErrCodeBusinessError, "图书(id=%d)不存在", bookID)
}

// InsufficientStockError 库存不足
func InsufficientStockError(title string, available, requested int) error {
	return apperrors.Newf(apperrors.ErrCodeInsufficientStock,
		"《%s》库存不足: 剩余%d本, 需要%d本", title, available, requested)
}

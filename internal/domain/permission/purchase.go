package permission

import (
	"context"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// PurchaseChecker 查询用户是否购买过某本书(由订单仓储实现)
type PurchaseChecker interface {
	HasPurchased(ctx context.Context, userID, bookID uint) (bool, error)
}

type reviewerPurchasedBook struct {
	checker PurchaseChecker
}

// ReviewerPurchasedBook 只有购买过该书的用户才能创建评价
// 非创建动作直接放行;查询失败时拒绝
func ReviewerPurchasedBook(checker PurchaseChecker) Policy {
	return &reviewerPurchasedBook{checker: checker}
}

func (p *reviewerPurchasedBook) HasPermission(ctx context.Context, req Request) error {
	if req.Action != ActionCreate {
		return nil
	}
	if !req.Principal.IsAuthenticated() {
		return apperrors.ErrUnauthorized
	}
	if req.BookID == 0 || p.checker == nil {
		return apperrors.ErrNotPurchased
	}

	purchased, err := p.checker.HasPurchased(ctx, req.Principal.UserID, req.BookID)
	if err != nil || !purchased {
		return apperrors.ErrNotPurchased
	}
	return nil
}

package review

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/permission"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/internal/domain/user"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// CreateReviewUseCase 创建评价用例
// 1. 权限:已登录 + 购买过该书
// 2. 校验:评分1-5、图书存在、同一用户对同一本书只能评价一次
// 3. 评价的用户永远是调用方
type CreateReviewUseCase struct {
	reviewRepo review.Repository
	bookRepo   book.Repository
	purchases  permission.PurchaseChecker
}

func NewCreateReviewUseCase(
	reviewRepo review.Repository,
	bookRepo book.Repository,
	purchases permission.PurchaseChecker,
) *CreateReviewUseCase {
	return &CreateReviewUseCase{
		reviewRepo: reviewRepo,
		bookRepo:   bookRepo,
		purchases:  purchases,
	}
}

// CreateReviewRequest 创建评价请求
type CreateReviewRequest struct {
	BookID  uint
	Rating  int
	Comment string
}

func (uc *CreateReviewUseCase) Execute(ctx context.Context, principal *user.Principal, req CreateReviewRequest) (*ReviewDTO, error) {
	// 1. 权限检查
	permReq := permission.Request{Principal: principal, Action: permission.ActionCreate, BookID: req.BookID}
	if err := permission.Check(ctx, permReq,
		permission.IsAuthenticated(),
		permission.ReviewerPurchasedBook(uc.purchases),
	); err != nil {
		return nil, err
	}

	// 2. 字段校验
	r, err := review.NewReview(principal.UserID, req.BookID, req.Rating, req.Comment)
	if err != nil {
		return nil, err
	}
	if _, err := uc.bookRepo.FindByID(ctx, req.BookID); err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeBookNotFound) {
			return nil, apperrors.Newf(apperrors.ErrCodeInvalidParams, "图书(id=%d)不存在", req.BookID)
		}
		return nil, err
	}

	exists, err := uc.reviewRepo.Exists(ctx, principal.UserID, req.BookID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, review.ErrAlreadyReviewed
	}

	// 3. 持久化(并发重复提交由联合唯一索引兜底)
	if err := uc.reviewRepo.Create(ctx, r); err != nil {
		return nil, err
	}
	r.Username = principal.Username

	metrics.IncCounter(metrics.ReviewsCreatedTotal)
	logger.L().Info("评价创建成功",
		zap.Uint("review_id", r.ID),
		zap.Uint("user_id", r.UserID),
		zap.Uint("book_id", r.BookID),
	)

	dto := ToDTO(r)
	return &dto, nil
}

package review

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/application/shared"
	"github.com/xiebiao/bookshelf/internal/domain/permission"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/internal/domain/user"
)

// ListReviewsUseCase 评价列表(公开,按创建时间倒序)
type ListReviewsUseCase struct {
	repo review.Repository
}

func NewListReviewsUseCase(repo review.Repository) *ListReviewsUseCase {
	return &ListReviewsUseCase{repo: repo}
}

// Execute bookID为0时返回全部评价
func (uc *ListReviewsUseCase) Execute(ctx context.Context, bookID uint, page int) (*shared.Page[ReviewDTO], error) {
	page = shared.NormalizePage(page)
	reviews, total, err := uc.repo.List(ctx, bookID, page, shared.PageSize)
	if err != nil {
		return nil, err
	}
	return shared.NewPage(ToDTOs(reviews), total, page), nil
}

// GetReviewUseCase 评价详情(公开)
type GetReviewUseCase struct {
	repo review.Repository
}

func NewGetReviewUseCase(repo review.Repository) *GetReviewUseCase {
	return &GetReviewUseCase{repo: repo}
}

func (uc *GetReviewUseCase) Execute(ctx context.Context, id uint) (*ReviewDTO, error) {
	r, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToDTO(r)
	return &dto, nil
}

// UpdateReviewUseCase 修改评价
// 顺序:登录检查 → 加载评价(不存在返回404) → 所有者检查 → 校验并保存
type UpdateReviewUseCase struct {
	repo review.Repository
}

func NewUpdateReviewUseCase(repo review.Repository) *UpdateReviewUseCase {
	return &UpdateReviewUseCase{repo: repo}
}

// UpdateReviewRequest nil字段保持不变;图书不可修改
type UpdateReviewRequest struct {
	ID      uint
	Partial bool
	Rating  *int
	Comment *string
}

func (uc *UpdateReviewUseCase) Execute(ctx context.Context, principal *user.Principal, req UpdateReviewRequest) (*ReviewDTO, error) {
	action := permission.ActionUpdate
	if req.Partial {
		action = permission.ActionPartialUpdate
	}
	r, err := loadOwned(ctx, uc.repo, principal, action, req.ID)
	if err != nil {
		return nil, err
	}

	if err := r.Update(req.Rating, req.Comment); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	dto := ToDTO(r)
	return &dto, nil
}

// DeleteReviewUseCase 删除评价(仅所有者)
type DeleteReviewUseCase struct {
	repo review.Repository
}

func NewDeleteReviewUseCase(repo review.Repository) *DeleteReviewUseCase {
	return &DeleteReviewUseCase{repo: repo}
}

func (uc *DeleteReviewUseCase) Execute(ctx context.Context, principal *user.Principal, id uint) error {
	if _, err := loadOwned(ctx, uc.repo, principal, permission.ActionDestroy, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func loadOwned(ctx context.Context, repo review.Repository, principal *user.Principal, action permission.Action, id uint) (*review.Review, error) {
	req := permission.Request{Principal: principal, Action: action}
	if err := permission.Check(ctx, req, permission.IsAuthenticated()); err != nil {
		return nil, err
	}

	r, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := permission.CheckObject(ctx, req, r, permission.OwnerOrReadOnly()); err != nil {
		return nil, err
	}
	return r, nil
}

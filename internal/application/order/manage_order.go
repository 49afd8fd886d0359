package order

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/application/shared"
	"github.com/xiebiao/bookshelf/internal/domain/order"
	"github.com/xiebiao/bookshelf/internal/domain/permission"
	"github.com/xiebiao/bookshelf/internal/domain/user"
)

// ListOrdersUseCase 订单列表:管理员查看全部,普通用户只看自己的
type ListOrdersUseCase struct {
	repo order.Repository
}

func NewListOrdersUseCase(repo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{repo: repo}
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, principal *user.Principal, page int) (*shared.Page[OrderDTO], error) {
	if err := permission.Check(ctx, permission.Request{Principal: principal, Action: permission.ActionList},
		permission.IsAuthenticated()); err != nil {
		return nil, err
	}

	var ownerID uint
	if !principal.IsStaff {
		ownerID = principal.UserID
	}

	page = shared.NormalizePage(page)
	orders, total, err := uc.repo.List(ctx, ownerID, page, shared.PageSize)
	if err != nil {
		return nil, err
	}

	items := make([]OrderDTO, len(orders))
	for i, o := range orders {
		items[i] = toDTO(o)
	}
	return shared.NewPage(items, total, page), nil
}

// GetOrderUseCase 订单详情,他人的订单按不存在处理
type GetOrderUseCase struct {
	repo order.Repository
}

func NewGetOrderUseCase(repo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{repo: repo}
}

func (uc *GetOrderUseCase) Execute(ctx context.Context, principal *user.Principal, id uint) (*OrderDTO, error) {
	if err := permission.Check(ctx, permission.Request{Principal: principal, Action: permission.ActionRetrieve},
		permission.IsAuthenticated()); err != nil {
		return nil, err
	}

	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !principal.IsStaff && o.OwnerID() != principal.UserID {
		return nil, order.ErrOrderNotFound
	}

	dto := toDTO(o)
	return &dto, nil
}

// UpdateStatusUseCase 修改订单状态(仅管理员)
type UpdateStatusUseCase struct {
	repo order.Repository
}

func NewUpdateStatusUseCase(repo order.Repository) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{repo: repo}
}

// StatusResponse {status}
type StatusResponse struct {
	Status string `json:"status"`
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, principal *user.Principal, id uint, status string) (*StatusResponse, error) {
	if err := permission.Check(ctx, permission.Request{Principal: principal, Action: permission.ActionPartialUpdate},
		permission.IsAuthenticated(), permission.IsAdminUser()); err != nil {
		return nil, err
	}

	o, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := o.ChangeStatus(status); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateStatus(ctx, o.ID, o.Status); err != nil {
		return nil, err
	}
	return &StatusResponse{Status: string(o.Status)}, nil
}

// DeleteOrderUseCase 删除订单(仅管理员,不恢复库存)
type DeleteOrderUseCase struct {
	repo order.Repository
}

func NewDeleteOrderUseCase(repo order.Repository) *DeleteOrderUseCase {
	return &DeleteOrderUseCase{repo: repo}
}

func (uc *DeleteOrderUseCase) Execute(ctx context.Context, principal *user.Principal, id uint) error {
	if err := permission.Check(ctx, permission.Request{Principal: principal, Action: permission.ActionDestroy},
		permission.IsAuthenticated(), permission.IsAdminUser()); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

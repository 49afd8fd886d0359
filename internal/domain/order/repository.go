package order

import (
	"context"
)

// Repository 订单仓储接口(依赖倒置原则)
// 支持事务操作(通过context传递事务)
type Repository interface {
	// Create 创建订单头(不含明细)
	Create(ctx context.Context, order *Order) error

	// CreateItem 创建一条订单明细
	CreateItem(ctx context.Context, item *OrderItem) error

	// UpdateTotal 持久化订单总价
	UpdateTotal(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单(包含订单明细),不存在返回ErrOrderNotFound
	FindByID(ctx context.Context, id uint) (*Order, error)

	// List 按下单时间倒序分页,userID为0表示全部用户
	List(ctx context.Context, userID uint, page, pageSize int) ([]*Order, int64, error)

	// UpdateStatus 更新订单状态
	UpdateStatus(ctx context.Context, id uint, status Status) error

	// Delete 删除订单及其明细(不恢复库存)
	Delete(ctx context.Context, id uint) error

	// HasPurchased 用户是否有包含该图书的订单
	HasPurchased(ctx context.Context, userID, bookID uint) (bool, error)
}

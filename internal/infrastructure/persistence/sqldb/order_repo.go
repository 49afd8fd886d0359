package sqldb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/order"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// orderRepository 订单仓储实现
// 订单头与明细分开写入,由应用层在同一事务中编排
type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储
func NewOrderRepository(db *gorm.DB) order.Repository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(ctx context.Context, o *order.Order) error {
	model := &OrderModel{
		UserID:     o.UserID,
		TotalPrice: o.TotalPrice,
		Status:     string(o.Status),
		OrderDate:  o.OrderDate,
	}
	if err := conn(ctx, r.db).Omit("Items").Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单失败")
	}
	o.ID = model.ID
	return nil
}

func (r *orderRepository) CreateItem(ctx context.Context, item *order.OrderItem) error {
	model := &OrderItemModel{
		OrderID:         item.OrderID,
		BookID:          item.BookID,
		Quantity:        item.Quantity,
		PriceAtPurchase: item.PriceAtPurchase,
	}
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		return apperrors.Wrap(err, "创建订单明细失败")
	}
	item.ID = model.ID
	return nil
}

func (r *orderRepository) UpdateTotal(ctx context.Context, o *order.Order) error {
	err := conn(ctx, r.db).Model(&OrderModel{}).Where("id = ?", o.ID).
		Update("total_price", o.TotalPrice).Error
	if err != nil {
		return apperrors.Wrap(err, "更新订单总价失败")
	}
	return nil
}

// FindByID 预加载订单明细
func (r *orderRepository) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	var model OrderModel
	err := conn(ctx, r.db).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&model, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, apperrors.Wrap(err, "查询订单失败")
	}
	return toOrderEntity(&model), nil
}

// List 按下单时间倒序;userID为0时返回全部订单(管理员)
func (r *orderRepository) List(ctx context.Context, userID uint, page, pageSize int) ([]*order.Order, int64, error) {
	var (
		models []OrderModel
		total  int64
	)

	query := conn(ctx, r.db).Model(&OrderModel{})
	if userID != 0 {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单总数失败")
	}

	err := query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).
		Order("order_date DESC").Order("id DESC").
		Limit(pageSize).Offset(offset(page, pageSize)).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询订单列表失败")
	}

	orders := make([]*order.Order, len(models))
	for i := range models {
		orders[i] = toOrderEntity(&models[i])
	}
	return orders, total, nil
}

func (r *orderRepository) UpdateStatus(ctx context.Context, id uint, status order.Status) error {
	err := conn(ctx, r.db).Model(&OrderModel{}).Where("id = ?", id).
		Update("status", string(status)).Error
	if err != nil {
		return apperrors.Wrap(err, "更新订单状态失败")
	}
	return nil
}

// Delete 删除订单及明细,不恢复库存
func (r *orderRepository) Delete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&OrderItemModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除订单明细失败")
		}
		result := tx.Delete(&OrderModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除订单失败")
		}
		if result.RowsAffected == 0 {
			return order.ErrOrderNotFound
		}
		return nil
	})
}

// HasPurchased 实现permission.PurchaseChecker
func (r *orderRepository) HasPurchased(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&OrderItemModel{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.user_id = ? AND order_items.book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询购买记录失败")
	}
	return count > 0, nil
}

func toOrderEntity(model *OrderModel) *order.Order {
	items := make([]order.OrderItem, len(model.Items))
	for i, item := range model.Items {
		items[i] = order.OrderItem{
			ID:              item.ID,
			OrderID:         item.OrderID,
			BookID:          item.BookID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase,
		}
	}
	return &order.Order{
		ID:         model.ID,
		UserID:     model.UserID,
		TotalPrice: model.TotalPrice,
		Status:     order.Status(model.Status),
		OrderDate:  model.OrderDate,
		Items:      items,
	}
}

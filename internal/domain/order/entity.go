package order

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status 订单状态
type Status string

const (
	StatusPending   Status = "pending"   // 待发货
	StatusShipped   Status = "shipped"   // 已发货
	StatusDelivered Status = "delivered" // 已送达
)

// ParseStatus 解析状态字符串，未知状态返回ErrInvalidStatus
func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusPending, StatusShipped, StatusDelivered:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// Order 订单实体(聚合根)
// 1. Order是聚合根,OrderItem是子实体
// 2. TotalPrice由服务端根据明细计算,客户端传入的值一律忽略
// 3. OrderDate创建后不可修改
type Order struct {
	ID         uint
	UserID     uint
	TotalPrice decimal.Decimal
	Status     Status
	OrderDate  time.Time
	Items      []OrderItem
}

// OrderItem 订单明细项
// PriceAtPurchase记录下单时的单价(历史价格快照),图书调价不影响历史订单
type OrderItem struct {
	ID              uint
	OrderID         uint
	BookID          uint
	Quantity        int
	PriceAtPurchase decimal.Decimal
}

// NewOrder 创建新订单(工厂方法),初始状态为pending,总价为0
func NewOrder(userID uint) *Order {
	return &Order{
		UserID:     userID,
		TotalPrice: decimal.Zero,
		Status:     StatusPending,
		OrderDate:  time.Now(),
	}
}

// Subtotal 明细小计
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// CalculateTotal 总价 = Σ(下单单价 × 数量)
func (o *Order) CalculateTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// OwnerID 订单所属用户
func (o *Order) OwnerID() uint {
	return o.UserID
}

// ChangeStatus 修改订单状态(仅管理员可调用,由权限层保证)
func (o *Order) ChangeStatus(s string) error {
	st, err := ParseStatus(s)
	if err != nil {
		return err
	}
	o.Status = st
	return nil
}

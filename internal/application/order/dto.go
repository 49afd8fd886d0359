package order

import (
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/order"
)

// OrderItemDTO 订单明细响应
type OrderItemDTO struct {
	ID              uint   `json:"id"`
	Book            uint   `json:"book"`
	Quantity        int    `json:"quantity"`
	PriceAtPurchase string `json:"price_at_purchase"`
}

// OrderDTO 订单响应,金额以两位小数字符串返回
type OrderDTO struct {
	ID         uint           `json:"id"`
	User       uint           `json:"user"`
	Items      []OrderItemDTO `json:"items"`
	TotalPrice string         `json:"total_price"`
	Status     string         `json:"status"`
	OrderDate  time.Time      `json:"order_date"`
}

func toDTO(o *order.Order) OrderDTO {
	items := make([]OrderItemDTO, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemDTO{
			ID:              item.ID,
			Book:            item.BookID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.PriceAtPurchase.StringFixed(2),
		}
	}
	return OrderDTO{
		ID:         o.ID,
		User:       o.UserID,
		Items:      items,
		TotalPrice: o.TotalPrice.StringFixed(2),
		Status:     string(o.Status),
		OrderDate:  o.OrderDate,
	}
}

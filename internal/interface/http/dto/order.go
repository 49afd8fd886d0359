package dto

// CreateOrderRequest 下单请求
// 总价和状态由服务端计算,请求中出现也会被忽略
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"items" binding:"dive"`
}

// OrderItemRequest 订单明细
type OrderItemRequest struct {
	BookID   uint `json:"book_id" binding:"required" example:"1"`
	Quantity int  `json:"quantity" example:"2"`
}

// UpdateStatusRequest 修改订单状态
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required" enums:"pending,shipped,delivered" example:"shipped"`
}

package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookshelf/internal/application/order"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	create       *apporder.CreateOrderUseCase
	list         *apporder.ListOrdersUseCase
	get          *apporder.GetOrderUseCase
	updateStatus *apporder.UpdateStatusUseCase
	delete       *apporder.DeleteOrderUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	create *apporder.CreateOrderUseCase,
	list *apporder.ListOrdersUseCase,
	get *apporder.GetOrderUseCase,
	updateStatus *apporder.UpdateStatusUseCase,
	del *apporder.DeleteOrderUseCase,
) *OrderHandler {
	return &OrderHandler{create: create, list: list, get: get, updateStatus: updateStatus, delete: del}
}

// Create 创建订单
// @Summary      创建订单
// @Description  校验库存后在一个事务中创建订单与明细并扣减库存,总价由服务端计算
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "订单明细"
// @Success      201 {object} response.Response{data=apporder.OrderDTO} "下单成功"
// @Failure      400 {object} response.Response "没有商品、图书不存在或库存不足"
// @Failure      401 {object} response.Response "未登录"
// @Router       /api/v1/orders/ [post]
//
// 并发下单同一本书时,SELECT FOR UPDATE保证校验和扣减看到同一份库存
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	items := make([]apporder.CreateOrderItem, len(req.Items))
	for i, it := range req.Items {
		items[i] = apporder.CreateOrderItem{BookID: it.BookID, Quantity: it.Quantity}
	}

	result, err := h.create.Execute(c.Request.Context(), middleware.GetPrincipal(c), apporder.CreateOrderRequest{Items: items})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List 订单列表
// @Summary      订单列表
// @Description  管理员查看全部订单,普通用户只能看到自己的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Success      200 {object} response.Response{data=response.PageData{list=[]apporder.OrderDTO}}
// @Router       /api/v1/orders/ [get]
func (h *OrderHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.list.Execute(c.Request.Context(), middleware.GetPrincipal(c), q.Page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get 订单详情
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderDTO}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id}/ [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.get.Execute(c.Request.Context(), middleware.GetPrincipal(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateStatus 修改订单状态
// @Summary      修改订单状态
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Param        request body dto.UpdateStatusRequest true "新状态"
// @Success      200 {object} response.Response{data=apporder.StatusResponse}
// @Failure      400 {object} response.Response "无效的订单状态"
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/orders/{id}/update_status/ [patch]
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.updateStatus.Execute(c.Request.Context(), middleware.GetPrincipal(c), id, req.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除订单
// @Summary      删除订单
// @Description  仅管理员;不恢复库存
// @Tags         订单
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      204 "已删除"
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/orders/{id}/ [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.delete.Execute(c.Request.Context(), middleware.GetPrincipal(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

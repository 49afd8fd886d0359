package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookshelf/internal/application/review"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/internal/interface/http/middleware"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// ReviewHandler 评价HTTP处理器
// 登录、购买与所有者校验都在用例中完成
type ReviewHandler struct {
	list   *appreview.ListReviewsUseCase
	get    *appreview.GetReviewUseCase
	create *appreview.CreateReviewUseCase
	update *appreview.UpdateReviewUseCase
	delete *appreview.DeleteReviewUseCase
}

func NewReviewHandler(
	list *appreview.ListReviewsUseCase,
	get *appreview.GetReviewUseCase,
	create *appreview.CreateReviewUseCase,
	update *appreview.UpdateReviewUseCase,
	del *appreview.DeleteReviewUseCase,
) *ReviewHandler {
	return &ReviewHandler{list: list, get: get, create: create, update: update, delete: del}
}

// List 评价列表
// @Summary      评价列表
// @Tags         评价
// @Produce      json
// @Param        page query int false "页码"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appreview.ReviewDTO}}
// @Router       /api/v1/reviews/ [get]
func (h *ReviewHandler) List(c *gin.Context) {
	h.listFor(c, 0)
}

// ListByBook 某本书的评价
// @Summary      图书评价列表
// @Tags         评价
// @Produce      json
// @Param        id   path  int true  "图书ID"
// @Param        page query int false "页码"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appreview.ReviewDTO}}
// @Router       /api/v1/books/{id}/reviews/ [get]
func (h *ReviewHandler) ListByBook(c *gin.Context) {
	bookID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.listFor(c, bookID)
}

func (h *ReviewHandler) listFor(c *gin.Context, bookID uint) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.list.Execute(c.Request.Context(), bookID, q.Page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get 评价详情
// @Summary      评价详情
// @Tags         评价
// @Produce      json
// @Param        id path int true "评价ID"
// @Success      200 {object} response.Response{data=appreview.ReviewDTO}
// @Failure      404 {object} response.Response "评价不存在"
// @Router       /api/v1/reviews/{id}/ [get]
func (h *ReviewHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.get.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Create 发表评价
// @Summary      发表评价
// @Description  只有购买过该书的用户可以评价,每人每本书一条
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateReviewRequest true "评价内容"
// @Success      201 {object} response.Response{data=appreview.ReviewDTO}
// @Failure      400 {object} response.Response "评分不合法或已评价"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "未购买过该书"
// @Router       /api/v1/reviews/ [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.create.Execute(c.Request.Context(), middleware.GetPrincipal(c), appreview.CreateReviewRequest{
		BookID:  req.Book,
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update 整体更新评价
// @Summary      更新评价
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评价ID"
// @Param        request body dto.UpdateReviewRequest true "评价内容"
// @Success      200 {object} response.Response{data=appreview.ReviewDTO}
// @Failure      403 {object} response.Response "只能修改自己的评价"
// @Router       /api/v1/reviews/{id}/ [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	h.save(c, appreview.UpdateReviewRequest{ID: id, Rating: &req.Rating, Comment: &req.Comment})
}

// Patch 部分更新评价
// @Summary      部分更新评价
// @Tags         评价
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "评价ID"
// @Param        request body dto.PatchReviewRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=appreview.ReviewDTO}
// @Router       /api/v1/reviews/{id}/ [patch]
func (h *ReviewHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PatchReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	h.save(c, appreview.UpdateReviewRequest{ID: id, Partial: true, Rating: req.Rating, Comment: req.Comment})
}

func (h *ReviewHandler) save(c *gin.Context, req appreview.UpdateReviewRequest) {
	result, err := h.update.Execute(c.Request.Context(), middleware.GetPrincipal(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除评价
// @Summary      删除评价
// @Tags         评价
// @Security     BearerAuth
// @Param        id path int true "评价ID"
// @Success      204 "已删除"
// @Failure      403 {object} response.Response "只能删除自己的评价"
// @Failure      404 {object} response.Response "评价不存在"
// @Router       /api/v1/reviews/{id}/ [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
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

package handler

import (
	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookshelf/internal/application/book"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	list   *appbook.ListBooksUseCase
	get    *appbook.GetBookUseCase
	create *appbook.CreateBookUseCase
	update *appbook.UpdateBookUseCase
	delete *appbook.DeleteBookUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	list *appbook.ListBooksUseCase,
	get *appbook.GetBookUseCase,
	create *appbook.CreateBookUseCase,
	update *appbook.UpdateBookUseCase,
	del *appbook.DeleteBookUseCase,
) *BookHandler {
	return &BookHandler{list: list, get: get, create: create, update: update, delete: del}
}

// List 图书列表
// @Summary      图书列表
// @Description  每页10条;search匹配书名、作者、ISBN;不支持的ordering按ID升序
// @Tags         图书
// @Produce      json
// @Param        page     query int    false "页码"
// @Param        search   query string false "关键词"
// @Param        category query int    false "分类ID"
// @Param        price    query string false "价格"
// @Param        ordering query string false "排序" Enums(price, -price, published_date, -published_date)
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookDTO}}
// @Router       /api/v1/books/ [get]
func (h *BookHandler) List(c *gin.Context) {
	var q dto.ListBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.list.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Page:       q.Page,
		Search:     q.Search,
		CategoryID: q.Category,
		Price:      q.Price,
		Ordering:   q.Ordering,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get 图书详情
// @Summary      图书详情
// @Description  包含该书的全部评价(最新在前)与平均评分
// @Tags         图书
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookDetailDTO}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/ [get]
func (h *BookHandler) Get(c *gin.Context) {
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

// Create 上架图书
// @Summary      上架图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} response.Response{data=appbook.BookDTO}
// @Failure      400 {object} response.Response "参数错误、分类不存在或ISBN已存在"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/books/ [post]
func (h *BookHandler) Create(c *gin.Context) {
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.create.Execute(c.Request.Context(), appbook.CreateBookRequest{
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Price:         *req.Price,
		Stock:         *req.Stock,
		PublishedDate: req.PublishedDate,
		CategoryID:    req.Category,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update 整体更新图书
// @Summary      更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Router       /api/v1/books/{id}/ [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	h.save(c, appbook.UpdateBookRequest{
		ID:            id,
		Title:         &req.Title,
		Author:        &req.Author,
		ISBN:          &req.ISBN,
		Price:         req.Price,
		Stock:         req.Stock,
		PublishedDate: &req.PublishedDate,
		CategoryID:    &req.Category,
	})
}

// Patch 部分更新图书
// @Summary      部分更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Param        request body dto.PatchBookRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=appbook.BookDTO}
// @Router       /api/v1/books/{id}/ [patch]
func (h *BookHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PatchBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	h.save(c, appbook.UpdateBookRequest{
		ID:            id,
		Title:         req.Title,
		Author:        req.Author,
		ISBN:          req.ISBN,
		Price:         req.Price,
		Stock:         req.Stock,
		PublishedDate: req.PublishedDate,
		CategoryID:    req.Category,
	})
}

func (h *BookHandler) save(c *gin.Context, req appbook.UpdateBookRequest) {
	result, err := h.update.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除图书
// @Summary      删除图书
// @Tags         图书
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      204 "已删除"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id}/ [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.delete.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

package handler

import (
	"github.com/gin-gonic/gin"

	appcategory "github.com/xiebiao/bookshelf/internal/application/category"
	"github.com/xiebiao/bookshelf/internal/interface/http/dto"
	"github.com/xiebiao/bookshelf/pkg/response"
)

// CategoryHandler 分类HTTP处理器
// 写操作的管理员校验由路由上的Permit(AdminOrReadOnly)完成
type CategoryHandler struct {
	list   *appcategory.ListCategoriesUseCase
	get    *appcategory.GetCategoryUseCase
	create *appcategory.CreateCategoryUseCase
	update *appcategory.UpdateCategoryUseCase
	delete *appcategory.DeleteCategoryUseCase
}

func NewCategoryHandler(
	list *appcategory.ListCategoriesUseCase,
	get *appcategory.GetCategoryUseCase,
	create *appcategory.CreateCategoryUseCase,
	update *appcategory.UpdateCategoryUseCase,
	del *appcategory.DeleteCategoryUseCase,
) *CategoryHandler {
	return &CategoryHandler{list: list, get: get, create: create, update: update, delete: del}
}

// List 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Param        page query int false "页码"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appcategory.CategoryDTO}}
// @Router       /api/v1/categories/ [get]
func (h *CategoryHandler) List(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BindError(c, err)
		return
	}

	page, err := h.list.Execute(c.Request.Context(), q.Page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=appcategory.CategoryDTO}
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id}/ [get]
func (h *CategoryHandler) Get(c *gin.Context) {
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

// Create 创建分类
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      201 {object} response.Response{data=appcategory.CategoryDTO}
// @Failure      400 {object} response.Response "参数错误或名称重复"
// @Failure      401 {object} response.Response "未登录"
// @Failure      403 {object} response.Response "需要管理员权限"
// @Router       /api/v1/categories/ [post]
func (h *CategoryHandler) Create(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	result, err := h.create.Execute(c.Request.Context(), appcategory.CreateCategoryRequest{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Update 整体更新分类
// @Summary      更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.CategoryRequest true "分类信息"
// @Success      200 {object} response.Response{data=appcategory.CategoryDTO}
// @Router       /api/v1/categories/{id}/ [put]
func (h *CategoryHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	h.save(c, appcategory.UpdateCategoryRequest{ID: id, Name: &req.Name, Description: &req.Description})
}

// Patch 部分更新分类
// @Summary      部分更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Param        request body dto.PatchCategoryRequest true "需要修改的字段"
// @Success      200 {object} response.Response{data=appcategory.CategoryDTO}
// @Router       /api/v1/categories/{id}/ [patch]
func (h *CategoryHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PatchCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}

	h.save(c, appcategory.UpdateCategoryRequest{ID: id, Name: req.Name, Description: req.Description})
}

func (h *CategoryHandler) save(c *gin.Context, req appcategory.UpdateCategoryRequest) {
	result, err := h.update.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除分类
// @Summary      删除分类
// @Description  分类下的图书及其评价、订单明细一并删除
// @Tags         分类
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      204 "已删除"
// @Failure      404 {object} response.Response "分类不存在"
// @Router       /api/v1/categories/{id}/ [delete]
func (h *CategoryHandler) Delete(c *gin.Context) {
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

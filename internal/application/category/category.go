package category

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/application/shared"
	"github.com/xiebiao/bookshelf/internal/domain/category"
)

// CategoryDTO 分类响应
type CategoryDTO struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func toDTO(c *category.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, Description: c.Description}
}

// ListCategoriesUseCase 分类列表(按ID升序分页)
type ListCategoriesUseCase struct {
	repo category.Repository
}

func NewListCategoriesUseCase(repo category.Repository) *ListCategoriesUseCase {
	return &ListCategoriesUseCase{repo: repo}
}

func (uc *ListCategoriesUseCase) Execute(ctx context.Context, page int) (*shared.Page[CategoryDTO], error) {
	page = shared.NormalizePage(page)
	categories, total, err := uc.repo.List(ctx, page, shared.PageSize)
	if err != nil {
		return nil, err
	}

	items := make([]CategoryDTO, len(categories))
	for i, c := range categories {
		items[i] = toDTO(c)
	}
	return shared.NewPage(items, total, page), nil
}

// GetCategoryUseCase 分类详情
type GetCategoryUseCase struct {
	repo category.Repository
}

func NewGetCategoryUseCase(repo category.Repository) *GetCategoryUseCase {
	return &GetCategoryUseCase{repo: repo}
}

func (uc *GetCategoryUseCase) Execute(ctx context.Context, id uint) (*CategoryDTO, error) {
	c, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(c)
	return &dto, nil
}

// CreateCategoryUseCase 创建分类
type CreateCategoryUseCase struct {
	repo category.Repository
}

func NewCreateCategoryUseCase(repo category.Repository) *CreateCategoryUseCase {
	return &CreateCategoryUseCase{repo: repo}
}

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Name        string
	Description string
}

func (uc *CreateCategoryUseCase) Execute(ctx context.Context, req CreateCategoryRequest) (*CategoryDTO, error) {
	c, err := category.NewCategory(req.Name, req.Description)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	dto := toDTO(c)
	return &dto, nil
}

// UpdateCategoryUseCase 修改分类(PUT与PATCH共用,nil字段保持不变)
type UpdateCategoryUseCase struct {
	repo category.Repository
}

func NewUpdateCategoryUseCase(repo category.Repository) *UpdateCategoryUseCase {
	return &UpdateCategoryUseCase{repo: repo}
}

// UpdateCategoryRequest 修改分类请求
type UpdateCategoryRequest struct {
	ID          uint
	Name        *string
	Description *string
}

func (uc *UpdateCategoryUseCase) Execute(ctx context.Context, req UpdateCategoryRequest) (*CategoryDTO, error) {
	c, err := uc.repo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		c.Name = *req.Name
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	dto := toDTO(c)
	return &dto, nil
}

// DeleteCategoryUseCase 删除分类(级联删除其下图书)
type DeleteCategoryUseCase struct {
	repo category.Repository
}

func NewDeleteCategoryUseCase(repo category.Repository) *DeleteCategoryUseCase {
	return &DeleteCategoryUseCase{repo: repo}
}

func (uc *DeleteCategoryUseCase) Execute(ctx context.Context, id uint) error {
	return uc.repo.Delete(ctx, id)
}

package category

import (
	"context"
)

// Repository 分类仓储接口
type Repository interface {
	// Create 名称重复返回ErrNameDuplicate
	Create(ctx context.Context, category *Category) error

	// FindByID 不存在返回ErrCategoryNotFound
	FindByID(ctx context.Context, id uint) (*Category, error)

	// Update 名称重复返回ErrNameDuplicate
	Update(ctx context.Context, category *Category) error

	// Delete 级联删除分类下的图书及其评价、订单明细
	Delete(ctx context.Context, id uint) error

	// List 按ID升序分页
	List(ctx context.Context, page, pageSize int) ([]*Category, int64, error)

	// Exists 分类是否存在
	Exists(ctx context.Context, id uint) (bool, error)
}

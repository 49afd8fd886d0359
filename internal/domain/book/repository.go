package book

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository 图书仓储接口(依赖倒置原则)
// 由domain层定义接口,infrastructure层实现
type Repository interface {
	// Create 创建图书,ISBN重复返回ErrISBNDuplicate
	Create(ctx context.Context, book *Book) error

	// FindByID 根据ID查找图书,不存在返回ErrBookNotFound
	FindByID(ctx context.Context, id uint) (*Book, error)

	// Update 更新图书信息,ISBN重复返回ErrISBNDuplicate
	Update(ctx context.Context, book *Book) error

	// Delete 删除图书,级联删除评价与订单明细
	Delete(ctx context.Context, id uint) error

	// List 分页查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, int64, error)

	// ExistsByISBN 检查ISBN是否被其他图书占用(excludeID为0表示不排除)
	ExistsByISBN(ctx context.Context, isbn string, excludeID uint) (bool, error)

	// LockByID 悲观锁查询图书(用于订单创建时锁定库存)
	// 使用SELECT FOR UPDATE锁定行,必须在事务中调用
	LockByID(ctx context.Context, id uint) (*Book, error)

	// DecrementStock 扣减库存,结果下限为0
	DecrementStock(ctx context.Context, id uint, quantity int) error
}

// 排序字段
const (
	OrderByPriceAsc          = "price"
	OrderByPriceDesc         = "-price"
	OrderByPublishedDateAsc  = "published_date"
	OrderByPublishedDateDesc = "-published_date"
)

// ListParams 列表查询参数
type ListParams struct {
	Page       int              // 页码(从1开始)
	PageSize   int              // 每页数量
	Search     string           // 搜索关键词(标题、作者、ISBN)
	CategoryID uint             // 按分类过滤,0表示不过滤
	Price      *decimal.Decimal // 按价格精确过滤
	Ordering   string           // 排序字段,为空时按ID升序
}

// ValidOrdering 排序字段是否受支持,不支持的字段按默认顺序处理
func ValidOrdering(ordering string) bool {
	switch ordering {
	case "", OrderByPriceAsc, OrderByPriceDesc, OrderByPublishedDateAsc, OrderByPublishedDateDesc:
		return true
	}
	return false
}

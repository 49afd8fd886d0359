package sqldb

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// bookRepository 图书仓储实现
// 1. 实现domain/book/repository.go定义的接口
// 2. 负责domain实体与GORM模型之间的转换
// 3. 处理数据库特定的错误(如ISBN重复),转换为业务错误
type bookRepository struct {
	db *gorm.DB
}

// NewBookRepository 创建图书仓储
func NewBookRepository(db *gorm.DB) book.Repository {
	return &bookRepository{db: db}
}

func (r *bookRepository) Create(ctx context.Context, b *book.Book) error {
	model := toBookModel(b)
	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "创建图书失败")
	}
	b.ID = model.ID
	return nil
}

func (r *bookRepository) FindByID(ctx context.Context, id uint) (*book.Book, error) {
	var model BookModel
	if err := conn(ctx, r.db).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "查询图书失败")
	}
	return toBookEntity(&model), nil
}

// Update 使用Save更新所有字段
func (r *bookRepository) Update(ctx context.Context, b *book.Book) error {
	if err := conn(ctx, r.db).Save(toBookModel(b)).Error; err != nil {
		if isDuplicateError(err) {
			return book.ErrISBNDuplicate
		}
		return apperrors.Wrap(err, "更新图书失败")
	}
	return nil
}

// Delete 级联删除评价与订单明细
func (r *bookRepository) Delete(ctx context.Context, id uint) error {
	return conn(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("book_id = ?", id).Delete(&OrderItemModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除订单明细失败")
		}
		if err := tx.Where("book_id = ?", id).Delete(&ReviewModel{}).Error; err != nil {
			return apperrors.Wrap(err, "删除评价失败")
		}

		result := tx.Delete(&BookModel{}, id)
		if result.Error != nil {
			return apperrors.Wrap(result.Error, "删除图书失败")
		}
		if result.RowsAffected == 0 {
			return book.ErrBookNotFound
		}
		return nil
	})
}

// List 分页查询图书列表
func (r *bookRepository) List(ctx context.Context, params book.ListParams) ([]*book.Book, int64, error) {
	var (
		models []BookModel
		total  int64
	)

	query := conn(ctx, r.db).Model(&BookModel{})

	// 关键词搜索(标题、作者、ISBN,不区分大小写)
	if params.Search != "" {
		keyword := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(isbn) LIKE ?", keyword, keyword, keyword)
	}
	if params.CategoryID != 0 {
		query = query.Where("category_id = ?", params.CategoryID)
	}
	if params.Price != nil {
		query = query.Where("price = ?", *params.Price)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书总数失败")
	}

	switch params.Ordering {
	case book.OrderByPriceAsc:
		query = query.Order("price ASC").Order("id ASC")
	case book.OrderByPriceDesc:
		query = query.Order("price DESC").Order("id ASC")
	case book.OrderByPublishedDateAsc:
		query = query.Order("published_date ASC").Order("id ASC")
	case book.OrderByPublishedDateDesc:
		query = query.Order("published_date DESC").Order("id ASC")
	default:
		query = query.Order("id ASC")
	}

	if err := query.Limit(params.PageSize).Offset(offset(params.Page, params.PageSize)).Find(&models).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询图书列表失败")
	}

	books := make([]*book.Book, len(models))
	for i := range models {
		books[i] = toBookEntity(&models[i])
	}
	return books, total, nil
}

func (r *bookRepository) ExistsByISBN(ctx context.Context, isbn string, excludeID uint) (bool, error) {
	var count int64
	query := conn(ctx, r.db).Model(&BookModel{}).Where("isbn = ?", isbn)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询图书失败")
	}
	return count > 0, nil
}

// LockByID 悲观锁查询图书(用于订单创建)
// 必须从context获取事务DB;SQLite没有行锁,写事务本身就是串行的
func (r *bookRepository) LockByID(ctx context.Context, id uint) (*book.Book, error) {
	db := conn(ctx, r.db)
	if db.Dialector.Name() != "sqlite" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var model BookModel
	if err := db.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, book.ErrBookNotFound
		}
		return nil, apperrors.Wrap(err, "锁定图书失败")
	}
	return toBookEntity(&model), nil
}

// DecrementStock 扣减库存,结果下限为0(调用方已在同一事务中锁定该行)
// UPDATE books SET stock = CASE WHEN stock > ? THEN stock - ? ELSE 0 END WHERE id = ?
func (r *bookRepository) DecrementStock(ctx context.Context, id uint, quantity int) error {
	err := conn(ctx, r.db).Model(&BookModel{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("CASE WHEN stock > ? THEN stock - ? ELSE 0 END", quantity, quantity)).Error
	if err != nil {
		return apperrors.Wrap(err, "更新库存失败")
	}
	return nil
}

// =========================================
// 辅助函数:模型转换
// =========================================

func toBookModel(b *book.Book) *BookModel {
	return &BookModel{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		Price:         b.Price,
		Stock:         b.Stock,
		PublishedDate: b.PublishedDate,
		CategoryID:    b.CategoryID,
	}
}

func toBookEntity(model *BookModel) *book.Book {
	return &book.Book{
		ID:            model.ID,
		Title:         model.Title,
		Author:        model.Author,
		ISBN:          model.ISBN,
		Price:         model.Price,
		Stock:         model.Stock,
		PublishedDate: model.PublishedDate,
		CategoryID:    model.CategoryID,
	}
}

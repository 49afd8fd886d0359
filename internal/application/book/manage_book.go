package book

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/category"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// CreateBookUseCase 图书上架用例
// 应用层负责编排:校验字段 → 确认分类存在 → 确认ISBN未占用 → 持久化
type CreateBookUseCase struct {
	bookRepo     book.Repository
	categoryRepo category.Repository
}

// NewCreateBookUseCase 创建上架用例
func NewCreateBookUseCase(bookRepo book.Repository, categoryRepo category.Repository) *CreateBookUseCase {
	return &CreateBookUseCase{bookRepo: bookRepo, categoryRepo: categoryRepo}
}

// CreateBookRequest 上架请求DTO
type CreateBookRequest struct {
	Title         string
	Author        string
	ISBN          string
	Price         decimal.Decimal
	Stock         int
	PublishedDate string // YYYY-MM-DD
	CategoryID    uint
}

func (uc *CreateBookUseCase) Execute(ctx context.Context, req CreateBookRequest) (*BookDTO, error) {
	published, err := book.ParsePublishedDate(req.PublishedDate)
	if err != nil {
		return nil, err
	}
	b, err := book.NewBook(req.Title, req.Author, req.ISBN, req.Price, req.Stock, published, req.CategoryID)
	if err != nil {
		return nil, err
	}

	if err := checkCategory(ctx, uc.categoryRepo, b.CategoryID); err != nil {
		return nil, err
	}
	exists, err := uc.bookRepo.ExistsByISBN(ctx, b.ISBN, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, book.ErrISBNDuplicate
	}

	// 并发插入同一ISBN时由唯一索引兜底
	if err := uc.bookRepo.Create(ctx, b); err != nil {
		return nil, err
	}

	logger.L().Info("图书上架成功", zap.Uint("book_id", b.ID), zap.String("isbn", b.ISBN))
	dto := toDTO(b, nil)
	return &dto, nil
}

// UpdateBookUseCase 修改图书(PUT与PATCH共用)
type UpdateBookUseCase struct {
	bookRepo     book.Repository
	categoryRepo category.Repository
	reviewRepo   review.Repository
}

func NewUpdateBookUseCase(bookRepo book.Repository, categoryRepo category.Repository, reviewRepo review.Repository) *UpdateBookUseCase {
	return &UpdateBookUseCase{bookRepo: bookRepo, categoryRepo: categoryRepo, reviewRepo: reviewRepo}
}

// UpdateBookRequest nil字段保持不变
type UpdateBookRequest struct {
	ID            uint
	Title         *string
	Author        *string
	ISBN          *string
	Price         *decimal.Decimal
	Stock         *int
	PublishedDate *string
	CategoryID    *uint
}

func (uc *UpdateBookUseCase) Execute(ctx context.Context, req UpdateBookRequest) (*BookDTO, error) {
	b, err := uc.bookRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
	if req.ISBN != nil {
		b.ISBN = *req.ISBN
	}
	if req.Price != nil {
		b.Price = *req.Price
	}
	if req.Stock != nil {
		b.Stock = *req.Stock
	}
	if req.PublishedDate != nil {
		if b.PublishedDate, err = book.ParsePublishedDate(*req.PublishedDate); err != nil {
			return nil, err
		}
	}
	if req.CategoryID != nil {
		b.CategoryID = *req.CategoryID
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	if req.CategoryID != nil {
		if err := checkCategory(ctx, uc.categoryRepo, b.CategoryID); err != nil {
			return nil, err
		}
	}
	if req.ISBN != nil {
		exists, err := uc.bookRepo.ExistsByISBN(ctx, b.ISBN, b.ID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, book.ErrISBNDuplicate
		}
	}

	if err := uc.bookRepo.Update(ctx, b); err != nil {
		return nil, err
	}
	ratings, err := uc.reviewRepo.RatingsByBookIDs(ctx, []uint{b.ID})
	if err != nil {
		return nil, err
	}
	dto := toDTO(b, review.AverageRating(ratings[b.ID]))
	return &dto, nil
}

// DeleteBookUseCase 删除图书,评价和订单明细一并删除
type DeleteBookUseCase struct {
	bookRepo book.Repository
}

func NewDeleteBookUseCase(bookRepo book.Repository) *DeleteBookUseCase {
	return &DeleteBookUseCase{bookRepo: bookRepo}
}

func (uc *DeleteBookUseCase) Execute(ctx context.Context, id uint) error {
	return uc.bookRepo.Delete(ctx, id)
}

func checkCategory(ctx context.Context, repo category.Repository, id uint) error {
	ok, err := repo.Exists(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return book.CategoryNotExistError(id)
	}
	return nil
}

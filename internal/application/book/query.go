package book

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	reviewapp "github.com/xiebiao/bookshelf/internal/application/review"
	"github.com/xiebiao/bookshelf/internal/application/shared"
	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/review"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// ListBooksUseCase 图书列表查询用例
// 支持关键词搜索(标题、作者、ISBN)、按分类和价格过滤、按价格或出版日期排序
type ListBooksUseCase struct {
	bookRepo   book.Repository
	reviewRepo review.Repository
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookRepo book.Repository, reviewRepo review.Repository) *ListBooksUseCase {
	return &ListBooksUseCase{bookRepo: bookRepo, reviewRepo: reviewRepo}
}

// ListBooksRequest 列表查询请求DTO
type ListBooksRequest struct {
	Page       int    // 页码(从1开始)
	Search     string // 搜索关键词
	CategoryID uint   // 分类过滤,0表示不过滤
	Price      string // 价格精确过滤,空表示不过滤
	Ordering   string // price, -price, published_date, -published_date
}

// Execute 执行列表查询
// 不支持的排序字段按ID升序处理
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) (*shared.Page[BookDTO], error) {
	params := book.ListParams{
		Page:       shared.NormalizePage(req.Page),
		PageSize:   shared.PageSize,
		Search:     strings.TrimSpace(req.Search),
		CategoryID: req.CategoryID,
		Ordering:   req.Ordering,
	}
	if !book.ValidOrdering(params.Ordering) {
		params.Ordering = ""
	}
	if req.Price != "" {
		price, err := decimal.NewFromString(req.Price)
		if err != nil {
			return nil, apperrors.InvalidParams("价格过滤参数格式不正确: %s", req.Price)
		}
		params.Price = &price
	}

	books, total, err := uc.bookRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	ratings, err := uc.reviewRepo.RatingsByBookIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]BookDTO, len(books))
	for i, b := range books {
		items[i] = toDTO(b, review.AverageRating(ratings[b.ID]))
	}
	return shared.NewPage(items, total, params.Page), nil
}

// GetBookUseCase 图书详情用例
type GetBookUseCase struct {
	bookRepo   book.Repository
	reviewRepo review.Repository
}

func NewGetBookUseCase(bookRepo book.Repository, reviewRepo review.Repository) *GetBookUseCase {
	return &GetBookUseCase{bookRepo: bookRepo, reviewRepo: reviewRepo}
}

// Execute 返回图书及其评价,平均分在读取时计算
func (uc *GetBookUseCase) Execute(ctx context.Context, id uint) (*BookDetailDTO, error) {
	b, err := uc.bookRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	reviews, err := uc.reviewRepo.ListByBook(ctx, id)
	if err != nil {
		return nil, err
	}
	ratings := make([]int, len(reviews))
	for i, r := range reviews {
		ratings[i] = r.Rating
	}

	return &BookDetailDTO{
		BookDTO: toDTO(b, review.AverageRating(ratings)),
		Reviews: reviewapp.ToDTOs(reviews),
	}, nil
}

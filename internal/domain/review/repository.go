package review

import (
	"context"
)

// Repository 评价仓储接口
type Repository interface {
	// Create (user_id, book_id)重复返回ErrAlreadyReviewed
	Create(ctx context.Context, review *Review) error

	// FindByID 不存在返回ErrReviewNotFound
	FindByID(ctx context.Context, id uint) (*Review, error)

	// Update 只更新评分与评论
	Update(ctx context.Context, review *Review) error

	Delete(ctx context.Context, id uint) error

	// List 按创建时间倒序分页，bookID为0表示全部图书
	List(ctx context.Context, bookID uint, page, pageSize int) ([]*Review, int64, error)

	// ListByBook 某本书的全部评价（按创建时间倒序）
	ListByBook(ctx context.Context, bookID uint) ([]*Review, error)

	// Exists 用户是否已评价过该书
	Exists(ctx context.Context, userID, bookID uint) (bool, error)

	// RatingsByBookIDs 一次查询返回多本书的评分，key为图书ID
	RatingsByBookIDs(ctx context.Context, bookIDs []uint) (map[uint][]int, error)
}

package sqldb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/review"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository 创建评价仓储
func NewReviewRepository(db *gorm.DB) review.Repository {
	return &reviewRepository{db: db}
}

// Create (user_id, book_id)联合唯一索引冲突转换为ErrAlreadyReviewed
func (r *reviewRepository) Create(ctx context.Context, rv *review.Review) error {
	model := &ReviewModel{
		UserID:    rv.UserID,
		BookID:    rv.BookID,
		Rating:    rv.Rating,
		Comment:   rv.Comment,
		CreatedAt: rv.CreatedAt,
	}
	if err := conn(ctx, r.db).Omit("User").Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return review.ErrAlreadyReviewed
		}
		return apperrors.Wrap(err, "创建评价失败")
	}
	rv.ID = model.ID
	rv.CreatedAt = model.CreatedAt
	return nil
}

func (r *reviewRepository) FindByID(ctx context.Context, id uint) (*review.Review, error) {
	var model ReviewModel
	if err := conn(ctx, r.db).Preload("User").First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, review.ErrReviewNotFound
		}
		return nil, apperrors.Wrap(err, "查询评价失败")
	}
	return toReviewEntity(&model), nil
}

// Update 用户、图书与创建时间不可修改
func (r *reviewRepository) Update(ctx context.Context, rv *review.Review) error {
	err := conn(ctx, r.db).Model(&ReviewModel{}).Where("id = ?", rv.ID).
		Updates(map[string]interface{}{"rating": rv.Rating, "comment": rv.Comment}).Error
	if err != nil {
		return apperrors.Wrap(err, "更新评价失败")
	}
	return nil
}

func (r *reviewRepository) Delete(ctx context.Context, id uint) error {
	result := conn(ctx, r.db).Delete(&ReviewModel{}, id)
	if result.Error != nil {
		return apperrors.Wrap(result.Error, "删除评价失败")
	}
	if result.RowsAffected == 0 {
		return review.ErrReviewNotFound
	}
	return nil
}

func (r *reviewRepository) List(ctx context.Context, bookID uint, page, pageSize int) ([]*review.Review, int64, error) {
	var (
		models []ReviewModel
		total  int64
	)

	query := conn(ctx, r.db).Model(&ReviewModel{})
	if bookID != 0 {
		query = query.Where("book_id = ?", bookID)
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.Wrap(err, "查询评价总数失败")
	}

	err := query.Preload("User").
		Order("created_at DESC").Order("id DESC").
		Limit(pageSize).Offset(offset(page, pageSize)).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.Wrap(err, "查询评价列表失败")
	}
	return toReviewEntities(models), total, nil
}

func (r *reviewRepository) ListByBook(ctx context.Context, bookID uint) ([]*review.Review, error) {
	var models []ReviewModel
	err := conn(ctx, r.db).Preload("User").
		Where("book_id = ?", bookID).
		Order("created_at DESC").Order("id DESC").
		Find(&models).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询图书评价失败")
	}
	return toReviewEntities(models), nil
}

func (r *reviewRepository) Exists(ctx context.Context, userID, bookID uint) (bool, error) {
	var count int64
	err := conn(ctx, r.db).Model(&ReviewModel{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Count(&count).Error
	if err != nil {
		return false, apperrors.Wrap(err, "查询评价失败")
	}
	return count > 0, nil
}

// RatingsByBookIDs SELECT book_id, rating FROM reviews WHERE book_id IN (...)
func (r *reviewRepository) RatingsByBookIDs(ctx context.Context, bookIDs []uint) (map[uint][]int, error) {
	ratings := make(map[uint][]int, len(bookIDs))
	if len(bookIDs) == 0 {
		return ratings, nil
	}

	var rows []struct {
		BookID uint
		Rating int
	}
	err := conn(ctx, r.db).Model(&ReviewModel{}).
		Select("book_id", "rating").
		Where("book_id IN ?", bookIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(err, "查询评分失败")
	}

	for _, row := range rows {
		ratings[row.BookID] = append(ratings[row.BookID], row.Rating)
	}
	return ratings, nil
}

func toReviewEntities(models []ReviewModel) []*review.Review {
	reviews := make([]*review.Review, len(models))
	for i := range models {
		reviews[i] = toReviewEntity(&models[i])
	}
	return reviews
}

func toReviewEntity(model *ReviewModel) *review.Review {
	return &review.Review{
		ID:        model.ID,
		UserID:    model.UserID,
		Username:  model.User.Username,
		BookID:    model.BookID,
		Rating:    model.Rating,
		Comment:   model.Comment,
		CreatedAt: model.CreatedAt,
	}
}

package review

import (
	"math"
	"time"
)

// Review 图书评价
// 同一用户对同一本书只能有一条评价；BookID与UserID创建后不可修改
type Review struct {
	ID        uint
	UserID    uint
	Username  string // 只读，查询时填充
	BookID    uint
	Rating    int // 1-5
	Comment   string
	CreatedAt time.Time
}

const (
	MinRating = 1
	MaxRating = 5
)

// NewReview 创建评价（工厂方法）
func NewReview(userID, bookID uint, rating int, comment string) (*Review, error) {
	if err := ValidateRating(rating); err != nil {
		return nil, err
	}
	return &Review{
		UserID:    userID,
		BookID:    bookID,
		Rating:    rating,
		Comment:   comment,
		CreatedAt: time.Now(),
	}, nil
}

// OwnerID 评价的所有者
func (r *Review) OwnerID() uint {
	return r.UserID
}

// Update 修改评分和评论，nil表示不修改
func (r *Review) Update(rating *int, comment *string) error {
	if rating != nil {
		if err := ValidateRating(*rating); err != nil {
			return err
		}
		r.Rating = *rating
	}
	if comment != nil {
		r.Comment = *comment
	}
	return nil
}

// ValidateRating 评分必须在1到5之间
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating
	}
	return nil
}

// AverageRating 计算平均评分，保留两位小数；没有评分时返回nil
func AverageRating(ratings []int) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := math.Round(float64(sum)/float64(len(ratings))*100) / 100
	return &avg
}

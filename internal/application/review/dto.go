package review

import (
	"time"

	"github.com/xiebiao/bookshelf/internal/domain/review"
)

// ReviewDTO 评价响应,user为只读的用户名
type ReviewDTO struct {
	ID        uint      `json:"id"`
	User      string    `json:"user"`
	UserID    uint      `json:"user_id"`
	Book      uint      `json:"book"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// ToDTO 领域实体 → 响应DTO
func ToDTO(r *review.Review) ReviewDTO {
	return ReviewDTO{
		ID:        r.ID,
		User:      r.Username,
		UserID:    r.UserID,
		Book:      r.BookID,
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// ToDTOs 批量转换,空列表返回[]而不是null
func ToDTOs(reviews []*review.Review) []ReviewDTO {
	dtos := make([]ReviewDTO, len(reviews))
	for i, r := range reviews {
		dtos[i] = ToDTO(r)
	}
	return dtos
}

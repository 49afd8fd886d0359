package book

import (
	"github.com/xiebiao/bookshelf/internal/application/review"
	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// BookDTO 图书响应
// price为两位小数字符串,average_rating没有评价时为null
type BookDTO struct {
	ID            uint     `json:"id"`
	Title         string   `json:"title"`
	Author        string   `json:"author"`
	ISBN          string   `json:"isbn"`
	Price         string   `json:"price"`
	Stock         int      `json:"stock"`
	PublishedDate string   `json:"published_date"`
	Category      uint     `json:"category"`
	AverageRating *float64 `json:"average_rating"`
}

// BookDetailDTO 图书详情,内嵌该书的全部评价
type BookDetailDTO struct {
	BookDTO
	Reviews []review.ReviewDTO `json:"reviews"`
}

func toDTO(b *book.Book, avg *float64) BookDTO {
	return BookDTO{
		ID:            b.ID,
		Title:         b.Title,
		Author:        b.Author,
		ISBN:          b.ISBN,
		Price:         b.Price.StringFixed(2),
		Stock:         b.Stock,
		PublishedDate: b.PublishedDate.Format(book.DateLayout),
		Category:      b.CategoryID,
		AverageRating: avg,
	}
}

package dto

import "github.com/shopspring/decimal"

// CategoryRequest 创建/整体更新分类
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=100" example:"计算机"`
	Description string `json:"description" example:"编程与计算机科学"`
}

// PatchCategoryRequest 部分更新分类,未出现的字段保持不变
type PatchCategoryRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=100"`
	Description *string `json:"description"`
}

// BookRequest 创建/整体更新图书
// price可以是数字或字符串,如 59.00 或 "59.00"
type BookRequest struct {
	Title         string           `json:"title" binding:"required,max=200" example:"Go语言实战"`
	Author        string           `json:"author" binding:"required,max=100" example:"威廉·肯尼迪"`
	ISBN          string           `json:"isbn" binding:"required" example:"9787115428028"`
	Price         *decimal.Decimal `json:"price" binding:"required" swaggertype:"string" example:"59.00"`
	Stock         *int             `json:"stock" binding:"required" example:"100"`
	PublishedDate string           `json:"published_date" binding:"required" example:"2017-01-01"`
	Category      uint             `json:"category" binding:"required" example:"1"`
}

// PatchBookRequest 部分更新图书
type PatchBookRequest struct {
	Title         *string          `json:"title"`
	Author        *string          `json:"author"`
	ISBN          *string          `json:"isbn"`
	Price         *decimal.Decimal `json:"price" swaggertype:"string"`
	Stock         *int             `json:"stock"`
	PublishedDate *string          `json:"published_date"`
	Category      *uint            `json:"category"`
}

// ListBooksQuery 图书列表查询参数
type ListBooksQuery struct {
	Page     int    `form:"page"`
	Search   string `form:"search"`
	Category uint   `form:"category"`
	Price    string `form:"price"`
	Ordering string `form:"ordering" example:"-price"`
}

// PageQuery 通用分页参数
type PageQuery struct {
	Page int `form:"page"`
}

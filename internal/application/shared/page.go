// Package shared 应用层通用的分页结构
package shared

// PageSize 列表接口固定每页10条
const PageSize = 10

// Page 分页结果
type Page[T any] struct {
	Items    []T
	Total    int64
	Page     int
	PageSize int
}

// NormalizePage 页码小于1时按第1页处理
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// NewPage 构造分页结果
func NewPage[T any](items []T, total int64, page int) *Page[T] {
	if items == nil {
		items = []T{}
	}
	return &Page[T]{Items: items, Total: total, Page: page, PageSize: PageSize}
}

package book

import (
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// Book 图书实体(聚合根)
// DDD设计说明:
// 1. 价格使用decimal存储(避免浮点数精度问题),最多8位有效数字、2位小数
// 2. ISBN作为业务唯一标识(数据库层保证唯一性)
// 3. 库存永远不为负数,扣减时下限为0
type Book struct {
	ID            uint
	Title         string          // 书名
	Author        string          // 作者
	ISBN          string          // 13位ISBN
	Price         decimal.Decimal // 价格(元)
	Stock         int             // 库存数量
	PublishedDate time.Time       // 出版日期(仅日期部分有效)
	CategoryID    uint
}

// DateLayout 出版日期格式
const DateLayout = "2006-01-02"

const (
	isbnLen      = 13
	maxTitleLen  = 200
	maxAuthorLen = 100
)

// maxPrice 价格上限(不含),对应decimal(8,2)
var maxPrice = decimal.NewFromInt(1000000)

// NewBook 创建新图书(工厂方法)
// 参数在返回前完成校验,分类是否存在由调用方确认
func NewBook(title, author, isbn string, price decimal.Decimal, stock int, publishedDate time.Time, categoryID uint) (*Book, error) {
	b := &Book{
		Title:         title,
		Author:        author,
		ISBN:          isbn,
		Price:         price,
		Stock:         stock,
		PublishedDate: publishedDate,
		CategoryID:    categoryID,
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate 校验图书字段
func (b *Book) Validate() error {
	if b.Title == "" || utf8.RuneCountInString(b.Title) > maxTitleLen {
		return ErrInvalidTitle
	}
	if b.Author == "" || utf8.RuneCountInString(b.Author) > maxAuthorLen {
		return ErrInvalidAuthor
	}
	if utf8.RuneCountInString(b.ISBN) != isbnLen {
		return ErrInvalidISBN
	}
	if err := ValidatePrice(b.Price); err != nil {
		return err
	}
	if b.Stock < 0 {
		return ErrInvalidStock
	}
	if b.PublishedDate.IsZero() {
		return ErrInvalidPublishedDate
	}
	if b.CategoryID == 0 {
		return ErrInvalidCategory
	}
	return nil
}

// ValidatePrice 业务规则:0 <= price < 1000000,最多两位小数
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() || price.GreaterThanOrEqual(maxPrice) {
		return ErrInvalidPrice
	}
	if !price.Equal(price.Truncate(2)) {
		return ErrInvalidPrice
	}
	return nil
}

// ParsePublishedDate 解析YYYY-MM-DD格式的日期
func ParsePublishedDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, ErrInvalidPublishedDate
	}
	return t, nil
}

// HasStock 库存是否满足购买数量
func (b *Book) HasStock(quantity int) bool {
	return b.Stock >= quantity
}

// DecrementStock 扣减库存,下限为0
func (b *Book) DecrementStock(quantity int) {
	b.Stock = FlooredStock(b.Stock, quantity)
}

// FlooredStock 计算扣减后的库存 max(0, stock-quantity)
func FlooredStock(stock, quantity int) int {
	if stock <= quantity {
		return 0
	}
	return stock - quantity
}

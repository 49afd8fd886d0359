package category

import (
	"strings"
	"unicode/utf8"
)

// Category 图书分类
// 删除分类会级联删除其下所有图书（以及图书的评价和订单明细）
type Category struct {
	ID          uint
	Name        string // 唯一，不超过100个字符
	Description string
}

const maxNameLen = 100

// NewCategory 创建分类（工厂方法）
func NewCategory(name, description string) (*Category, error) {
	c := &Category{Name: strings.TrimSpace(name), Description: description}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate 名称必填且不超过100个字符
func (c *Category) Validate() error {
	if c.Name == "" || utf8.RuneCountInString(c.Name) > maxNameLen {
		return ErrInvalidName
	}
	return nil
}

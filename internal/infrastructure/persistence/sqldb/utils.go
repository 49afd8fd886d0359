package sqldb

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为唯一索引冲突错误
//   - MySQL 1062: Duplicate entry 'xxx' for key 'yyy'
//   - PostgreSQL 23505: duplicate key value violates unique constraint "yyy"
//   - SQLite: UNIQUE constraint failed: table.column
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint failed")
}

// duplicateOn 冲突信息中是否包含指定列名(三种数据库的错误信息都带有列名或索引名)
func duplicateOn(err error, column string) bool {
	return isDuplicateError(err) && strings.Contains(strings.ToLower(err.Error()), column)
}

// offset 页码从1开始
func offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}

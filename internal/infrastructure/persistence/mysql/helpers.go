package mysql

import (
	"errors"
	"math"
	"strings"

	"gorm.io/gorm"
)

// isDuplicateError 判断是否为唯一索引冲突
// TranslateError开启时驱动会返回gorm.ErrDuplicatedKey，
// 未开启时按错误信息兜底(MySQL 1062 / SQLite UNIQUE)
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate entry") || strings.Contains(msg, "UNIQUE constraint failed")
}

// paginate 分页scope，page从1开始
// OFFSET溢出int时按最大值处理，结果为空页
func paginate(page, pageSize int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if page < 1 {
			page = 1
		}
		if pageSize < 1 {
			return db
		}
		offset := math.MaxInt
		if page-1 <= math.MaxInt/pageSize {
			offset = (page - 1) * pageSize
		}
		return db.Offset(offset).Limit(pageSize)
	}
}

// optionalString 空字符串存为NULL
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package genre

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// Genre 图书分类，与Book多对多(book_genres，关联行带创建时间)
type Genre struct {
	ID          uint
	Name        string // 名称(唯一)
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate 校验实体字段
func (g *Genre) Validate() error {
	errs := apperrors.FieldErrors{}
	name := strings.TrimSpace(g.Name)
	switch {
	case name == "":
		errs.Add("name", "不能为空")
	case utf8.RuneCountInString(name) > 50:
		errs.Add("name", "长度不能超过50")
	}
	return errs.Err()
}

package author

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// Author 作者实体，与Book多对多(book_authors)
type Author struct {
	ID          uint
	FirstName   string
	LastName    string
	Nationality string // 可选
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// FullName 展示用全名
func (a *Author) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}

// Validate 校验实体字段
func (a *Author) Validate() error {
	errs := apperrors.FieldErrors{}
	checkName(errs, "first_name", a.FirstName, true)
	checkName(errs, "last_name", a.LastName, true)
	checkName(errs, "nationality", a.Nationality, false)
	return errs.Err()
}

func checkName(errs apperrors.FieldErrors, field, value string, required bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		if required {
			errs.Add(field, "不能为空")
		}
		return
	}
	if utf8.RuneCountInString(value) > 50 {
		errs.Add(field, "长度不能超过50")
	}
}

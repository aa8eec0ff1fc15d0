package review

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// 评分范围
const (
	MinRating = 1
	MaxRating = 5
)

// Review 书评实体
// CreatedAt只在创建时写入，后续更新不改变
type Review struct {
	ID        uint
	BookID    uint
	UserID    uint
	Text      string
	Rating    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOwnedBy 是否为该用户发表
func (r *Review) IsOwnedBy(userID uint) bool {
	return r.UserID == userID
}

// Validate 校验评分和内容
func (r *Review) Validate() error {
	errs := apperrors.FieldErrors{}

	text := strings.TrimSpace(r.Text)
	switch {
	case text == "":
		errs.Add("review_text", "不能为空")
	case utf8.RuneCountInString(text) > 200:
		errs.Add("review_text", "长度不能超过200")
	}

	if r.Rating < MinRating || r.Rating > MaxRating {
		errs.Add("rating", "必须在1到5之间")
	}
	if r.BookID == 0 {
		errs.Add("book_id", "不能为空")
	}

	return errs.Err()
}

package publisher

import (
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/validator"
)

// Publisher 出版社实体
// 与Book是一对多关系，删除出版社会级联删除其名下图书
type Publisher struct {
	ID              uint
	Name            string // 名称(唯一)
	Location        string // 所在地
	EstablishedYear int    // 成立年份
	Website         string // 官网(可选)
	ContactEmail    string // 联系邮箱(可选)
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Validate 校验实体字段
// 返回的错误带有字段级详情(40900)
func (p *Publisher) Validate() error {
	errs := apperrors.FieldErrors{}

	name := strings.TrimSpace(p.Name)
	switch {
	case name == "":
		errs.Add("name", "不能为空")
	case utf8.RuneCountInString(name) > 100:
		errs.Add("name", "长度不能超过100")
	}

	location := strings.TrimSpace(p.Location)
	switch {
	case location == "":
		errs.Add("location", "不能为空")
	case utf8.RuneCountInString(location) > 200:
		errs.Add("location", "长度不能超过200")
	}

	if p.EstablishedYear <= 0 {
		errs.Add("established_year", "必须是正整数")
	}
	if p.Website != "" && !validator.IsURL(p.Website) {
		errs.Add("website", "URL格式不正确")
	}
	if p.ContactEmail != "" && !validator.IsEmail(p.ContactEmail) {
		errs.Add("contact_email", "邮箱格式不正确")
	}

	return errs.Err()
}

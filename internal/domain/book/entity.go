package book

import (
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/money"
)

// Book 图书实体(聚合根)
// 1. 价格使用int64存储"分"，接口层用decimal解析/格式化
// 2. 出版日期是日历日期，统一存为UTC零点
// 3. 作者、分类只保存ID(跨聚合引用)
type Book struct {
	ID            uint
	Title         string
	PublisherID   uint   // 出版社(多对一)
	AuthorIDs     []uint // 作者(多对多，book_authors)
	GenreIDs      []uint // 分类(多对多，book_genres)
	PublishedDate time.Time
	Price         int64 // 价格(分)
	Stock         int   // 库存数量
	Description   string
	CoverKey      string // 封面图片在对象存储中的key，空表示没有封面
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Date 构造UTC零点的日历日期
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DateOf 取时间点所在的UTC日历日期
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return Date(t.Year(), t.Month(), t.Day())
}

// InStock 是否有货
func (b *Book) InStock() bool {
	return b.Stock > 0
}

// HasStock 库存是否足够购买quantity本
func (b *Book) HasStock(quantity int) bool {
	return quantity > 0 && b.Stock >= quantity
}

// Validate 校验实体字段(不含引用校验)
func (b *Book) Validate() error {
	errs := apperrors.FieldErrors{}

	title := strings.TrimSpace(b.Title)
	switch {
	case title == "":
		errs.Add("title", "不能为空")
	case utf8.RuneCountInString(title) > 100:
		errs.Add("title", "长度不能超过100")
	}

	if b.PublisherID == 0 {
		errs.Add("publisher_id", "不能为空")
	}
	if b.PublishedDate.IsZero() {
		errs.Add("published_date", "不能为空")
	}
	if b.Price < 0 || b.Price > money.MaxCents {
		errs.Add("price", fmt.Sprintf("必须在0到%s之间", money.Format(money.MaxCents)))
	}
	if b.Stock < 0 {
		errs.Add("stock_quantity", "不能为负数")
	}

	return errs.Err()
}

// normalize 去空白、日期截断、引用ID去重排序
func (b *Book) normalize() {
	b.Title = strings.TrimSpace(b.Title)
	if !b.PublishedDate.IsZero() {
		b.PublishedDate = DateOf(b.PublishedDate)
	}
	b.AuthorIDs = uniqueIDs(b.AuthorIDs)
	b.GenreIDs = uniqueIDs(b.GenreIDs)
}

func uniqueIDs(ids []uint) []uint {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

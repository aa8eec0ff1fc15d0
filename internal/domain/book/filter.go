package book

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/money"
)

// 价格区间档位(分)
const (
	cheapUpperBound     = 2000 // cheap: < 20.00
	expensiveLowerBound = 5000 // expensive: > 50.00
)

// Predicate 单个过滤条件
// 同一个条件既能在内存中判定(Match)，也能由仓储翻译成SQL
type Predicate interface {
	Match(b *Book) bool
}

// PriceAtLeast price >= Cents
type PriceAtLeast struct{ Cents int64 }

func (p PriceAtLeast) Match(b *Book) bool { return b.Price >= p.Cents }

// PriceAtMost price <= Cents
type PriceAtMost struct{ Cents int64 }

func (p PriceAtMost) Match(b *Book) bool { return b.Price <= p.Cents }

// PublishedBetween From <= published_date < Until，零值表示不限
type PublishedBetween struct {
	From  time.Time
	Until time.Time
}

func (p PublishedBetween) Match(b *Book) bool {
	d := DateOf(b.PublishedDate)
	if !p.From.IsZero() && d.Before(p.From) {
		return false
	}
	if !p.Until.IsZero() && !d.Before(p.Until) {
		return false
	}
	return true
}

// TextSearch 标题或描述包含Term(不区分大小写)
type TextSearch struct{ Term string }

func (p TextSearch) Match(b *Book) bool {
	term := strings.ToLower(p.Term)
	return strings.Contains(strings.ToLower(b.Title), term) ||
		strings.Contains(strings.ToLower(b.Description), term)
}

// PublisherIs 指定出版社
type PublisherIs struct{ ID uint }

func (p PublisherIs) Match(b *Book) bool { return b.PublisherID == p.ID }

// HasAuthor 作者包含ID
type HasAuthor struct{ ID uint }

func (p HasAuthor) Match(b *Book) bool { return containsID(b.AuthorIDs, p.ID) }

// HasGenre 分类包含ID
type HasGenre struct{ ID uint }

func (p HasGenre) Match(b *Book) bool { return containsID(b.GenreIDs, p.ID) }

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// SortField 可排序字段
type SortField string

const (
	SortByPublishedDate SortField = "published_date"
	SortByPrice         SortField = "price"
	SortByTitle         SortField = "title"
)

// Ordering 排序方式，相同值按ID升序
type Ordering struct {
	Field SortField
	Desc  bool
}

// DefaultOrdering 默认按出版日期倒序
var DefaultOrdering = Ordering{Field: SortByPublishedDate, Desc: true}

// Filter 过滤条件组合(AND)
type Filter struct {
	Predicates []Predicate
	Ordering   Ordering
}

// Match 所有条件都满足
func (f Filter) Match(b *Book) bool {
	for _, p := range f.Predicates {
		if !p.Match(b) {
			return false
		}
	}
	return true
}

// ParseFilter 查询参数 → Filter
//
// 支持的参数：
//   - price_min / price_max：价格上下限(含)
//   - price_range：cheap(<20) / moderate(20-50) / expensive(>50)
//   - published_date：YYYY-MM-DD
//   - published_date_range：today / last_7_days / this_year，以now为基准
//   - search：标题或描述模糊匹配
//   - publisher_id / author_id / genre_id
//   - ordering：price、published_date、title，前缀-表示倒序
//
// 未识别的参数忽略，空值视为未传；已识别参数的值非法时返回字段级参数错误
func ParseFilter(params url.Values, now time.Time) (Filter, error) {
	f := Filter{Ordering: DefaultOrdering}
	errs := apperrors.FieldErrors{}
	today := DateOf(now)

	if v := params.Get("price_min"); v != "" {
		if cents, err := money.Parse(v); err != nil {
			errs.Add("price_min", "价格格式不正确")
		} else {
			f.Predicates = append(f.Predicates, PriceAtLeast{Cents: cents})
		}
	}

	if v := params.Get("price_max"); v != "" {
		if cents, err := money.Parse(v); err != nil {
			errs.Add("price_max", "价格格式不正确")
		} else {
			f.Predicates = append(f.Predicates, PriceAtMost{Cents: cents})
		}
	}

	switch v := params.Get("price_range"); v {
	case "":
	case "cheap":
		f.Predicates = append(f.Predicates, PriceAtMost{Cents: cheapUpperBound - 1})
	case "moderate":
		f.Predicates = append(f.Predicates,
			PriceAtLeast{Cents: cheapUpperBound}, PriceAtMost{Cents: expensiveLowerBound})
	case "expensive":
		f.Predicates = append(f.Predicates, PriceAtLeast{Cents: expensiveLowerBound + 1})
	default:
		errs.Add("price_range", "必须是[cheap moderate expensive]之一")
	}

	if v := params.Get("published_date"); v != "" {
		if d, err := time.Parse("2006-01-02", v); err != nil {
			errs.Add("published_date", "日期格式应为YYYY-MM-DD")
		} else {
			f.Predicates = append(f.Predicates, PublishedBetween{From: d, Until: d.AddDate(0, 0, 1)})
		}
	}

	switch v := params.Get("published_date_range"); v {
	case "":
	case "today":
		f.Predicates = append(f.Predicates, PublishedBetween{From: today, Until: today.AddDate(0, 0, 1)})
	case "last_7_days":
		f.Predicates = append(f.Predicates, PublishedBetween{From: today.AddDate(0, 0, -7)})
	case "this_year":
		start := Date(today.Year(), time.January, 1)
		f.Predicates = append(f.Predicates, PublishedBetween{From: start, Until: start.AddDate(1, 0, 0)})
	default:
		errs.Add("published_date_range", "必须是[today last_7_days this_year]之一")
	}

	if v := strings.TrimSpace(params.Get("search")); v != "" {
		f.Predicates = append(f.Predicates, TextSearch{Term: v})
	}

	idParams := []struct {
		name  string
		build func(id uint) Predicate
	}{
		{"publisher_id", func(id uint) Predicate { return PublisherIs{ID: id} }},
		{"author_id", func(id uint) Predicate { return HasAuthor{ID: id} }},
		{"genre_id", func(id uint) Predicate { return HasGenre{ID: id} }},
	}
	for _, p := range idParams {
		v := params.Get(p.name)
		if v == "" {
			continue
		}
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil || id == 0 {
			errs.Add(p.name, "必须是正整数")
			continue
		}
		f.Predicates = append(f.Predicates, p.build(uint(id)))
	}

	if v := params.Get("ordering"); v != "" {
		ordering, ok := parseOrdering(v)
		if !ok {
			errs.Add("ordering", "必须是[price published_date title]之一，可加前缀-")
		} else {
			f.Ordering = ordering
		}
	}

	if err := errs.Err(); err != nil {
		return Filter{}, err
	}
	return f, nil
}

func parseOrdering(v string) (Ordering, bool) {
	o := Ordering{}
	if strings.HasPrefix(v, "-") {
		o.Desc = true
		v = v[1:]
	}
	switch SortField(v) {
	case SortByPublishedDate, SortByPrice, SortByTitle:
		o.Field = SortField(v)
		return o, true
	}
	return Ordering{}, false
}

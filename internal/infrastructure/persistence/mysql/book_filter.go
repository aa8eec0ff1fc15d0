package mysql

import (
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
)

// likeEscaper LIKE通配符转义，配合 ESCAPE '!'
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// filterScope 把领域过滤条件翻译为WHERE子句(AND组合)
func filterScope(f book.Filter) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, p := range f.Predicates {
			db = applyPredicate(db, p)
		}
		return db
	}
}

func applyPredicate(db *gorm.DB, p book.Predicate) *gorm.DB {
	switch p := p.(type) {
	case book.PriceAtLeast:
		return db.Where("books.price >= ?", p.Cents)
	case book.PriceAtMost:
		return db.Where("books.price <= ?", p.Cents)
	case book.PublishedBetween:
		if !p.From.IsZero() {
			db = db.Where("books.published_date >= ?", p.From)
		}
		if !p.Until.IsZero() {
			db = db.Where("books.published_date < ?", p.Until)
		}
		return db
	case book.TextSearch:
		pattern := "%" + likeEscaper.Replace(strings.ToLower(p.Term)) + "%"
		return db.Where("(LOWER(books.title) LIKE ? ESCAPE '!' OR LOWER(books.description) LIKE ? ESCAPE '!')", pattern, pattern)
	case book.PublisherIs:
		return db.Where("books.publisher_id = ?", p.ID)
	case book.HasAuthor:
		return db.Where("EXISTS (SELECT 1 FROM book_authors WHERE book_authors.book_id = books.id AND book_authors.author_id = ?)", p.ID)
	case book.HasGenre:
		return db.Where("EXISTS (SELECT 1 FROM book_genres WHERE book_genres.book_id = books.id AND book_genres.genre_id = ?)", p.ID)
	default:
		_ = db.AddError(fmt.Errorf("不支持的过滤条件: %T", p))
		return db
	}
}

// orderingScope 排序，同值按ID升序保证分页稳定
func orderingScope(o book.Ordering) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		column := "books.published_date"
		switch o.Field {
		case book.SortByPrice:
			column = "books.price"
		case book.SortByTitle:
			column = "books.title"
		}
		direction := "ASC"
		if o.Desc {
			direction = "DESC"
		}
		return db.Order(column + " " + direction).Order("books.id ASC")
	}
}

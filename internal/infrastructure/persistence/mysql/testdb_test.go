package mysql

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
)

// newTestDB 内存SQLite，单连接保证同一个库且事务串行
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, AutoMigrate(db))
	return db
}

// fixture 常用测试数据
type fixture struct {
	db          *gorm.DB
	publisherID uint
	authorIDs   []uint
	genreIDs    []uint
	userID      uint
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	user := &UserModel{Email: "reader@example.com", Password: "x", Nickname: "reader"}
	require.NoError(t, db.Create(user).Error)

	pub := &PublisherModel{Name: "Penguin", Location: "London", EstablishedYear: 1935}
	require.NoError(t, db.Create(pub).Error)

	authors := []AuthorModel{{FirstName: "Frank", LastName: "Herbert"}, {FirstName: "Isaac", LastName: "Asimov"}}
	require.NoError(t, db.Create(&authors).Error)

	genres := []GenreModel{{Name: "Science Fiction"}, {Name: "Classic"}}
	require.NoError(t, db.Create(&genres).Error)

	return &fixture{
		db:          db,
		publisherID: pub.ID,
		authorIDs:   []uint{authors[0].ID, authors[1].ID},
		genreIDs:    []uint{genres[0].ID, genres[1].ID},
		userID:      user.ID,
	}
}

func (f *fixture) createBook(t *testing.T, title string, price int64, stock int, published time.Time) *book.Book {
	t.Helper()
	b := &book.Book{
		Title:         title,
		PublisherID:   f.publisherID,
		PublishedDate: published,
		Price:         price,
		Stock:         stock,
		AuthorIDs:     []uint{f.authorIDs[0]},
		GenreIDs:      []uint{f.genreIDs[0]},
	}
	require.NoError(t, NewBookRepository(f.db).Create(context.Background(), b))
	return b
}

func uintStr(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

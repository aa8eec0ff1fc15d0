package book

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// memRepo 内存仓储，只实现服务用到的行为
type memRepo struct {
	books       map[uint]*Book
	nextID      uint
	stockWrites int
}

func newMemRepo() *memRepo {
	return &memRepo{books: map[uint]*Book{}, nextID: 1}
}

func (r *memRepo) Create(_ context.Context, b *Book) error {
	b.ID = r.nextID
	r.nextID++
	cp := *b
	r.books[b.ID] = &cp
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uint) (*Book, error) {
	b, ok := r.books[id]
	if !ok {
		return nil, ErrBookNotFound
	}
	cp := *b
	return &cp, nil
}

func (r *memRepo) FindByIDs(ctx context.Context, ids []uint) ([]*Book, error) {
	var out []*Book
	for _, id := range ids {
		if b, err := r.FindByID(ctx, id); err == nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *memRepo) Update(_ context.Context, b *Book) error {
	cp := *b
	cp.Stock = r.books[b.ID].Stock
	r.books[b.ID] = &cp
	return nil
}

func (r *memRepo) SetStock(_ context.Context, id uint, stock int) error {
	r.books[id].Stock = stock
	r.stockWrites++
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uint) error {
	delete(r.books, id)
	return nil
}

func (r *memRepo) List(_ context.Context, f Filter, _, _ int) ([]*Book, int64, error) {
	var out []*Book
	for _, b := range r.books {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memRepo) LockByID(ctx context.Context, id uint) (*Book, error) {
	return r.FindByID(ctx, id)
}

func (r *memRepo) UpdateStock(_ context.Context, id uint, delta int) error {
	b := r.books[id]
	if b.Stock+delta < 0 {
		return ErrInsufficientStock
	}
	b.Stock += delta
	return nil
}

func (r *memRepo) SetCover(_ context.Context, id uint, key string) error {
	b, ok := r.books[id]
	if !ok {
		return ErrBookNotFound
	}
	b.CoverKey = key
	return nil
}

type fakeRefs struct {
	publishers map[uint]bool
	authors    map[uint]bool
	genres     map[uint]bool
}

func (f fakeRefs) PublisherExists(_ context.Context, id uint) (bool, error) {
	return f.publishers[id], nil
}

func (f fakeRefs) MissingAuthors(_ context.Context, ids []uint) ([]uint, error) {
	return missing(f.authors, ids), nil
}

func (f fakeRefs) MissingGenres(_ context.Context, ids []uint) ([]uint, error) {
	return missing(f.genres, ids), nil
}

func missing(known map[uint]bool, ids []uint) []uint {
	var out []uint
	for _, id := range ids {
		if !known[id] {
			out = append(out, id)
		}
	}
	return out
}

func newTestService() (Service, *memRepo) {
	repo := newMemRepo()
	refs := fakeRefs{
		publishers: map[uint]bool{1: true},
		authors:    map[uint]bool{1: true, 2: true},
		genres:     map[uint]bool{1: true},
	}
	return NewService(repo, refs), repo
}

func newBook() *Book {
	return &Book{
		Title:         "  Dune ",
		PublisherID:   1,
		AuthorIDs:     []uint{2, 1, 2},
		GenreIDs:      []uint{1},
		PublishedDate: time.Date(1965, time.August, 1, 15, 4, 0, 0, time.UTC),
		Price:         2999,
		Stock:         3,
	}
}

func TestService_Create(t *testing.T) {
	svc, _ := newTestService()

	b, err := svc.Create(context.Background(), newBook())
	require.NoError(t, err)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, []uint{1, 2}, b.AuthorIDs)
	assert.Equal(t, Date(1965, time.August, 1), b.PublishedDate)
	assert.True(t, b.InStock())
}

func TestService_CreateValidation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name   string
		modify func(b *Book)
		field  string
	}{
		{"标题为空", func(b *Book) { b.Title = " " }, "title"},
		{"价格为负", func(b *Book) { b.Price = -1 }, "price"},
		{"价格超上限", func(b *Book) { b.Price = 10_000_000_000 }, "price"},
		{"库存为负", func(b *Book) { b.Stock = -1 }, "stock_quantity"},
		{"出版日期为空", func(b *Book) { b.PublishedDate = time.Time{} }, "published_date"},
		{"出版社不存在", func(b *Book) { b.PublisherID = 9 }, "publisher_id"},
		{"作者不存在", func(b *Book) { b.AuthorIDs = []uint{1, 7} }, "author_ids"},
		{"分类不存在", func(b *Book) { b.GenreIDs = []uint{5} }, "genre_ids"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newBook()
			tt.modify(b)
			_, err := svc.Create(context.Background(), b)
			require.Error(t, err)
			details := apperrors.GetAppError(err).Details.(apperrors.FieldErrors)
			assert.Contains(t, details, tt.field)
		})
	}
}

func TestService_UpdateKeepsCover(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	b, err := svc.Create(ctx, newBook())
	require.NoError(t, err)
	_, err = svc.SetCover(ctx, b.ID, "covers/1.png")
	require.NoError(t, err)

	update := newBook()
	update.ID = b.ID
	update.Price = 1500
	got, err := svc.Update(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, "covers/1.png", got.CoverKey)
	assert.Equal(t, int64(1500), repo.books[b.ID].Price)
}

func TestService_UpdateWritesStock(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	b, err := svc.Create(ctx, newBook())
	require.NoError(t, err)

	update := newBook()
	update.ID = b.ID
	update.Stock = 10
	_, err = svc.Update(ctx, update)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.books[b.ID].Stock)
}

func TestService_Patch(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	b, err := svc.Create(ctx, newBook())
	require.NoError(t, err)
	_, err = svc.SetCover(ctx, b.ID, "covers/1.png")
	require.NoError(t, err)

	t.Run("只改标题不写库存", func(t *testing.T) {
		got, err := svc.Patch(ctx, b.ID, func(b *Book) { b.Title = " Dune Messiah " })
		require.NoError(t, err)
		assert.Equal(t, "Dune Messiah", got.Title)
		assert.Equal(t, "covers/1.png", got.CoverKey)
		assert.Equal(t, []uint{1, 2}, got.AuthorIDs)
		assert.Zero(t, repo.stockWrites)
	})

	t.Run("修改库存", func(t *testing.T) {
		got, err := svc.Patch(ctx, b.ID, func(b *Book) { b.Stock = 7 })
		require.NoError(t, err)
		assert.Equal(t, 7, got.Stock)
		assert.Equal(t, 1, repo.stockWrites)
	})

	t.Run("校验失败", func(t *testing.T) {
		_, err := svc.Patch(ctx, b.ID, func(b *Book) { b.Stock = -1 })
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)
		assert.Equal(t, 7, repo.books[b.ID].Stock)
	})

	t.Run("图书不存在", func(t *testing.T) {
		_, err := svc.Patch(ctx, 99, func(*Book) {})
		assert.ErrorIs(t, err, ErrBookNotFound)
	})
}

func TestService_DeleteNotFound(t *testing.T) {
	svc, _ := newTestService()
	assert.ErrorIs(t, svc.Delete(context.Background(), 42), ErrBookNotFound)
}

func TestBook_HasStock(t *testing.T) {
	b := &Book{Stock: 2}
	assert.True(t, b.HasStock(2))
	assert.False(t, b.HasStock(3))
	assert.False(t, b.HasStock(0))
}

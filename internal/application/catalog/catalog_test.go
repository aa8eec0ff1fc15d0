package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/xiebiao/bookstore-backend/internal/domain/author"
	"github.com/xiebiao/bookstore-backend/internal/domain/genre"
	"github.com/xiebiao/bookstore-backend/internal/domain/publisher"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/persistence/mysql/sqlitetest"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

func strPtr(s string) *string { return &s }

func newPublisherUseCase(db *gorm.DB) *PublisherUseCase {
	return NewPublisherUseCase(publisher.NewService(mysql.NewPublisherRepository(db)))
}

func TestPublisherUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	uc := newPublisherUseCase(sqlitetest.Open(t))

	created, err := uc.Create(ctx, PublisherInput{
		Name:            "Penguin",
		Location:        "London",
		EstablishedYear: 1935,
		ContactEmail:    "press@penguin.example.com",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Penguin", created.Name)

	// PATCH只改传入的字段
	patched, err := uc.Patch(ctx, created.ID, PublisherPatch{Location: strPtr("New York")})
	require.NoError(t, err)
	assert.Equal(t, "Penguin", patched.Name)
	assert.Equal(t, "New York", patched.Location)
	assert.Equal(t, 1935, patched.EstablishedYear)
	assert.Equal(t, "press@penguin.example.com", patched.ContactEmail)

	// PUT全量覆盖：未传的可选字段被清空
	updated, err := uc.Update(ctx, created.ID, PublisherInput{Name: "Penguin Books", Location: "London", EstablishedYear: 1936})
	require.NoError(t, err)
	assert.Equal(t, "Penguin Books", updated.Name)
	assert.Empty(t, updated.ContactEmail)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	list, total, err := uc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, publisher.ErrPublisherNotFound)
}

func TestPublisherUseCase_Invalid(t *testing.T) {
	ctx := context.Background()
	uc := newPublisherUseCase(sqlitetest.Open(t))

	_, err := uc.Create(ctx, PublisherInput{Name: "  ", Location: "London", EstablishedYear: 1935, Website: "not a url"})
	require.Error(t, err)
	appErr := apperrors.GetAppError(err)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
	fe, ok := appErr.Details.(apperrors.FieldErrors)
	require.True(t, ok)
	assert.Contains(t, fe, "name")
	assert.Contains(t, fe, "website")

	created, err := uc.Create(ctx, PublisherInput{Name: "Penguin", Location: "London", EstablishedYear: 1935})
	require.NoError(t, err)

	_, err = uc.Patch(ctx, created.ID, PublisherPatch{ContactEmail: strPtr("bad@")})
	assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)

	_, err = uc.Patch(ctx, created.ID+100, PublisherPatch{Location: strPtr("Paris")})
	assert.ErrorIs(t, err, publisher.ErrPublisherNotFound)
}

func TestAuthorUseCase(t *testing.T) {
	ctx := context.Background()
	uc := NewAuthorUseCase(author.NewService(mysql.NewAuthorRepository(sqlitetest.Open(t))))

	created, err := uc.Create(ctx, AuthorInput{FirstName: "George", LastName: "Orwell", Nationality: "British"})
	require.NoError(t, err)
	assert.Equal(t, "George Orwell", created.FullName)

	patched, err := uc.Patch(ctx, created.ID, AuthorPatch{Nationality: strPtr("English")})
	require.NoError(t, err)
	assert.Equal(t, "George", patched.FirstName)
	assert.Equal(t, "English", patched.Nationality)

	_, err = uc.Update(ctx, created.ID, AuthorInput{FirstName: "", LastName: "Orwell"})
	assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.Get(ctx, created.ID)
	assert.ErrorIs(t, err, author.ErrAuthorNotFound)
}

func TestGenreUseCase(t *testing.T) {
	ctx := context.Background()
	uc := NewGenreUseCase(genre.NewService(mysql.NewGenreRepository(sqlitetest.Open(t))))

	created, err := uc.Create(ctx, GenreInput{Name: "Classic", Description: "Timeless works"})
	require.NoError(t, err)

	_, err = uc.Create(ctx, GenreInput{Name: "Classic", Description: "again"})
	assert.ErrorIs(t, err, genre.ErrNameDuplicate)

	patched, err := uc.Patch(ctx, created.ID, GenrePatch{Description: strPtr("Old but gold")})
	require.NoError(t, err)
	assert.Equal(t, "Classic", patched.Name)
	assert.Equal(t, "Old but gold", patched.Description)

	list, total, err := uc.List(ctx, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, list, 1)
}

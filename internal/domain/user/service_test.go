package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

type memRepo struct {
	byEmail map[string]*User
}

func (r *memRepo) Create(_ context.Context, u *User) error {
	if _, ok := r.byEmail[u.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	u.ID = uint(len(r.byEmail) + 1)
	r.byEmail[u.Email] = u
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uint) (*User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func newService() Service {
	return NewService(&memRepo{byEmail: map[string]*User{}}, bcrypt.MinCost)
}

func TestRegister(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	t.Run("注册成功", func(t *testing.T) {
		u, err := svc.Register(ctx, " Reader@Example.com ", "secret123", "读者")
		require.NoError(t, err)
		assert.Equal(t, "reader@example.com", u.Email)
		assert.NotEqual(t, "secret123", u.Password)
	})

	t.Run("邮箱重复", func(t *testing.T) {
		_, err := svc.Register(ctx, "reader@example.com", "secret123", "读者2")
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})

	t.Run("邮箱格式错误", func(t *testing.T) {
		_, err := svc.Register(ctx, "reader", "secret123", "读者")
		require.Error(t, err)
		assert.Contains(t, apperrors.GetAppError(err).Details, "email")
	})

	t.Run("密码太弱", func(t *testing.T) {
		for _, pwd := range []string{"short1", "onlyletters", "12345678"} {
			_, err := svc.Register(ctx, "weak@example.com", pwd, "读者")
			assert.ErrorIs(t, err, apperrors.ErrWeakPassword, pwd)
		}
	})
}

func TestLogin(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Register(ctx, "reader@example.com", "secret123", "读者")
	require.NoError(t, err)

	u, err := svc.Login(ctx, "READER@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, "读者", u.Nickname)

	_, err = svc.Login(ctx, "reader@example.com", "wrong1234")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)

	_, err = svc.Login(ctx, "nobody@example.com", "secret123")
	assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_IsAfterCopy(t *testing.T) {
	base := New(ErrCodeInsufficientStock, "库存不足")
	withDetails := base.WithDetails(map[string]int{"book_id": 1})

	assert.True(t, errors.Is(withDetails, base))
	assert.Nil(t, base.Details, "预定义错误不应被修改")

	wrapped := fmt.Errorf("下单失败: %w", withDetails)
	assert.True(t, errors.Is(wrapped, base))
	assert.False(t, errors.Is(wrapped, ErrInvalidParams))
}

func TestHTTPStatus(t *testing.T) {
	cases := map[int]int{
		ErrCodeInternal:          http.StatusInternalServerError,
		ErrCodeUpstream:          http.StatusBadGateway,
		ErrCodeUnauthorized:      http.StatusUnauthorized,
		ErrCodeTokenExpired:      http.StatusUnauthorized,
		ErrCodeForbidden:         http.StatusForbidden,
		ErrCodeBookNotFound:      http.StatusNotFound,
		ErrCodePublisherNotFound: http.StatusNotFound,
		ErrCodeInsufficientStock: http.StatusBadRequest,
		ErrCodeDuplicateEntry:    http.StatusConflict,
		ErrCodeInvalidParams:     http.StatusBadRequest,
	}
	for code, want := range cases {
		assert.Equal(t, want, HTTPStatus(code), "code=%d", code)
	}
}

func TestFieldErrors(t *testing.T) {
	fe := FieldErrors{}
	require.NoError(t, fe.Err())

	fe.Add("rating", "评分必须在1-5之间")
	fe.Add("rating", "第二条会被忽略")
	err := fe.Err()
	require.Error(t, err)

	appErr := GetAppError(err)
	assert.Equal(t, ErrCodeInvalidParams, appErr.Code)
	assert.Equal(t, FieldErrors{"rating": "评分必须在1-5之间"}, appErr.Details)
}

func TestGetAppError_WrapsPlainError(t *testing.T) {
	appErr := GetAppError(errors.New("boom"))
	assert.Equal(t, ErrCodeInternal, appErr.Code)
	assert.EqualError(t, appErr.Unwrap(), "boom")
}

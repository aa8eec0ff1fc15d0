package author

import (
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// ErrAuthorNotFound 作者不存在
var ErrAuthorNotFound = apperrors.New(apperrors.ErrCodeAuthorNotFound, "作者不存在")

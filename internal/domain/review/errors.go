package review

import (
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

var (
	// ErrReviewNotFound 书评不存在
	ErrReviewNotFound = apperrors.New(apperrors.ErrCodeReviewNotFound, "书评不存在")

	// ErrNotOwner 只能修改自己的书评
	ErrNotOwner = apperrors.New(apperrors.ErrCodeForbidden, "只能修改或删除自己的书评")
)

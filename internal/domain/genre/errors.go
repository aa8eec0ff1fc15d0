package genre

import (
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

var (
	// ErrGenreNotFound 分类不存在
	ErrGenreNotFound = apperrors.New(apperrors.ErrCodeGenreNotFound, "分类不存在")

	// ErrNameDuplicate 分类名称已存在
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "分类名称已存在")
)

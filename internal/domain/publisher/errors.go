package publisher

import (
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// 出版社领域错误定义
var (
	// ErrPublisherNotFound 出版社不存在
	ErrPublisherNotFound = apperrors.New(apperrors.ErrCodePublisherNotFound, "出版社不存在")

	// ErrNameDuplicate 出版社名称已存在
	ErrNameDuplicate = apperrors.New(apperrors.ErrCodeDuplicateEntry, "出版社名称已存在")
)

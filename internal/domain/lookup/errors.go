package lookup

import (
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// ErrEmptyQuery 检索词为空
var ErrEmptyQuery = apperrors.NewValidation("q", "不能为空")

// NewUpstreamError 外部目录调用失败，message携带上游错误信息
func NewUpstreamError(cause error) error {
	return apperrors.New(apperrors.ErrCodeUpstream, "外部目录服务错误: "+cause.Error()).WithErr(cause)
}

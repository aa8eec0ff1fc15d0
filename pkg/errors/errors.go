package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code用于客户端判断错误类型
// 2. Message是用户友好的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
// 4. Details是可以安全返回给客户端的附加信息（字段级校验错误、库存缺口等）
type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Err     error       `json:"-"`
	Details interface{} `json:"details,omitempty"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is 按错误码比较
// 预定义错误经过WithDetails/WithMessage复制后仍能用errors.Is匹配
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// WithDetails 复制错误并附加详情（不修改预定义错误）
func (e *AppError) WithDetails(details interface{}) *AppError {
	cp := *e
	cp.Details = details
	return &cp
}

// WithErr 复制错误并附加内部原因
func (e *AppError) WithErr(err error) *AppError {
	cp := *e
	cp.Err = err
	return &cp
}

// HTTPStatus 错误码对应的HTTP状态码
func (e *AppError) HTTPStatus() int {
	return HTTPStatus(e.Code)
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Wrap 包装系统错误（如数据库错误、网络错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 4xxxx: 客户端错误（参数错误、业务规则校验失败）
// - 5xxxx: 服务端错误（数据库异常、外部服务调用失败）

const (
	// 系统级错误码（50000-50099）
	ErrCodeInternal      = 50000 // 内部错误
	ErrCodeDatabaseError = 50001 // 数据库错误
	ErrCodeRedisError    = 50002 // Redis错误
	ErrCodeUpstream      = 50003 // 外部服务错误
	ErrCodeStorageError  = 50004 // 文件存储错误

	// 认证授权错误（40100-40199）
	ErrCodeUnauthorized    = 40100 // 未登录
	ErrCodeInvalidToken    = 40101 // Token无效
	ErrCodeTokenExpired    = 40102 // Token过期
	ErrCodeInvalidPassword = 40103 // 密码错误
	ErrCodeForbidden       = 40104 // 无权限

	// 资源错误（40400-40499）
	ErrCodeNotFound          = 40400 // 资源不存在(通用)
	ErrCodeUserNotFound      = 40401 // 用户不存在
	ErrCodeBookNotFound      = 40402 // 图书不存在
	ErrCodeOrderNotFound     = 40403 // 订单不存在
	ErrCodePublisherNotFound = 40404 // 出版社不存在
	ErrCodeAuthorNotFound    = 40405 // 作者不存在
	ErrCodeGenreNotFound     = 40406 // 分类不存在
	ErrCodeReviewNotFound    = 40407 // 书评不存在

	// 业务规则错误（40000-40099）
	ErrCodeBusinessError      = 40000 // 业务错误(通用)
	ErrCodeInsufficientStock  = 40001 // 库存不足
	ErrCodeInvalidOrderStatus = 40002 // 订单状态非法
	ErrCodeEmailDuplicate     = 40003 // 邮箱已存在
	ErrCodeWeakPassword       = 40005 // 密码强度不足
	ErrCodeDuplicateEntry     = 40009 // 重复记录(通用)

	// 参数错误（40900-40999）
	ErrCodeInvalidParams = 40900 // 参数错误
	ErrCodeBindError     = 40901 // 参数绑定失败
)

// HTTPStatus 业务错误码 → HTTP状态码
// 响应体仍然是统一的{code,message,data}结构
func HTTPStatus(code int) int {
	switch {
	case code == ErrCodeUpstream:
		return http.StatusBadGateway
	case code == ErrCodeForbidden:
		return http.StatusForbidden
	case code == ErrCodeInvalidPassword:
		return http.StatusUnauthorized
	case code >= 50000:
		return http.StatusInternalServerError
	case code >= 40900:
		return http.StatusBadRequest
	case code >= 40400:
		return http.StatusNotFound
	case code >= 40100:
		return http.StatusUnauthorized
	case code == ErrCodeEmailDuplicate || code == ErrCodeDuplicateEntry:
		return http.StatusConflict
	case code >= 40000:
		return http.StatusBadRequest
	default:
		return http.StatusOK
	}
}

// =========================================
// 预定义错误
// =========================================

var (
	// 系统错误
	ErrInternal      = New(ErrCodeInternal, "系统内部错误")
	ErrDatabaseError = New(ErrCodeDatabaseError, "数据库错误")
	ErrRedisError    = New(ErrCodeRedisError, "缓存服务错误")

	// 认证授权
	ErrUnauthorized    = New(ErrCodeUnauthorized, "请先登录")
	ErrInvalidToken    = New(ErrCodeInvalidToken, "无效的Token")
	ErrTokenExpired    = New(ErrCodeTokenExpired, "Token已过期")
	ErrInvalidPassword = New(ErrCodeInvalidPassword, "密码错误")
	ErrForbidden       = New(ErrCodeForbidden, "无权限访问")

	// 资源不存在
	ErrNotFound     = New(ErrCodeNotFound, "资源不存在")
	ErrUserNotFound = New(ErrCodeUserNotFound, "用户不存在")

	// 业务规则
	ErrEmailDuplicate = New(ErrCodeEmailDuplicate, "邮箱已被注册")
	ErrWeakPassword   = New(ErrCodeWeakPassword, "密码强度不足（需8-20位，包含字母和数字）")

	// 参数错误
	ErrInvalidParams = New(ErrCodeInvalidParams, "参数错误")
	ErrBindError     = New(ErrCodeBindError, "参数格式错误")
)

// =========================================
// 字段级校验错误
// =========================================

// FieldErrors 字段名 → 错误描述
type FieldErrors map[string]string

// Add 追加一个字段错误（同一字段只保留第一条）
func (f FieldErrors) Add(field, message string) {
	if _, ok := f[field]; !ok {
		f[field] = message
	}
}

// Err 没有错误时返回nil，否则返回带Details的参数错误
func (f FieldErrors) Err() error {
	if len(f) == 0 {
		return nil
	}
	return ErrInvalidParams.WithDetails(f)
}

// NewValidation 单字段参数错误
func NewValidation(field, message string) *AppError {
	return ErrInvalidParams.WithDetails(FieldErrors{field: message})
}

// =========================================
// 辅助函数
// =========================================

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "系统内部错误")
}

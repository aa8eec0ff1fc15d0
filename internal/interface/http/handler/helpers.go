package handler

import (
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/response"
	"github.com/xiebiao/bookstore-backend/pkg/validator"
)

// MaxPage page上限，(page-1)*page_size必须能安全换算成OFFSET
const MaxPage = 100000

// Paging 分页参数解析
// page默认1，超过MaxPage返回参数错误；page_size默认DefaultSize，超过MaxSize时截断为MaxSize
type Paging struct {
	DefaultSize int
	MaxSize     int
}

// NewPaging 从配置创建分页参数
func NewPaging(cfg *config.Config) Paging {
	return Paging{DefaultSize: cfg.Server.DefaultPageSize, MaxSize: cfg.Server.MaxPageSize}
}

// Parse 解析page、page_size，非整数或小于1返回字段级参数错误
func (p Paging) Parse(c *gin.Context) (page, pageSize int, err error) {
	errs := apperrors.FieldErrors{}
	page = parsePositive(c, "page", 1, errs)
	if page > MaxPage {
		errs.Add("page", fmt.Sprintf("不能超过%d", MaxPage))
	}
	pageSize = parsePositive(c, "page_size", p.DefaultSize, errs)
	if err := errs.Err(); err != nil {
		return 0, 0, err
	}
	if pageSize > p.MaxSize {
		pageSize = p.MaxSize
	}
	return page, pageSize, nil
}

func parsePositive(c *gin.Context, name string, def int, errs apperrors.FieldErrors) int {
	v := c.Query(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		errs.Add(name, "必须是正整数")
		return def
	}
	return n
}

// bindJSON 绑定并校验请求体，失败时直接写出错误响应
func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		response.Error(c, validator.Translate(err))
		return false
	}
	return true
}

// pathID 解析路径参数中的ID
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		response.Error(c, apperrors.NewValidation(name, "必须是正整数"))
		return 0, false
	}
	return uint(id), true
}

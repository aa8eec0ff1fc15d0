package handler

import (
	"github.com/gin-gonic/gin"

	applookup "github.com/xiebiao/bookstore-backend/internal/application/lookup"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-backend/pkg/response"
	"github.com/xiebiao/bookstore-backend/pkg/validator"
)

// LookupHandler 外部图书目录检索
type LookupHandler struct {
	searchUseCase *applookup.SearchUseCase
}

// NewLookupHandler 创建检索处理器
func NewLookupHandler(searchUseCase *applookup.SearchUseCase) *LookupHandler {
	return &LookupHandler{searchUseCase: searchUseCase}
}

// Search 检索Open Library
// @Summary      外部图书检索
// @Description  结果缓存在Redis；上游失败或熔断时返回50003
// @Tags         外部目录
// @Produce      json
// @Security     BearerAuth
// @Param        q     query string true  "关键词"
// @Param        limit query int    false "返回条数"
// @Success      200 {object} response.Response{data=applookup.SearchResponse}
// @Failure      502 {object} response.Response "上游服务不可用"
// @Router       /api/v1/catalog/search [get]
func (h *LookupHandler) Search(c *gin.Context) {
	var req dto.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, validator.Translate(err))
		return
	}

	result, err := h.searchUseCase.Execute(c.Request.Context(), applookup.SearchRequest{
		Query: req.Query,
		Limit: req.Limit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

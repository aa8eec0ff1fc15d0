package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-backend/internal/application/catalog"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-backend/pkg/response"
)

// GenreHandler 分类HTTP处理器
type GenreHandler struct {
	uc     *catalog.GenreUseCase
	paging Paging
}

// NewGenreHandler 创建分类处理器
func NewGenreHandler(uc *catalog.GenreUseCase, paging Paging) *GenreHandler {
	return &GenreHandler{uc: uc, paging: paging}
}

// List 分类列表
// @Summary      分类列表
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{list=[]catalog.GenreResponse}}
// @Router       /api/v1/genres [get]
func (h *GenreHandler) List(c *gin.Context) {
	page, pageSize, err := h.paging.Parse(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	list, total, err := h.uc.List(c.Request.Context(), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, list, total, page, pageSize)
}

// Create 创建分类
// @Summary      创建分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.GenreRequest true "分类信息"
// @Success      201 {object} response.Response{data=catalog.GenreResponse}
// @Failure      409 {object} response.Response "名称已存在"
// @Router       /api/v1/genres [post]
func (h *GenreHandler) Create(c *gin.Context) {
	var req dto.GenreRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.uc.Create(c.Request.Context(), catalog.GenreInput{Name: req.Name, Description: req.Description})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get 分类详情
// @Summary      分类详情
// @Tags         分类
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      200 {object} response.Response{data=catalog.GenreResponse}
// @Router       /api/v1/genres/{id} [get]
func (h *GenreHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.uc.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 全量更新分类
// @Summary      全量更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int              true "分类ID"
// @Param        request body dto.GenreRequest true "分类信息"
// @Success      200 {object} response.Response{data=catalog.GenreResponse}
// @Router       /api/v1/genres/{id} [put]
func (h *GenreHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.GenreRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.uc.Update(c.Request.Context(), id, catalog.GenreInput{Name: req.Name, Description: req.Description})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Patch 部分更新分类
// @Summary      部分更新分类
// @Tags         分类
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                   true "分类ID"
// @Param        request body dto.GenrePatchRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=catalog.GenreResponse}
// @Router       /api/v1/genres/{id} [patch]
func (h *GenreHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.GenrePatchRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.uc.Patch(c.Request.Context(), id, catalog.GenrePatch{Name: req.Name, Description: req.Description})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除分类，图书保留
// @Summary      删除分类
// @Tags         分类
// @Security     BearerAuth
// @Param        id path int true "分类ID"
// @Success      204
// @Router       /api/v1/genres/{id} [delete]
func (h *GenreHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

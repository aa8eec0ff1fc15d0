package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-backend/internal/application/catalog"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-backend/pkg/response"
)

// AuthorHandler 作者HTTP处理器
type AuthorHandler struct {
	uc     *catalog.AuthorUseCase
	paging Paging
}

// NewAuthorHandler 创建作者处理器
func NewAuthorHandler(uc *catalog.AuthorUseCase, paging Paging) *AuthorHandler {
	return &AuthorHandler{uc: uc, paging: paging}
}

// List 作者列表
// @Summary      作者列表
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{list=[]catalog.AuthorResponse}}
// @Router       /api/v1/authors [get]
func (h *AuthorHandler) List(c *gin.Context) {
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

// Create 创建作者
// @Summary      创建作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      201 {object} response.Response{data=catalog.AuthorResponse}
// @Router       /api/v1/authors [post]
func (h *AuthorHandler) Create(c *gin.Context) {
	var req dto.AuthorRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.uc.Create(c.Request.Context(), authorInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get 作者详情
// @Summary      作者详情
// @Tags         作者
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      200 {object} response.Response{data=catalog.AuthorResponse}
// @Router       /api/v1/authors/{id} [get]
func (h *AuthorHandler) Get(c *gin.Context) {
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

// Update 全量更新作者
// @Summary      全量更新作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int               true "作者ID"
// @Param        request body dto.AuthorRequest true "作者信息"
// @Success      200 {object} response.Response{data=catalog.AuthorResponse}
// @Router       /api/v1/authors/{id} [put]
func (h *AuthorHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AuthorRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.uc.Update(c.Request.Context(), id, authorInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Patch 部分更新作者
// @Summary      部分更新作者
// @Tags         作者
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                    true "作者ID"
// @Param        request body dto.AuthorPatchRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=catalog.AuthorResponse}
// @Router       /api/v1/authors/{id} [patch]
func (h *AuthorHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.AuthorPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.uc.Patch(c.Request.Context(), id, catalog.AuthorPatch{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Nationality: req.Nationality,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除作者，图书保留
// @Summary      删除作者
// @Tags         作者
// @Security     BearerAuth
// @Param        id path int true "作者ID"
// @Success      204
// @Router       /api/v1/authors/{id} [delete]
func (h *AuthorHandler) Delete(c *gin.Context) {
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

func authorInput(req dto.AuthorRequest) catalog.AuthorInput {
	return catalog.AuthorInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Nationality: req.Nationality,
	}
}

package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/xiebiao/bookstore-backend/internal/application/catalog"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-backend/pkg/response"
)

// PublisherHandler 出版社HTTP处理器
type PublisherHandler struct {
	uc     *catalog.PublisherUseCase
	paging Paging
}

// NewPublisherHandler 创建出版社处理器
func NewPublisherHandler(uc *catalog.PublisherUseCase, paging Paging) *PublisherHandler {
	return &PublisherHandler{uc: uc, paging: paging}
}

// List 出版社列表
// @Summary      出版社列表
// @Tags         出版社
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{list=[]catalog.PublisherResponse}}
// @Router       /api/v1/publishers [get]
func (h *PublisherHandler) List(c *gin.Context) {
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

// Create 创建出版社
// @Summary      创建出版社
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PublisherRequest true "出版社信息"
// @Success      201 {object} response.Response{data=catalog.PublisherResponse}
// @Failure      400 {object} response.Response "参数错误"
// @Failure      409 {object} response.Response "名称已存在"
// @Router       /api/v1/publishers [post]
func (h *PublisherHandler) Create(c *gin.Context) {
	var req dto.PublisherRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.uc.Create(c.Request.Context(), publisherInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get 出版社详情
// @Summary      出版社详情
// @Tags         出版社
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Success      200 {object} response.Response{data=catalog.PublisherResponse}
// @Failure      404 {object} response.Response "出版社不存在"
// @Router       /api/v1/publishers/{id} [get]
func (h *PublisherHandler) Get(c *gin.Context) {
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

// Update 全量更新出版社
// @Summary      全量更新出版社
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                  true "出版社ID"
// @Param        request body dto.PublisherRequest true "出版社信息"
// @Success      200 {object} response.Response{data=catalog.PublisherResponse}
// @Router       /api/v1/publishers/{id} [put]
func (h *PublisherHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PublisherRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.uc.Update(c.Request.Context(), id, publisherInput(req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Patch 部分更新出版社
// @Summary      部分更新出版社
// @Tags         出版社
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                       true "出版社ID"
// @Param        request body dto.PublisherPatchRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=catalog.PublisherResponse}
// @Router       /api/v1/publishers/{id} [patch]
func (h *PublisherHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PublisherPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.uc.Patch(c.Request.Context(), id, catalog.PublisherPatch{
		Name:            req.Name,
		Location:        req.Location,
		EstablishedYear: req.EstablishedYear,
		Website:         req.Website,
		ContactEmail:    req.ContactEmail,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除出版社，名下图书及其书评、订单明细一并删除
// @Summary      删除出版社
// @Tags         出版社
// @Security     BearerAuth
// @Param        id path int true "出版社ID"
// @Success      204
// @Router       /api/v1/publishers/{id} [delete]
func (h *PublisherHandler) Delete(c *gin.Context) {
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

func publisherInput(req dto.PublisherRequest) catalog.PublisherInput {
	return catalog.PublisherInput{
		Name:            req.Name,
		Location:        req.Location,
		EstablishedYear: req.EstablishedYear,
		Website:         req.Website,
		ContactEmail:    req.ContactEmail,
	}
}

package handler

import (
	"github.com/gin-gonic/gin"

	appreview "github.com/xiebiao/bookstore-backend/internal/application/review"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-backend/pkg/response"
)

// ReviewHandler 书评HTTP处理器
type ReviewHandler struct {
	uc     *appreview.ReviewUseCase
	paging Paging
}

// NewReviewHandler 创建书评处理器
func NewReviewHandler(uc *appreview.ReviewUseCase, paging Paging) *ReviewHandler {
	return &ReviewHandler{uc: uc, paging: paging}
}

// List 书评列表
// @Summary      书评列表
// @Tags         书评
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appreview.ReviewResponse}}
// @Router       /api/v1/reviews [get]
func (h *ReviewHandler) List(c *gin.Context) {
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

// Create 发表书评
// @Summary      发表书评
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.ReviewRequest true "书评内容"
// @Success      201 {object} response.Response{data=appreview.ReviewResponse}
// @Failure      400 {object} response.Response "评分必须在1到5之间"
// @Router       /api/v1/reviews [post]
func (h *ReviewHandler) Create(c *gin.Context) {
	var req dto.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.uc.Create(c.Request.Context(), middleware.MustGetUserID(c), appreview.ReviewInput{
		BookID: req.BookID,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get 书评详情
// @Summary      书评详情
// @Tags         书评
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "书评ID"
// @Success      200 {object} response.Response{data=appreview.ReviewResponse}
// @Router       /api/v1/reviews/{id} [get]
func (h *ReviewHandler) Get(c *gin.Context) {
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

// Update 全量更新书评（只允许本人）
// @Summary      全量更新书评
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int               true "书评ID"
// @Param        request body dto.ReviewRequest true "书评内容"
// @Success      200 {object} response.Response{data=appreview.ReviewResponse}
// @Failure      403 {object} response.Response "不是本人的书评"
// @Router       /api/v1/reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.uc.Update(c.Request.Context(), middleware.MustGetUserID(c), id, appreview.ReviewInput{
		BookID: req.BookID,
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Patch 部分更新书评（只允许本人）
// @Summary      部分更新书评
// @Tags         书评
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                    true "书评ID"
// @Param        request body dto.ReviewPatchRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=appreview.ReviewResponse}
// @Router       /api/v1/reviews/{id} [patch]
func (h *ReviewHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.ReviewPatchRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.uc.Patch(c.Request.Context(), middleware.MustGetUserID(c), id, appreview.ReviewPatch{
		Text:   req.Text,
		Rating: req.Rating,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除书评（只允许本人）
// @Summary      删除书评
// @Tags         书评
// @Security     BearerAuth
// @Param        id path int true "书评ID"
// @Success      204
// @Router       /api/v1/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.uc.Delete(c.Request.Context(), middleware.MustGetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

package handler

import (
	"github.com/gin-gonic/gin"

	apporder "github.com/xiebiao/bookstore-backend/internal/application/order"
	"github.com/xiebiao/bookstore-backend/internal/domain/order"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-backend/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	placeOrderUseCase  *apporder.PlaceOrderUseCase
	manageOrderUseCase *apporder.ManageOrderUseCase
	paging             Paging
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeOrderUseCase *apporder.PlaceOrderUseCase,
	manageOrderUseCase *apporder.ManageOrderUseCase,
	paging Paging,
) *OrderHandler {
	return &OrderHandler{
		placeOrderUseCase:  placeOrderUseCase,
		manageOrderUseCase: manageOrderUseCase,
		paging:             paging,
	}
}

// Create 创建订单
// @Summary      创建订单
// @Description  锁定图书行后检查库存、按锁定价格计算总价并扣减库存，任何一本不足整单失败
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.CreateOrderRequest true "订单信息"
// @Success      201 {object} response.Response{data=apporder.OrderResponse} "下单成功"
// @Failure      400 {object} response.Response "参数错误或库存不足(40001)"
// @Failure      401 {object} response.Response "未登录"
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	// 1. 参数绑定与验证
	var req dto.CreateOrderRequest
	if !bindJSON(c, &req) {
		return
	}

	// 2. books中每个ID代表一本，与items合并后交给用例（用例内再按图书合并）
	lines := make([]order.Line, 0, len(req.Books)+len(req.Items))
	for _, bookID := range req.Books {
		lines = append(lines, order.Line{BookID: bookID, Quantity: 1})
	}
	for _, item := range req.Items {
		lines = append(lines, order.Line{BookID: item.BookID, Quantity: item.Quantity})
	}

	// 3. 调用应用层用例
	result, err := h.placeOrderUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		UserID: middleware.MustGetUserID(c),
		Items:  lines,
		Status: order.Status(req.Status),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// List 我的订单
// @Summary      我的订单
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        page      query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{list=[]apporder.OrderResponse}}
// @Router       /api/v1/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	page, pageSize, err := h.paging.Parse(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	list, total, err := h.manageOrderUseCase.List(c.Request.Context(), middleware.MustGetUserID(c), page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, list, total, page, pageSize)
}

// Get 订单详情
// @Summary      订单详情
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Failure      404 {object} response.Response "订单不存在"
// @Router       /api/v1/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.manageOrderUseCase.Get(c.Request.Context(), middleware.MustGetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 修改订单状态
// @Summary      修改订单状态
// @Description  P/C/F/R之间可任意切换
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                    true "订单ID"
// @Param        request body dto.UpdateOrderRequest true "目标状态"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Router       /api/v1/orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	h.updateStatus(c, id, order.Status(req.Status))
}

// Patch 部分更新订单（只有状态可改）
// @Summary      部分更新订单
// @Tags         订单
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                   true "订单ID"
// @Param        request body dto.PatchOrderRequest true "目标状态"
// @Success      200 {object} response.Response{data=apporder.OrderResponse}
// @Router       /api/v1/orders/{id} [patch]
func (h *OrderHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.PatchOrderRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Status == nil {
		result, err := h.manageOrderUseCase.Get(c.Request.Context(), middleware.MustGetUserID(c), id)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, result)
		return
	}
	h.updateStatus(c, id, order.Status(*req.Status))
}

func (h *OrderHandler) updateStatus(c *gin.Context, id uint, status order.Status) {
	result, err := h.manageOrderUseCase.UpdateStatus(c.Request.Context(), middleware.MustGetUserID(c), id, status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除订单（库存不回补）
// @Summary      删除订单
// @Tags         订单
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      204
// @Router       /api/v1/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.manageOrderUseCase.Delete(c.Request.Context(), middleware.MustGetUserID(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Total 核对订单总价
// @Summary      订单总价
// @Description  返回存储的总价和按图书当前价格重算的总价
// @Tags         订单
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=apporder.TotalResponse}
// @Router       /api/v1/orders/{id}/total [get]
func (h *OrderHandler) Total(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.manageOrderUseCase.Total(c.Request.Context(), middleware.MustGetUserID(c), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

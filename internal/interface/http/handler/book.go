package handler

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/bookstore-backend/internal/application/book"
	appreview "github.com/xiebiao/bookstore-backend/internal/application/review"
	"github.com/xiebiao/bookstore-backend/internal/interface/http/dto"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/money"
	"github.com/xiebiao/bookstore-backend/pkg/response"
	"github.com/xiebiao/bookstore-backend/pkg/validator"
)

// coverField multipart中封面文件的字段名
const coverField = "cover_image"

// BookHandler 图书HTTP处理器
type BookHandler struct {
	publishBookUseCase *appbook.PublishBookUseCase
	listBooksUseCase   *appbook.ListBooksUseCase
	manageBookUseCase  *appbook.ManageBookUseCase
	coverUseCase       *appbook.CoverUseCase
	reviewUseCase      *appreview.ReviewUseCase
	paging             Paging
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	publishBookUseCase *appbook.PublishBookUseCase,
	listBooksUseCase *appbook.ListBooksUseCase,
	manageBookUseCase *appbook.ManageBookUseCase,
	coverUseCase *appbook.CoverUseCase,
	reviewUseCase *appreview.ReviewUseCase,
	paging Paging,
) *BookHandler {
	return &BookHandler{
		publishBookUseCase: publishBookUseCase,
		listBooksUseCase:   listBooksUseCase,
		manageBookUseCase:  manageBookUseCase,
		coverUseCase:       coverUseCase,
		reviewUseCase:      reviewUseCase,
		paging:             paging,
	}
}

// List 图书列表（过滤+分页）
// @Summary      图书列表
// @Description  支持price_min、price_max、price_range、published_date、published_date_range、search、publisher_id、author_id、genre_id、ordering
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        price_min            query string false "最低价格(含)"
// @Param        price_max            query string false "最高价格(含)"
// @Param        published_date       query string false "出版日期 YYYY-MM-DD"
// @Param        published_date_range query string false "today | last_7_days | this_year"
// @Param        search               query string false "标题或描述关键词"
// @Param        page                 query int    false "页码"
// @Param        page_size            query int    false "每页数量(默认5，最大100)"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appbook.BookResponse}}
// @Failure      400 {object} response.Response "过滤参数错误"
// @Router       /api/v1/books [get]
func (h *BookHandler) List(c *gin.Context) {
	page, pageSize, err := h.paging.Parse(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	list, total, err := h.listBooksUseCase.Execute(c.Request.Context(), appbook.ListBooksRequest{
		Query:    c.Request.URL.Query(),
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, list, total, page, pageSize)
}

// Create 上架图书
// @Summary      上架图书
// @Description  JSON或multipart/form-data，multipart时可附带cover_image封面文件
// @Tags         图书
// @Accept       json,mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        request     body     dto.BookRequest true  "图书信息"
// @Param        cover_image formData file            false "封面图片(jpeg/png/gif/webp)"
// @Success      201 {object} response.Response{data=appbook.BookResponse}
// @Failure      400 {object} response.Response "参数错误(含出版社/作者/分类不存在)"
// @Router       /api/v1/books [post]
func (h *BookHandler) Create(c *gin.Context) {
	// 1. 绑定参数（JSON或表单）
	var req dto.BookRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, validator.Translate(err))
		return
	}
	in, err := bookInput(req)
	if err != nil {
		response.Error(c, err)
		return
	}

	// 2. 可选封面
	var cover io.Reader
	if c.ContentType() == gin.MIMEMultipartPOSTForm {
		file, err := openCover(c)
		if err != nil && !errors.Is(err, http.ErrMissingFile) {
			response.Error(c, err)
			return
		}
		if file != nil {
			defer file.Close()
			cover = file
		}
	}

	// 3. 调用应用层用例
	result, err := h.publishBookUseCase.Execute(c.Request.Context(), in, cover)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Get 图书详情
// @Summary      图书详情
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Failure      404 {object} response.Response "图书不存在"
// @Router       /api/v1/books/{id} [get]
func (h *BookHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	result, err := h.manageBookUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Update 全量更新图书（封面不变）
// @Summary      全量更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Router       /api/v1/books/{id} [put]
func (h *BookHandler) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.BookRequest
	if !bindJSON(c, &req) {
		return
	}
	in, err := bookInput(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.manageBookUseCase.Update(c.Request.Context(), id, in)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Patch 部分更新图书
// @Summary      部分更新图书
// @Tags         图书
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path int                  true "图书ID"
// @Param        request body dto.BookPatchRequest true "要修改的字段"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Router       /api/v1/books/{id} [patch]
func (h *BookHandler) Patch(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req dto.BookPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := appbook.BookPatch{
		Title:       req.Title,
		PublisherID: req.PublisherID,
		AuthorIDs:   req.AuthorIDs,
		GenreIDs:    req.GenreIDs,
		Stock:       req.StockQuantity,
		Description: req.Description,
	}
	if req.PublishedDate != nil {
		d, err := time.Parse(dateLayout, *req.PublishedDate)
		if err != nil {
			response.Error(c, apperrors.NewValidation("published_date", "日期格式应为YYYY-MM-DD"))
			return
		}
		patch.PublishedDate = &d
	}
	if req.Price != nil {
		cents, err := money.FromDecimal(*req.Price)
		if err != nil {
			response.Error(c, apperrors.NewValidation("price", err.Error()))
			return
		}
		patch.Price = &cents
	}

	result, err := h.manageBookUseCase.Patch(c.Request.Context(), id, patch)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// Delete 删除图书（书评、订单明细级联删除，受影响订单重新计算总价）
// @Summary      删除图书
// @Tags         图书
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      204
// @Router       /api/v1/books/{id} [delete]
func (h *BookHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.manageBookUseCase.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UploadCover 上传/替换封面
// @Summary      上传封面
// @Tags         图书
// @Accept       mpfd
// @Produce      json
// @Security     BearerAuth
// @Param        id          path     int  true "图书ID"
// @Param        cover_image formData file true "封面图片(jpeg/png/gif/webp)"
// @Success      200 {object} response.Response{data=appbook.BookResponse}
// @Router       /api/v1/books/{id}/cover [put]
func (h *BookHandler) UploadCover(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	file, err := openCover(c)
	if errors.Is(err, http.ErrMissingFile) {
		response.Error(c, apperrors.NewValidation(coverField, "不能为空"))
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	defer file.Close()

	result, err := h.coverUseCase.Upload(c.Request.Context(), id, file)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetCover 下载封面
// @Summary      下载封面
// @Tags         图书
// @Produce      image/jpeg,image/png,image/gif,image/webp
// @Security     BearerAuth
// @Param        id path int true "图书ID"
// @Success      200 {file} binary
// @Failure      404 {object} response.Response "图书没有封面"
// @Router       /api/v1/books/{id}/cover [get]
func (h *BookHandler) GetCover(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	cover, err := h.coverUseCase.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Data(http.StatusOK, cover.ContentType, cover.Data)
}

// ListReviews 图书的书评列表
// @Summary      图书书评
// @Tags         图书
// @Produce      json
// @Security     BearerAuth
// @Param        id        path  int true  "图书ID"
// @Param        page      query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData{list=[]appreview.ReviewResponse}}
// @Router       /api/v1/books/{id}/reviews [get]
func (h *BookHandler) ListReviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	page, pageSize, err := h.paging.Parse(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	list, total, err := h.reviewUseCase.ListByBook(c.Request.Context(), id, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.SuccessWithPage(c, list, total, page, pageSize)
}

const dateLayout = "2006-01-02"

// bookInput HTTP请求 → 应用层参数（日期、金额已由binding校验格式）
func bookInput(req dto.BookRequest) (appbook.BookInput, error) {
	d, err := time.Parse(dateLayout, req.PublishedDate)
	if err != nil {
		return appbook.BookInput{}, apperrors.NewValidation("published_date", "日期格式应为YYYY-MM-DD")
	}
	cents, err := money.FromDecimal(*req.Price)
	if err != nil {
		return appbook.BookInput{}, apperrors.NewValidation("price", err.Error())
	}
	return appbook.BookInput{
		Title:         req.Title,
		PublisherID:   req.PublisherID,
		AuthorIDs:     req.AuthorIDs,
		GenreIDs:      req.GenreIDs,
		PublishedDate: d,
		Price:         cents,
		Stock:         *req.StockQuantity,
		Description:   req.Description,
	}, nil
}

// openCover 打开multipart中的封面文件，没有文件时返回http.ErrMissingFile
func openCover(c *gin.Context) (io.ReadCloser, error) {
	header, err := c.FormFile(coverField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return nil, http.ErrMissingFile
		}
		return nil, apperrors.ErrBindError.WithErr(err)
	}
	file, err := header.Open()
	if err != nil {
		return nil, apperrors.ErrBindError.WithErr(err)
	}
	return file, nil
}

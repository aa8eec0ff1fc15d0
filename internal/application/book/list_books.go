package book

import (
	"context"
	"net/url"
	"time"

	"github.com/xiebiao/bookstore-backend/internal/domain/book"
)

// ListBooksUseCase 图书列表查询用例
// 过滤条件由查询参数解析，先过滤后分页
type ListBooksUseCase struct {
	bookService book.Service
	now         func() time.Time
}

// NewListBooksUseCase 创建列表查询用例
func NewListBooksUseCase(bookService book.Service) *ListBooksUseCase {
	return &ListBooksUseCase{
		bookService: bookService,
		now:         time.Now,
	}
}

// ListBooksRequest 列表查询请求
// Page/PageSize由接口层校验并补默认值
type ListBooksRequest struct {
	Query    url.Values
	Page     int
	PageSize int
}

// Execute 执行列表查询
// 1. 查询参数 → Filter(非法值返回字段级参数错误)
// 2. 以当前时间为基准计算日期区间
// 3. 仓储执行过滤、排序、分页
func (uc *ListBooksUseCase) Execute(ctx context.Context, req ListBooksRequest) ([]*BookResponse, int64, error) {
	filter, err := book.ParseFilter(req.Query, uc.now())
	if err != nil {
		return nil, 0, err
	}

	books, total, err := uc.bookService.List(ctx, filter, req.Page, req.PageSize)
	if err != nil {
		return nil, 0, err
	}

	list := make([]*BookResponse, 0, len(books))
	for _, b := range books {
		list = append(list, toBookResponse(b))
	}
	return list, total, nil
}

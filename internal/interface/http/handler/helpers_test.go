package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

func TestPaging_Parse(t *testing.T) {
	gin.SetMode(gin.TestMode)
	paging := Paging{DefaultSize: 5, MaxSize: 100}

	tests := []struct {
		name     string
		query    string
		page     int
		pageSize int
		field    string
	}{
		{"默认值", "", 1, 5, ""},
		{"正常值", "page=3&page_size=20", 3, 20, ""},
		{"page_size截断", "page_size=1000", 1, 100, ""},
		{"page上限", "page=100000", MaxPage, 5, ""},
		{"page超过上限", "page=100001", 0, 0, "page"},
		{"page溢出", "page=9223372036854775807&page_size=100", 0, 0, "page"},
		{"page非整数", "page=abc", 0, 0, "page"},
		{"page_size为0", "page_size=0", 0, 0, "page_size"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/books?"+tt.query, nil)

			page, pageSize, err := paging.Parse(c)
			if tt.field != "" {
				require.Error(t, err)
				appErr := apperrors.GetAppError(err)
				assert.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
				assert.Contains(t, appErr.Details, tt.field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.page, page)
			assert.Equal(t, tt.pageSize, pageSize)
		})
	}
}

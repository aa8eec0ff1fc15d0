// Package storage 图书封面存储
//
// 基于gocloud.dev/blob，bucket地址决定后端：
//   - file:///var/lib/bookstore/covers 本地目录（生产默认）
//   - mem:// 内存（测试）
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"
	"gocloud.dev/gcerrors"

	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// CoverField 上传表单中的文件字段名
const CoverField = "cover_image"

// ErrStorage 存储后端错误
var ErrStorage = apperrors.New(apperrors.ErrCodeStorageError, "文件存储错误")

// allowedTypes 允许的图片类型 → 扩展名
var allowedTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// CoverStore 封面存储
type CoverStore struct {
	bucket   *blob.Bucket
	maxBytes int64
}

// NewCoverStore 打开配置的bucket，返回的cleanup在退出时关闭bucket
func NewCoverStore(ctx context.Context, cfg *config.Config, log *zap.Logger) (*CoverStore, func(), error) {
	if err := ensureDir(cfg.Upload.BucketURL); err != nil {
		return nil, nil, err
	}

	bucket, err := blob.OpenBucket(ctx, cfg.Upload.BucketURL)
	if err != nil {
		return nil, nil, fmt.Errorf("打开封面存储失败: %w", err)
	}
	log.Info("封面存储已就绪", zap.String("bucket", cfg.Upload.BucketURL))

	cleanup := func() {
		if err := bucket.Close(); err != nil {
			log.Warn("关闭封面存储失败", zap.Error(err))
		}
	}
	return NewCoverStoreWithBucket(bucket, cfg.Upload.MaxBytes), cleanup, nil
}

// NewCoverStoreWithBucket 使用已打开的bucket
func NewCoverStoreWithBucket(bucket *blob.Bucket, maxBytes int64) *CoverStore {
	return &CoverStore{bucket: bucket, maxBytes: maxBytes}
}

// ensureDir fileblob要求目录已存在
func ensureDir(bucketURL string) error {
	u, err := url.Parse(bucketURL)
	if err != nil {
		return fmt.Errorf("无效的bucket地址: %w", err)
	}
	if u.Scheme != "file" {
		return nil
	}
	if err := os.MkdirAll(u.Path, 0o755); err != nil {
		return fmt.Errorf("创建封面目录失败: %w", err)
	}
	return nil
}

// Save 保存封面，返回对象key
// 1. 读取时限制大小，超过maxBytes直接拒绝
// 2. 按文件内容识别类型，不信任客户端的Content-Type
// 3. key格式：covers/{book_id}/{uuid}{ext}
func (s *CoverStore) Save(ctx context.Context, bookID uint, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxBytes+1))
	if err != nil {
		return "", apperrors.ErrBindError.WithErr(err)
	}
	if len(data) == 0 {
		return "", apperrors.NewValidation(CoverField, "文件不能为空")
	}
	if int64(len(data)) > s.maxBytes {
		return "", apperrors.NewValidation(CoverField, fmt.Sprintf("文件大小不能超过%d字节", s.maxBytes))
	}

	contentType := mimetype.Detect(data).String()
	if i := strings.IndexByte(contentType, ';'); i >= 0 {
		contentType = contentType[:i]
	}
	ext, ok := allowedTypes[contentType]
	if !ok {
		return "", apperrors.NewValidation(CoverField, "仅支持jpeg/png/gif/webp图片")
	}

	key := fmt.Sprintf("covers/%d/%s%s", bookID, uuid.NewString(), ext)
	if err := s.bucket.WriteAll(ctx, key, data, &blob.WriterOptions{ContentType: contentType}); err != nil {
		return "", ErrStorage.WithErr(err)
	}
	return key, nil
}

// Open 读取封面，返回内容和Content-Type
func (s *CoverStore) Open(ctx context.Context, key string) ([]byte, string, error) {
	attrs, err := s.bucket.Attributes(ctx, key)
	if err != nil {
		return nil, "", convertErr(err)
	}
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, "", convertErr(err)
	}
	return data, attrs.ContentType, nil
}

// Delete 删除封面，对象不存在视为成功
func (s *CoverStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}
	if err := s.bucket.Delete(ctx, key); err != nil && gcerrors.Code(err) != gcerrors.NotFound {
		return ErrStorage.WithErr(err)
	}
	return nil
}

func convertErr(err error) error {
	if gcerrors.Code(err) == gcerrors.NotFound {
		return apperrors.ErrNotFound
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	return ErrStorage.WithErr(err)
}

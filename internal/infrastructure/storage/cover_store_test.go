package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gocloud.dev/blob/memblob"

	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
)

// 最小的PNG文件头
var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

func newStore(t *testing.T, maxBytes int64) *CoverStore {
	t.Helper()
	bucket := memblob.OpenBucket(nil)
	t.Cleanup(func() { _ = bucket.Close() })
	return NewCoverStoreWithBucket(bucket, maxBytes)
}

func fieldError(t *testing.T, err error) string {
	t.Helper()
	appErr := apperrors.GetAppError(err)
	require.Equal(t, apperrors.ErrCodeInvalidParams, appErr.Code)
	return appErr.Details.(apperrors.FieldErrors)[CoverField]
}

func TestCoverStore_SaveOpenDelete(t *testing.T) {
	store := newStore(t, 1024)
	ctx := context.Background()

	key, err := store.Save(ctx, 7, bytes.NewReader(pngHeader))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "covers/7/"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	data, contentType, err := store.Open(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
	assert.Equal(t, "image/png", contentType)

	require.NoError(t, store.Delete(ctx, key))
	_, _, err = store.Open(ctx, key)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	// 重复删除不报错
	assert.NoError(t, store.Delete(ctx, key))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestCoverStore_Rejects(t *testing.T) {
	store := newStore(t, 8)
	ctx := context.Background()

	_, err := store.Save(ctx, 1, bytes.NewReader(pngHeader))
	assert.Contains(t, fieldError(t, err), "8")

	_, err = store.Save(ctx, 1, bytes.NewReader(nil))
	assert.NotEmpty(t, fieldError(t, err))

	_, err = newStore(t, 1024).Save(ctx, 1, strings.NewReader("plain text, not an image"))
	assert.Contains(t, fieldError(t, err), "png")
}

func TestNewCoverStore_FileBucket(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "covers")
	cfg := &config.Config{Upload: config.UploadConfig{BucketURL: "file://" + dir, MaxBytes: 1024}}

	store, cleanup, err := NewCoverStore(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	key, err := store.Save(context.Background(), 3, bytes.NewReader(pngHeader))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(key)))
	assert.NoError(t, err)
}

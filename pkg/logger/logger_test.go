package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Run("默认配置", func(t *testing.T) {
		log, err := New(Options{})
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("JSON输出到文件", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "app.log")
		log, err := New(Options{Level: "debug", Format: "json", Output: path})
		require.NoError(t, err)

		log.Info("hello")
		_ = log.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"msg":"hello"`)
	})

	t.Run("无效级别", func(t *testing.T) {
		_, err := New(Options{Level: "verbose"})
		assert.Error(t, err)
	})

	t.Run("无效格式", func(t *testing.T) {
		_, err := New(Options{Format: "xml"})
		assert.Error(t, err)
	})
}

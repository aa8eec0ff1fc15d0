package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFrom_DefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5, cfg.Server.DefaultPageSize)
	assert.Equal(t, 100, cfg.Server.MaxPageSize)
	assert.Equal(t, 2*time.Hour, cfg.JWT.AccessTokenExpire)
	assert.Equal(t, "https://openlibrary.org", cfg.Lookup.BaseURL)
	assert.Equal(t, int64(5<<20), cfg.Upload.MaxBytes)
	assert.False(t, cfg.CORS.Enabled)
	assert.Equal(t, 12*time.Hour, cfg.CORS.MaxAge)
	assert.Contains(t, cfg.CORS.AllowHeaders, "Authorization")
}

func TestLoadFrom_FileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  port: 9000\n  mode: test\ndatabase:\n  password: from-file\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))

	t.Setenv("BOOKSTORE_DATABASE_PASSWORD", "from-env")
	t.Setenv("BOOKSTORE_LOOKUP_CACHE_TTL", "1m")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "test", cfg.Server.Mode)
	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, time.Minute, cfg.Lookup.CacheTTL)
}

func TestLoadFrom_EnvSpecificFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.staging.yaml"), []byte("server:\n  port: 7000\n"), 0o644))
	t.Setenv("BOOKSTORE_ENV", "staging")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"端口非法", func(c *Config) { c.Server.Port = 70000 }},
		{"release模式默认密钥", func(c *Config) { c.Server.Mode = "release" }},
		{"分页大小非法", func(c *Config) { c.Server.DefaultPageSize = 0 }},
		{"目录地址为空", func(c *Config) { c.Lookup.BaseURL = "" }},
		{"上传大小非法", func(c *Config) { c.Upload.MaxBytes = 0 }},
		{"跨域凭证配合通配域名", func(c *Config) {
			c.CORS.Enabled = true
			c.CORS.AllowCredentials = true
			c.CORS.AllowOrigins = []string{"*"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := LoadFrom(t.TempDir())
			require.NoError(t, err)
			tt.modify(cfg)
			assert.Error(t, validate(cfg))
		})
	}
}

func TestDSN(t *testing.T) {
	d := DatabaseConfig{User: "root", Password: "pw", Host: "db", Port: 3306, DBName: "bookstore", Charset: "utf8mb4", ParseTime: true, Loc: "Asia/Shanghai"}
	assert.Equal(t, "root:pw@tcp(db:3306)/bookstore?charset=utf8mb4&parseTime=true&loc=Asia%2FShanghai", d.DSN())
}

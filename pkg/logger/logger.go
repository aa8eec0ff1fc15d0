// Package logger 基于zap的结构化日志
//
// 使用方式：
//
//	log, err := logger.New(logger.Options{Level: "info", Format: "json", Output: "stdout"})
//	if err != nil {
//	    panic(err)
//	}
//	defer log.Sync()
//	zap.ReplaceGlobals(log) // 之后在任何地方都可以用zap.L()
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options 日志配置
// 字段与config.LogConfig一一对应，pkg层不依赖internal的配置包
type Options struct {
	Level        string // debug | info | warn | error
	Format       string // console | json
	Output       string // stdout | stderr | /path/to/file
	EnableCaller bool
}

// New 创建zap日志实例
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(strings.ToLower(defaultString(opts.Level, "info")))
	if err != nil {
		return nil, fmt.Errorf("无效的日志级别 %q: %w", opts.Level, err)
	}

	encoding := strings.ToLower(defaultString(opts.Format, "console"))
	if encoding != "console" && encoding != "json" {
		return nil, fmt.Errorf("无效的日志格式: %s", opts.Format)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "time"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if encoding == "console" {
		encoderCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	output := defaultString(opts.Output, "stdout")
	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Development:       false,
		DisableCaller:     !opts.EnableCaller,
		DisableStacktrace: level > zapcore.DebugLevel,
		Encoding:          encoding,
		EncoderConfig:     encoderCfg,
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{"stderr"},
	}

	return cfg.Build()
}

func defaultString(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	_ "github.com/xiebiao/bookstore-backend/docs"
	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
	"github.com/xiebiao/bookstore-backend/pkg/logger"
	"github.com/xiebiao/bookstore-backend/pkg/tracing"
)

// @title                      书店后台API
// @version                    1.0
// @description                图书、出版社、作者、分类、书评与订单管理，附带Open Library检索
// @host                       localhost:8080
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                格式：Bearer {access_token}
func main() {
	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 2. 初始化日志
	zlog, err := logger.New(logger.Options{
		Level:        cfg.Log.Level,
		Format:       cfg.Log.Format,
		Output:       cfg.Log.Output,
		EnableCaller: cfg.Log.EnableCaller,
	})
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	// 3. 链路追踪（可选，失败不影响启动）
	if cfg.Tracing.Enabled {
		shutdown, err := tracing.InitTracer(tracing.Options{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Insecure:    cfg.Tracing.Insecure,
		})
		if err != nil {
			zlog.Warn("初始化链路追踪失败", zap.Error(err))
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					zlog.Warn("关闭链路追踪失败", zap.Error(err))
				}
			}()
		}
	}

	// 4. 依赖注入
	ctx := context.Background()
	engine, cleanup, err := InitializeApp(ctx, cfg, zlog)
	if err != nil {
		zlog.Fatal("初始化应用失败", zap.Error(err))
	}
	defer cleanup()

	// 5. 启动HTTP服务
	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      engine,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
	go func() {
		zlog.Info("服务启动",
			zap.String("addr", srv.Addr),
			zap.String("mode", cfg.Server.Mode),
			zap.Bool("mq", cfg.MQ.Enabled),
			zap.Bool("tracing", cfg.Tracing.Enabled),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("服务异常退出", zap.Error(err))
		}
	}()

	// 6. 优雅退出
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	zlog.Info("收到退出信号，开始关闭", zap.String("signal", sig.String()))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		zlog.Error("关闭HTTP服务失败", zap.Error(err))
	}
	zlog.Info("服务已退出")
}

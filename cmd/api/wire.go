//go:build wireinject
// +build wireinject

// Wire依赖注入配置
// 修改Provider后运行 `wire gen ./cmd/api` 重新生成wire_gen.go

package main

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/wire"
	"go.uber.org/zap"

	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
)

// InitializeApp 组装整个应用，返回Gin引擎和资源释放函数
// 依赖链：Handler ← UseCase ← Service ← Repository ← DB/Redis/Bucket
func InitializeApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	wire.Build(
		infrastructureSet,
		repositorySet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
	)
	return nil, nil, nil
}

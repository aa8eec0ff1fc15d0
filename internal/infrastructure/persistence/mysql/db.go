package mysql

import (
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-backend/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 1. GORM v2 + MySQL驱动，驱动错误翻译为gorm.ErrDuplicatedKey等通用错误
// 2. SQL日志走zap(debug模式打印全部SQL，其余模式只打印慢查询和错误)
// 3. 配置连接池参数
// 4. 按配置自动迁移表结构
func NewDB(cfg *config.Config, log *zap.Logger) (*gorm.DB, error) {
	// 1. 日志级别
	logLevel := logger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	// 2. 连接数据库
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger:         NewGormLogger(log, cfg.Database.SlowThreshold).LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	// 3. 连接池
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}
	log.Info("数据库连接成功", zap.String("host", cfg.Database.Host), zap.String("db", cfg.Database.DBName))

	// 4. 自动迁移(生产环境应使用版本化迁移脚本)
	if cfg.Database.AutoMigrate {
		if err := AutoMigrate(db); err != nil {
			return nil, fmt.Errorf("数据库迁移失败: %w", err)
		}
	}

	return db, nil
}

// AutoMigrate 自动迁移表结构
// 被引用的表在前，外键约束依赖迁移顺序
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&UserModel{},
		&PublisherModel{},
		&AuthorModel{},
		&GenreModel{},
		&BookModel{},
		&BookAuthorModel{},
		&BookGenreModel{},
		&ReviewModel{},
		&OrderModel{},
		&OrderItemModel{},
	)
}

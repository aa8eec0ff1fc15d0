// Package sqlitetest 测试用内存数据库
//
// 表结构与MySQL一致（同一组GORM模型），只在_test.go中引用。
package sqlitetest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/bookstore-backend/internal/infrastructure/persistence/mysql"
)

// Open 打开迁移好的内存SQLite
// 单连接：所有查询落在同一个库上，事务天然串行
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger:         logger.Discard,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, mysql.AutoMigrate(db))
	return db
}

// CreateUser 插入测试用户，返回ID
func CreateUser(t testing.TB, db *gorm.DB, email string) uint {
	t.Helper()
	u := &mysql.UserModel{Email: email, Password: "x", Nickname: "reader"}
	require.NoError(t, db.Create(u).Error)
	return u.ID
}

// CreatePublisher 插入测试出版社，返回ID
func CreatePublisher(t testing.TB, db *gorm.DB, name string) uint {
	t.Helper()
	p := &mysql.PublisherModel{Name: name, Location: "London", EstablishedYear: 1935}
	require.NoError(t, db.Create(p).Error)
	return p.ID
}

package user

import (
	"time"
)

// User 用户实体(聚合根)
// Password保存bcrypt哈希值，实体不提供任何获取明文的方法
type User struct {
	ID        uint
	Email     string
	Password  string
	Nickname  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建新用户，hashedPassword必须是bcrypt哈希
func NewUser(email, hashedPassword, nickname string) *User {
	now := time.Now()
	return &User{
		Email:     email,
		Password:  hashedPassword,
		Nickname:  nickname,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

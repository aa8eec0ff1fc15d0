package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookstore-backend/pkg/errors"
	"github.com/xiebiao/bookstore-backend/pkg/validator"
)

// DefaultCost 默认bcrypt计算强度
const DefaultCost = 12

var (
	hasLetter = regexp.MustCompile(`[a-zA-Z]`)
	hasDigit  = regexp.MustCompile(`[0-9]`)
)

// Service 用户领域服务
type Service interface {
	// Register 用户注册
	Register(ctx context.Context, email, password, nickname string) (*User, error)

	// Login 校验邮箱和密码
	Login(ctx context.Context, email, password string) (*User, error)

	// Get 根据ID获取用户
	Get(ctx context.Context, id uint) (*User, error)
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务，cost<=0时使用DefaultCost
func NewService(repo Repository, cost int) Service {
	if cost <= 0 {
		cost = DefaultCost
	}
	return &service{repo: repo, cost: cost}
}

// Register 用户注册
// 业务规则：
// 1. 邮箱格式合法
// 2. 密码8-20位，包含字母和数字
// 3. 昵称2-50个字符
// 4. 邮箱唯一性由数据库UNIQUE索引保证
func (s *service) Register(ctx context.Context, email, password, nickname string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	nickname = strings.TrimSpace(nickname)

	// 1. 字段校验
	errs := apperrors.FieldErrors{}
	if !validator.IsEmail(email) {
		errs.Add("email", "邮箱格式不正确")
	}
	if n := utf8.RuneCountInString(nickname); n < 2 || n > 50 {
		errs.Add("nickname", "昵称长度应为2-50个字符")
	}
	if err := errs.Err(); err != nil {
		return nil, err
	}

	// 2. 密码强度
	if err := validatePasswordStrength(password); err != nil {
		return nil, err
	}

	// 3. 密码加密(bcrypt自动加盐)
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(err, "密码加密失败")
	}

	// 4. 持久化
	user := NewUser(email, string(hashed), nickname)
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 邮箱不存在和密码错误返回同一个错误，避免探测已注册邮箱
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return nil, apperrors.ErrInvalidPassword
	}
	if err != nil {
		return nil, apperrors.Wrap(err, "密码验证失败")
	}
	return user, nil
}

func (s *service) Get(ctx context.Context, id uint) (*User, error) {
	return s.repo.FindByID(ctx, id)
}

// validatePasswordStrength 8-20位，必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}
	if !hasLetter.MatchString(password) || !hasDigit.MatchString(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}

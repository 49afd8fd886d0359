package user

import (
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// PasswordHasher 密码哈希与校验
// 设计说明：cost由配置注入（security.bcrypt_cost），测试时使用bcrypt.MinCost加速
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(hashed, plain string) error
}

type bcryptHasher struct {
	cost int
}

// NewPasswordHasher 创建bcrypt哈希器，cost非法时回退到bcrypt.DefaultCost
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

// Hash bcrypt自动加盐，相同密码每次结果不同
func (h *bcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

// Verify 明文与哈希不匹配时返回ErrInvalidCredentials
func (h *bcryptHasher) Verify(hashed, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
	if err == nil {
		return nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrInvalidCredentials
	}
	return apperrors.Wrap(err, "密码验证失败")
}

// =========================================
// 注册字段校验
// =========================================

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	digitsPattern   = regexp.MustCompile(`^[0-9]+$`)
)

const (
	maxUsernameLen = 150
	maxAddressLen  = 255
	maxPhoneLen    = 20
	minPasswordLen = 8
)

// ValidateUsername 1-150个字符，仅字母、数字和@.+-_
func ValidateUsername(username string) error {
	if username == "" || utf8.RuneCountInString(username) > maxUsernameLen || !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePassword 至少8位，且不能全部是数字
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen || digitsPattern.MatchString(password) {
		return ErrWeakPassword
	}
	return nil
}

// ValidateEmail 邮箱可选，为空时跳过
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailPattern.MatchString(email) {
		return ErrInvalidEmail
	}
	return nil
}

// ValidateProfile 地址与手机号必填
func ValidateProfile(address, phone string) error {
	if strings.TrimSpace(address) == "" || utf8.RuneCountInString(address) > maxAddressLen {
		return ErrInvalidAddress
	}
	if strings.TrimSpace(phone) == "" || utf8.RuneCountInString(phone) > maxPhoneLen {
		return ErrInvalidPhone
	}
	return nil
}

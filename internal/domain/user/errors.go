package user

import (
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// 用户领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = apperrors.New(apperrors.ErrCodeUserNotFound, "用户不存在")

	// ErrUsernameDuplicate 用户名已存在
	ErrUsernameDuplicate = apperrors.New(apperrors.ErrCodeUsernameDuplicate, "该用户名已被注册")

	// ErrPhoneDuplicate 手机号已存在
	ErrPhoneDuplicate = apperrors.New(apperrors.ErrCodePhoneDuplicate, "该手机号已被注册")

	// ErrAddressDuplicate 地址已存在
	ErrAddressDuplicate = apperrors.New(apperrors.ErrCodeAddressDuplicate, "该地址已被注册")

	// ErrWeakPassword 密码强度不足
	ErrWeakPassword = apperrors.New(apperrors.ErrCodeWeakPassword, "密码至少8位且不能全为数字")

	// ErrInvalidUsername 用户名格式不正确
	ErrInvalidUsername = apperrors.New(apperrors.ErrCodeInvalidParams, "用户名只能包含字母、数字和@.+-_，且不超过150个字符")

	// ErrInvalidEmail 邮箱格式不正确
	ErrInvalidEmail = apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")

	// ErrInvalidAddress 地址不合法
	ErrInvalidAddress = apperrors.New(apperrors.ErrCodeInvalidParams, "地址不能为空且不超过255个字符")

	// ErrInvalidPhone 手机号不合法
	ErrInvalidPhone = apperrors.New(apperrors.ErrCodeInvalidParams, "手机号不能为空且不超过20个字符")

	// ErrInvalidCredentials 用户名或密码错误
	ErrInvalidCredentials = apperrors.ErrInvalidPassword
)

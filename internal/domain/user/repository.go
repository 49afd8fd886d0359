package user

import (
	"context"
	"time"
)

// Repository 用户仓储接口
// 接口定义在domain层，具体实现在infrastructure/persistence/sqldb
type Repository interface {
	// Create 创建用户，用户名重复返回ErrUsernameDuplicate
	Create(ctx context.Context, user *User) error

	// FindByID 根据ID查找用户，不存在返回ErrUserNotFound
	FindByID(ctx context.Context, id uint) (*User, error)

	// FindByUsername 根据用户名查找用户，不存在返回ErrUserNotFound
	FindByUsername(ctx context.Context, username string) (*User, error)

	// ExistsByUsername 用户名是否已被占用
	ExistsByUsername(ctx context.Context, username string) (bool, error)

	// SetStaff 设置管理员标记
	SetStaff(ctx context.Context, id uint, isStaff bool) error
}

// ProfileRepository 用户档案仓储接口
type ProfileRepository interface {
	// Create 创建档案，手机号/地址重复返回对应的领域错误
	Create(ctx context.Context, profile *Profile) error

	// FindByUserID 查找用户的档案
	FindByUserID(ctx context.Context, userID uint) (*Profile, error)

	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByAddress(ctx context.Context, address string) (bool, error)
}

// TokenBlacklist Token黑名单（登出后Token在过期前不可再用）
type TokenBlacklist interface {
	Add(ctx context.Context, token string, ttl time.Duration) error
	Contains(ctx context.Context, token string) (bool, error)
}

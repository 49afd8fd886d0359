package user

import (
	"time"
)

// User 用户实体（聚合根）
// DDD设计说明：
// 1. Password保存bcrypt哈希值，不会出现在任何响应中
// 2. IsStaff标记管理员，决定能否维护目录、修改订单状态
// 3. 领域实体不依赖GORM tag（Repository负责映射）
type User struct {
	ID        uint
	Username  string
	Password  string // bcrypt哈希值
	Email     string // 可选
	IsStaff   bool
	CreatedAt time.Time
}

// NewUser 创建新用户（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewUser(username, hashedPassword, email string) *User {
	return &User{
		Username:  username,
		Password:  hashedPassword,
		Email:     email,
		CreatedAt: time.Now(),
	}
}

// Principal 返回当前用户的调用方身份
func (u *User) Principal() *Principal {
	return &Principal{
		UserID:   u.ID,
		Username: u.Username,
		IsStaff:  u.IsStaff,
	}
}

// Profile 用户档案，与User一对一，仅在注册时创建
type Profile struct {
	ID      uint
	UserID  uint
	Address string
	Phone   string
}

// Principal 调用方身份
// 由认证中间件根据Token加载，显式传入每个权限判断和用例；匿名调用方为nil
type Principal struct {
	UserID   uint
	Username string
	IsStaff  bool
}

// IsAuthenticated nil表示匿名
func (p *Principal) IsAuthenticated() bool {
	return p != nil && p.UserID != 0
}

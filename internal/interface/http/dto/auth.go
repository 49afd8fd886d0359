package dto

// RegisterRequest HTTP层注册请求
// 格式校验在binding tag,唯一性与密码强度在应用层
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=150" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
	Email    string `json:"email" binding:"omitempty,email" example:"alice@example.com"`
	Address  string `json:"address" binding:"required,max=255" example:"北京市海淀区中关村大街1号"`
	Phone    string `json:"phone" binding:"required,max=20" example:"13800000000"`
}

// TokenRequest 获取Token
type TokenRequest struct {
	Username string `json:"username" binding:"required" example:"alice"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// RefreshRequest 刷新Access Token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

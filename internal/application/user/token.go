package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/user"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/jwt"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// TokenUseCase 用户名密码换取Token对
type TokenUseCase struct {
	userRepo   user.Repository
	hasher     user.PasswordHasher
	jwtManager *jwt.Manager
}

// NewTokenUseCase 创建登录用例
func NewTokenUseCase(userRepo user.Repository, hasher user.PasswordHasher, jwtManager *jwt.Manager) *TokenUseCase {
	return &TokenUseCase{userRepo: userRepo, hasher: hasher, jwtManager: jwtManager}
}

// TokenRequest 登录请求
type TokenRequest struct {
	Username string
	Password string
}

// Execute 用户不存在与密码错误返回同一个错误，避免暴露用户名是否存在
func (uc *TokenUseCase) Execute(ctx context.Context, req TokenRequest) (*jwt.TokenPair, error) {
	u, err := uc.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if apperrors.HasCode(err, apperrors.ErrCodeUserNotFound) {
			return nil, user.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := uc.hasher.Verify(u.Password, req.Password); err != nil {
		return nil, err
	}

	pair, err := uc.jwtManager.GenerateToken(u.ID, u.Username)
	if err != nil {
		return nil, err
	}

	logger.L().Info("用户登录", zap.Uint("user_id", u.ID), zap.String("username", u.Username))
	return pair, nil
}

// RefreshUseCase Refresh Token换取新的Access Token
type RefreshUseCase struct {
	jwtManager *jwt.Manager
}

func NewRefreshUseCase(jwtManager *jwt.Manager) *RefreshUseCase {
	return &RefreshUseCase{jwtManager: jwtManager}
}

// RefreshResponse 刷新响应
type RefreshResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (uc *RefreshUseCase) Execute(_ context.Context, refreshToken string) (*RefreshResponse, error) {
	access, err := uc.jwtManager.RefreshAccessToken(refreshToken)
	if err != nil {
		return nil, err
	}
	return &RefreshResponse{
		AccessToken: access,
		ExpiresIn:   int64(uc.jwtManager.AccessTokenExpire().Seconds()),
	}, nil
}

// LogoutUseCase 用户登出：Access Token在剩余有效期内加入黑名单
type LogoutUseCase struct {
	jwtManager *jwt.Manager
	blacklist  user.TokenBlacklist
}

func NewLogoutUseCase(jwtManager *jwt.Manager, blacklist user.TokenBlacklist) *LogoutUseCase {
	return &LogoutUseCase{jwtManager: jwtManager, blacklist: blacklist}
}

func (uc *LogoutUseCase) Execute(ctx context.Context, accessToken string) error {
	claims, err := uc.jwtManager.ParseAccessToken(accessToken)
	if err != nil {
		return err
	}

	ttl := uc.jwtManager.AccessTokenExpire()
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return uc.blacklist.Add(ctx, accessToken, ttl)
}

package user

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/user"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/logger"
)

// CreateStaffUseCase 创建管理员账号，用户已存在时将其提升为管理员
type CreateStaffUseCase struct {
	userRepo user.Repository
	hasher   user.PasswordHasher
}

func NewCreateStaffUseCase(userRepo user.Repository, hasher user.PasswordHasher) *CreateStaffUseCase {
	return &CreateStaffUseCase{userRepo: userRepo, hasher: hasher}
}

// CreateStaffRequest 创建管理员请求
type CreateStaffRequest struct {
	Username string
	Password string // 提升已有用户时可为空
	Email    string
}

// Execute 返回管理员的用户ID
func (uc *CreateStaffUseCase) Execute(ctx context.Context, req CreateStaffRequest) (uint, error) {
	existing, err := uc.userRepo.FindByUsername(ctx, req.Username)
	switch {
	case err == nil:
		if err := uc.userRepo.SetStaff(ctx, existing.ID, true); err != nil {
			return 0, err
		}
		logger.L().Info("已有用户提升为管理员", zap.String("username", req.Username))
		return existing.ID, nil
	case !apperrors.HasCode(err, apperrors.ErrCodeUserNotFound):
		return 0, err
	}

	if err := user.ValidateUsername(req.Username); err != nil {
		return 0, err
	}
	if err := user.ValidatePassword(req.Password); err != nil {
		return 0, err
	}
	if err := user.ValidateEmail(req.Email); err != nil {
		return 0, err
	}

	hashed, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return 0, err
	}

	u := user.NewUser(req.Username, hashed, req.Email)
	u.IsStaff = true
	if err := uc.userRepo.Create(ctx, u); err != nil {
		return 0, err
	}

	logger.L().Info("管理员创建成功", zap.Uint("user_id", u.ID), zap.String("username", u.Username))
	return u.ID, nil
}

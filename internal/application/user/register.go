package user

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/user"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/sqldb"
	"github.com/xiebiao/bookshelf/pkg/metrics"
)

// RegisterUseCase 用户注册用例
// 1. Application层负责用例编排：字段校验、唯一性检查、User与Profile写入
// 2. User与Profile在同一事务中创建，任一失败全部回滚
type RegisterUseCase struct {
	userRepo    user.Repository
	profileRepo user.ProfileRepository
	hasher      user.PasswordHasher
	txManager   *sqldb.TxManager
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(
	userRepo user.Repository,
	profileRepo user.ProfileRepository,
	hasher user.PasswordHasher,
	txManager *sqldb.TxManager,
) *RegisterUseCase {
	return &RegisterUseCase{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		hasher:      hasher,
		txManager:   txManager,
	}
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string
	Password string
	Email    string
	Address  string
	Phone    string
}

// RegisterResponse 注册响应
// 不返回密码字段
type RegisterResponse struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
}

// Execute 执行注册
// 用户名、手机号、地址任一已被占用即拒绝，即使其他字段不同
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	// 1. 字段校验（全部在写入之前完成）
	if err := user.ValidateUsername(req.Username); err != nil {
		return nil, err
	}
	if err := user.ValidatePassword(req.Password); err != nil {
		return nil, err
	}
	if err := user.ValidateEmail(req.Email); err != nil {
		return nil, err
	}
	if err := user.ValidateProfile(req.Address, req.Phone); err != nil {
		return nil, err
	}

	// 2. 密码加密（bcrypt耗时较长，放在事务外）
	hashed, err := uc.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := user.NewUser(req.Username, hashed, req.Email)
	profile := &user.Profile{Address: req.Address, Phone: req.Phone}

	// 3. 唯一性检查与写入在同一事务中
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		if err := uc.checkUnique(ctx, req); err != nil {
			return err
		}
		if err := uc.userRepo.Create(ctx, u); err != nil {
			return err
		}
		profile.UserID = u.ID
		return uc.profileRepo.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	metrics.IncCounter(metrics.UsersRegisteredTotal)

	return &RegisterResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Address:  profile.Address,
		Phone:    profile.Phone,
	}, nil
}

func (uc *RegisterUseCase) checkUnique(ctx context.Context, req RegisterRequest) error {
	exists, err := uc.userRepo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return err
	}
	if exists {
		return user.ErrUsernameDuplicate
	}

	exists, err = uc.profileRepo.ExistsByPhone(ctx, req.Phone)
	if err != nil {
		return err
	}
	if exists {
		return user.ErrPhoneDuplicate
	}

	exists, err = uc.profileRepo.ExistsByAddress(ctx, req.Address)
	if err != nil {
		return err
	}
	if exists {
		return user.ErrAddressDuplicate
	}
	return nil
}

package sqldb

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/user"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

type profileRepository struct {
	db *gorm.DB
}

// NewProfileRepository 创建用户档案仓储
func NewProfileRepository(db *gorm.DB) user.ProfileRepository {
	return &profileRepository{db: db}
}

// Create 手机号与地址的唯一性冲突分别转换为对应的业务错误
func (r *profileRepository) Create(ctx context.Context, p *user.Profile) error {
	model := &ProfileModel{
		UserID:  p.UserID,
		Address: p.Address,
		Phone:   p.Phone,
	}

	if err := conn(ctx, r.db).Create(model).Error; err != nil {
		switch {
		case duplicateOn(err, "phone"):
			return user.ErrPhoneDuplicate
		case duplicateOn(err, "address"):
			return user.ErrAddressDuplicate
		case isDuplicateError(err):
			return apperrors.New(apperrors.ErrCodeDuplicateEntry, "用户档案已存在")
		}
		return apperrors.Wrap(err, "创建用户档案失败")
	}

	p.ID = model.ID
	return nil
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uint) (*user.Profile, error) {
	var model ProfileModel
	err := conn(ctx, r.db).Where("user_id = ?", userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.New(apperrors.ErrCodeNotFound, "用户档案不存在")
		}
		return nil, apperrors.Wrap(err, "查询用户档案失败")
	}
	return &user.Profile{
		ID:      model.ID,
		UserID:  model.UserID,
		Address: model.Address,
		Phone:   model.Phone,
	}, nil
}

func (r *profileRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	return r.exists(ctx, "phone = ?", phone)
}

func (r *profileRepository) ExistsByAddress(ctx context.Context, address string) (bool, error) {
	return r.exists(ctx, "address = ?", address)
}

func (r *profileRepository) exists(ctx context.Context, query string, arg interface{}) (bool, error) {
	var count int64
	if err := conn(ctx, r.db).Model(&ProfileModel{}).Where(query, arg).Count(&count).Error; err != nil {
		return false, apperrors.Wrap(err, "查询用户档案失败")
	}
	return count > 0, nil
}

package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/xiebiao/bookshelf/internal/domain/user"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/sqldb"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/jwt"
)

type fixture struct {
	db       *gorm.DB
	users    user.Repository
	profiles user.ProfileRepository
	hasher   user.PasswordHasher
	jwt      *jwt.Manager
	register *RegisterUseCase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqldb.OpenSQLite(":memory:")
	require.NoError(t, err)

	f := &fixture{
		db:       db,
		users:    sqldb.NewUserRepository(db),
		profiles: sqldb.NewProfileRepository(db),
		hasher:   user.NewPasswordHasher(bcrypt.MinCost),
		jwt:      jwt.NewManager("test-secret", time.Hour, 24*time.Hour),
	}
	f.register = NewRegisterUseCase(f.users, f.profiles, f.hasher, sqldb.NewTxManager(db))
	return f
}

func validRegister() RegisterRequest {
	return RegisterRequest{
		Username: "alice",
		Password: "wonderland42",
		Email:    "alice@example.com",
		Address:  "北京市海淀区1号",
		Phone:    "13800000001",
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	resp, err := f.register.Execute(ctx, validRegister())
	require.NoError(t, err)
	assert.NotZero(t, resp.ID)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "13800000001", resp.Phone)

	u, err := f.users.FindByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "wonderland42", u.Password, "密码以哈希形式存储")
	assert.NoError(t, f.hasher.Verify(u.Password, "wonderland42"))

	p, err := f.profiles.FindByUserID(ctx, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "北京市海淀区1号", p.Address)
}

func TestRegister_Duplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.register.Execute(ctx, validRegister())
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(r *RegisterRequest)
		wantErr error
	}{
		{"用户名重复", func(r *RegisterRequest) { r.Phone, r.Address = "139", "另一个地址" }, user.ErrUsernameDuplicate},
		{"手机号重复", func(r *RegisterRequest) { r.Username, r.Address = "bob", "另一个地址" }, user.ErrPhoneDuplicate},
		{"地址重复", func(r *RegisterRequest) { r.Username, r.Phone = "bob", "139" }, user.ErrAddressDuplicate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRegister()
			tt.mutate(&req)
			_, err := f.register.Execute(ctx, req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	// 失败的注册不能留下用户
	exists, err := f.users.ExistsByUsername(ctx, "bob")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req := validRegister()
	req.Password = "12345678"
	_, err := f.register.Execute(ctx, req)
	assert.ErrorIs(t, err, user.ErrWeakPassword)

	req = validRegister()
	req.Email = "bad"
	_, err = f.register.Execute(ctx, req)
	assert.ErrorIs(t, err, user.ErrInvalidEmail)

	req = validRegister()
	req.Phone = ""
	_, err = f.register.Execute(ctx, req)
	assert.ErrorIs(t, err, user.ErrInvalidPhone)
}

func TestTokenRefreshLogout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.register.Execute(ctx, validRegister())
	require.NoError(t, err)

	login := NewTokenUseCase(f.users, f.hasher, f.jwt)

	_, err = login.Execute(ctx, TokenRequest{Username: "alice", Password: "wrong-pass"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)
	_, err = login.Execute(ctx, TokenRequest{Username: "nobody", Password: "wonderland42"})
	assert.ErrorIs(t, err, user.ErrInvalidCredentials)

	pair, err := login.Execute(ctx, TokenRequest{Username: "alice", Password: "wonderland42"})
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.EqualValues(t, 3600, pair.ExpiresIn)

	refreshed, err := NewRefreshUseCase(f.jwt).Execute(ctx, pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Access Token不能当作Refresh Token使用
	_, err = NewRefreshUseCase(f.jwt).Execute(ctx, pair.AccessToken)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInvalidToken))

	blacklist := redis.NewMemoryBlacklist()
	require.NoError(t, NewLogoutUseCase(f.jwt, blacklist).Execute(ctx, pair.AccessToken))
	revoked, err := blacklist.Contains(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestCreateStaff(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	uc := NewCreateStaffUseCase(f.users, f.hasher)

	id, err := uc.Execute(ctx, CreateStaffRequest{Username: "admin", Password: "admin-pass-1"})
	require.NoError(t, err)
	u, err := f.users.FindByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, u.IsStaff)

	resp, err := f.register.Execute(ctx, validRegister())
	require.NoError(t, err)
	promoted, err := uc.Execute(ctx, CreateStaffRequest{Username: "alice"})
	require.NoError(t, err)
	assert.Equal(t, resp.ID, promoted)

	u, err = f.users.FindByID(ctx, resp.ID)
	require.NoError(t, err)
	assert.True(t, u.IsStaff)
}

package permission

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/xiebiao/bookshelf/internal/domain/user"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

var (
	staff  = &user.Principal{UserID: 1, Username: "admin", IsStaff: true}
	member = &user.Principal{UserID: 2, Username: "alice"}
)

type ownedBy uint

func (o ownedBy) OwnerID() uint { return uint(o) }

// fakePurchases 记录(userID, bookID)购买关系
type fakePurchases struct {
	purchased map[[2]uint]bool
	err       error
}

func (f *fakePurchases) HasPurchased(_ context.Context, userID, bookID uint) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.purchased[[2]uint{userID, bookID}], nil
}

func TestAdminOrReadOnly(t *testing.T) {
	ctx := context.Background()
	p := AdminOrReadOnly()

	tests := []struct {
		name      string
		principal *user.Principal
		action    Action
		wantCode  int
	}{
		{"匿名可以列表", nil, ActionList, 0},
		{"匿名可以查看", nil, ActionRetrieve, 0},
		{"匿名不能创建", nil, ActionCreate, apperrors.ErrCodeUnauthorized},
		{"普通用户不能创建", member, ActionCreate, apperrors.ErrCodeNotStaff},
		{"普通用户不能删除", member, ActionDestroy, apperrors.ErrCodeNotStaff},
		{"管理员可以修改", staff, ActionPartialUpdate, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := p.HasPermission(ctx, Request{Principal: tt.principal, Action: tt.action})
			if tt.wantCode == 0 {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperrors.HasCode(err, tt.wantCode), "got %v", err)
		})
	}
}

func TestAdminOrReadOnly_StatusCodes(t *testing.T) {
	ctx := context.Background()
	err := AdminOrReadOnly().HasPermission(ctx, Request{Action: ActionCreate})
	assert.Equal(t, 401, apperrors.GetAppError(err).HTTPStatus())

	err = AdminOrReadOnly().HasPermission(ctx, Request{Principal: member, Action: ActionCreate})
	assert.Equal(t, 403, apperrors.GetAppError(err).HTTPStatus())
}

func TestReviewerPurchasedBook(t *testing.T) {
	ctx := context.Background()
	checker := &fakePurchases{purchased: map[[2]uint]bool{{2, 10}: true}}
	p := ReviewerPurchasedBook(checker)

	// 非创建动作直接放行
	assert.NoError(t, p.HasPermission(ctx, Request{Action: ActionList}))
	assert.NoError(t, p.HasPermission(ctx, Request{Principal: member, Action: ActionUpdate, BookID: 99}))

	assert.NoError(t, p.HasPermission(ctx, Request{Principal: member, Action: ActionCreate, BookID: 10}))
	assert.ErrorIs(t, p.HasPermission(ctx, Request{Principal: member, Action: ActionCreate, BookID: 11}), apperrors.ErrNotPurchased)
	assert.ErrorIs(t, p.HasPermission(ctx, Request{Principal: member, Action: ActionCreate}), apperrors.ErrNotPurchased)
	assert.ErrorIs(t, p.HasPermission(ctx, Request{Action: ActionCreate, BookID: 10}), apperrors.ErrUnauthorized)

	// 管理员同样需要购买过
	assert.ErrorIs(t, p.HasPermission(ctx, Request{Principal: staff, Action: ActionCreate, BookID: 10}), apperrors.ErrNotPurchased)
}

func TestReviewerPurchasedBook_FailsClosed(t *testing.T) {
	p := ReviewerPurchasedBook(&fakePurchases{err: errors.New("db down")})
	err := p.HasPermission(context.Background(), Request{Principal: member, Action: ActionCreate, BookID: 10})
	assert.ErrorIs(t, err, apperrors.ErrNotPurchased)
}

func TestOwnerOrReadOnly(t *testing.T) {
	ctx := context.Background()
	p := OwnerOrReadOnly()

	assert.NoError(t, p.HasObjectPermission(ctx, Request{Action: ActionRetrieve}, ownedBy(2)))
	assert.NoError(t, p.HasObjectPermission(ctx, Request{Principal: member, Action: ActionUpdate}, ownedBy(2)))
	assert.ErrorIs(t, p.HasObjectPermission(ctx, Request{Principal: member, Action: ActionDestroy}, ownedBy(3)), apperrors.ErrNotOwner)
	// 管理员也不能修改他人的评价
	assert.ErrorIs(t, p.HasObjectPermission(ctx, Request{Principal: staff, Action: ActionPartialUpdate}, ownedBy(2)), apperrors.ErrNotOwner)
}

func TestCheck(t *testing.T) {
	ctx := context.Background()
	req := Request{Principal: member, Action: ActionCreate, BookID: 10}
	checker := &fakePurchases{purchased: map[[2]uint]bool{{2, 10}: true}}

	assert.NoError(t, Check(ctx, req, IsAuthenticated(), ReviewerPurchasedBook(checker)))
	assert.ErrorIs(t, Check(ctx, Request{Action: ActionCreate}, IsAuthenticated(), ReviewerPurchasedBook(checker)), apperrors.ErrUnauthorized)
	assert.ErrorIs(t, Check(ctx, req, IsAuthenticated(), IsAdminUser()), apperrors.ErrNotStaff)

	called := false
	deny := PolicyFunc(func(context.Context, Request) error { return apperrors.ErrForbidden })
	spy := PolicyFunc(func(context.Context, Request) error { called = true; return nil })
	assert.ErrorIs(t, Check(ctx, req, deny, spy), apperrors.ErrForbidden)
	assert.False(t, called, "第一个拒绝后不再执行后续策略")

	assert.NoError(t, CheckObject(ctx, req, ownedBy(2), OwnerOrReadOnly()))
}

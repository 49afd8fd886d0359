// Package permission 请求级与对象级授权策略
//
// 每个请求构造一个显式的Request值(调用方身份+动作),依次交给各策略判断。
// 任一策略拒绝即返回对应的AppError(401或403)。
package permission

import (
	"context"

	"github.com/xiebiao/bookshelf/internal/domain/user"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

// Action 资源动作
type Action string

const (
	ActionList          Action = "list"
	ActionRetrieve      Action = "retrieve"
	ActionCreate        Action = "create"
	ActionUpdate        Action = "update"
	ActionPartialUpdate Action = "partial_update"
	ActionDestroy       Action = "destroy"
)

// IsSafe 只读动作
func (a Action) IsSafe() bool {
	return a == ActionList || a == ActionRetrieve
}

// Request 一次授权判断的输入
type Request struct {
	Principal *user.Principal // nil表示匿名
	Action    Action
	BookID    uint // 创建评价时引用的图书,其他动作为0
}

// Policy 请求级策略,在处理器执行前判断
type Policy interface {
	HasPermission(ctx context.Context, req Request) error
}

// Owned 拥有所有者的资源
type Owned interface {
	OwnerID() uint
}

// ObjectPolicy 对象级策略,在目标对象加载后判断
type ObjectPolicy interface {
	HasObjectPermission(ctx context.Context, req Request, obj Owned) error
}

// PolicyFunc 函数适配为Policy
type PolicyFunc func(ctx context.Context, req Request) error

func (f PolicyFunc) HasPermission(ctx context.Context, req Request) error {
	return f(ctx, req)
}

// Check 依次执行请求级策略,返回第一个拒绝
func Check(ctx context.Context, req Request, policies ...Policy) error {
	for _, p := range policies {
		if err := p.HasPermission(ctx, req); err != nil {
			return err
		}
	}
	return nil
}

// CheckObject 依次执行对象级策略,返回第一个拒绝
func CheckObject(ctx context.Context, req Request, obj Owned, policies ...ObjectPolicy) error {
	for _, p := range policies {
		if err := p.HasObjectPermission(ctx, req, obj); err != nil {
			return err
		}
	}
	return nil
}

// =========================================
// 内置策略
// =========================================

type isAuthenticated struct{}

// IsAuthenticated 要求已登录
func IsAuthenticated() Policy { return isAuthenticated{} }

func (isAuthenticated) HasPermission(_ context.Context, req Request) error {
	if !req.Principal.IsAuthenticated() {
		return apperrors.ErrUnauthorized
	}
	return nil
}

type isAdminUser struct{}

// IsAdminUser 要求管理员
func IsAdminUser() Policy { return isAdminUser{} }

func (isAdminUser) HasPermission(_ context.Context, req Request) error {
	if !req.Principal.IsAuthenticated() {
		return apperrors.ErrUnauthorized
	}
	if !req.Principal.IsStaff {
		return apperrors.ErrNotStaff
	}
	return nil
}

type adminOrReadOnly struct{}

// AdminOrReadOnly 只读动作任何人可执行,写操作需要管理员
func AdminOrReadOnly() Policy { return adminOrReadOnly{} }

func (adminOrReadOnly) HasPermission(ctx context.Context, req Request) error {
	if req.Action.IsSafe() {
		return nil
	}
	return isAdminUser{}.HasPermission(ctx, req)
}

type ownerOrReadOnly struct{}

// OwnerOrReadOnly 只读动作任何人可执行,写操作需要是对象的所有者
func OwnerOrReadOnly() ObjectPolicy { return ownerOrReadOnly{} }

func (ownerOrReadOnly) HasObjectPermission(_ context.Context, req Request, obj Owned) error {
	if req.Action.IsSafe() {
		return nil
	}
	if !req.Principal.IsAuthenticated() {
		return apperrors.ErrUnauthorized
	}
	if obj == nil || obj.OwnerID() != req.Principal.UserID {
		return apperrors.ErrNotOwner
	}
	return nil
}

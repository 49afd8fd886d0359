package order

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/category"
	"github.com/xiebiao/bookshelf/internal/domain/order"
	"github.com/xiebiao/bookshelf/internal/domain/user"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/sqldb"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
)

type fixture struct {
	books  book.Repository
	orders order.Repository
	create *CreateOrderUseCase
	alice  *user.Principal
	bob    *user.Principal
	admin  *user.Principal
	cat    *category.Category
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db, err := sqldb.OpenSQLite(":memory:")
	require.NoError(t, err)
	ctx := context.Background()

	users := sqldb.NewUserRepository(db)
	principal := func(name string, staff bool) *user.Principal {
		u := user.NewUser(name, "hashed", "")
		u.IsStaff = staff
		require.NoError(t, users.Create(ctx, u))
		return u.Principal()
	}

	c := &category.Category{Name: "技术"}
	require.NoError(t, sqldb.NewCategoryRepository(db).Create(ctx, c))

	f := &fixture{
		books:  sqldb.NewBookRepository(db),
		orders: sqldb.NewOrderRepository(db),
		alice:  principal("alice", false),
		bob:    principal("bob", false),
		admin:  principal("admin", true),
		cat:    c,
	}
	f.create = NewCreateOrderUseCase(f.orders, f.books, sqldb.NewTxManager(db))
	return f
}

func (f *fixture) addBook(t *testing.T, isbn, title, price string, stock int) *book.Book {
	t.Helper()
	b, err := book.NewBook(title, "作者", isbn, decimal.RequireFromString(price), stock,
		time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), f.cat.ID)
	require.NoError(t, err)
	require.NoError(t, f.books.Create(context.Background(), b))
	return b
}

func (f *fixture) stock(t *testing.T, id uint) int {
	t.Helper()
	b, err := f.books.FindByID(context.Background(), id)
	require.NoError(t, err)
	return b.Stock
}

func TestCreateOrder_DecrementsStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.addBook(t, "9780000000001", "Go语言实战", "10.00", 5)

	resp, err := f.create.Execute(ctx, f.alice, CreateOrderRequest{
		Items: []CreateOrderItem{{BookID: b.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, f.stock(t, b.ID))
	assert.Equal(t, "20.00", resp.TotalPrice)
	assert.Equal(t, "pending", resp.Status)
	assert.Equal(t, f.alice.UserID, resp.User)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "10.00", resp.Items[0].PriceAtPurchase)
}

func TestCreateOrder_TotalIsSumOfSnapshots(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b1 := f.addBook(t, "9780000000001", "A", "12.50", 10)
	b2 := f.addBook(t, "9780000000002", "B", "3.99", 10)

	resp, err := f.create.Execute(ctx, f.alice, CreateOrderRequest{Items: []CreateOrderItem{
		{BookID: b1.ID, Quantity: 2},
		{BookID: b2.ID, Quantity: 3},
	}})
	require.NoError(t, err)
	assert.Equal(t, "36.97", resp.TotalPrice)

	// 调价不影响历史订单
	b1.Price = decimal.RequireFromString("99.00")
	require.NoError(t, f.books.Update(ctx, b1))
	got, err := NewGetOrderUseCase(f.orders).Execute(ctx, f.alice, resp.ID)
	require.NoError(t, err)
	assert.Equal(t, "36.97", got.TotalPrice)
	assert.Equal(t, "12.50", got.Items[0].PriceAtPurchase)
}

func TestCreateOrder_InsufficientStockRollsBack(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ok := f.addBook(t, "9780000000001", "充足", "10.00", 5)
	short := f.addBook(t, "9780000000002", "短缺", "10.00", 1)

	_, err := f.create.Execute(ctx, f.alice, CreateOrderRequest{Items: []CreateOrderItem{
		{BookID: ok.ID, Quantity: 2},
		{BookID: short.ID, Quantity: 3},
	}})
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInsufficientStock))
	assert.Contains(t, err.Error(), "短缺")
	assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())

	assert.Equal(t, 5, f.stock(t, ok.ID))
	assert.Equal(t, 1, f.stock(t, short.ID))
	_, total, err := f.orders.List(ctx, 0, 1, 10)
	require.NoError(t, err)
	assert.Zero(t, total, "失败的下单不能留下订单")
}

func TestCreateOrder_SameBookQuantitiesAreSummed(t *testing.T) {
	f := newFixture(t)
	b := f.addBook(t, "9780000000001", "A", "1.00", 3)

	_, err := f.create.Execute(context.Background(), f.alice, CreateOrderRequest{Items: []CreateOrderItem{
		{BookID: b.ID, Quantity: 2},
		{BookID: b.ID, Quantity: 2},
	}})
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeInsufficientStock))
	assert.Equal(t, 3, f.stock(t, b.ID))
}

func TestCreateOrder_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.addBook(t, "9780000000001", "A", "1.00", 3)

	_, err := f.create.Execute(ctx, f.alice, CreateOrderRequest{})
	assert.ErrorIs(t, err, order.ErrEmptyItems)

	_, err = f.create.Execute(ctx, f.alice, CreateOrderRequest{Items: []CreateOrderItem{{BookID: b.ID, Quantity: 0}}})
	assert.ErrorIs(t, err, order.ErrInvalidQuantity)

	_, err = f.create.Execute(ctx, f.alice, CreateOrderRequest{Items: []CreateOrderItem{{BookID: 999, Quantity: 1}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id=999")
	assert.Equal(t, 400, apperrors.GetAppError(err).HTTPStatus())

	_, err = f.create.Execute(ctx, nil, CreateOrderRequest{Items: []CreateOrderItem{{BookID: b.ID, Quantity: 1}}})
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestOrderVisibility(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.addBook(t, "9780000000001", "A", "1.00", 10)

	created, err := f.create.Execute(ctx, f.alice, CreateOrderRequest{Items: []CreateOrderItem{{BookID: b.ID, Quantity: 1}}})
	require.NoError(t, err)

	get := NewGetOrderUseCase(f.orders)
	got, err := get.Execute(ctx, f.alice, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.TotalPrice, got.TotalPrice)

	_, err = get.Execute(ctx, f.bob, created.ID)
	assert.ErrorIs(t, err, order.ErrOrderNotFound)

	_, err = get.Execute(ctx, f.admin, created.ID)
	assert.NoError(t, err)

	list := NewListOrdersUseCase(f.orders)
	page, err := list.Execute(ctx, f.bob, 1)
	require.NoError(t, err)
	assert.Zero(t, page.Total)
	page, err = list.Execute(ctx, f.admin, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 1, page.Total)
}

func TestUpdateStatusAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.addBook(t, "9780000000001", "A", "1.00", 10)
	created, err := f.create.Execute(ctx, f.alice, CreateOrderRequest{Items: []CreateOrderItem{{BookID: b.ID, Quantity: 4}}})
	require.NoError(t, err)

	update := NewUpdateStatusUseCase(f.orders)
	_, err = update.Execute(ctx, f.alice, created.ID, "shipped")
	assert.ErrorIs(t, err, apperrors.ErrNotStaff)

	_, err = update.Execute(ctx, f.admin, created.ID, "lost")
	assert.ErrorIs(t, err, order.ErrInvalidStatus)

	resp, err := update.Execute(ctx, f.admin, created.ID, "delivered")
	require.NoError(t, err)
	assert.Equal(t, "delivered", resp.Status)

	del := NewDeleteOrderUseCase(f.orders)
	assert.ErrorIs(t, del.Execute(ctx, f.alice, created.ID), apperrors.ErrNotStaff)
	require.NoError(t, del.Execute(ctx, f.admin, created.ID))
	assert.Equal(t, 6, f.stock(t, b.ID), "删除订单不恢复库存")
}

package order

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/xiebiao/bookshelf/internal/domain/book"
	"github.com/xiebiao/bookshelf/internal/domain/order"
	"github.com/xiebiao/bookshelf/internal/domain/permission"
	"github.com/xiebiao/bookshelf/internal/domain/user"
	"github.com/xiebiao/bookshelf/internal/infrastructure/persistence/sqldb"
	apperrors "github.com/xiebiao/bookshelf/pkg/errors"
	"github.com/xiebiao/bookshelf/pkg/logger"
	"github.com/xiebiao/bookshelf/pkg/metrics"
	"github.com/xiebiao/bookshelf/pkg/tracing"
)

const tracerName = "bookshelf/application/order"

// CreateOrderUseCase 创建订单用例
// 涉及:事务处理、并发控制、业务规则校验
type CreateOrderUseCase struct {
	orderRepo order.Repository
	bookRepo  book.Repository
	txManager *sqldb.TxManager
}

// NewCreateOrderUseCase 创建下单用例
func NewCreateOrderUseCase(
	orderRepo order.Repository,
	bookRepo book.Repository,
	txManager *sqldb.TxManager,
) *CreateOrderUseCase {
	return &CreateOrderUseCase{
		orderRepo: orderRepo,
		bookRepo:  bookRepo,
		txManager: txManager,
	}
}

// CreateOrderRequest 下单请求DTO
// 客户端传入的总价、状态一律忽略,不出现在请求结构中
type CreateOrderRequest struct {
	Items []CreateOrderItem
}

// CreateOrderItem 订单明细项
type CreateOrderItem struct {
	BookID   uint
	Quantity int
}

// Execute 执行下单用例
//
// 流程(全部在一个事务中):
//  1. SELECT FOR UPDATE 锁定涉及的图书
//  2. 校验图书存在、库存充足(同一本书的数量合并计算)
//  3. 创建订单(总价0,状态pending)
//  4. 逐条创建明细(快照当前单价),随后扣减库存 max(0, stock-qty)
//  5. 计算并保存总价
//
// 任一步失败整个事务回滚,不会留下订单、明细或库存变化
func (uc *CreateOrderUseCase) Execute(ctx context.Context, principal *user.Principal, req CreateOrderRequest) (result *OrderDTO, err error) {
	ctx, span := tracing.StartSpan(ctx, tracerName, "CreateOrder")
	start := time.Now()
	defer func() {
		tracing.EndSpan(span, err)
		metrics.ObserveHistogram(metrics.OrderCreationDuration, time.Since(start).Seconds())
		if err != nil {
			metrics.IncCounterVec(metrics.OrdersFailedTotal, map[string]string{"reason": failureReason(err)})
		}
	}()

	if err := permission.Check(ctx, permission.Request{Principal: principal, Action: permission.ActionCreate},
		permission.IsAuthenticated()); err != nil {
		return nil, err
	}

	requested, err := validateItems(req.Items)
	if err != nil {
		return nil, err
	}

	var created *order.Order
	err = uc.txManager.Transaction(ctx, func(ctx context.Context) error {
		books, err := uc.lockAndCheck(ctx, requested)
		if err != nil {
			return err
		}

		o := order.NewOrder(principal.UserID)
		if err := uc.orderRepo.Create(ctx, o); err != nil {
			return err
		}

		for _, it := range req.Items {
			item := order.OrderItem{
				OrderID:         o.ID,
				BookID:          it.BookID,
				Quantity:        it.Quantity,
				PriceAtPurchase: books[it.BookID].Price,
			}
			if err := uc.orderRepo.CreateItem(ctx, &item); err != nil {
				return err
			}
			// 明细写入后扣减库存
			if err := uc.bookRepo.DecrementStock(ctx, it.BookID, it.Quantity); err != nil {
				return err
			}
			o.Items = append(o.Items, item)
		}

		o.TotalPrice = o.CalculateTotal()
		if err := uc.orderRepo.UpdateTotal(ctx, o); err != nil {
			return err
		}

		created = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	sold := 0
	for _, it := range created.Items {
		sold += it.Quantity
	}
	metrics.IncCounter(metrics.OrdersCreatedTotal)
	metrics.AddCounter(metrics.BooksSoldTotal, float64(sold))
	logger.L().Info("订单创建成功",
		zap.Uint("order_id", created.ID),
		zap.Uint("user_id", created.UserID),
		zap.String("total_price", created.TotalPrice.StringFixed(2)),
		zap.String("trace_id", tracing.ExtractTraceID(ctx)),
	)

	dto := toDTO(created)
	return &dto, nil
}

// validateItems 返回每本书的合计购买数量
func validateItems(items []CreateOrderItem) (map[uint]int, error) {
	if len(items) == 0 {
		return nil, order.ErrEmptyItems
	}
	requested := make(map[uint]int, len(items))
	for _, it := range items {
		if it.Quantity < 1 {
			return nil, order.ErrInvalidQuantity
		}
		requested[it.BookID] += it.Quantity
	}
	return requested, nil
}

// lockAndCheck 按图书ID升序加锁,避免并发下单时互相等待
func (uc *CreateOrderUseCase) lockAndCheck(ctx context.Context, requested map[uint]int) (map[uint]*book.Book, error) {
	ids := make([]uint, 0, len(requested))
	for id := range requested {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	books := make(map[uint]*book.Book, len(ids))
	for _, id := range ids {
		b, err := uc.bookRepo.LockByID(ctx, id)
		if err != nil {
			if apperrors.HasCode(err, apperrors.ErrCodeBookNotFound) {
				return nil, order.BookNotFoundError(id)
			}
			return nil, err
		}
		if !b.HasStock(requested[id]) {
			return nil, order.InsufficientStockError(b.Title, b.Stock, requested[id])
		}
		books[id] = b
	}
	return books, nil
}

func failureReason(err error) string {
	if appErr := apperrors.GetAppError(err); appErr != nil && appErr.HTTPStatus() < 500 {
		return "validation"
	}
	return "internal"
}

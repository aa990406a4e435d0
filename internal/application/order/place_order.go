package order

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/customer"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/history"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/inventory"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/order"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/circuitbreaker"
	apperrors "github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/errors"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/metrics"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/retry"
)

// TxManager 事务管理接口
// 由mysql.TxManager实现；定义在应用层便于测试时用内存实现替换
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// EventPublisher 订单事件发布接口
// 由mq.Publisher适配实现；nil表示不发布事件
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, message interface{}) error
}

// placementState 下单流程状态（仅进程内日志用，不落库）
// 下单在单个事务内完成：提交即全部生效，失败即全部回滚，
// 中间状态只对日志和排障有意义
type placementState int

const (
	stateStarted placementState = iota
	stateInventoryReserved
	stateRecorded
	stateHistorySynced
	stateCommitted
)

func (s placementState) String() string {
	switch s {
	case stateStarted:
		return "STARTED"
	case stateInventoryReserved:
		return "INVENTORY_RESERVED"
	case stateRecorded:
		return "RECORDED"
	case stateHistorySynced:
		return "HISTORY_SYNCED"
	case stateCommitted:
		return "COMMITTED"
	default:
		return "UNKNOWN"
	}
}

// PlaceOrderUseCase 下单用例
// 整个项目最核心的用例：事务处理、行锁并发控制、销售历史同步
type PlaceOrderUseCase struct {
	customerRepo customer.Repository
	orderRepo    order.Repository
	historyRepo  history.Recorder
	ledger       *inventory.Ledger
	txManager    TxManager
	logger       *logrus.Logger
	publisher    EventPublisher
	breaker      *circuitbreaker.CircuitBreaker
	opts         PlaceOrderOptions
}

// PlaceOrderOptions 下单行为配置
type PlaceOrderOptions struct {
	// ReserveTimeout 下单事务整体超时（含等锁时间），0表示不限制
	ReserveTimeout time.Duration
	// RetryMaxAttempts 存储层故障时的整单重试次数上限
	RetryMaxAttempts uint
	// RetryInitialInterval 重试首次退避间隔
	RetryInitialInterval time.Duration
}

// NewPlaceOrderUseCase 创建下单用例
// publisher和breaker可为nil（不发布订单事件）
func NewPlaceOrderUseCase(
	customerRepo customer.Repository,
	orderRepo order.Repository,
	historyRepo history.Recorder,
	ledger *inventory.Ledger,
	txManager TxManager,
	logger *logrus.Logger,
	publisher EventPublisher,
	breaker *circuitbreaker.CircuitBreaker,
	opts PlaceOrderOptions,
) *PlaceOrderUseCase {
	if opts.RetryMaxAttempts == 0 {
		opts.RetryMaxAttempts = 3
	}
	if opts.RetryInitialInterval <= 0 {
		opts.RetryInitialInterval = 100 * time.Millisecond
	}
	return &PlaceOrderUseCase{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		historyRepo:  historyRepo,
		ledger:       ledger,
		txManager:    txManager,
		logger:       logger,
		publisher:    publisher,
		breaker:      breaker,
		opts:         opts,
	}
}

// PlaceOrderRequest 下单请求DTO
type PlaceOrderRequest struct {
	CustomerID uint                 // 顾客ID（从JWT中提取）
	Items      []PlaceOrderItem     // 订单明细
	LockPolicy inventory.LockPolicy // 行锁策略，默认阻塞等待
}

// PlaceOrderItem 订单明细项
type PlaceOrderItem struct {
	ProductID uint
	Quantity  int
}

// PlaceOrderResponse 下单响应DTO
type PlaceOrderResponse struct {
	OrderID   uint   `json:"order_id"`
	OrderNo   string `json:"order_no"`
	Total     int64  `json:"total"`
	TotalYuan string `json:"total_yuan"`
	OrderDate string `json:"order_date"`
}

// OrderPlacedEvent 订单创建成功事件（事务提交后发布）
type OrderPlacedEvent struct {
	OrderID    uint   `json:"order_id"`
	OrderNo    string `json:"order_no"`
	CustomerID uint   `json:"customer_id"`
	Total      int64  `json:"total"`
	ItemCount  int    `json:"item_count"`
	OrderDate  string `json:"order_date"`
}

// Execute 执行下单
//
// 防止超卖的完整流程（单个事务内）：
//  1. 按product_id升序逐个SELECT FOR UPDATE锁定库存行
//  2. 锁定后校验库存、按锁定时刻的价格扣减（防改价攻击）
//  3. 创建订单+明细
//  4. 每个明细行同步写一条销售历史（同事务，绝不单独提交）
//  5. COMMIT释放全部行锁
//
// 失败语义：
// - 任何一步失败整单回滚，库存/订单/历史三者要么全有要么全无
// - 仅存储层故障（StorageFailure）自动整单重试；业务拒绝不重试
// - 事务提交后才发布order.placed事件，发布失败不影响订单
func (uc *PlaceOrderUseCase) Execute(ctx context.Context, req PlaceOrderRequest) (*PlaceOrderResponse, error) {
	start := time.Now()
	if metrics.OrdersInProgress != nil {
		metrics.OrdersInProgress.Inc()
		defer metrics.OrdersInProgress.Dec()
	}

	// 1. 参数校验
	if err := validateRequest(req); err != nil {
		uc.countFailure(err)
		return nil, err
	}

	// 2. 顾客名快照（事务外读取：顾客表不参与行锁竞争）
	// 下单场景里顾客ID来自请求方，查不到属于请求不合法而非资源缺失
	cust, err := uc.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		if apperrors.CodeOf(err) == apperrors.ErrCodeCustomerNotFound {
			err = apperrors.New(apperrors.ErrCodeInvalidRequest, "顾客不存在")
		}
		uc.countFailure(err)
		return nil, err
	}

	// 3. 合并同商品的预占数量，并按product_id升序排定加锁顺序
	// 全局一致的加锁顺序让并发事务的锁依赖成单向链，不可能成环死锁
	reserveQty := make(map[uint]int)
	for _, item := range req.Items {
		reserveQty[item.ProductID] += item.Quantity
	}
	lockOrder := make([]uint, 0, len(reserveQty))
	for id := range reserveQty {
		lockOrder = append(lockOrder, id)
	}
	sort.Slice(lockOrder, func(i, j int) bool { return lockOrder[i] < lockOrder[j] })

	// 4. 有界等待：整个事务（含等锁）不超过ReserveTimeout
	if uc.opts.ReserveTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.opts.ReserveTimeout)
		defer cancel()
	}

	// 5. 执行下单事务，存储层故障时整单重试
	var result *order.Order
	err = retry.Do(ctx,
		retry.Options{
			MaxAttempts:     uc.opts.RetryMaxAttempts,
			InitialInterval: uc.opts.RetryInitialInterval,
		},
		func() error {
			result = nil
			return uc.placeOnce(ctx, req, cust, reserveQty, lockOrder, &result)
		},
		apperrors.IsStorageFailure,
	)
	if err != nil {
		uc.countFailure(err)
		uc.logger.WithFields(logrus.Fields{
			"customer_id": req.CustomerID,
			"policy":      req.LockPolicy.String(),
			"error":       err.Error(),
		}).Warn("下单失败")
		return nil, err
	}

	if metrics.OrdersPlacedTotal != nil {
		metrics.OrdersPlacedTotal.Inc()
		metrics.OrderPlacementDuration.Observe(time.Since(start).Seconds())
	}

	uc.logger.WithFields(logrus.Fields{
		"order_no":    result.OrderNo,
		"customer_id": result.CustomerID,
		"total":       result.Total,
		"state":       stateCommitted.String(),
	}).Info("下单成功")

	// 6. 事务已提交，发布订单事件（熔断器保护，失败只记日志）
	uc.publishPlaced(ctx, result)

	return &PlaceOrderResponse{
		OrderID:   result.ID,
		OrderNo:   result.OrderNo,
		Total:     result.Total,
		TotalYuan: formatPrice(result.Total),
		OrderDate: result.OrderDate.Format("2006-01-02 15:04:05"),
	}, nil
}

// placeOnce 单次下单事务
func (uc *PlaceOrderUseCase) placeOnce(ctx context.Context, req PlaceOrderRequest,
	cust *customer.Customer, reserveQty map[uint]int, lockOrder []uint, out **order.Order) error {

	return uc.txManager.Transaction(ctx, func(txCtx context.Context) error {
		state := stateStarted
		log := uc.logger.WithFields(logrus.Fields{
			"customer_id": req.CustomerID,
			"policy":      req.LockPolicy.String(),
		})
		log.WithField("state", state.String()).Debug("下单事务开始")

		// 锁定并扣减库存：升序加锁，每个商品只预占一次（同商品多行已合并）
		reservations := make(map[uint]*inventory.Reservation, len(lockOrder))
		for _, productID := range lockOrder {
			r, err := uc.ledger.Reserve(txCtx, productID, reserveQty[productID], req.LockPolicy)
			if err != nil {
				uc.countLockMetrics(err)
				return err
			}
			reservations[productID] = r
		}
		state = stateInventoryReserved
		log.WithField("state", state.String()).Debug("库存预占完成")

		// 订单明细保持请求的行结构（同商品多行不合并），价格用锁定时刻的快照
		orderItems := make([]order.OrderItem, len(req.Items))
		for i, item := range req.Items {
			orderItems[i] = order.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     reservations[item.ProductID].UnitPrice,
			}
		}

		newOrder, err := order.NewOrder(order.GenerateOrderNo(), req.CustomerID, orderItems)
		if err != nil {
			return err
		}
		if err := uc.orderRepo.Create(txCtx, newOrder); err != nil {
			return err
		}
		state = stateRecorded
		log.WithField("state", state.String()).Debug("订单已落库")

		// 每个明细行同步写销售历史（同事务提交）
		for _, item := range newOrder.Items {
			record := history.NewSalesHistory(
				newOrder.ID,
				newOrder.OrderDate,
				cust.ID,
				cust.Name,
				item.ProductID,
				reservations[item.ProductID].ProductName,
				item.Quantity,
				item.Price,
			)
			if err := uc.historyRepo.Record(txCtx, record); err != nil {
				return err
			}
		}
		state = stateHistorySynced
		log.WithField("state", state.String()).Debug("销售历史已同步")

		*out = newOrder
		return nil
	})
}

// publishPlaced 发布order.placed事件
// 消息队列不可用时熔断器打开快速失败，不拖慢下单主流程
func (uc *PlaceOrderUseCase) publishPlaced(ctx context.Context, o *order.Order) {
	if uc.publisher == nil {
		return
	}

	event := OrderPlacedEvent{
		OrderID:    o.ID,
		OrderNo:    o.OrderNo,
		CustomerID: o.CustomerID,
		Total:      o.Total,
		ItemCount:  len(o.Items),
		OrderDate:  o.OrderDate.Format(time.RFC3339),
	}

	publish := func() error {
		return uc.publisher.Publish(ctx, "order.placed", event)
	}

	var err error
	if uc.breaker != nil {
		err = uc.breaker.Execute(publish)
	} else {
		err = publish()
	}
	if err != nil {
		uc.logger.WithError(err).WithField("order_no", o.OrderNo).
			Warn("订单事件发布失败（订单已提交，不回滚）")
	}
}

// validateRequest 请求校验
func validateRequest(req PlaceOrderRequest) error {
	if len(req.Items) == 0 {
		return order.ErrInvalidOrderItems
	}
	for _, item := range req.Items {
		if item.ProductID == 0 {
			return apperrors.ErrInvalidRequest
		}
		if item.Quantity <= 0 {
			return order.ErrInvalidQuantity
		}
	}
	return nil
}

// countFailure 按失败原因记录指标
func (uc *PlaceOrderUseCase) countFailure(err error) {
	if metrics.OrderPlacementFailures == nil {
		return
	}
	metrics.OrderPlacementFailures.WithLabelValues(failureReason(err)).Inc()
}

// countLockMetrics 库存环节的专项计数
func (uc *PlaceOrderUseCase) countLockMetrics(err error) {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeLockConflict, apperrors.ErrCodeLockTimeout:
		if metrics.InventoryLockConflictsTotal != nil {
			metrics.InventoryLockConflictsTotal.Inc()
		}
	case apperrors.ErrCodeOutOfStock:
		if metrics.InventoryOutOfStockTotal != nil {
			metrics.InventoryOutOfStockTotal.Inc()
		}
	}
}

// failureReason 错误码 → 指标reason标签（低基数）
func failureReason(err error) string {
	switch apperrors.CodeOf(err) {
	case apperrors.ErrCodeOutOfStock:
		return "out_of_stock"
	case apperrors.ErrCodeLockConflict:
		return "lock_conflict"
	case apperrors.ErrCodeLockTimeout:
		return "lock_timeout"
	case apperrors.ErrCodeConstraintViolation:
		return "constraint_violation"
	case apperrors.ErrCodeStorageFailure:
		return "storage_failure"
	case apperrors.ErrCodeInvalidRequest, apperrors.ErrCodeBindError:
		return "invalid_request"
	case apperrors.ErrCodeCustomerNotFound, apperrors.ErrCodeProductNotFound:
		return "not_found"
	default:
		return "other"
	}
}

// formatPrice 格式化价格（分→元）
func formatPrice(priceFen int64) string {
	return fmt.Sprintf("%.2f", float64(priceFen)/100.0)
}

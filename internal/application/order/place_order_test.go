package order

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/catalog"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/customer"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/history"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/inventory"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/order"
	apperrors "github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/errors"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/logger"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/metrics"
)

// =========================================
// 内存fake实现（单元测试不依赖MySQL）
// =========================================

// fakeTxManager 直接执行fn，rollback标记事务内产生的数据应被丢弃
type fakeTxManager struct {
	rolledBack bool
}

func (m *fakeTxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err != nil {
		m.rolledBack = true
	}
	return err
}

type fakeCustomerRepo struct {
	customers map[uint]*customer.Customer
}

func (r *fakeCustomerRepo) Create(ctx context.Context, c *customer.Customer) error { return nil }
func (r *fakeCustomerRepo) Update(ctx context.Context, c *customer.Customer) error { return nil }
func (r *fakeCustomerRepo) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	return nil, apperrors.ErrCustomerNotFound
}
func (r *fakeCustomerRepo) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	if c, ok := r.customers[id]; ok {
		return c, nil
	}
	return nil, apperrors.ErrCustomerNotFound
}

type fakeOrderRepo struct {
	created []*order.Order
	nextID  uint
	err     error
}

func (r *fakeOrderRepo) Create(ctx context.Context, o *order.Order) error {
	if r.err != nil {
		return r.err
	}
	r.nextID++
	o.ID = r.nextID
	for i := range o.Items {
		o.Items[i].OrderID = o.ID
	}
	r.created = append(r.created, o)
	return nil
}
func (r *fakeOrderRepo) FindByID(ctx context.Context, id uint) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}
func (r *fakeOrderRepo) FindByOrderNo(ctx context.Context, orderNo string) (*order.Order, error) {
	return nil, order.ErrOrderNotFound
}
func (r *fakeOrderRepo) ListByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*order.Order, int64, error) {
	return nil, 0, nil
}

type fakeHistoryRecorder struct {
	records []*history.SalesHistory
	err     error
}

func (r *fakeHistoryRecorder) Record(ctx context.Context, record *history.SalesHistory) error {
	if r.err != nil {
		return r.err
	}
	r.records = append(r.records, record)
	return nil
}

// fakeLocker 记录加锁顺序，lockErrs按商品注入锁错误
type fakeLocker struct {
	mu        sync.Mutex
	products  map[uint]*catalog.Product
	lockedIDs []uint
	lockErrs  map[uint]error
	deductErr error
	failTimes int // DeductStock前N次返回deductErr（模拟瞬时存储故障）
}

func (f *fakeLocker) LockProduct(ctx context.Context, productID uint, policy inventory.LockPolicy) (*catalog.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.lockErrs[productID]; ok {
		return nil, err
	}
	f.lockedIDs = append(f.lockedIDs, productID)
	p, ok := f.products[productID]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeLocker) DeductStock(ctx context.Context, productID uint, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failTimes > 0 {
		f.failTimes--
		return f.deductErr
	}
	f.products[productID].Stock -= quantity
	return nil
}

type fakePublisher struct {
	events []OrderPlacedEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, routingKey string, message interface{}) error {
	if p.err != nil {
		return p.err
	}
	if e, ok := message.(OrderPlacedEvent); ok && routingKey == "order.placed" {
		p.events = append(p.events, e)
	}
	return nil
}

// =========================================
// 测试夹具
// =========================================

type fixture struct {
	uc        *PlaceOrderUseCase
	locker    *fakeLocker
	orderRepo *fakeOrderRepo
	histRepo  *fakeHistoryRecorder
	publisher *fakePublisher
	tx        *fakeTxManager
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	metrics.InitMetrics()

	authorID := uint(7)
	locker := &fakeLocker{
		products: map[uint]*catalog.Product{
			1: {ID: 1, Name: "Go程序设计语言", Price: 7900, Stock: 10, CategoryID: 1, AuthorID: &authorID},
			2: {ID: 2, Name: "数据密集型应用系统设计", Price: 12900, Stock: 5, CategoryID: 1},
			3: {ID: 3, Name: "机械键盘", Price: 29900, Stock: 2, CategoryID: 2},
		},
		lockErrs: map[uint]error{},
	}
	orderRepo := &fakeOrderRepo{}
	histRepo := &fakeHistoryRecorder{}
	publisher := &fakePublisher{}
	tx := &fakeTxManager{}

	uc := NewPlaceOrderUseCase(
		&fakeCustomerRepo{customers: map[uint]*customer.Customer{
			42: {ID: 42, Email: "alice@example.com", Name: "Alice"},
		}},
		orderRepo,
		histRepo,
		inventory.NewLedger(locker),
		tx,
		logger.Default(),
		publisher,
		nil,
		PlaceOrderOptions{RetryMaxAttempts: 3, RetryInitialInterval: time.Millisecond},
	)

	return &fixture{uc: uc, locker: locker, orderRepo: orderRepo, histRepo: histRepo, publisher: publisher, tx: tx}
}

// =========================================
// 测试用例
// =========================================

// TestPlaceOrder_Success 正常下单：扣库存、建订单、同步历史、发事件
func TestPlaceOrder_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), PlaceOrderRequest{
		CustomerID: 42,
		Items: []PlaceOrderItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(2*7900+12900), resp.Total, "总金额=sum(单价*数量)")

	// 库存已扣减
	assert.Equal(t, 8, f.locker.products[1].Stock)
	assert.Equal(t, 4, f.locker.products[2].Stock)

	// 订单与明细
	require.Len(t, f.orderRepo.created, 1)
	o := f.orderRepo.created[0]
	assert.Equal(t, o.Total, o.CalculateTotal())

	// 每个明细行一条销售历史，快照字段完整
	require.Len(t, f.histRepo.records, 2)
	for _, r := range f.histRepo.records {
		assert.Equal(t, "Alice", r.CustomerName)
		assert.NotEmpty(t, r.ProductName)
		assert.Equal(t, r.PriceCharged*int64(r.Quantity), r.TotalCost)
		assert.Equal(t, o.ID, r.OrderID)
	}

	// 提交后发布事件
	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, o.OrderNo, f.publisher.events[0].OrderNo)
}

// TestPlaceOrder_OutOfStock 库存不足：整单失败，无订单无历史无事件
func TestPlaceOrder_OutOfStock(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), PlaceOrderRequest{
		CustomerID: 42,
		Items: []PlaceOrderItem{
			{ProductID: 1, Quantity: 1},
			{ProductID: 3, Quantity: 5}, // 库存只有2
		},
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeOutOfStock, apperrors.CodeOf(err))
	assert.True(t, f.tx.rolledBack, "库存不足应该回滚事务")
	assert.Empty(t, f.orderRepo.created)
	assert.Empty(t, f.histRepo.records)
	assert.Empty(t, f.publisher.events)
}

// TestPlaceOrder_LockOrderAscending 无论请求顺序如何，按product_id升序加锁
func TestPlaceOrder_LockOrderAscending(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), PlaceOrderRequest{
		CustomerID: 42,
		Items: []PlaceOrderItem{
			{ProductID: 3, Quantity: 1},
			{ProductID: 1, Quantity: 1},
			{ProductID: 2, Quantity: 1},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2, 3}, f.locker.lockedIDs, "加锁顺序必须是product_id升序")
}

// TestPlaceOrder_DuplicateLines 同商品多行：预占合并（每商品锁一次），明细行保留
func TestPlaceOrder_DuplicateLines(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), PlaceOrderRequest{
		CustomerID: 42,
		Items: []PlaceOrderItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 1, Quantity: 3},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, []uint{1}, f.locker.lockedIDs, "同商品只锁一次")
	assert.Equal(t, 5, 10-f.locker.products[1].Stock, "合并后扣减总量")
	assert.Len(t, f.orderRepo.created[0].Items, 2, "明细保留两行")
	assert.Len(t, f.histRepo.records, 2, "历史每行一条")
	assert.Equal(t, int64(5*7900), resp.Total)
}

// TestPlaceOrder_OrderInsertFailureRollsBack 预占成功后订单落库失败：整单回滚
func TestPlaceOrder_OrderInsertFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	f.orderRepo.err = assert.AnError

	_, err := f.uc.Execute(context.Background(), PlaceOrderRequest{
		CustomerID: 42,
		Items:      []PlaceOrderItem{{ProductID: 1, Quantity: 2}},
	})

	require.Error(t, err)
	assert.NotEmpty(t, f.locker.lockedIDs, "失败发生在预占之后")
	assert.True(t, f.tx.rolledBack, "订单落库失败应该回滚事务")
	assert.Empty(t, f.orderRepo.created)
	assert.Empty(t, f.histRepo.records, "订单未落库时不应该写销售历史")
	assert.Empty(t, f.publisher.events, "回滚后不应该发布事件")
}

// TestPlaceOrder_HistorySyncFailureAbortsPlacement 销售历史写入失败：下单整体失败
func TestPlaceOrder_HistorySyncFailureAbortsPlacement(t *testing.T) {
	f := newFixture(t)
	f.histRepo.err = assert.AnError

	_, err := f.uc.Execute(context.Background(), PlaceOrderRequest{
		CustomerID: 42,
		Items:      []PlaceOrderItem{{ProductID: 1, Quantity: 1}},
	})

	require.Error(t, err)
	assert.True(t, f.tx.rolledBack, "历史同步失败必须让整个事务回滚")
	assert.Empty(t, f.histRepo.records)
	assert.Empty(t, f.publisher.events, "未提交的订单不应该发布事件")
}

// TestPlaceOrder_LockConflictNotRetried 锁冲突是业务拒绝，不自动重试
func TestPlaceOrder_LockConflictNotRetried(t *testing.T) {
	f := newFixture(t)
	f.locker.lockErrs[1] = inventory.ErrLockConflict

	_, err := f.uc.Execute(context.Background(), PlaceOrderRequest{
		CustomerID: 42,
		LockPolicy: inventory.LockPolicyNoWait,
		Items:      []PlaceOrderItem{{ProductID: 1, Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeLockConflict, apperrors.CodeOf(err))
	assert.Empty(t, f.orderRepo.created)
}

// TestPlaceOrder_StorageFailureRetried 存储层瞬时故障自动整单重试后成功
func TestPlaceOrder_StorageFailureRetried(t *testing.T) {
	f := newFixture(t)
	f.locker.deductErr = apperrors.WrapStorage(assert.AnError, "连接被重置")
	f.locker.failTimes = 2 // 前两次失败，第三次成功

	resp, err := f.uc.Execute(context.Background(), PlaceOrderRequest{
		CustomerID: 42,
		Items:      []PlaceOrderItem{{ProductID: 1, Quantity: 1}},
	})

	require.NoError(t, err)
	assert.Equal(t, int64(7900), resp.Total)
	assert.Len(t, f.orderRepo.created, 1, "重试成功后只有一个订单")
}

// TestPlaceOrder_InvalidRequest 参数校验
func TestPlaceOrder_InvalidRequest(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name  string
		items []PlaceOrderItem
	}{
		{"空明细", nil},
		{"数量为0", []PlaceOrderItem{{ProductID: 1, Quantity: 0}}},
		{"数量为负", []PlaceOrderItem{{ProductID: 1, Quantity: -1}}},
		{"商品ID为0", []PlaceOrderItem{{ProductID: 0, Quantity: 1}}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.Execute(context.Background(), PlaceOrderRequest{
				CustomerID: 42,
				Items:      tc.items,
			})
			require.Error(t, err)
			assert.Empty(t, f.locker.lockedIDs, "参数校验失败不应该进入事务")
		})
	}
}

// TestPlaceOrder_UnknownCustomer 顾客不存在按参数错误处理，不进入事务
func TestPlaceOrder_UnknownCustomer(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), PlaceOrderRequest{
		CustomerID: 999,
		Items:      []PlaceOrderItem{{ProductID: 1, Quantity: 1}},
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
	assert.Empty(t, f.locker.lockedIDs)
	assert.Empty(t, f.orderRepo.created)
}

// TestPlaceOrder_PublishFailureDoesNotFailOrder 事件发布失败不影响已提交订单
func TestPlaceOrder_PublishFailureDoesNotFailOrder(t *testing.T) {
	f := newFixture(t)
	f.publisher.err = assert.AnError

	resp, err := f.uc.Execute(context.Background(), PlaceOrderRequest{
		CustomerID: 42,
		Items:      []PlaceOrderItem{{ProductID: 1, Quantity: 1}},
	})

	require.NoError(t, err, "事件发布失败不应该影响下单结果")
	assert.NotZero(t, resp.OrderID)
}

package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/catalog"
)

// fakeLocker 内存实现，记录调用顺序
type fakeLocker struct {
	products    map[uint]*catalog.Product
	lockedIDs   []uint
	lockErr     error
	deductErr   error
	deductCalls int
}

func (f *fakeLocker) LockProduct(ctx context.Context, productID uint, policy LockPolicy) (*catalog.Product, error) {
	if f.lockErr != nil {
		return nil, f.lockErr
	}
	f.lockedIDs = append(f.lockedIDs, productID)
	p, ok := f.products[productID]
	if !ok {
		return nil, catalog.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeLocker) DeductStock(ctx context.Context, productID uint, quantity int) error {
	if f.deductErr != nil {
		return f.deductErr
	}
	f.deductCalls++
	f.products[productID].Stock -= quantity
	return nil
}

func newFakeLocker(stock int) *fakeLocker {
	return &fakeLocker{
		products: map[uint]*catalog.Product{
			1: {ID: 1, Name: "Go程序设计语言", Price: 7900, Stock: stock},
		},
	}
}

// TestLedger_Reserve_Success 正常预占：锁行、扣减、返回价格快照
func TestLedger_Reserve_Success(t *testing.T) {
	locker := newFakeLocker(10)
	ledger := NewLedger(locker)

	r, err := ledger.Reserve(context.Background(), 1, 3, LockPolicyBlock)

	require.NoError(t, err)
	assert.Equal(t, uint(1), r.ProductID)
	assert.Equal(t, 3, r.Quantity)
	assert.Equal(t, int64(7900), r.UnitPrice)
	assert.Equal(t, 7, locker.products[1].Stock)
}

// TestLedger_Reserve_OutOfStock 库存不足拒绝预占，不产生扣减
func TestLedger_Reserve_OutOfStock(t *testing.T) {
	locker := newFakeLocker(2)
	ledger := NewLedger(locker)

	_, err := ledger.Reserve(context.Background(), 1, 3, LockPolicyBlock)

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.Equal(t, 0, locker.deductCalls, "库存不足不应该扣减")
	assert.Equal(t, 2, locker.products[1].Stock)
}

// TestLedger_Reserve_ExactStock 恰好等于库存的预占成功，库存归零
func TestLedger_Reserve_ExactStock(t *testing.T) {
	locker := newFakeLocker(3)
	ledger := NewLedger(locker)

	_, err := ledger.Reserve(context.Background(), 1, 3, LockPolicyBlock)

	require.NoError(t, err)
	assert.Equal(t, 0, locker.products[1].Stock)
}

// TestLedger_Reserve_InvalidQuantity 非正数量直接拒绝，不触发加锁
func TestLedger_Reserve_InvalidQuantity(t *testing.T) {
	locker := newFakeLocker(10)
	ledger := NewLedger(locker)

	for _, qty := range []int{0, -1} {
		_, err := ledger.Reserve(context.Background(), 1, qty, LockPolicyBlock)
		assert.ErrorIs(t, err, ErrInvalidQuantity)
	}
	assert.Empty(t, locker.lockedIDs, "参数校验失败不应该加锁")
}

// TestLedger_Reserve_LockConflict 锁冲突原样透传
func TestLedger_Reserve_LockConflict(t *testing.T) {
	locker := newFakeLocker(10)
	locker.lockErr = ErrLockConflict
	ledger := NewLedger(locker)

	_, err := ledger.Reserve(context.Background(), 1, 1, LockPolicyNoWait)

	assert.ErrorIs(t, err, ErrLockConflict)
	assert.Equal(t, 0, locker.deductCalls)
}

// TestLockPolicy_String 策略名用于日志
func TestLockPolicy_String(t *testing.T) {
	assert.Equal(t, "BLOCK", LockPolicyBlock.String())
	assert.Equal(t, "NOWAIT", LockPolicyNoWait.String())
	assert.Equal(t, "SKIP_LOCKED", LockPolicySkipLocked.String())
}

// Package inventory 库存预占领域逻辑
//
// 核心约束：
// 1. 预占必须在行锁保护下进行（SELECT FOR UPDATE），先锁后查再扣
// 2. 同一事务内锁多个商品时，调用方按product_id升序加锁（避免死锁）
// 3. 库存不足是确定性失败，锁冲突/锁超时是瞬时失败，错误码区分两类
package inventory

import (
	"context"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/catalog"
)

// LockPolicy 行锁获取策略
type LockPolicy int

const (
	// LockPolicyBlock 阻塞等待（FOR UPDATE）
	// 等待持锁事务结束，数据库等锁超时后返回ErrLockTimeout
	LockPolicyBlock LockPolicy = iota

	// LockPolicyNoWait 快速失败（FOR UPDATE NOWAIT）
	// 行被锁定时立即返回ErrLockConflict，不等待
	LockPolicyNoWait

	// LockPolicySkipLocked 跳过锁定行（FOR UPDATE SKIP LOCKED）
	// 行被锁定时视为不可见，用于批量扫描类场景
	LockPolicySkipLocked
)

// String 实现Stringer接口（方便日志输出）
func (p LockPolicy) String() string {
	switch p {
	case LockPolicyBlock:
		return "BLOCK"
	case LockPolicyNoWait:
		return "NOWAIT"
	case LockPolicySkipLocked:
		return "SKIP_LOCKED"
	default:
		return "UNKNOWN"
	}
}

// Locker 库存行锁接口（infrastructure层实现）
type Locker interface {
	// LockProduct 按策略锁定商品行并返回当前数据
	// 必须在事务内调用（ctx携带事务），锁随事务提交/回滚释放
	// 错误约定：
	// - 行被占用且policy=NoWait：ErrLockConflict
	// - 等锁超时：ErrLockTimeout
	// - 行被占用且policy=SkipLocked：ErrLockConflict（单行场景下跳过即冲突）
	LockProduct(ctx context.Context, productID uint, policy LockPolicy) (*catalog.Product, error)

	// DeductStock 扣减已锁定商品的库存
	// 带stock >= quantity守卫条件，并发下绝不把库存扣成负数
	DeductStock(ctx context.Context, productID uint, quantity int) error
}

// Reservation 一次预占的结果（锁定时刻的价格快照）
type Reservation struct {
	ProductID   uint
	ProductName string
	Quantity    int
	UnitPrice   int64 // 锁定时刻的单价（分），防止下单期间改价
}

// Ledger 库存台账（领域服务）
type Ledger struct {
	locker Locker
}

// NewLedger 创建库存台账
func NewLedger(locker Locker) *Ledger {
	return &Ledger{locker: locker}
}

// Reserve 预占库存
// 流程：锁行 → 校验库存 → 扣减，三步在同一事务内原子完成。
// 库存不足时返回ErrOutOfStock且不产生任何扣减。
func (l *Ledger) Reserve(ctx context.Context, productID uint, quantity int, policy LockPolicy) (*Reservation, error) {
	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	product, err := l.locker.LockProduct(ctx, productID, policy)
	if err != nil {
		return nil, err
	}

	if product.Stock < quantity {
		return nil, ErrOutOfStock
	}

	if err := l.locker.DeductStock(ctx, productID, quantity); err != nil {
		return nil, err
	}

	return &Reservation{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    quantity,
		UnitPrice:   product.Price,
	}, nil
}

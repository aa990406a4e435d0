package mysql

import (
	"context"

	"gorm.io/gorm"
)

// TxManager 事务管理器
// 设计说明：
// 1. 封装GORM的Transaction方法
// 2. 通过context传递事务DB（避免全局变量）
// 3. 支持嵌套事务（GORM自动使用Savepoint）
type TxManager struct {
	db *gorm.DB
}

// NewTxManager 创建事务管理器
func NewTxManager(db *gorm.DB) *TxManager {
	return &TxManager{db: db}
}

// Transaction 执行事务
// fn内的所有Repository操作在同一事务中执行：
// fn返回error时自动ROLLBACK，返回nil时自动COMMIT。
//
// 使用示例：
//
//	err := txManager.Transaction(ctx, func(ctx context.Context) error {
//	    // 1. 锁定并扣减库存
//	    r, err := ledger.Reserve(ctx, productID, qty, inventory.LockPolicyBlock)
//	    if err != nil {
//	        return err
//	    }
//	    // 2. 创建订单
//	    if err := orderRepo.Create(ctx, o); err != nil {
//	        return err // 自动回滚
//	    }
//	    // 3. 写销售历史
//	    return historyRepo.Record(ctx, record)
//	})
func (m *TxManager) Transaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 将事务DB注入Context，Repository的getDB方法从context提取
		txCtx := context.WithValue(ctx, "tx", tx)
		return fn(txCtx)
	})
}

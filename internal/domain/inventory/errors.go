package inventory

import (
	apperrors "github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/errors"
)

// 库存领域错误定义
var (
	// ErrOutOfStock 库存不足（确定性拒绝，重试无意义）
	ErrOutOfStock = apperrors.ErrOutOfStock

	// ErrLockConflict 行锁被占用（NOWAIT模式下立即返回，稍后可整单重试）
	ErrLockConflict = apperrors.ErrLockConflict

	// ErrLockTimeout 等待行锁超时（阻塞模式下超过innodb_lock_wait_timeout）
	ErrLockTimeout = apperrors.ErrLockTimeout

	// ErrInvalidQuantity 预占数量不合法
	ErrInvalidQuantity = apperrors.New(apperrors.ErrCodeInvalidRequest, "预占数量必须大于0")
)

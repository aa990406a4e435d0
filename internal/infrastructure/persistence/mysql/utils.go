package mysql

import (
	"context"
	"errors"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

// MySQL错误码：
// - 1062: Duplicate entry（唯一索引冲突）
// - 1205: Lock wait timeout exceeded（等锁超时）
// - 1452: Cannot add or update a child row（外键约束冲突）
// - 3572: Statement aborted because lock(s) could not be acquired（NOWAIT被拒）
const (
	mysqlErrDuplicateEntry  = 1062
	mysqlErrLockWaitTimeout = 1205
	mysqlErrFKViolation     = 1452
	mysqlErrLockNoWait      = 3572
)

// mysqlErrNumber 提取MySQL错误码，非MySQL错误返回0
func mysqlErrNumber(err error) uint16 {
	var mysqlErr *gomysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return mysqlErr.Number
	}
	return 0
}

// isDuplicateError 判断是否为MySQL唯一索引冲突错误
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	if mysqlErrNumber(err) == mysqlErrDuplicateEntry {
		return true
	}
	// 兼容检查：错误信息包含"Duplicate entry"
	return strings.Contains(err.Error(), "Duplicate entry")
}

// isForeignKeyError 判断是否为外键约束冲突（引用了不存在的行）
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	return mysqlErrNumber(err) == mysqlErrFKViolation
}

// isLockNoWaitError 判断是否为NOWAIT模式下的行锁冲突
func isLockNoWaitError(err error) bool {
	if err == nil {
		return false
	}
	if mysqlErrNumber(err) == mysqlErrLockNoWait {
		return true
	}
	return strings.Contains(err.Error(), "NOWAIT")
}

// isLockWaitTimeoutError 判断是否为等锁超时
func isLockWaitTimeoutError(err error) bool {
	if err == nil {
		return false
	}
	if mysqlErrNumber(err) == mysqlErrLockWaitTimeout {
		return true
	}
	return strings.Contains(err.Error(), "Lock wait timeout")
}

// getDB 从context获取事务DB，没有事务时使用默认DB
// TxManager.Transaction注入的"tx"键在这里取出，实现事务的隐式传递
func getDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value("tx").(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}

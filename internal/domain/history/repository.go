package history

import (
	"context"

	apperrors "github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/errors"
)

// ErrOutsideTransaction 在事务外调用Record
// 销售历史必须与订单同事务提交，事务外写入是编程错误，直接拒绝
var ErrOutsideTransaction = apperrors.New(apperrors.ErrCodeInternal, "销售历史必须在订单事务内写入")

// Recorder 销售历史写入接口
type Recorder interface {
	// Record 追加一条销售历史记录
	// ctx必须携带进行中的事务，否则返回ErrOutsideTransaction
	Record(ctx context.Context, record *SalesHistory) error
}

// Repository 销售历史读取接口（查询用）
type Repository interface {
	Recorder

	// ListByCustomerID 查询顾客的购买历史（按order_date降序，分页）
	ListByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*SalesHistory, int64, error)
}

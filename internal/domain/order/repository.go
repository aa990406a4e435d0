package order

import (
	"context"
)

// Repository 订单仓储接口
// 订单和明细必须在同一事务中创建（ctx携带事务）
type Repository interface {
	// Create 创建订单（包含订单明细）
	Create(ctx context.Context, order *Order) error

	// FindByID 根据ID查找订单（包含订单明细）
	FindByID(ctx context.Context, id uint) (*Order, error)

	// FindByOrderNo 根据订单号查找订单
	FindByOrderNo(ctx context.Context, orderNo string) (*Order, error)

	// ListByCustomerID 查询顾客的订单列表（分页）
	ListByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*Order, int64, error)
}

package order

import (
	"time"
)

// Order 订单实体（聚合根）
// 设计说明：
// 1. Order是聚合根，OrderItem是子实体，必须在同一事务中落库
// 2. Total冗余存储（防止改价后历史订单金额变化）
// 3. 不保存状态字段：下单在单个事务内完成，提交即生效，失败即整单回滚
type Order struct {
	ID         uint
	OrderNo    string      // 订单号（业务主键，全局唯一）
	CustomerID uint        // 顾客ID
	Total      int64       // 订单总金额（分），冗余字段
	OrderDate  time.Time   // 下单时间
	Items      []OrderItem // 订单明细（聚合内的子实体）
	CreatedAt  time.Time
}

// OrderItem 订单明细项
// Price记录下单时刻的单价（历史价格快照），不直接关联Product对象
type OrderItem struct {
	ID        uint
	OrderID   uint
	ProductID uint
	Quantity  int
	Price     int64 // 下单时的单价（分）
}

// NewOrder 创建新订单（工厂方法）
func NewOrder(orderNo string, customerID uint, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrInvalidOrderItems
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}

	now := time.Now()
	o := &Order{
		OrderNo:    orderNo,
		CustomerID: customerID,
		OrderDate:  now,
		Items:      items,
		CreatedAt:  now,
	}
	o.Total = o.CalculateTotal()
	return o, nil
}

// CalculateTotal 计算订单总金额（sum(明细单价*数量)）
func (o *Order) CalculateTotal() int64 {
	var total int64
	for _, item := range o.Items {
		total += item.Price * int64(item.Quantity)
	}
	return total
}

// IsOwnedBy 检查订单是否属于指定顾客
func (o *Order) IsOwnedBy(customerID uint) bool {
	return o.CustomerID == customerID
}

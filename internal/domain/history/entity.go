// Package history 销售历史（只追加的分析宽表）
//
// sales_history是订单明细的反规范化副本，为BI查询预先拍平：
// 顾客名、商品名、成交单价在记录时刻快照，后续改名/改价不回写。
// 记录与订单落库同事务提交，绝不单独提交。
package history

import (
	"time"
)

// SalesHistory 销售历史记录
// 每个订单明细行对应一条记录
type SalesHistory struct {
	ID           uint
	OrderID      uint
	OrderDate    time.Time
	CustomerID   uint
	CustomerName string // 下单时刻的顾客名快照
	ProductID    uint
	ProductName  string // 下单时刻的商品名快照
	Quantity     int
	PriceCharged int64 // 成交单价（分）
	TotalCost    int64 // 该行小计 = PriceCharged * Quantity
	CreatedAt    time.Time
}

// NewSalesHistory 创建销售历史记录（工厂方法）
// TotalCost由工厂计算，不信任调用方传入
func NewSalesHistory(orderID uint, orderDate time.Time, customerID uint, customerName string,
	productID uint, productName string, quantity int, priceCharged int64) *SalesHistory {
	return &SalesHistory{
		OrderID:      orderID,
		OrderDate:    orderDate,
		CustomerID:   customerID,
		CustomerName: customerName,
		ProductID:    productID,
		ProductName:  productName,
		Quantity:     quantity,
		PriceCharged: priceCharged,
		TotalCost:    priceCharged * int64(quantity),
		CreatedAt:    time.Now(),
	}
}

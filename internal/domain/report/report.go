// Package report BI统计查询（只读，基于sales_history宽表）
package report

import (
	"context"
	"time"
)

// DailyRevenue 某一天的营收汇总
type DailyRevenue struct {
	Date        string `json:"date"` // YYYY-MM-DD
	OrderCount  int64  `json:"order_count"`
	TotalAmount int64  `json:"total_amount"` // 当日营收（分）
}

// ProductSales 商品销量汇总
type ProductSales struct {
	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
	TotalSold    int64  `json:"total_sold"`    // 累计销量
	TotalRevenue int64  `json:"total_revenue"` // 累计销售额（分）
}

// CustomerSpending 顾客消费汇总
type CustomerSpending struct {
	CustomerID   uint   `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	OrderCount   int64  `json:"order_count"`
	TotalSpent   int64  `json:"total_spent"` // 累计消费（分）
}

// Repository 统计查询仓储接口
// 全部查询走sales_history，不触碰订单表，不加行锁
type Repository interface {
	// DailyRevenue 按天汇总营收（闭区间[from, to]，按日期升序）
	DailyRevenue(ctx context.Context, from, to time.Time) ([]*DailyRevenue, error)

	// TopSellingProducts 指定月份销量前N的商品
	// 按销量降序，销量相同按product_id升序；year/month为0时统计全部历史
	TopSellingProducts(ctx context.Context, year, month, limit int) ([]*ProductSales, error)

	// HighValueCustomers 最近windowDays天内累计消费达到阈值的顾客
	// 按累计消费降序；windowDays<=0时不限时间窗口
	HighValueCustomers(ctx context.Context, windowDays int, minSpent int64, limit int) ([]*CustomerSpending, error)
}

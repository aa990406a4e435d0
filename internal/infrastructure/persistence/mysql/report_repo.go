package mysql

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/report"
	apperrors "github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/errors"
)

// reportRepository BI统计查询实现（MySQL）
// 全部查询走sales_history宽表，普通一致性读，不加行锁，
// 不会阻塞也不会被下单事务阻塞
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository 创建统计查询仓储
func NewReportRepository(db *gorm.DB) report.Repository {
	return &reportRepository{db: db}
}

// DailyRevenue 按天汇总营收
// 订单金额按订单去重前已拍平到明细行，直接SUM(total_cost)即当日营收；
// 订单数用COUNT(DISTINCT order_id)还原。
// 闭区间[from, to]：调用方负责把to推进到当天最后一刻，这里不再扩展
func (r *reportRepository) DailyRevenue(ctx context.Context, from, to time.Time) ([]*report.DailyRevenue, error) {
	var rows []*report.DailyRevenue

	err := r.db.WithContext(ctx).Model(&SalesHistoryModel{}).
		Select("DATE_FORMAT(order_date, '%Y-%m-%d') AS date, " +
			"COUNT(DISTINCT order_id) AS order_count, " +
			"SUM(total_cost) AS total_amount").
		Where("order_date >= ? AND order_date <= ?", from, to).
		Group("DATE_FORMAT(order_date, '%Y-%m-%d')").
		Order("date ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.WrapStorage(err, "查询每日营收失败")
	}

	return rows, nil
}

// TopSellingProducts 指定月份销量前N的商品
// 商品名取快照的最新值（MAX），避免历史改名导致同一商品分裂成多行
func (r *reportRepository) TopSellingProducts(ctx context.Context, year, month, limit int) ([]*report.ProductSales, error) {
	if limit <= 0 {
		limit = 10
	}

	query := r.db.WithContext(ctx).Model(&SalesHistoryModel{}).
		Select("product_id, " +
			"MAX(product_name) AS product_name, " +
			"SUM(quantity) AS total_sold, " +
			"SUM(total_cost) AS total_revenue")

	if year > 0 && month > 0 {
		monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		query = query.Where("order_date >= ? AND order_date < ?", monthStart, monthStart.AddDate(0, 1, 0))
	}

	var rows []*report.ProductSales
	err := query.Group("product_id").
		Order("total_sold DESC, product_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.WrapStorage(err, "查询畅销商品失败")
	}

	return rows, nil
}

// HighValueCustomers 时间窗口内累计消费达到阈值的顾客
func (r *reportRepository) HighValueCustomers(ctx context.Context, windowDays int, minSpent int64, limit int) ([]*report.CustomerSpending, error) {
	if limit <= 0 {
		limit = 20
	}

	query := r.db.WithContext(ctx).Model(&SalesHistoryModel{}).
		Select("customer_id, " +
			"MAX(customer_name) AS customer_name, " +
			"COUNT(DISTINCT order_id) AS order_count, " +
			"SUM(total_cost) AS total_spent")

	if windowDays > 0 {
		query = query.Where("order_date >= ?", time.Now().AddDate(0, 0, -windowDays))
	}

	var rows []*report.CustomerSpending
	err := query.Group("customer_id").
		Having("SUM(total_cost) >= ?", minSpent).
		Order("total_spent DESC, customer_id ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.WrapStorage(err, "查询高价值顾客失败")
	}

	return rows, nil
}

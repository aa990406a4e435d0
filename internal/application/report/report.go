package report

import (
	"context"
	"time"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/report"
	apperrors "github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/errors"
)

// ReportUseCase BI统计查询用例
// 参数解析与边界校验在这里，SQL聚合在report.Repository
type ReportUseCase struct {
	repo report.Repository
}

// NewReportUseCase 创建统计查询用例
func NewReportUseCase(repo report.Repository) *ReportUseCase {
	return &ReportUseCase{repo: repo}
}

// DailyRevenueRequest 按日营收查询请求（日期格式YYYY-MM-DD）
type DailyRevenueRequest struct {
	From string
	To   string
}

// DailyRevenue 按天汇总营收
// 日期缺省时默认查询最近30天；from晚于to视为参数错误
func (uc *ReportUseCase) DailyRevenue(ctx context.Context, req DailyRevenueRequest) ([]*report.DailyRevenue, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if req.From != "" {
		t, err := time.ParseInLocation("2006-01-02", req.From, time.Local)
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "开始日期格式应为YYYY-MM-DD")
		}
		from = t
	}
	if req.To != "" {
		t, err := time.ParseInLocation("2006-01-02", req.To, time.Local)
		if err != nil {
			return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "结束日期格式应为YYYY-MM-DD")
		}
		// 闭区间：包含to当天的全部订单
		to = t.Add(24*time.Hour - time.Nanosecond)
	}

	if from.After(to) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "开始日期不能晚于结束日期")
	}

	return uc.repo.DailyRevenue(ctx, from, to)
}

// TopSellingProducts 指定月份销量前N的商品
// year/month均为0时统计全部历史；只传其一视为参数错误
func (uc *ReportUseCase) TopSellingProducts(ctx context.Context, year, month, limit int) ([]*report.ProductSales, error) {
	if (year == 0) != (month == 0) {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "年份和月份必须同时指定")
	}
	if month < 0 || month > 12 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "月份应在1-12之间")
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return uc.repo.TopSellingProducts(ctx, year, month, limit)
}

// HighValueCustomers 时间窗口内累计消费达到阈值的顾客
// windowDays为0时不限时间窗口
func (uc *ReportUseCase) HighValueCustomers(ctx context.Context, windowDays int, minSpent int64, limit int) ([]*report.CustomerSpending, error) {
	if minSpent < 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "消费阈值不能为负数")
	}
	if windowDays < 0 {
		return nil, apperrors.New(apperrors.ErrCodeInvalidRequest, "时间窗口不能为负数")
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return uc.repo.HighValueCustomers(ctx, windowDays, minSpent, limit)
}

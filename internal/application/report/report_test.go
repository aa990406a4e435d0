package report

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/report"
	apperrors "github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/errors"
)

type fakeReportRepo struct {
	gotFrom, gotTo  time.Time
	gotYear         int
	gotMonth        int
	gotWindowDays   int
	gotMinSpent     int64
	gotLimit        int
	dailyCalled     bool
	topCalled       bool
	highValueCalled bool
}

func (f *fakeReportRepo) DailyRevenue(ctx context.Context, from, to time.Time) ([]*report.DailyRevenue, error) {
	f.dailyCalled = true
	f.gotFrom, f.gotTo = from, to
	return []*report.DailyRevenue{}, nil
}

func (f *fakeReportRepo) TopSellingProducts(ctx context.Context, year, month, limit int) ([]*report.ProductSales, error) {
	f.topCalled = true
	f.gotYear, f.gotMonth, f.gotLimit = year, month, limit
	return []*report.ProductSales{}, nil
}

func (f *fakeReportRepo) HighValueCustomers(ctx context.Context, windowDays int, minSpent int64, limit int) ([]*report.CustomerSpending, error) {
	f.highValueCalled = true
	f.gotWindowDays, f.gotMinSpent, f.gotLimit = windowDays, minSpent, limit
	return []*report.CustomerSpending{}, nil
}

func TestDailyRevenue_DateParsing(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := NewReportUseCase(repo)

	_, err := uc.DailyRevenue(context.Background(), DailyRevenueRequest{
		From: "2026-08-01",
		To:   "2026-08-31",
	})

	require.NoError(t, err)
	assert.True(t, repo.dailyCalled)
	assert.Equal(t, "2026-08-01", repo.gotFrom.Format("2006-01-02"))
	assert.Equal(t, "2026-08-31", repo.gotTo.Format("2006-01-02"), "闭区间应包含结束日期当天")
}

// TestDailyRevenue_WindowBoundaries 闭区间上下界精确到天
// 仓储按order_date >= from AND order_date <= to过滤，
// 这里用同样的比较验证结束日期次日的订单落在窗口外
func TestDailyRevenue_WindowBoundaries(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := NewReportUseCase(repo)

	_, err := uc.DailyRevenue(context.Background(), DailyRevenueRequest{
		From: "2026-08-01",
		To:   "2026-08-31",
	})
	require.NoError(t, err)

	inWindow := func(orderDate time.Time) bool {
		return !orderDate.Before(repo.gotFrom) && !orderDate.After(repo.gotTo)
	}

	assert.True(t, inWindow(time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local)), "开始日零点应在窗口内")
	assert.True(t, inWindow(time.Date(2026, 8, 31, 23, 59, 59, 0, time.Local)), "结束日最后一秒应在窗口内")
	assert.False(t, inWindow(time.Date(2026, 9, 1, 0, 0, 0, 0, time.Local)), "次日零点应在窗口外")
	assert.False(t, inWindow(time.Date(2026, 9, 1, 12, 0, 0, 0, time.Local)), "次日中午应在窗口外")
}

// TestDailyRevenue_SingleDay from==to查询单日
func TestDailyRevenue_SingleDay(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := NewReportUseCase(repo)

	_, err := uc.DailyRevenue(context.Background(), DailyRevenueRequest{
		From: "2026-08-15",
		To:   "2026-08-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-08-15", repo.gotFrom.Format("2006-01-02"))
	assert.Equal(t, "2026-08-15", repo.gotTo.Format("2006-01-02"))
	assert.False(t, repo.gotTo.After(time.Date(2026, 8, 16, 0, 0, 0, 0, time.Local).Add(-time.Nanosecond)),
		"单日查询的上界不应跨入次日")
}

func TestDailyRevenue_InvalidDate(t *testing.T) {
	uc := NewReportUseCase(&fakeReportRepo{})

	cases := []DailyRevenueRequest{
		{From: "2026/08/01"},
		{To: "20260831"},
		{From: "2026-08-31", To: "2026-08-01"}, // from晚于to
	}
	for _, req := range cases {
		_, err := uc.DailyRevenue(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
	}
}

func TestTopSellingProducts_MonthScope(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := NewReportUseCase(repo)

	_, err := uc.TopSellingProducts(context.Background(), 2026, 8, 10)
	require.NoError(t, err)
	assert.Equal(t, 2026, repo.gotYear)
	assert.Equal(t, 8, repo.gotMonth)

	// 只传年份不传月份是参数错误
	_, err = uc.TopSellingProducts(context.Background(), 2026, 0, 10)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

func TestTopSellingProducts_DefaultLimit(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := NewReportUseCase(repo)

	_, err := uc.TopSellingProducts(context.Background(), 0, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 10, repo.gotLimit)
}

func TestHighValueCustomers_Validation(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := NewReportUseCase(repo)

	_, err := uc.HighValueCustomers(context.Background(), 90, 100000, 20)
	require.NoError(t, err)
	assert.Equal(t, 90, repo.gotWindowDays)
	assert.Equal(t, int64(100000), repo.gotMinSpent)

	_, err = uc.HighValueCustomers(context.Background(), 0, -1, 20)
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidRequest, apperrors.CodeOf(err))
}

package dto

// DailyRevenueRequest HTTP按日营收查询请求
type DailyRevenueRequest struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02" example:"2026-08-01"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02" example:"2026-08-31"`
}

// TopProductsRequest HTTP畅销商品查询请求
// year/month不传时统计全部历史
type TopProductsRequest struct {
	Year  int `form:"year" binding:"omitempty,min=2000,max=2100" example:"2026"`
	Month int `form:"month" binding:"omitempty,min=1,max=12" example:"8"`
	Limit int `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
}

// HighValueCustomersRequest HTTP高价值顾客查询请求
type HighValueCustomersRequest struct {
	WindowDays int   `form:"window_days" binding:"omitempty,min=1,max=3650" example:"90"` // 统计窗口（天），不传则不限
	MinSpent   int64 `form:"min_spent" binding:"omitempty,min=0" example:"100000"`        // 消费阈值（分）
	Limit      int   `form:"limit" binding:"omitempty,min=1,max=100" example:"20"`
}

// RecommendRequest HTTP推荐查询请求
type RecommendRequest struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=100" example:"10"`
}

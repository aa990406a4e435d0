package handler

import (
	"github.com/gin-gonic/gin"

	appreport "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/report"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/interface/http/dto"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/response"
)

// ReportHandler 统计报表HTTP处理器
// 全部接口只读，查询走sales_history宽表，不影响交易链路
type ReportHandler struct {
	reportUseCase *appreport.ReportUseCase
}

// NewReportHandler 创建报表处理器
func NewReportHandler(reportUseCase *appreport.ReportUseCase) *ReportHandler {
	return &ReportHandler{reportUseCase: reportUseCase}
}

// DailyRevenue 按日营收
// @Summary      按日营收统计
// @Tags         报表模块
// @Produce      json
// @Security     BearerAuth
// @Param        from query string false "开始日期 YYYY-MM-DD（默认30天前）"
// @Param        to query string false "结束日期 YYYY-MM-DD（默认今天）"
// @Success      200 {object} response.Response{data=[]report.DailyRevenue}
// @Router       /reports/daily-revenue [get]
func (h *ReportHandler) DailyRevenue(c *gin.Context) {
	var req dto.DailyRevenueRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	result, err := h.reportUseCase.DailyRevenue(c.Request.Context(), appreport.DailyRevenueRequest{
		From: req.From,
		To:   req.To,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// TopProducts 畅销商品
// @Summary      畅销商品排行
// @Tags         报表模块
// @Produce      json
// @Security     BearerAuth
// @Param        year query int false "年份（与month同时指定，不传统计全部）"
// @Param        month query int false "月份1-12"
// @Param        limit query int false "返回数量（默认10）"
// @Success      200 {object} response.Response{data=[]report.ProductSales}
// @Router       /reports/top-products [get]
func (h *ReportHandler) TopProducts(c *gin.Context) {
	var req dto.TopProductsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	result, err := h.reportUseCase.TopSellingProducts(c.Request.Context(), req.Year, req.Month, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// HighValueCustomers 高价值顾客
// @Summary      高价值顾客排行
// @Tags         报表模块
// @Produce      json
// @Security     BearerAuth
// @Param        window_days query int false "统计窗口（天），不传则不限"
// @Param        min_spent query int false "累计消费阈值（分）"
// @Param        limit query int false "返回数量（默认20）"
// @Success      200 {object} response.Response{data=[]report.CustomerSpending}
// @Router       /reports/high-value-customers [get]
func (h *ReportHandler) HighValueCustomers(c *gin.Context) {
	var req dto.HighValueCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	result, err := h.reportUseCase.HighValueCustomers(c.Request.Context(), req.WindowDays, req.MinSpent, req.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

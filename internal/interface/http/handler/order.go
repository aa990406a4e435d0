package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	apporder "github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/application/order"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/inventory"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/interface/http/dto"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/interface/http/middleware"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/response"
)

// OrderHandler 订单HTTP处理器
type OrderHandler struct {
	placeOrderUseCase *apporder.PlaceOrderUseCase
	getOrderUseCase   *apporder.GetOrderUseCase
	listOrdersUseCase *apporder.ListOrdersUseCase
}

// NewOrderHandler 创建订单处理器
func NewOrderHandler(
	placeOrderUseCase *apporder.PlaceOrderUseCase,
	getOrderUseCase *apporder.GetOrderUseCase,
	listOrdersUseCase *apporder.ListOrdersUseCase,
) *OrderHandler {
	return &OrderHandler{
		placeOrderUseCase: placeOrderUseCase,
		getOrderUseCase:   getOrderUseCase,
		listOrdersUseCase: listOrdersUseCase,
	}
}

// PlaceOrder 下单
// @Summary      下单
// @Description  行锁保护下扣减库存并在同一事务内记录订单与销售历史
// @Tags         订单模块
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.PlaceOrderRequest true "订单信息"
// @Success      200 {object} response.Response{data=dto.PlaceOrderResponse} "下单成功"
// @Failure      200 {object} response.Response "库存不足/锁冲突/等锁超时"
// @Router       /orders [post]
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	var req dto.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	customerID := middleware.MustGetCustomerID(c)

	items := make([]apporder.PlaceOrderItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = apporder.PlaceOrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		}
	}

	result, err := h.placeOrderUseCase.Execute(c.Request.Context(), apporder.PlaceOrderRequest{
		CustomerID: customerID,
		Items:      items,
		LockPolicy: parseLockPolicy(req.LockPolicy),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, &dto.PlaceOrderResponse{
		OrderID:   result.OrderID,
		OrderNo:   result.OrderNo,
		Total:     result.Total,
		TotalYuan: result.TotalYuan,
		OrderDate: result.OrderDate,
	})
}

// GetOrder 订单详情
// @Summary      订单详情
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "订单ID"
// @Success      200 {object} response.Response{data=dto.OrderDetailResponse}
// @Failure      200 {object} response.Response "订单不存在/无权限"
// @Router       /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		response.ErrorWithCode(c, 40900, "订单ID不合法")
		return
	}

	customerID := middleware.MustGetCustomerID(c)

	result, err := h.getOrderUseCase.Execute(c.Request.Context(), customerID, uint(orderID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, toOrderDetailResponse(result))
}

// ListOrders 订单列表
// @Summary      我的订单列表
// @Tags         订单模块
// @Produce      json
// @Security     BearerAuth
// @Param        page query int false "页码"
// @Param        page_size query int false "每页数量"
// @Success      200 {object} response.Response{data=response.PageData}
// @Router       /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	var req dto.ListOrdersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithCode(c, 40901, "参数错误: "+err.Error())
		return
	}

	customerID := middleware.MustGetCustomerID(c)

	result, err := h.listOrdersUseCase.Execute(c.Request.Context(), apporder.ListOrdersRequest{
		CustomerID: customerID,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	list := make([]dto.OrderDetailResponse, len(result.List))
	for i, o := range result.List {
		list[i] = *toOrderDetailResponse(&o)
	}
	response.SuccessWithPage(c, list, result.Total, result.Page, result.PageSize)
}

// parseLockPolicy 锁策略参数转换，未指定时默认阻塞等待
func parseLockPolicy(s string) inventory.LockPolicy {
	switch s {
	case "nowait":
		return inventory.LockPolicyNoWait
	case "skip_locked":
		return inventory.LockPolicySkipLocked
	default:
		return inventory.LockPolicyBlock
	}
}

func toOrderDetailResponse(o *apporder.OrderDetail) *dto.OrderDetailResponse {
	items := make([]dto.OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = dto.OrderItemResponse{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}
	return &dto.OrderDetailResponse{
		OrderID:   o.OrderID,
		OrderNo:   o.OrderNo,
		Total:     o.Total,
		TotalYuan: o.TotalYuan,
		OrderDate: o.OrderDate,
		Items:     items,
	}
}

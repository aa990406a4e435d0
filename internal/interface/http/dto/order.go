package dto

// PlaceOrderRequest HTTP下单请求
// lock_policy取值：block（默认，阻塞等锁）、nowait（快速失败）、skip_locked
type PlaceOrderRequest struct {
	Items      []PlaceOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	LockPolicy string                  `json:"lock_policy" binding:"omitempty,oneof=block nowait skip_locked" example:"block"`
}

// PlaceOrderItemRequest 下单明细项
type PlaceOrderItemRequest struct {
	ProductID uint `json:"product_id" binding:"required" example:"1"`
	Quantity  int  `json:"quantity" binding:"required,min=1,max=999" example:"2"`
}

// PlaceOrderResponse HTTP下单响应
type PlaceOrderResponse struct {
	OrderID   uint   `json:"order_id" example:"1"`
	OrderNo   string `json:"order_no" example:"ORD1699248000123456"`
	Total     int64  `json:"total" example:"15800"`
	TotalYuan string `json:"total_yuan" example:"158.00"`
	OrderDate string `json:"order_date" example:"2026-08-31 10:30:00"`
}

// OrderItemResponse 订单明细响应项
type OrderItemResponse struct {
	ProductID uint  `json:"product_id" example:"1"`
	Quantity  int   `json:"quantity" example:"2"`
	Price     int64 `json:"price" example:"7900"` // 成交单价（分）
}

// OrderDetailResponse HTTP订单详情响应
type OrderDetailResponse struct {
	OrderID   uint                `json:"order_id" example:"1"`
	OrderNo   string              `json:"order_no" example:"ORD1699248000123456"`
	Total     int64               `json:"total" example:"15800"`
	TotalYuan string              `json:"total_yuan" example:"158.00"`
	OrderDate string              `json:"order_date" example:"2026-08-31 10:30:00"`
	Items     []OrderItemResponse `json:"items"`
}

// ListOrdersRequest HTTP订单列表请求
type ListOrdersRequest struct {
	Page     int `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

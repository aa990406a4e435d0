package order

import (
	"context"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/order"
	apperrors "github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/errors"
)

// GetOrderUseCase 订单详情查询用例
type GetOrderUseCase struct {
	orderRepo order.Repository
}

// NewGetOrderUseCase 创建订单详情用例
func NewGetOrderUseCase(orderRepo order.Repository) *GetOrderUseCase {
	return &GetOrderUseCase{orderRepo: orderRepo}
}

// OrderItemDetail 明细项DTO
type OrderItemDetail struct {
	ProductID uint  `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price"` // 成交单价（分）
}

// OrderDetail 订单详情DTO
type OrderDetail struct {
	OrderID   uint              `json:"order_id"`
	OrderNo   string            `json:"order_no"`
	Total     int64             `json:"total"`
	TotalYuan string            `json:"total_yuan"`
	OrderDate string            `json:"order_date"`
	Items     []OrderItemDetail `json:"items"`
}

// Execute 查询订单详情
// 只有订单归属的顾客本人可以查看
func (uc *GetOrderUseCase) Execute(ctx context.Context, customerID, orderID uint) (*OrderDetail, error) {
	o, err := uc.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !o.IsOwnedBy(customerID) {
		return nil, apperrors.ErrForbidden
	}

	return toOrderDetail(o), nil
}

// ListOrdersUseCase 订单列表查询用例
type ListOrdersUseCase struct {
	orderRepo order.Repository
}

// NewListOrdersUseCase 创建订单列表用例
func NewListOrdersUseCase(orderRepo order.Repository) *ListOrdersUseCase {
	return &ListOrdersUseCase{orderRepo: orderRepo}
}

// ListOrdersRequest 列表查询请求
type ListOrdersRequest struct {
	CustomerID uint
	Page       int
	PageSize   int
}

// ListOrdersResponse 列表查询响应
type ListOrdersResponse struct {
	List       []OrderDetail `json:"list"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// Execute 查询顾客的订单列表
func (uc *ListOrdersUseCase) Execute(ctx context.Context, req ListOrdersRequest) (*ListOrdersResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}
	if req.PageSize > 100 {
		req.PageSize = 100
	}

	orders, total, err := uc.orderRepo.ListByCustomerID(ctx, req.CustomerID, req.Page, req.PageSize)
	if err != nil {
		return nil, err
	}

	list := make([]OrderDetail, len(orders))
	for i, o := range orders {
		list[i] = *toOrderDetail(o)
	}

	totalPages := int(total) / req.PageSize
	if int(total)%req.PageSize != 0 {
		totalPages++
	}

	return &ListOrdersResponse{
		List:       list,
		Total:      total,
		Page:       req.Page,
		PageSize:   req.PageSize,
		TotalPages: totalPages,
	}, nil
}

// toOrderDetail 领域实体 → DTO
func toOrderDetail(o *order.Order) *OrderDetail {
	items := make([]OrderItemDetail, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemDetail{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		}
	}

	return &OrderDetail{
		OrderID:   o.ID,
		OrderNo:   o.OrderNo,
		Total:     o.Total,
		TotalYuan: formatPrice(o.Total),
		OrderDate: o.OrderDate.Format("2006-01-02 15:04:05"),
		Items:     items,
	}
}

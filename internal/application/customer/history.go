package customer

import (
	"context"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/history"
)

// PurchaseHistoryUseCase 购买历史查询用例
// 读sales_history宽表：每条记录自带顾客名/商品名/成交价快照，无需联表
type PurchaseHistoryUseCase struct {
	historyRepo history.Repository
}

// NewPurchaseHistoryUseCase 创建购买历史用例
func NewPurchaseHistoryUseCase(historyRepo history.Repository) *PurchaseHistoryUseCase {
	return &PurchaseHistoryUseCase{historyRepo: historyRepo}
}

// PurchaseRecord 购买记录DTO
type PurchaseRecord struct {
	OrderID      uint   `json:"order_id"`
	OrderDate    string `json:"order_date"`
	ProductID    uint   `json:"product_id"`
	ProductName  string `json:"product_name"`
	Quantity     int    `json:"quantity"`
	PriceCharged int64  `json:"price_charged"`
	TotalCost    int64  `json:"total_cost"`
}

// PurchaseHistoryResponse 购买历史响应
type PurchaseHistoryResponse struct {
	List     []PurchaseRecord `json:"list"`
	Total    int64            `json:"total"`
	Page     int              `json:"page"`
	PageSize int              `json:"page_size"`
}

// Execute 查询顾客的购买历史（按下单时间降序）
func (uc *PurchaseHistoryUseCase) Execute(ctx context.Context, customerID uint, page, pageSize int) (*PurchaseHistoryResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	records, total, err := uc.historyRepo.ListByCustomerID(ctx, customerID, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]PurchaseRecord, len(records))
	for i, r := range records {
		list[i] = PurchaseRecord{
			OrderID:      r.OrderID,
			OrderDate:    r.OrderDate.Format("2006-01-02 15:04:05"),
			ProductID:    r.ProductID,
			ProductName:  r.ProductName,
			Quantity:     r.Quantity,
			PriceCharged: r.PriceCharged,
			TotalCost:    r.TotalCost,
		}
	}

	return &PurchaseHistoryResponse{
		List:     list,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

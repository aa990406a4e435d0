package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/history"
	apperrors "github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/errors"
)

// historyRepository 销售历史仓储实现（MySQL）
// sales_history是只追加的宽表：只有Create和查询，没有Update/Delete
type historyRepository struct {
	db *gorm.DB
}

// NewHistoryRepository 创建销售历史仓储
func NewHistoryRepository(db *gorm.DB) history.Repository {
	return &historyRepository{db: db}
}

// Record 追加一条销售历史记录
// 强约束：必须在订单事务内调用。ctx不携带事务时直接拒绝，
// 防止历史记录脱离订单单独提交（订单回滚后留下孤儿历史）。
func (r *historyRepository) Record(ctx context.Context, record *history.SalesHistory) error {
	tx, ok := ctx.Value("tx").(*gorm.DB)
	if !ok {
		return history.ErrOutsideTransaction
	}

	model := &SalesHistoryModel{
		OrderID:      record.OrderID,
		OrderDate:    record.OrderDate,
		CustomerID:   record.CustomerID,
		CustomerName: record.CustomerName,
		ProductID:    record.ProductID,
		ProductName:  record.ProductName,
		Quantity:     record.Quantity,
		PriceCharged: record.PriceCharged,
		TotalCost:    record.TotalCost,
	}

	if err := tx.Create(model).Error; err != nil {
		if isForeignKeyError(err) {
			return apperrors.ErrConstraintViolation
		}
		return apperrors.WrapStorage(err, "写入销售历史失败")
	}

	record.ID = model.ID
	record.CreatedAt = model.CreatedAt
	return nil
}

// ListByCustomerID 查询顾客的购买历史（按order_date降序）
func (r *historyRepository) ListByCustomerID(ctx context.Context, customerID uint, page, pageSize int) ([]*history.SalesHistory, int64, error) {
	var models []SalesHistoryModel
	var total int64

	query := r.db.WithContext(ctx).Model(&SalesHistoryModel{}).
		Where("customer_id = ?", customerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapStorage(err, "查询购买历史总数失败")
	}

	offset := (page - 1) * pageSize
	err := query.Order("order_date DESC, id DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.WrapStorage(err, "查询购买历史失败")
	}

	records := make([]*history.SalesHistory, len(models))
	for i, m := range models {
		records[i] = &history.SalesHistory{
			ID:           m.ID,
			OrderID:      m.OrderID,
			OrderDate:    m.OrderDate,
			CustomerID:   m.CustomerID,
			CustomerName: m.CustomerName,
			ProductID:    m.ProductID,
			ProductName:  m.ProductName,
			Quantity:     m.Quantity,
			PriceCharged: m.PriceCharged,
			TotalCost:    m.TotalCost,
			CreatedAt:    m.CreatedAt,
		}
	}

	return records, total, nil
}

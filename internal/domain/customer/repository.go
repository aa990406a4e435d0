package customer

import (
	"context"
)

// Repository 顾客仓储接口
// 接口定义在domain层，具体实现在infrastructure/persistence/mysql层
type Repository interface {
	// Create 创建顾客（邮箱已存在返回errors.ErrEmailDuplicate）
	Create(ctx context.Context, customer *Customer) error

	// FindByID 根据ID查找顾客（不存在返回errors.ErrCustomerNotFound）
	FindByID(ctx context.Context, id uint) (*Customer, error)

	// FindByEmail 根据邮箱查找顾客
	FindByEmail(ctx context.Context, email string) (*Customer, error)

	// Update 更新顾客信息
	Update(ctx context.Context, customer *Customer) error
}

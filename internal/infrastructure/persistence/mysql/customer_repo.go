package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/customer"
	apperrors "github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/errors"
)

// customerRepository 顾客仓储实现（MySQL）
type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建顾客仓储
// 返回domain层的接口类型，不是具体类型（依赖倒置）
func NewCustomerRepository(db *gorm.DB) customer.Repository {
	return &customerRepository{db: db}
}

// Create 创建顾客
// 邮箱唯一性由数据库UNIQUE索引保证（而非应用层SELECT再INSERT），
// 捕获Duplicate Entry错误转换为ErrEmailDuplicate
func (r *customerRepository) Create(ctx context.Context, c *customer.Customer) error {
	model := &CustomerModel{
		Email:    c.Email,
		Password: c.Password,
		Name:     c.Name,
	}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return apperrors.ErrEmailDuplicate
		}
		return apperrors.WrapStorage(err, "创建顾客失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt

	return nil
}

// FindByID 根据ID查找顾客
func (r *customerRepository) FindByID(ctx context.Context, id uint) (*customer.Customer, error) {
	var model CustomerModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, apperrors.WrapStorage(err, "查询顾客失败")
	}

	return toCustomerEntity(&model), nil
}

// FindByEmail 根据邮箱查找顾客
func (r *customerRepository) FindByEmail(ctx context.Context, email string) (*customer.Customer, error) {
	var model CustomerModel
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCustomerNotFound
		}
		return nil, apperrors.WrapStorage(err, "查询顾客失败")
	}

	return toCustomerEntity(&model), nil
}

// Update 更新顾客信息
func (r *customerRepository) Update(ctx context.Context, c *customer.Customer) error {
	model := &CustomerModel{
		ID:       c.ID,
		Email:    c.Email,
		Password: c.Password,
		Name:     c.Name,
	}

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return apperrors.WrapStorage(err, "更新顾客失败")
	}

	c.UpdatedAt = model.UpdatedAt
	return nil
}

// toCustomerEntity GORM模型 → 领域实体
func toCustomerEntity(model *CustomerModel) *customer.Customer {
	return &customer.Customer{
		ID:        model.ID,
		Email:     model.Email,
		Password:  model.Password,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}

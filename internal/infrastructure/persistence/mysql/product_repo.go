package mysql

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/catalog"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/inventory"
	apperrors "github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/errors"
)

// productRepository 商品目录仓储实现（MySQL）
// 设计说明：
// 1. 实现domain/catalog/repository.go定义的接口
// 2. 同一个结构体也实现inventory.Locker（行锁与扣减和目录共用products表）
// 3. 处理数据库特定错误，转换为业务错误
type productRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建商品仓储
func NewProductRepository(db *gorm.DB) catalog.Repository {
	return &productRepository{db: db}
}

// NewInventoryLocker 创建库存行锁实现
// 与商品仓储共享实现：锁的就是products表的行
func NewInventoryLocker(db *gorm.DB) inventory.Locker {
	return &productRepository{db: db}
}

// CreateProduct 创建商品
func (r *productRepository) CreateProduct(ctx context.Context, p *catalog.Product) error {
	model := &ProductModel{
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		AuthorID:    p.AuthorID,
	}

	// Omit关联字段，只写外键列，关联对象由各自的仓储管理
	if err := r.db.WithContext(ctx).Omit("Category", "Author").Create(model).Error; err != nil {
		if isForeignKeyError(err) {
			return apperrors.ErrConstraintViolation
		}
		return apperrors.WrapStorage(err, "创建商品失败")
	}

	p.ID = model.ID
	p.CreatedAt = model.CreatedAt
	p.UpdatedAt = model.UpdatedAt

	return nil
}

// FindProductByID 根据ID查找商品
func (r *productRepository) FindProductByID(ctx context.Context, id uint) (*catalog.Product, error) {
	var model ProductModel
	err := getDB(ctx, r.db).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrProductNotFound
		}
		return nil, apperrors.WrapStorage(err, "查询商品失败")
	}

	return toProductEntity(&model), nil
}

// UpdateProduct 更新商品信息
func (r *productRepository) UpdateProduct(ctx context.Context, p *catalog.Product) error {
	model := &ProductModel{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		AuthorID:    p.AuthorID,
	}

	if err := getDB(ctx, r.db).Omit("Category", "Author").Save(model).Error; err != nil {
		if isForeignKeyError(err) {
			return apperrors.ErrConstraintViolation
		}
		return apperrors.WrapStorage(err, "更新商品失败")
	}

	p.UpdatedAt = model.UpdatedAt
	return nil
}

// SearchProducts 按关键词搜索商品
// 匹配名称或描述，按product_id升序（稳定顺序，便于分页）
func (r *productRepository) SearchProducts(ctx context.Context, params catalog.SearchParams) ([]*catalog.Product, int64, error) {
	var models []ProductModel
	var total int64

	query := r.db.WithContext(ctx).Model(&ProductModel{})

	if params.Keyword != "" {
		keyword := "%" + params.Keyword + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", keyword, keyword)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.WrapStorage(err, "查询商品总数失败")
	}

	offset := (params.Page - 1) * params.PageSize
	err := query.Order("id ASC").
		Limit(params.PageSize).
		Offset(offset).
		Find(&models).Error
	if err != nil {
		return nil, 0, apperrors.WrapStorage(err, "搜索商品失败")
	}

	products := make([]*catalog.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}

	return products, total, nil
}

// ListLowStock 查询库存低于阈值的商品
// SKIP LOCKED：正被下单事务锁定的行直接跳过，本次扫描不等待，
// 下一轮扫描自然会覆盖到它们
func (r *productRepository) ListLowStock(ctx context.Context, threshold int, limit int) ([]*catalog.Product, error) {
	var models []ProductModel

	err := getDB(ctx, r.db).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("stock < ?", threshold).
		Order("id ASC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, apperrors.WrapStorage(err, "扫描低库存商品失败")
	}

	products := make([]*catalog.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products, nil
}

// LockProduct 按策略锁定商品行（inventory.Locker实现）
// 必须在事务内调用，行锁随事务提交/回滚释放
func (r *productRepository) LockProduct(ctx context.Context, productID uint, policy inventory.LockPolicy) (*catalog.Product, error) {
	var model ProductModel

	locking := clause.Locking{Strength: "UPDATE"}
	switch policy {
	case inventory.LockPolicyNoWait:
		locking.Options = "NOWAIT"
	case inventory.LockPolicySkipLocked:
		locking.Options = "SKIP LOCKED"
	}

	db := getDB(ctx, r.db)
	err := db.Clauses(locking).First(&model, productID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// SKIP LOCKED下行被锁定表现为"查不到"，需要区分真不存在和被锁定
			if policy == inventory.LockPolicySkipLocked {
				var exists int64
				if countErr := db.Model(&ProductModel{}).Where("id = ?", productID).
					Count(&exists).Error; countErr == nil && exists > 0 {
					return nil, inventory.ErrLockConflict
				}
			}
			return nil, catalog.ErrProductNotFound
		}
		if isLockNoWaitError(err) {
			return nil, inventory.ErrLockConflict
		}
		if isLockWaitTimeoutError(err) {
			return nil, inventory.ErrLockTimeout
		}
		return nil, apperrors.WrapStorage(err, "锁定商品失败")
	}

	return toProductEntity(&model), nil
}

// DeductStock 扣减已锁定商品的库存（inventory.Locker实现）
// UPDATE带stock - quantity >= 0守卫条件，并发下绝不把库存扣成负数。
// 正常流程中调用方已持有行锁并校验过库存，守卫是最后一道防线。
func (r *productRepository) DeductStock(ctx context.Context, productID uint, quantity int) error {
	db := getDB(ctx, r.db)
	result := db.Model(&ProductModel{}).
		Where("id = ?", productID).
		Where("stock - ? >= 0", quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))

	if result.Error != nil {
		return apperrors.WrapStorage(result.Error, "扣减库存失败")
	}

	if result.RowsAffected == 0 {
		// 可能是商品不存在，或库存不足，再查一次确定原因
		var model ProductModel
		if err := db.First(&model, productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return catalog.ErrProductNotFound
			}
			return apperrors.WrapStorage(err, "查询商品失败")
		}
		return inventory.ErrOutOfStock
	}

	return nil
}

// CreateCategory 创建分类
func (r *productRepository) CreateCategory(ctx context.Context, c *catalog.Category) error {
	model := &CategoryModel{Name: c.Name}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return catalog.ErrCategoryDuplicate
		}
		return apperrors.WrapStorage(err, "创建分类失败")
	}

	c.ID = model.ID
	c.CreatedAt = model.CreatedAt
	c.UpdatedAt = model.UpdatedAt
	return nil
}

// FindCategoryByID 根据ID查找分类
func (r *productRepository) FindCategoryByID(ctx context.Context, id uint) (*catalog.Category, error) {
	var model CategoryModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrCategoryNotFound
		}
		return nil, apperrors.WrapStorage(err, "查询分类失败")
	}

	return &catalog.Category{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// ListCategories 查询全部分类
func (r *productRepository) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	var models []CategoryModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&models).Error; err != nil {
		return nil, apperrors.WrapStorage(err, "查询分类列表失败")
	}

	categories := make([]*catalog.Category, len(models))
	for i, m := range models {
		categories[i] = &catalog.Category{
			ID:        m.ID,
			Name:      m.Name,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		}
	}
	return categories, nil
}

// CreateAuthor 创建作者
func (r *productRepository) CreateAuthor(ctx context.Context, a *catalog.Author) error {
	model := &AuthorModel{Name: a.Name}

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return apperrors.WrapStorage(err, "创建作者失败")
	}

	a.ID = model.ID
	a.CreatedAt = model.CreatedAt
	a.UpdatedAt = model.UpdatedAt
	return nil
}

// FindAuthorByID 根据ID查找作者
func (r *productRepository) FindAuthorByID(ctx context.Context, id uint) (*catalog.Author, error) {
	var model AuthorModel
	err := r.db.WithContext(ctx).First(&model, id).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrAuthorNotFound
		}
		return nil, apperrors.WrapStorage(err, "查询作者失败")
	}

	return &catalog.Author{
		ID:        model.ID,
		Name:      model.Name,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}, nil
}

// toProductEntity GORM模型 → 领域实体
func toProductEntity(model *ProductModel) *catalog.Product {
	return &catalog.Product{
		ID:          model.ID,
		Name:        model.Name,
		Description: model.Description,
		Price:       model.Price,
		Stock:       model.Stock,
		CategoryID:  model.CategoryID,
		AuthorID:    model.AuthorID,
		CreatedAt:   model.CreatedAt,
		UpdatedAt:   model.UpdatedAt,
	}
}

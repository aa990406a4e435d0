package mysql

import (
	"context"

	"gorm.io/gorm"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/catalog"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/recommend"
	apperrors "github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/errors"
)

// recommendRepository 推荐查询实现（MySQL）
// 只读查询：购买商品集来自sales_history，候选商品来自products
type recommendRepository struct {
	db *gorm.DB
}

// NewRecommendRepository 创建推荐查询仓储
func NewRecommendRepository(db *gorm.DB) recommend.Repository {
	return &recommendRepository{db: db}
}

// PurchasedProductIDs 顾客买过的商品ID（去重，升序）
func (r *recommendRepository) PurchasedProductIDs(ctx context.Context, customerID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&SalesHistoryModel{}).
		Where("customer_id = ?", customerID).
		Distinct().
		Order("product_id ASC").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, apperrors.WrapStorage(err, "查询购买记录失败")
	}
	return ids, nil
}

// CategoriesOfProducts 商品集合覆盖的分类ID（去重）
func (r *recommendRepository) CategoriesOfProducts(ctx context.Context, productIDs []uint) ([]uint, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&ProductModel{}).
		Where("id IN ?", productIDs).
		Distinct().
		Pluck("category_id", &ids).Error
	if err != nil {
		return nil, apperrors.WrapStorage(err, "查询商品分类失败")
	}
	return ids, nil
}

// AuthorsOfProducts 商品集合覆盖的作者ID（去重）
// author_id为NULL的商品不计入
func (r *recommendRepository) AuthorsOfProducts(ctx context.Context, productIDs []uint) ([]uint, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).Model(&ProductModel{}).
		Where("id IN ?", productIDs).
		Where("author_id IS NOT NULL").
		Distinct().
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, apperrors.WrapStorage(err, "查询商品作者失败")
	}
	return ids, nil
}

// ProductsByCategoryAndAuthor 同时命中分类集合和作者集合的商品
// author_id IN (?)天然排除NULL作者的商品（交集语义）；
// 排除已购商品，按product_id升序保证结果确定性
func (r *recommendRepository) ProductsByCategoryAndAuthor(ctx context.Context, categoryIDs, authorIDs, excludeIDs []uint, limit int) ([]*catalog.Product, error) {
	if len(categoryIDs) == 0 || len(authorIDs) == 0 {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	query := r.db.WithContext(ctx).Model(&ProductModel{}).
		Where("category_id IN ?", categoryIDs).
		Where("author_id IN ?", authorIDs)

	if len(excludeIDs) > 0 {
		query = query.Where("id NOT IN ?", excludeIDs)
	}

	var models []ProductModel
	err := query.Order("id ASC").Limit(limit).Find(&models).Error
	if err != nil {
		return nil, apperrors.WrapStorage(err, "查询推荐商品失败")
	}

	products := make([]*catalog.Product, len(models))
	for i := range models {
		products[i] = toProductEntity(&models[i])
	}
	return products, nil
}

// Package recommend 推荐引擎（只读）
//
// 推荐口径：
// 1. 取顾客买过的所有商品的分类集合与作者集合（来自sales_history）
// 2. 候选商品必须同时命中分类集合和作者集合（交集语义）
// 3. 无作者的商品永远不命中作者集合，自然被排除
// 4. 排除已购商品，按product_id升序返回
// 5. 无购买历史的顾客返回空列表，不做兜底推荐
package recommend

import (
	"context"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/catalog"
)

// Repository 推荐查询仓储接口
type Repository interface {
	// PurchasedProductIDs 顾客买过的商品ID（去重，升序）
	PurchasedProductIDs(ctx context.Context, customerID uint) ([]uint, error)

	// CategoriesOfProducts 商品集合覆盖的分类ID（去重）
	CategoriesOfProducts(ctx context.Context, productIDs []uint) ([]uint, error)

	// AuthorsOfProducts 商品集合覆盖的作者ID（去重，无作者商品不计入）
	AuthorsOfProducts(ctx context.Context, productIDs []uint) ([]uint, error)

	// ProductsByCategoryAndAuthor 同时命中分类集合和作者集合的商品
	// 排除excludeIDs中的商品，按product_id升序，最多limit条
	ProductsByCategoryAndAuthor(ctx context.Context, categoryIDs, authorIDs, excludeIDs []uint, limit int) ([]*catalog.Product, error)
}

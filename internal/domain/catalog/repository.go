package catalog

import (
	"context"
)

// Repository 商品目录仓储接口（依赖倒置原则）
// 设计说明：
// 1. 由domain层定义接口，infrastructure层实现
// 2. 便于Mock测试，不依赖具体数据库实现
type Repository interface {
	// CreateProduct 创建商品
	CreateProduct(ctx context.Context, product *Product) error

	// FindProductByID 根据ID查找商品
	FindProductByID(ctx context.Context, id uint) (*Product, error)

	// UpdateProduct 更新商品信息
	UpdateProduct(ctx context.Context, product *Product) error

	// SearchProducts 按关键词搜索商品（匹配名称或描述）
	// 结果按product_id升序，支持分页
	SearchProducts(ctx context.Context, params SearchParams) ([]*Product, int64, error)

	// ListLowStock 查询库存低于阈值的商品
	// 使用SKIP LOCKED跳过正被下单事务锁定的行，补货扫描不与下单互等
	ListLowStock(ctx context.Context, threshold int, limit int) ([]*Product, error)

	// CreateCategory 创建分类（分类名重复返回ErrCategoryDuplicate）
	CreateCategory(ctx context.Context, category *Category) error

	// FindCategoryByID 根据ID查找分类
	FindCategoryByID(ctx context.Context, id uint) (*Category, error)

	// ListCategories 查询全部分类
	ListCategories(ctx context.Context) ([]*Category, error)

	// CreateAuthor 创建作者
	CreateAuthor(ctx context.Context, author *Author) error

	// FindAuthorByID 根据ID查找作者
	FindAuthorByID(ctx context.Context, id uint) (*Author, error)
}

// SearchParams 商品搜索参数
type SearchParams struct {
	Keyword  string // 搜索关键词（匹配名称、描述）
	Page     int    // 页码（从1开始）
	PageSize int    // 每页数量
}

package catalog

import (
	"context"
)

// Service 商品目录领域服务接口
// 封装跨实体的业务规则校验（分类/作者存在性检查）
type Service interface {
	// PublishProduct 发布商品（上架）
	// 业务规则：
	// - 价格必须在1-99999999分之间
	// - 库存必须>=0
	// - 分类必须存在；authorID非nil时作者必须存在
	PublishProduct(ctx context.Context, name, description string, price int64, stock int, categoryID uint, authorID *uint) (*Product, error)

	// GetProductByID 根据ID获取商品详情
	GetProductByID(ctx context.Context, id uint) (*Product, error)

	// SearchProducts 搜索商品
	SearchProducts(ctx context.Context, params SearchParams) ([]*Product, int64, error)

	// CreateCategory 创建分类
	CreateCategory(ctx context.Context, name string) (*Category, error)

	// ListCategories 查询全部分类
	ListCategories(ctx context.Context) ([]*Category, error)

	// CreateAuthor 创建作者
	CreateAuthor(ctx context.Context, name string) (*Author, error)
}

type service struct {
	repo Repository
}

// NewService 创建商品目录领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

// PublishProduct 发布商品
func (s *service) PublishProduct(ctx context.Context, name, description string, price int64, stock int, categoryID uint, authorID *uint) (*Product, error) {
	// 价格范围校验（1分-999999.99元）
	if price < 1 || price > 99999999 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	// 分类存在性校验
	if _, err := s.repo.FindCategoryByID(ctx, categoryID); err != nil {
		return nil, err
	}

	// 作者存在性校验（可选关联）
	if authorID != nil {
		if _, err := s.repo.FindAuthorByID(ctx, *authorID); err != nil {
			return nil, err
		}
	}

	product, err := NewProduct(name, description, price, stock, categoryID, authorID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.CreateProduct(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProductByID 根据ID获取商品
func (s *service) GetProductByID(ctx context.Context, id uint) (*Product, error) {
	return s.repo.FindProductByID(ctx, id)
}

// SearchProducts 搜索商品
func (s *service) SearchProducts(ctx context.Context, params SearchParams) ([]*Product, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 || params.PageSize > 100 {
		params.PageSize = 20
	}
	return s.repo.SearchProducts(ctx, params)
}

// CreateCategory 创建分类
// 分类名唯一性由数据库UNIQUE索引保证，Repository转换重复错误
func (s *service) CreateCategory(ctx context.Context, name string) (*Category, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	category := &Category{Name: name}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// ListCategories 查询全部分类
func (s *service) ListCategories(ctx context.Context) ([]*Category, error) {
	return s.repo.ListCategories(ctx)
}

// CreateAuthor 创建作者
func (s *service) CreateAuthor(ctx context.Context, name string) (*Author, error) {
	if name == "" {
		return nil, ErrInvalidName
	}

	author := &Author{Name: name}
	if err := s.repo.CreateAuthor(ctx, author); err != nil {
		return nil, err
	}
	return author, nil
}

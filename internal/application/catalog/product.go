package catalog

import (
	"context"
	"fmt"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/catalog"
)

// ProductUseCase 商品目录用例
// 薄封装：业务规则在catalog.Service，这里做DTO转换
type ProductUseCase struct {
	service catalog.Service
}

// NewProductUseCase 创建商品目录用例
func NewProductUseCase(service catalog.Service) *ProductUseCase {
	return &ProductUseCase{service: service}
}

// PublishProductRequest 发布商品请求
type PublishProductRequest struct {
	Name        string
	Description string
	Price       int64 // 单价（分）
	Stock       int
	CategoryID  uint
	AuthorID    *uint // 可选，非书籍类商品传nil
}

// ProductDetail 商品详情DTO
type ProductDetail struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	PriceYuan   string `json:"price_yuan"`
	Stock       int    `json:"stock"`
	CategoryID  uint   `json:"category_id"`
	AuthorID    *uint  `json:"author_id,omitempty"`
}

// Publish 发布商品
func (uc *ProductUseCase) Publish(ctx context.Context, req PublishProductRequest) (*ProductDetail, error) {
	product, err := uc.service.PublishProduct(ctx, req.Name, req.Description,
		req.Price, req.Stock, req.CategoryID, req.AuthorID)
	if err != nil {
		return nil, err
	}
	return toProductDetail(product), nil
}

// Get 获取商品详情
func (uc *ProductUseCase) Get(ctx context.Context, id uint) (*ProductDetail, error) {
	product, err := uc.service.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductDetail(product), nil
}

// SearchRequest 商品搜索请求
type SearchRequest struct {
	Keyword  string
	Page     int
	PageSize int
}

// SearchResponse 商品搜索响应
type SearchResponse struct {
	List     []ProductDetail `json:"list"`
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
}

// Search 按关键词搜索商品，结果按商品ID升序
func (uc *ProductUseCase) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 || req.PageSize > 100 {
		req.PageSize = 20
	}

	products, total, err := uc.service.SearchProducts(ctx, catalog.SearchParams{
		Keyword:  req.Keyword,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	list := make([]ProductDetail, len(products))
	for i, p := range products {
		list[i] = *toProductDetail(p)
	}

	return &SearchResponse{
		List:     list,
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
	}, nil
}

// CreateCategory 创建商品分类
func (uc *ProductUseCase) CreateCategory(ctx context.Context, name string) (*catalog.Category, error) {
	return uc.service.CreateCategory(ctx, name)
}

// ListCategories 查询全部分类
func (uc *ProductUseCase) ListCategories(ctx context.Context) ([]*catalog.Category, error) {
	return uc.service.ListCategories(ctx)
}

// CreateAuthor 创建作者
func (uc *ProductUseCase) CreateAuthor(ctx context.Context, name string) (*catalog.Author, error) {
	return uc.service.CreateAuthor(ctx, name)
}

func toProductDetail(p *catalog.Product) *ProductDetail {
	return &ProductDetail{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		PriceYuan:   fmt.Sprintf("%.2f", float64(p.Price)/100.0),
		Stock:       p.Stock,
		CategoryID:  p.CategoryID,
		AuthorID:    p.AuthorID,
	}
}

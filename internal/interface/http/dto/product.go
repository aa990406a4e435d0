package dto

import "fmt"

// PublishProductRequest HTTP商品发布请求
type PublishProductRequest struct {
	Name        string `json:"name" binding:"required,max=200" example:"Go程序设计语言"`
	Description string `json:"description" binding:"max=5000" example:"Go语言权威教程"`
	Price       int64  `json:"price" binding:"required,min=1,max=99999999" example:"7900"` // 价格（分）
	Stock       int    `json:"stock" binding:"min=0" example:"100"`
	CategoryID  uint   `json:"category_id" binding:"required" example:"1"`
	AuthorID    *uint  `json:"author_id" binding:"omitempty" example:"1"` // 可选，非书籍类商品不传
}

// ProductResponse HTTP商品响应
type ProductResponse struct {
	ID          uint   `json:"id" example:"1"`
	Name        string `json:"name" example:"Go程序设计语言"`
	Description string `json:"description" example:"Go语言权威教程"`
	Price       int64  `json:"price" example:"7900"`
	PriceYuan   string `json:"price_yuan" example:"79.00"`
	Stock       int    `json:"stock" example:"100"`
	CategoryID  uint   `json:"category_id" example:"1"`
	AuthorID    *uint  `json:"author_id,omitempty" example:"1"`
}

// SearchProductsRequest HTTP商品搜索请求
type SearchProductsRequest struct {
	Keyword  string `form:"keyword" binding:"omitempty,max=100" example:"Go"`
	Page     int    `form:"page" binding:"omitempty,min=1" example:"1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100" example:"20"`
}

// CreateCategoryRequest HTTP创建分类请求
type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"技术书籍"`
}

// CategoryResponse HTTP分类响应
type CategoryResponse struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"技术书籍"`
}

// CreateAuthorRequest HTTP创建作者请求
type CreateAuthorRequest struct {
	Name string `json:"name" binding:"required,max=100" example:"Alan Donovan"`
}

// AuthorResponse HTTP作者响应
type AuthorResponse struct {
	ID   uint   `json:"id" example:"1"`
	Name string `json:"name" example:"Alan Donovan"`
}

// FormatPriceYuan 格式化价格（分→元），如7900分 → "79.00"
func FormatPriceYuan(priceFen int64) string {
	return fmt.Sprintf("%.2f", float64(priceFen)/100.0)
}

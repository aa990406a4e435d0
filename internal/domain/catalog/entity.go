package catalog

import (
	"time"
)

// Category 商品分类实体
// 分类名全局唯一（数据库UNIQUE索引保证）
type Category struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Author 作者实体
// 书籍类商品关联作者，非书籍类商品没有作者
type Author struct {
	ID        uint
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Product 商品实体（聚合根）
// DDD设计说明：
// 1. 价格使用int64存储"分"为单位（避免浮点数精度问题）
// 2. AuthorID为指针：nil表示无作者商品（如文具），推荐引擎按作者匹配时不命中
// 3. 只保存CategoryID/AuthorID，不跨聚合引用实体对象
type Product struct {
	ID          uint
	Name        string
	Description string
	Price       int64 // 单价（单位：分，1元=100分）
	Stock       int   // 库存数量
	CategoryID  uint
	AuthorID    *uint // 可选，非书籍类商品为nil
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewProduct 创建新商品（工厂方法）
// 业务规则：价格必须>0，初始库存不能为负
func NewProduct(name, description string, price int64, stock int, categoryID uint, authorID *uint) (*Product, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}
	if stock < 0 {
		return nil, ErrInvalidStock
	}

	now := time.Now()
	return &Product{
		Name:        name,
		Description: description,
		Price:       price,
		Stock:       stock,
		CategoryID:  categoryID,
		AuthorID:    authorID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// UpdatePrice 更新价格（领域行为）
func (p *Product) UpdatePrice(newPrice int64) error {
	if newPrice <= 0 {
		return ErrInvalidPrice
	}
	p.Price = newPrice
	p.UpdatedAt = time.Now()
	return nil
}

// DecrStock 扣减库存（用于下单预占）
// 业务规则：扣减后库存不能为负数
func (p *Product) DecrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if p.Stock < quantity {
		return ErrInsufficientStock
	}
	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	return nil
}

// IncrStock 增加库存（补货）
func (p *Product) IncrStock(quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	p.Stock += quantity
	p.UpdatedAt = time.Now()
	return nil
}

// HasAuthor 是否关联作者
func (p *Product) HasAuthor() bool {
	return p.AuthorID != nil
}

package customer

import (
	"time"
)

// Customer 顾客实体（聚合根）
// DDD设计说明：
// 1. 密码已加密存储（bcrypt），不暴露明文
// 2. 领域实体不依赖GORM tag（infrastructure层做映射）
type Customer struct {
	ID        uint
	Email     string
	Password  string // bcrypt哈希值
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewCustomer 创建新顾客（工厂方法）
// hashedPassword必须是bcrypt加密后的密码
func NewCustomer(email, hashedPassword, name string) *Customer {
	now := time.Now()
	return &Customer{
		Email:     email,
		Password:  hashedPassword,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// UpdateName 更新姓名（领域行为）
func (c *Customer) UpdateName(name string) {
	c.Name = name
	c.UpdatedAt = time.Now()
}

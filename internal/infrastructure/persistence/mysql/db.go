package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 使用GORM v2作为ORM框架
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
// 4. 自动迁移表结构（AutoMigrate）
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	dsn := cfg.Database.DSN()

	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info // 开发环境打印SQL
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	// 注意：生产环境应使用版本化的迁移脚本，不要依赖AutoMigrate
	if err := autoMigrate(db); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// autoMigrate 自动迁移表结构
// AutoMigrate只会创建表、添加字段，不会删除或修改现有字段
func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&CustomerModel{},
		&CategoryModel{},
		&AuthorModel{},
		&ProductModel{},
		&OrderModel{},
		&OrderItemModel{},
		&SalesHistoryModel{},
	)
}

// CustomerModel GORM顾客模型
// infrastructure层的数据模型（带GORM tag），domain实体不依赖GORM，
// Repository负责两者之间的转换
type CustomerModel struct {
	ID        uint           `gorm:"primaryKey"`
	Email     string         `gorm:"uniqueIndex;size:100;not null;comment:邮箱"`
	Password  string         `gorm:"size:255;not null;comment:密码（bcrypt加密）"`
	Name      string         `gorm:"size:50;not null;comment:姓名"`
	CreatedAt time.Time      `gorm:"comment:创建时间"`
	UpdatedAt time.Time      `gorm:"comment:更新时间"`
	DeletedAt gorm.DeletedAt `gorm:"index;comment:删除时间（软删除）"`
}

// TableName 指定表名
func (CustomerModel) TableName() string {
	return "customers"
}

// CategoryModel GORM分类模型
type CategoryModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"uniqueIndex;size:100;not null;comment:分类名"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (CategoryModel) TableName() string {
	return "categories"
}

// AuthorModel GORM作者模型
type AuthorModel struct {
	ID        uint      `gorm:"primaryKey"`
	Name      string    `gorm:"index;size:100;not null;comment:作者名"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
	UpdatedAt time.Time `gorm:"comment:更新时间"`
}

// TableName 指定表名
func (AuthorModel) TableName() string {
	return "authors"
}

// ProductModel GORM商品模型
// 设计说明：
// 1. 价格使用int64存储"分"为单位（避免浮点数精度问题）
// 2. Stock有CHECK约束兜底（stock >= 0），应用层扣减带守卫条件双保险
// 3. AuthorID可空：非书籍类商品没有作者
// 4. Category/Author关联字段让AutoMigrate生成外键约束
type ProductModel struct {
	ID          uint           `gorm:"primaryKey"`
	Name        string         `gorm:"index:idx_search;size:200;not null;comment:商品名"`
	Description string         `gorm:"type:text;comment:商品描述"`
	Price       int64          `gorm:"not null;comment:单价(分)"`
	Stock       int            `gorm:"not null;default:0;check:stock >= 0;comment:库存数量"`
	CategoryID  uint           `gorm:"index;not null;comment:分类ID"`
	AuthorID    *uint          `gorm:"index;comment:作者ID(可空)"`
	Category    CategoryModel  `gorm:"foreignKey:CategoryID"`
	Author      *AuthorModel   `gorm:"foreignKey:AuthorID"`
	CreatedAt   time.Time      `gorm:"index;comment:创建时间"`
	UpdatedAt   time.Time      `gorm:"comment:更新时间"`
	DeletedAt   gorm.DeletedAt `gorm:"index;comment:删除时间(软删除)"`
}

// TableName 指定表名
func (ProductModel) TableName() string {
	return "products"
}

// OrderModel GORM订单模型
// 与OrderItemModel是一对多关系，OrderNo有唯一索引（业务主键）
type OrderModel struct {
	ID         uint             `gorm:"primaryKey"`
	OrderNo    string           `gorm:"uniqueIndex;size:32;not null;comment:订单号"`
	CustomerID uint             `gorm:"index;not null;comment:顾客ID"`
	Customer   CustomerModel    `gorm:"foreignKey:CustomerID"`
	Total      int64            `gorm:"not null;comment:订单总金额(分)"`
	OrderDate  time.Time        `gorm:"index;not null;comment:下单时间"`
	Items      []OrderItemModel `gorm:"foreignKey:OrderID"`
	CreatedAt  time.Time        `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (OrderModel) TableName() string {
	return "orders"
}

// OrderItemModel GORM订单明细模型
// Price记录下单时的价格快照，ProductID外键保证明细只引用存在的商品
type OrderItemModel struct {
	ID        uint         `gorm:"primaryKey"`
	OrderID   uint         `gorm:"index;not null;comment:订单ID"`
	ProductID uint         `gorm:"index;not null;comment:商品ID"`
	Product   ProductModel `gorm:"foreignKey:ProductID"`
	Quantity  int          `gorm:"not null;comment:购买数量"`
	Price     int64        `gorm:"not null;comment:下单时单价(分)"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string {
	return "order_items"
}

// SalesHistoryModel GORM销售历史模型（只追加的分析宽表）
// 设计说明：
// 1. 顾客名/商品名/成交价在记录时刻快照，后续改名改价不回写
// 2. 没有UpdatedAt：记录一旦写入永不修改
// 3. customer_id/product_id/order_date都有索引，服务BI查询和推荐查询
type SalesHistoryModel struct {
	ID           uint      `gorm:"primaryKey"`
	OrderID      uint      `gorm:"index;not null;comment:订单ID"`
	OrderDate    time.Time `gorm:"index;not null;comment:下单时间"`
	CustomerID   uint      `gorm:"index;not null;comment:顾客ID"`
	CustomerName string    `gorm:"size:50;not null;comment:顾客名快照"`
	ProductID    uint      `gorm:"index;not null;comment:商品ID"`
	ProductName  string    `gorm:"size:200;not null;comment:商品名快照"`
	Quantity     int       `gorm:"not null;comment:购买数量"`
	PriceCharged int64     `gorm:"not null;comment:成交单价(分)"`
	TotalCost    int64     `gorm:"not null;comment:该行小计(分)"`
	CreatedAt    time.Time `gorm:"comment:记录时间"`
}

// TableName 指定表名
func (SalesHistoryModel) TableName() string {
	return "sales_history"
}

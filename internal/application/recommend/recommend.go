package recommend

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/recommend"
)

// RecommendUseCase 个性化推荐用例
//
// 推荐管道（全程只读，不加行锁）：
// 已购商品 → 分类集合 + 作者集合 → 同时命中两个集合的候选商品
// → 排除已购 → 按商品ID升序截断
type RecommendUseCase struct {
	repo   recommend.Repository
	logger *logrus.Logger
}

// NewRecommendUseCase 创建推荐用例
func NewRecommendUseCase(repo recommend.Repository, logger *logrus.Logger) *RecommendUseCase {
	return &RecommendUseCase{repo: repo, logger: logger}
}

// RecommendedProduct 推荐结果项
type RecommendedProduct struct {
	ProductID  uint   `json:"product_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	PriceYuan  string `json:"price_yuan"`
	CategoryID uint   `json:"category_id"`
	AuthorID   *uint  `json:"author_id,omitempty"`
}

// Execute 为顾客生成推荐列表
// 无购买历史时返回空列表（不做热门兜底，保持口径确定性）
func (uc *RecommendUseCase) Execute(ctx context.Context, customerID uint, limit int) ([]RecommendedProduct, error) {
	if limit < 1 || limit > 100 {
		limit = 10
	}

	purchased, err := uc.repo.PurchasedProductIDs(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if len(purchased) == 0 {
		return []RecommendedProduct{}, nil
	}

	categoryIDs, err := uc.repo.CategoriesOfProducts(ctx, purchased)
	if err != nil {
		return nil, err
	}
	authorIDs, err := uc.repo.AuthorsOfProducts(ctx, purchased)
	if err != nil {
		return nil, err
	}

	// 买过的商品全部无作者时作者集合为空，交集语义下必然无候选
	if len(categoryIDs) == 0 || len(authorIDs) == 0 {
		return []RecommendedProduct{}, nil
	}

	products, err := uc.repo.ProductsByCategoryAndAuthor(ctx, categoryIDs, authorIDs, purchased, limit)
	if err != nil {
		return nil, err
	}

	result := make([]RecommendedProduct, len(products))
	for i, p := range products {
		result[i] = RecommendedProduct{
			ProductID:  p.ID,
			Name:       p.Name,
			Price:      p.Price,
			PriceYuan:  fmt.Sprintf("%.2f", float64(p.Price)/100.0),
			CategoryID: p.CategoryID,
			AuthorID:   p.AuthorID,
		}
	}

	uc.logger.WithFields(logrus.Fields{
		"customer_id": customerID,
		"purchased":   len(purchased),
		"recommended": len(result),
	}).Debug("推荐结果已生成")

	return result, nil
}

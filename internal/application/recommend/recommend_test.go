package recommend

import (
	"context"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/catalog"
	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/pkg/logger"
)

// fakeRecommendRepo 内存实现，口径与MySQL实现保持一致：
// 交集语义、无作者商品不命中、排除已购、按ID升序
type fakeRecommendRepo struct {
	purchased map[uint][]uint // customerID → 已购商品ID
	products  []*catalog.Product

	candidateCalled bool
}

func (f *fakeRecommendRepo) PurchasedProductIDs(ctx context.Context, customerID uint) ([]uint, error) {
	return f.purchased[customerID], nil
}

func (f *fakeRecommendRepo) CategoriesOfProducts(ctx context.Context, productIDs []uint) ([]uint, error) {
	seen := map[uint]bool{}
	var result []uint
	for _, p := range f.products {
		if containsID(productIDs, p.ID) && !seen[p.CategoryID] {
			seen[p.CategoryID] = true
			result = append(result, p.CategoryID)
		}
	}
	return result, nil
}

func (f *fakeRecommendRepo) AuthorsOfProducts(ctx context.Context, productIDs []uint) ([]uint, error) {
	seen := map[uint]bool{}
	var result []uint
	for _, p := range f.products {
		if containsID(productIDs, p.ID) && p.AuthorID != nil && !seen[*p.AuthorID] {
			seen[*p.AuthorID] = true
			result = append(result, *p.AuthorID)
		}
	}
	return result, nil
}

func (f *fakeRecommendRepo) ProductsByCategoryAndAuthor(ctx context.Context, categoryIDs, authorIDs, excludeIDs []uint, limit int) ([]*catalog.Product, error) {
	f.candidateCalled = true
	var result []*catalog.Product
	for _, p := range f.products {
		if !containsID(categoryIDs, p.CategoryID) {
			continue
		}
		if p.AuthorID == nil || !containsID(authorIDs, *p.AuthorID) {
			continue
		}
		if containsID(excludeIDs, p.ID) {
			continue
		}
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func containsID(ids []uint, id uint) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func authorPtr(id uint) *uint { return &id }

// 测试数据：
// 分类1=技术书，分类2=文学书，分类3=文具
// 作者10、11为技术书作者，作者20为文学书作者
func newTestRepo() *fakeRecommendRepo {
	return &fakeRecommendRepo{
		purchased: map[uint][]uint{},
		products: []*catalog.Product{
			{ID: 1, Name: "Go程序设计语言", Price: 7900, CategoryID: 1, AuthorID: authorPtr(10)},
			{ID: 2, Name: "Go并发编程实战", Price: 8900, CategoryID: 1, AuthorID: authorPtr(10)},
			{ID: 3, Name: "算法导论", Price: 12800, CategoryID: 1, AuthorID: authorPtr(11)},
			{ID: 4, Name: "活着", Price: 3500, CategoryID: 2, AuthorID: authorPtr(20)},
			{ID: 5, Name: "笔记本", Price: 1500, CategoryID: 3}, // 无作者
			{ID: 6, Name: "Go语言圣经（影印版）", Price: 9900, CategoryID: 1, AuthorID: authorPtr(10)},
		},
	}
}

// TestRecommend_IntersectionSemantics 候选必须同时命中分类集合和作者集合
func TestRecommend_IntersectionSemantics(t *testing.T) {
	repo := newTestRepo()
	repo.purchased[1] = []uint{1} // 买过：分类1、作者10

	uc := NewRecommendUseCase(repo, logger.Default())
	result, err := uc.Execute(context.Background(), 1, 10)

	require.NoError(t, err)
	// 命中：2和6（分类1+作者10）；3作者不同不命中，4分类不同不命中
	require.Len(t, result, 2)
	assert.Equal(t, uint(2), result[0].ProductID)
	assert.Equal(t, uint(6), result[1].ProductID)
}

// TestRecommend_ExcludesPurchased 已购商品不出现在推荐中
func TestRecommend_ExcludesPurchased(t *testing.T) {
	repo := newTestRepo()
	repo.purchased[1] = []uint{1, 2, 6}

	uc := NewRecommendUseCase(repo, logger.Default())
	result, err := uc.Execute(context.Background(), 1, 10)

	require.NoError(t, err)
	for _, r := range result {
		assert.NotContains(t, []uint{1, 2, 6}, r.ProductID)
	}
}

// TestRecommend_AscendingOrder 结果按商品ID升序
func TestRecommend_AscendingOrder(t *testing.T) {
	repo := newTestRepo()
	repo.purchased[1] = []uint{1, 3} // 作者集合{10,11}，分类集合{1}

	uc := NewRecommendUseCase(repo, logger.Default())
	result, err := uc.Execute(context.Background(), 1, 10)

	require.NoError(t, err)
	for i := 1; i < len(result); i++ {
		assert.Less(t, result[i-1].ProductID, result[i].ProductID)
	}
}

// TestRecommend_EmptyHistory 无购买历史返回空列表，不查候选
func TestRecommend_EmptyHistory(t *testing.T) {
	repo := newTestRepo()

	uc := NewRecommendUseCase(repo, logger.Default())
	result, err := uc.Execute(context.Background(), 99, 10)

	require.NoError(t, err)
	assert.Empty(t, result)
	assert.False(t, repo.candidateCalled, "无历史时应短路，不执行候选查询")
}

// TestRecommend_NoAuthorProductsOnly 只买过无作者商品时作者集合为空，结果为空
func TestRecommend_NoAuthorProductsOnly(t *testing.T) {
	repo := newTestRepo()
	repo.purchased[1] = []uint{5} // 笔记本，无作者

	uc := NewRecommendUseCase(repo, logger.Default())
	result, err := uc.Execute(context.Background(), 1, 10)

	require.NoError(t, err)
	assert.Empty(t, result)
	assert.False(t, repo.candidateCalled, "作者集合为空时交集必空，应短路")
}

// TestRecommend_LimitApplied 超出limit的候选被截断
func TestRecommend_LimitApplied(t *testing.T) {
	repo := newTestRepo()
	repo.purchased[1] = []uint{1}

	uc := NewRecommendUseCase(repo, logger.Default())
	result, err := uc.Execute(context.Background(), 1, 1)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, uint(2), result[0].ProductID, "截断保留ID最小的候选")
}

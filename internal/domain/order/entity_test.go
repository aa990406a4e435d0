package order

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewOrder_TotalEqualsSumOfItems 总金额等于明细单价*数量之和
func TestNewOrder_TotalEqualsSumOfItems(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Quantity: 2, Price: 7900},
		{ProductID: 2, Quantity: 1, Price: 12900},
		{ProductID: 1, Quantity: 1, Price: 7900}, // 同商品出现多行也各自计入
	}

	o, err := NewOrder("ORD1699248000123456", 42, items)

	require.NoError(t, err)
	assert.Equal(t, int64(2*7900+12900+7900), o.Total)
	assert.Len(t, o.Items, 3, "明细行数与请求一致，不做合并")
}

// TestNewOrder_EmptyItems 空明细拒绝创建
func TestNewOrder_EmptyItems(t *testing.T) {
	_, err := NewOrder("ORD1", 42, nil)
	assert.ErrorIs(t, err, ErrInvalidOrderItems)
}

// TestNewOrder_InvalidQuantity 非正数量拒绝创建
func TestNewOrder_InvalidQuantity(t *testing.T) {
	items := []OrderItem{{ProductID: 1, Quantity: 0, Price: 100}}
	_, err := NewOrder("ORD1", 42, items)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

// TestOrder_IsOwnedBy 归属校验
func TestOrder_IsOwnedBy(t *testing.T) {
	o, err := NewOrder("ORD1", 42, []OrderItem{{ProductID: 1, Quantity: 1, Price: 100}})
	require.NoError(t, err)

	assert.True(t, o.IsOwnedBy(42))
	assert.False(t, o.IsOwnedBy(43))
}

// TestGenerateOrderNo 订单号格式与唯一性（同秒内靠随机数区分）
func TestGenerateOrderNo(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		no := GenerateOrderNo()
		assert.True(t, strings.HasPrefix(no, "ORD"))
		seen[no] = true
	}
	// 100次生成极大概率不重复
	assert.Greater(t, len(seen), 95)
}

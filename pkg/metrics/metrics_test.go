package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInitMetrics_Idempotent 重复初始化不会panic（promauto重复注册会panic）
func TestInitMetrics_Idempotent(t *testing.T) {
	InitMetrics()
	require.NotPanics(t, func() {
		InitMetrics()
	})
	require.NotNil(t, OrdersPlacedTotal)
	require.NotNil(t, OrderPlacementFailures)
}

// TestOrderPlacementFailures_ReasonLabels 按失败原因分维度计数
func TestOrderPlacementFailures_ReasonLabels(t *testing.T) {
	InitMetrics()

	before := testutil.ToFloat64(OrderPlacementFailures.WithLabelValues("out_of_stock"))

	IncCounterVec(OrderPlacementFailures, map[string]string{"reason": "out_of_stock"})
	IncCounterVec(OrderPlacementFailures, map[string]string{"reason": "out_of_stock"})

	after := testutil.ToFloat64(OrderPlacementFailures.WithLabelValues("out_of_stock"))
	assert.Equal(t, before+2, after)
}

// TestInventoryCounters 库存指标可用
func TestInventoryCounters(t *testing.T) {
	InitMetrics()

	before := testutil.ToFloat64(InventoryLockConflictsTotal)
	InventoryLockConflictsTotal.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(InventoryLockConflictsTotal))
}

package catalog

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/SaraMagdyAbdelhamed/Ecommerce-system/internal/domain/catalog"
)

// LowStockScanner 低库存巡检
// 周期性扫描库存低于阈值的商品并输出告警日志。
// 扫描用SKIP LOCKED：正被下单事务锁定的行直接跳过，
// 巡检不等锁、不阻塞下单，下一轮自然补上。
type LowStockScanner struct {
	repo      catalog.Repository
	logger    *logrus.Logger
	threshold int
	interval  time.Duration
	batchSize int
}

// NewLowStockScanner 创建低库存巡检器
func NewLowStockScanner(repo catalog.Repository, logger *logrus.Logger, threshold int, interval time.Duration) *LowStockScanner {
	if threshold <= 0 {
		threshold = 5
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &LowStockScanner{
		repo:      repo,
		logger:    logger,
		threshold: threshold,
		interval:  interval,
		batchSize: 100,
	}
}

// Run 启动巡检循环，ctx取消后退出
// 应在独立goroutine中运行
func (s *LowStockScanner) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.WithFields(logrus.Fields{
		"threshold": s.threshold,
		"interval":  s.interval.String(),
	}).Info("低库存巡检已启动")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("低库存巡检已停止")
			return
		case <-ticker.C:
			s.scanOnce(ctx)
		}
	}
}

// scanOnce 执行一轮扫描
func (s *LowStockScanner) scanOnce(ctx context.Context) {
	products, err := s.repo.ListLowStock(ctx, s.threshold, s.batchSize)
	if err != nil {
		s.logger.WithError(err).Warn("低库存扫描失败")
		return
	}

	for _, p := range products {
		s.logger.WithFields(logrus.Fields{
			"product_id": p.ID,
			"name":       p.Name,
			"stock":      p.Stock,
			"threshold":  s.threshold,
		}).Warn("商品库存不足，需要补货")
	}
}

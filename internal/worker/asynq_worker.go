package worker

import (
	"context"
	"encoding/json"

	"github.com/ecofinds/internal/cache"
	"github.com/ecofinds/internal/logger"
	"github.com/ecofinds/internal/provider"
	"github.com/ecofinds/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskProductView, c.handleProductView)
	mux.HandleFunc(queue.TaskPurchaseCompleted, c.handlePurchaseCompleted)
}

// handleProductView 浏览计数 +1，失败不重试
func (c *Consumer) handleProductView(_ context.Context, task *asynq.Task) error {
	if c == nil || task == nil || c.Container == nil || c.ProductService == nil {
		logger.Debugw("worker_product_view_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.ProductViewPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_product_view_unmarshal_failed", "error", err)
		return asynq.SkipRetry
	}
	if payload.ProductID == 0 {
		logger.Debugw("worker_product_view_skip_invalid_payload", "product_id", payload.ProductID)
		return nil
	}
	if err := c.ProductService.IncrementViews(payload.ProductID); err != nil {
		logger.Warnw("worker_product_view_increment_failed", "product_id", payload.ProductID, "error", err)
		return err
	}
	return nil
}

// handlePurchaseCompleted 结算提交后清理已售商品的详情缓存
func (c *Consumer) handlePurchaseCompleted(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_purchase_completed_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.PurchaseCompletedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_purchase_completed_unmarshal_failed", "error", err)
		return asynq.SkipRetry
	}
	if len(payload.ProductIDs) == 0 {
		logger.Debugw("worker_purchase_completed_skip_empty", "user_id", payload.UserID)
		return nil
	}
	if err := cache.InvalidateProducts(ctx, payload.ProductIDs...); err != nil {
		logger.Warnw("worker_purchase_completed_invalidate_failed",
			"user_id", payload.UserID,
			"product_ids", payload.ProductIDs,
			"error", err,
		)
		return err
	}
	logger.Infow("worker_purchase_completed",
		"user_id", payload.UserID,
		"product_ids", payload.ProductIDs,
		"total_amount", payload.TotalAmount,
		"purchased_at", payload.PurchasedAt,
	)
	return nil
}

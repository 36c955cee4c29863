package queue

import (
	"encoding/json"
	"time"

	"github.com/ecofinds/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskProductView 商品浏览计数任务
	TaskProductView = constants.TaskProductViewIncrement
	// TaskPurchaseCompleted 结算完成后的收尾任务
	TaskPurchaseCompleted = constants.TaskPurchaseCompleted
)

// ProductViewPayload 商品浏览计数载荷
type ProductViewPayload struct {
	ProductID uint `json:"product_id"`
}

// PurchaseCompletedPayload 结算完成载荷
type PurchaseCompletedPayload struct {
	UserID      uint      `json:"user_id"`
	ProductIDs  []uint    `json:"product_ids"`
	TotalAmount string    `json:"total_amount"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// NewProductViewTask 创建商品浏览计数任务
func NewProductViewTask(payload ProductViewPayload) (*asynq.Task, error) {
	return newJSONTask(TaskProductView, payload)
}

// NewPurchaseCompletedTask 创建结算完成任务
func NewPurchaseCompletedTask(payload PurchaseCompletedPayload) (*asynq.Task, error) {
	return newJSONTask(TaskPurchaseCompleted, payload)
}

func newJSONTask(taskType string, payload interface{}) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(taskType, body), nil
}

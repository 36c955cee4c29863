package queue

import (
	"encoding/json"
	"testing"

	"github.com/ecofinds/internal/config"
)

func TestDisabledClientSkipsEnqueue(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	if err := client.EnqueueProductView(ProductViewPayload{ProductID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be a no-op: %v", err)
	}
	if err := client.EnqueuePurchaseCompleted(PurchaseCompletedPayload{UserID: 1}); err != nil {
		t.Fatalf("disabled enqueue should be a no-op: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close disabled client failed: %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatalf("nil client should report disabled")
	}
}

func TestNewPurchaseCompletedTaskPayload(t *testing.T) {
	task, err := NewPurchaseCompletedTask(PurchaseCompletedPayload{UserID: 9, ProductIDs: []uint{3, 4}, TotalAmount: "30.00"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskPurchaseCompleted {
		t.Fatalf("task type mismatch: %s", task.Type())
	}
	var payload PurchaseCompletedPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.UserID != 9 || len(payload.ProductIDs) != 2 || payload.TotalAmount != "30.00" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestBuildServerConfig(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: "redis", Port: 6380, DB: 2, Concurrency: 4})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt: %+v", opt)
	}
	if cfg.Concurrency != 4 {
		t.Fatalf("concurrency want 4 got %d", cfg.Concurrency)
	}
	if cfg.Queues[CriticalQueue] != 2 || cfg.Queues[DefaultQueue] != 1 {
		t.Fatalf("default queue weights mismatch: %+v", cfg.Queues)
	}

	opt, _ = BuildServerConfig(nil)
	if opt.Addr != "127.0.0.1:6379" {
		t.Fatalf("nil config addr mismatch: %s", opt.Addr)
	}
}

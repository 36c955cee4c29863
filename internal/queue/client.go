package queue

import (
	"fmt"
	"strings"

	"github.com/ecofinds/internal/config"
	"github.com/ecofinds/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// DefaultQueue 默认队列名称
	DefaultQueue = constants.QueueDefault
	// CriticalQueue 高优先级队列名称
	CriticalQueue = constants.QueueCritical
)

// Client 队列客户端封装，未启用时所有投递操作为空操作
type Client struct {
	client  *asynq.Client
	enabled bool
}

// NewClient 创建队列客户端
func NewClient(cfg *config.QueueConfig) (*Client, error) {
	if cfg == nil || !cfg.Enabled {
		return &Client{enabled: false}, nil
	}
	return &Client{
		client:  asynq.NewClient(buildRedisOpt(cfg)),
		enabled: true,
	}, nil
}

// Enabled 判断是否启用
func (c *Client) Enabled() bool {
	return c != nil && c.enabled && c.client != nil
}

// Close 关闭客户端
func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueProductView 推送商品浏览计数任务，丢失可接受，不重试
func (c *Client) EnqueueProductView(payload ProductViewPayload) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewProductViewTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, asynq.Queue(DefaultQueue), asynq.MaxRetry(0))
}

// EnqueuePurchaseCompleted 推送结算完成任务
func (c *Client) EnqueuePurchaseCompleted(payload PurchaseCompletedPayload) error {
	if !c.Enabled() {
		return nil
	}
	task, err := NewPurchaseCompletedTask(payload)
	if err != nil {
		return err
	}
	return c.enqueue(task, asynq.Queue(CriticalQueue), asynq.MaxRetry(5))
}

func (c *Client) enqueue(task *asynq.Task, opts ...asynq.Option) error {
	_, err := c.client.Enqueue(task, opts...)
	return err
}

// BuildServerConfig 生成队列服务配置
func BuildServerConfig(cfg *config.QueueConfig) (asynq.RedisClientOpt, asynq.Config) {
	concurrency := 10
	queues := map[string]int{DefaultQueue: 1, CriticalQueue: 2}
	if cfg != nil {
		if cfg.Concurrency > 0 {
			concurrency = cfg.Concurrency
		}
		if len(cfg.Queues) > 0 {
			queues = cfg.Queues
		}
	}
	return buildRedisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      queues,
	}
}

func buildRedisOpt(cfg *config.QueueConfig) asynq.RedisClientOpt {
	opt := asynq.RedisClientOpt{Addr: "127.0.0.1:6379"}
	if cfg == nil {
		return opt
	}
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	opt.Addr = fmt.Sprintf("%s:%d", host, port)
	opt.Password = cfg.Password
	opt.DB = cfg.DB
	return opt
}

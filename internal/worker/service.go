package worker

import (
	"context"
	"errors"
	"time"

	"github.com/ecofinds/internal/config"
	"github.com/ecofinds/internal/logger"
	"github.com/ecofinds/internal/queue"

	"github.com/hibiken/asynq"
)

// Service 异步队列服务，同时负责购物车失效行的定期清理
type Service struct {
	name          string
	server        *asynq.Server
	mux           *asynq.ServeMux
	consumer      *Consumer
	pruneInterval time.Duration
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:          "worker",
		server:        asynq.NewServer(opt, serverCfg),
		mux:           mux,
		consumer:      consumer,
		pruneInterval: time.Duration(cfg.CartPruneIntervalSeconds) * time.Second,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动任务消费，并在配置了间隔时启动清理循环
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.pruneInterval > 0 {
		go runEvery(ctx, s.pruneInterval, s.consumer.pruneStaleCarts)
	}
	return s.server.Run(s.mux)
}

// Stop 停止服务
func (s *Service) Stop(_ context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	s.server.Shutdown()
	return nil
}

// runEvery 立即执行一次，之后按间隔执行，直到 ctx 结束
func runEvery(ctx context.Context, interval time.Duration, fn func()) {
	if fn == nil || interval <= 0 {
		return
	}
	fn()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			fn()
		}
	}
}

// pruneStaleCarts 清理购物车失效行，失败仅记录日志
func (c *Consumer) pruneStaleCarts() {
	if c == nil || c.Container == nil || c.CartService == nil {
		return
	}
	if _, err := c.CartService.PruneStale(); err != nil {
		logger.Warnw("worker_cart_prune_failed", "error", err)
	}
}

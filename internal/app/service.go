package app

import (
	"context"
	"errors"
	"os/signal"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultStopTimeout = 10 * time.Second

// Service 服务接口
type Service interface {
	Name() string
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}

// Runner 服务运行器
type Runner struct {
	services []Service
	cleanups []func()
}

// NewRunner 创建服务运行器
func NewRunner(services ...Service) *Runner {
	return &Runner{services: services}
}

// AddCleanup 注册所有服务停止后执行的清理函数（按注册的逆序执行）
func (r *Runner) AddCleanup(fn func()) {
	if r == nil || fn == nil {
		return
	}
	r.cleanups = append(r.cleanups, fn)
}

// RunWithOptions 运行服务并处理系统信号
func RunWithOptions(runner *Runner, opts Options) error {
	if runner == nil {
		return errors.New("runner is nil")
	}
	opts = normalizeOptions(opts)
	ctx := context.Background()
	if len(opts.Signals) > 0 {
		var cancel context.CancelFunc
		ctx, cancel = signal.NotifyContext(ctx, opts.Signals...)
		defer cancel()
	}

	return runner.Run(ctx, opts.ShutdownTimeout, opts.Logger)
}

// Run 并发启动全部服务；任一服务出错或 ctx 结束时统一停止，再逆序执行清理
func (r *Runner) Run(ctx context.Context, stopTimeout time.Duration, logger *zap.SugaredLogger) error {
	if r == nil || len(r.services) == 0 {
		return errors.New("no services to run")
	}
	for _, svc := range r.services {
		if svc == nil {
			return errors.New("service is nil")
		}
	}
	if stopTimeout <= 0 {
		stopTimeout = defaultStopTimeout
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, svc := range r.services {
		g.Go(func() error {
			logInfo(logger, "service_start", svc.Name())
			err := svc.Start(gctx)
			logInfo(logger, "service_exit", svc.Name())
			return err
		})
	}

	// Wait 返回时 gctx 一定已取消，stopped 不会悬挂
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		<-gctx.Done()
		r.stopAll(stopTimeout, logger)
	}()

	err := g.Wait()
	<-stopped
	for i := len(r.cleanups) - 1; i >= 0; i-- {
		r.cleanups[i]()
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (r *Runner) stopAll(timeout time.Duration, logger *zap.SugaredLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	for _, svc := range r.services {
		if err := svc.Stop(ctx); err != nil && logger != nil {
			logger.Errorw("service_stop_failed", "service", svc.Name(), "error", err)
		}
	}
}

func logInfo(logger *zap.SugaredLogger, msg, name string) {
	if logger != nil {
		logger.Infow(msg, "service", name)
	}
}

package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/ecofinds/internal/config"
)

// HTTPService 对外 API 服务，监听失败会在 Start 中直接返回
type HTTPService struct {
	server *http.Server

	mu       sync.Mutex
	listener net.Listener
}

// NewHTTPService 按 server 配置创建 API 服务，未配置的超时保持不限制
func NewHTTPService(cfg config.ServerConfig, handler http.Handler) *HTTPService {
	return &HTTPService{
		server: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           handler,
			ReadHeaderTimeout: seconds(cfg.ReadHeaderTimeoutSeconds),
			WriteTimeout:      seconds(cfg.WriteTimeoutSeconds),
			IdleTimeout:       seconds(cfg.IdleTimeoutSeconds),
		},
	}
}

func (s *HTTPService) Name() string {
	return "api"
}

// Start 阻塞直到服务关闭
func (s *HTTPService) Start(ctx context.Context) error {
	if s == nil || s.server == nil {
		return errors.New("api server not initialized")
	}
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()

	if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Addr 实际监听地址，未启动时返回配置值
func (s *HTTPService) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Stop 等待进行中的请求完成后关闭
func (s *HTTPService) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

func seconds(n int) time.Duration {
	if n <= 0 {
		return 0
	}
	return time.Duration(n) * time.Second
}

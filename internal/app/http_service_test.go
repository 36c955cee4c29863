package app

import (
	"context"
	"io"
	"net"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/ecofinds/internal/config"
)

func TestHTTPServiceServesUntilStopped(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
	svc := NewHTTPService(config.ServerConfig{Host: "127.0.0.1", Port: "0", WriteTimeoutSeconds: 5}, handler)
	if svc.server.WriteTimeout != 5*time.Second || svc.server.ReadHeaderTimeout != 0 {
		t.Fatalf("unexpected timeouts: write=%s header=%s", svc.server.WriteTimeout, svc.server.ReadHeaderTimeout)
	}

	done := make(chan error, 1)
	go func() { done <- svc.Start(context.Background()) }()

	var addr string
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if addr = svc.Addr(); !strings.HasSuffix(addr, ":0") {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	resp, err := http.Get("http://" + addr + "/ping")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if string(body) != "pong" {
		t.Fatalf("unexpected body %q", body)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := svc.Stop(ctx); err != nil {
		t.Fatalf("stop failed: %v", err)
	}
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("start should return nil after stop, got %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("start did not return after stop")
	}
}

func TestHTTPServiceStartFailsOnBusyPort(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen failed: %v", err)
	}
	defer ln.Close()
	_, port, _ := net.SplitHostPort(ln.Addr().String())

	svc := NewHTTPService(config.ServerConfig{Host: "127.0.0.1", Port: port}, http.NotFoundHandler())
	if err := svc.Start(context.Background()); err == nil {
		t.Fatalf("expected listen error on busy port")
	}
}

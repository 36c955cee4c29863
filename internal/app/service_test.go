package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

type fakeService struct {
	mu       sync.Mutex
	name     string
	startErr error
	stopped  bool
}

func (s *fakeService) Name() string { return s.name }

func (s *fakeService) Start(ctx context.Context) error {
	if s.startErr != nil {
		return s.startErr
	}
	<-ctx.Done()
	return nil
}

func (s *fakeService) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	return nil
}

func (s *fakeService) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

func TestRunnerStopsAllServicesWhenOneFails(t *testing.T) {
	failing := &fakeService{name: "failing", startErr: errors.New("boom")}
	healthy := &fakeService{name: "healthy"}
	runner := NewRunner(failing, healthy)

	var order []string
	runner.AddCleanup(func() { order = append(order, "first") })
	runner.AddCleanup(func() { order = append(order, "second") })

	err := runner.Run(context.Background(), time.Second, nil)
	if err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom error, got %v", err)
	}
	if !failing.isStopped() || !healthy.isStopped() {
		t.Fatalf("expected every service to be stopped")
	}
	if len(order) != 2 || order[0] != "second" || order[1] != "first" {
		t.Fatalf("cleanups should run in reverse order, got %v", order)
	}
}

func TestRunnerCancelledContextReturnsNil(t *testing.T) {
	svc := &fakeService{name: "svc"}
	runner := NewRunner(svc)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := runner.Run(ctx, time.Second, nil); err != nil {
		t.Fatalf("cancelled run should return nil, got %v", err)
	}
	if !svc.isStopped() {
		t.Fatalf("service should be stopped")
	}
}

func TestBuildRunnerRejectsUnknownMode(t *testing.T) {
	if _, err := BuildRunner(nil, ModeAll); err == nil {
		t.Fatalf("nil config should fail")
	}
	if isValidMode("everything") {
		t.Fatalf("unknown mode should be invalid")
	}
	if !isValidMode(ModeWorker) {
		t.Fatalf("worker mode should be valid")
	}
}

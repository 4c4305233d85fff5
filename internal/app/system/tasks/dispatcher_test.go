package tasks_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/boardhub/boardhub/internal/app/system/tasks"
	"go.uber.org/zap"
)

func TestSubmit_RunsTask(t *testing.T) {
	d := tasks.NewDispatcher(4, zap.NewNop())
	defer d.Close()

	var ran atomic.Bool
	done, err := d.Submit(tasks.Task{
		Name: "test-task",
		Run: func(ctx context.Context) error {
			ran.Store(true)
			return nil
		},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("task returned error: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("task never completed")
	}
	if !ran.Load() {
		t.Error("task body did not run")
	}
}

func TestSubmit_DeliversTaskError(t *testing.T) {
	d := tasks.NewDispatcher(4, zap.NewNop())
	defer d.Close()

	wantErr := errors.New("smtp down")
	done, err := d.Submit(tasks.Task{
		Name: "failing-task",
		Run:  func(ctx context.Context) error { return wantErr },
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, wantErr) {
			t.Errorf("got %v, want %v", err, wantErr)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("task never completed")
	}
}

func TestSubmit_FailsFastWhenFull(t *testing.T) {
	d := tasks.NewDispatcher(1, zap.NewNop())
	defer d.Close()

	release := make(chan struct{})
	blocker := func(ctx context.Context) error {
		<-release
		return nil
	}

	// First task occupies the worker, second fills the queue.
	if _, err := d.Submit(tasks.Task{Name: "running", Run: blocker}); err != nil {
		t.Fatalf("first Submit failed: %v", err)
	}
	// Give the worker a moment to pick up the first task.
	time.Sleep(50 * time.Millisecond)
	if _, err := d.Submit(tasks.Task{Name: "queued", Run: blocker}); err != nil {
		t.Fatalf("second Submit failed: %v", err)
	}

	if _, err := d.Submit(tasks.Task{Name: "dropped", Run: blocker}); err == nil {
		t.Error("expected Submit to fail when the queue is full")
	}

	close(release)
}

func TestTask_TimeoutCancelsContext(t *testing.T) {
	d := tasks.NewDispatcher(4, zap.NewNop())
	defer d.Close()

	done, err := d.Submit(tasks.Task{
		Name:    "slow-task",
		Timeout: 50 * time.Millisecond,
		Run: func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	select {
	case err := <-done:
		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("got %v, want deadline exceeded", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("task never completed")
	}
}

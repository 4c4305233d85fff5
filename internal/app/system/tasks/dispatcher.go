// internal/app/system/tasks/dispatcher.go
package tasks

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Task is a one-shot unit of background work.
type Task struct {
	Name    string
	Timeout time.Duration
	Run     func(ctx context.Context) error
}

// Dispatcher runs tasks on a single worker goroutine, decoupled from
// the request/response lifecycle. Submit returns a result channel so a
// caller can observe completion without blocking on it; results are
// also logged, so dropping the channel is fine.
type Dispatcher struct {
	queue chan submission
	log   *zap.Logger
}

type submission struct {
	task Task
	done chan error
}

// NewDispatcher starts the worker. The queue holds up to bufSize
// pending tasks; Submit fails fast once it is full rather than backing
// up request handlers.
func NewDispatcher(bufSize int, logger *zap.Logger) *Dispatcher {
	if bufSize <= 0 {
		bufSize = 64
	}
	d := &Dispatcher{
		queue: make(chan submission, bufSize),
		log:   logger,
	}
	go d.loop()
	return d
}

// Submit enqueues a task and returns a buffered channel that receives
// the task's result exactly once.
func (d *Dispatcher) Submit(t Task) (<-chan error, error) {
	done := make(chan error, 1)
	select {
	case d.queue <- submission{task: t, done: done}:
		return done, nil
	default:
		return nil, fmt.Errorf("task queue full, dropping %q", t.Name)
	}
}

// Close stops the worker after draining queued tasks. Submit must not
// be called after Close.
func (d *Dispatcher) Close() {
	close(d.queue)
}

func (d *Dispatcher) loop() {
	for sub := range d.queue {
		d.run(sub)
	}
}

func (d *Dispatcher) run(sub submission) {
	t := sub.task
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	start := time.Now()
	err := t.Run(ctx)
	if err != nil {
		d.log.Error("background task failed",
			zap.String("task", t.Name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
	} else {
		d.log.Debug("background task done",
			zap.String("task", t.Name),
			zap.Duration("elapsed", time.Since(start)))
	}
	sub.done <- err
}

// Package sched runs the periodic tasks and the millisecond tick.
//
// Periodic tasks all run on one goroutine in registration order, so the
// controller and the input sampler never execute in parallel. Tick
// callbacks run on a second goroutine and must only touch state that is
// safe to share, such as a Countdown.
package sched

import (
	"context"
	"errors"
	"time"
)

// MaxTasks bounds the task table.
const MaxTasks = 8

// TickPeriod is the tick callback interval.
const TickPeriod = time.Millisecond

// ErrTooManyTasks is returned when the task table is full.
var ErrTooManyTasks = errors.New("sched: task table full")

// TaskFunc is a periodic task.
type TaskFunc func(ctx context.Context)

type task struct {
	fn     TaskFunc
	period time.Duration
	due    time.Time
}

// Scheduler holds registered tasks and tick callbacks. Register before Run.
type Scheduler struct {
	base  time.Duration
	tasks []*task
	ticks []func()
}

// New creates a scheduler that wakes every base to check for due tasks.
func New(base time.Duration) *Scheduler {
	if base <= 0 {
		base = 10 * time.Millisecond
	}
	return &Scheduler{base: base}
}

// RegisterTask adds fn to run every period.
func (s *Scheduler) RegisterTask(fn TaskFunc, period time.Duration) error {
	if len(s.tasks) >= MaxTasks {
		return ErrTooManyTasks
	}
	if period <= 0 {
		return errors.New("sched: period must be positive")
	}
	s.tasks = append(s.tasks, &task{fn: fn, period: period})
	return nil
}

// RegisterTick adds fn to run every TickPeriod.
func (s *Scheduler) RegisterTick(fn func()) {
	s.ticks = append(s.ticks, fn)
}

// Run blocks until ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) error {
	taskTicker := time.NewTicker(s.base)
	defer taskTicker.Stop()
	tickTicker := time.NewTicker(TickPeriod)
	defer tickTicker.Stop()

	return s.runLoop(ctx, taskTicker.C, tickTicker.C)
}

// runLoop is the testable core of Run. Each value received on taskC runs
// every task that is due at that time; each value on tickC runs the tick
// callbacks.
func (s *Scheduler) runLoop(ctx context.Context, taskC, tickC <-chan time.Time) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			select {
			case <-ctx.Done():
				return
			case <-tickC:
				for _, fn := range s.ticks {
					fn()
				}
			}
		}
	}()
	defer func() { <-done }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-taskC:
			s.runDue(ctx, now)
		}
	}
}

func (s *Scheduler) runDue(ctx context.Context, now time.Time) {
	for _, t := range s.tasks {
		if t.due.IsZero() {
			t.due = now
		}
		if now.Before(t.due) {
			continue
		}
		t.fn(ctx)
		// Skip missed periods rather than running a burst to catch up.
		for !t.due.After(now) {
			t.due = t.due.Add(t.period)
		}
	}
}

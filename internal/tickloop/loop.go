package tickloop

import "context"

// Loop serializes all mutating shop/trade operations onto a single
// goroutine, matching the host engine's tick discipline. Nothing
// submitted here may block: ledger and inventory calls must resolve
// synchronously from the loop's perspective.
type Loop struct {
	tasks chan task
}

type task struct {
	fn   func()
	done chan struct{}
}

func New() *Loop {
	return &Loop{tasks: make(chan task)}
}

// Run executes submitted tasks one at a time until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case t := <-l.tasks:
			t.fn()
			close(t.done)
		}
	}
}

// Do runs fn on the loop goroutine and waits for it to finish. Calling
// Do from inside a task deadlocks; tasks schedule follow-ups with
// Submit instead.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	t := task{fn: fn, done: make(chan struct{})}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case l.tasks <- t:
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.done:
		return nil
	}
}

// Submit queues fn without waiting for completion.
func (l *Loop) Submit(ctx context.Context, fn func()) error {
	t := task{fn: fn, done: make(chan struct{})}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case l.tasks <- t:
		return nil
	}
}

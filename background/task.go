package background

import (
	"context"
	"sync"

	"thumbnailer/models"
)

// Task is the pending result of an asynchronous background pick.
// It resolves exactly once, either with the applied descriptor or with an error.
type Task struct {
	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once

	bg  models.Background
	err error
}

func newTask(parent context.Context) *Task {
	if parent == nil {
		parent = context.Background()
	}
	ctx, cancel := context.WithCancel(parent)
	return &Task{ctx: ctx, cancel: cancel, done: make(chan struct{})}
}

// completedTask returns a task that is already resolved.
func completedTask(bg models.Background, err error) *Task {
	t := newTask(context.Background())
	t.finish(bg, err)
	return t
}

func (t *Task) finish(bg models.Background, err error) {
	t.once.Do(func() {
		t.bg = bg
		t.err = err
		close(t.done)
		t.cancel()
	})
}

// Done is closed once the task has resolved.
func (t *Task) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the task resolves or ctx is done.
// A ctx timeout only stops the wait; use Cancel to abort the task itself.
func (t *Task) Wait(ctx context.Context) (models.Background, error) {
	select {
	case <-t.done:
		return t.bg, t.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Resolved reports whether the task has finished.
func (t *Task) Resolved() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Cancel aborts the task. A cancelled task never changes the active background
// and resolves with context.Canceled if it had not finished yet.
func (t *Task) Cancel() {
	t.cancel()
}

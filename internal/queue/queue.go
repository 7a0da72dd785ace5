package queue

import (
	"sync"

	"go.uber.org/zap"

	"github.com/marketjoys/AutomatedResponder/internal/apperrors"
)

// Task is a unit of background work.
type Task struct {
	Name string
	Run  func()
}

// Handle tracks one enqueued task.
type Handle struct {
	done chan struct{}
}

// Wait blocks until the task has finished running.
func (h *Handle) Wait() {
	<-h.done
}

// TaskQueue is a bounded in-process queue with a fixed worker pool.
// Enqueue never blocks; a full buffer is reported to the caller instead.
type TaskQueue struct {
	tasks   chan queued
	workers int
	log     *zap.Logger
	wg      sync.WaitGroup
}

type queued struct {
	task   Task
	handle *Handle
}

func NewTaskQueue(size, workers int, log *zap.Logger) *TaskQueue {
	if size <= 0 {
		size = 16
	}
	if workers <= 0 {
		workers = 1
	}
	return &TaskQueue{
		tasks:   make(chan queued, size),
		workers: workers,
		log:     log,
	}
}

// Start launches the worker pool. Workers drain the queue until Stop.
func (q *TaskQueue) Start() {
	for i := 0; i < q.workers; i++ {
		q.wg.Add(1)
		go q.worker()
	}
}

func (q *TaskQueue) worker() {
	defer q.wg.Done()
	for item := range q.tasks {
		q.run(item)
	}
}

func (q *TaskQueue) run(item queued) {
	defer close(item.handle.done)
	defer func() {
		if r := recover(); r != nil {
			q.log.Error("task panicked",
				zap.String("task", item.task.Name),
				zap.Any("panic", r),
			)
		}
	}()
	item.task.Run()
}

// Enqueue hands a task to the pool. It returns ErrQueueFull when the buffer
// is at capacity. Must not be called after Stop.
func (q *TaskQueue) Enqueue(t Task) (*Handle, error) {
	h := &Handle{done: make(chan struct{})}
	select {
	case q.tasks <- queued{task: t, handle: h}:
		return h, nil
	default:
		return nil, apperrors.ErrQueueFull
	}
}

// Stop closes intake and waits for queued and in-flight tasks to finish.
func (q *TaskQueue) Stop() {
	close(q.tasks)
	q.wg.Wait()
}

package pools

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Task represents a unit of work
type Task func()

// WorkerPool runs tasks on a fixed set of workers fed from one shared,
// unbounded queue. Submit never blocks on busy workers; bursts wait in memory.
type WorkerPool struct {
	numWorkers int

	// in feeds the dispatcher, which buffers tasks and hands them to out.
	in  chan Task
	out chan Task

	mu     sync.RWMutex
	closed bool
	done   sync.WaitGroup

	stats struct {
		tasksSubmitted atomic.Uint64
		tasksCompleted atomic.Uint64
		tasksPanicked  atomic.Uint64
		queued         atomic.Int64
	}
}

// NewWorkerPool starts numWorkers workers, or one per CPU when numWorkers <= 0.
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}

	p := &WorkerPool{
		numWorkers: numWorkers,
		in:         make(chan Task),
		out:        make(chan Task),
	}

	go p.dispatch()

	p.done.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go p.work()
	}

	return p
}

// Submit queues a task. It reports false once the pool is closed.
func (p *WorkerPool) Submit(task Task) bool {
	if task == nil {
		return false
	}

	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}

	p.stats.tasksSubmitted.Add(1)
	p.stats.queued.Add(1)
	p.in <- task
	return true
}

// dispatch moves tasks from in to out through an unbounded slice. After in is
// closed, the remaining backlog is still handed out before out is closed.
func (p *WorkerPool) dispatch() {
	var backlog []Task
	in := p.in

	for in != nil || len(backlog) > 0 {
		var out chan Task
		var next Task
		if len(backlog) > 0 {
			out = p.out
			next = backlog[0]
		}

		select {
		case task, ok := <-in:
			if !ok {
				in = nil
				continue
			}
			backlog = append(backlog, task)
		case out <- next:
			backlog[0] = nil
			backlog = backlog[1:]
		}
	}

	close(p.out)
}

// work is the main loop for a worker goroutine
func (p *WorkerPool) work() {
	// One OS thread per worker for its whole lifetime
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	defer p.done.Done()

	for task := range p.out {
		p.stats.queued.Add(-1)
		p.run(task)
	}
}

func (p *WorkerPool) run(task Task) {
	defer func() {
		if r := recover(); r != nil {
			p.stats.tasksPanicked.Add(1)
		}
		p.stats.tasksCompleted.Add(1)
	}()
	task()
}

// Close stops accepting tasks. Queued tasks still run; use Wait to block
// until they have.
func (p *WorkerPool) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	p.closed = true
	close(p.in)
}

// Wait blocks until every worker has exited after Close.
func (p *WorkerPool) Wait() {
	p.done.Wait()
}

// Stats returns pool statistics
func (p *WorkerPool) Stats() WorkerPoolStats {
	completed := p.stats.tasksCompleted.Load()
	submitted := p.stats.tasksSubmitted.Load()
	return WorkerPoolStats{
		NumWorkers:     p.numWorkers,
		TasksSubmitted: submitted,
		TasksCompleted: completed,
		TasksPending:   submitted - completed,
		TasksQueued:    p.stats.queued.Load(),
		TasksPanicked:  p.stats.tasksPanicked.Load(),
	}
}

// WorkerPoolStats contains pool statistics
type WorkerPoolStats struct {
	NumWorkers     int    `json:"num_workers"`
	TasksSubmitted uint64 `json:"tasks_submitted"`
	TasksCompleted uint64 `json:"tasks_completed"`
	TasksPending   uint64 `json:"tasks_pending"`
	TasksQueued    int64  `json:"tasks_queued"`
	TasksPanicked  uint64 `json:"tasks_panicked"`
}

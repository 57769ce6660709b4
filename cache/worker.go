package cache

import (
	"sync"
	"sync/atomic"
)

// taskQueueSize bounds how many precache tasks may be queued before
// submit starts reporting failure and callers fall back to computing
// inline.
const taskQueueSize = 64

// taskProcessor runs cache population tasks on a small fixed pool of
// workers. Tasks are never cancelled: one that becomes stale simply
// computes a result nobody reads, and the next Trim drops it.
type taskProcessor struct {
	tasks   chan func()
	done    chan struct{}
	wg      sync.WaitGroup
	running atomic.Bool
}

// newTaskProcessor starts a processor with the given number of workers.
func newTaskProcessor(workers int) *taskProcessor {
	if workers < 1 {
		workers = 1
	}
	p := &taskProcessor{
		tasks: make(chan func(), taskQueueSize),
		done:  make(chan struct{}),
	}
	p.running.Store(true)

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}
	return p
}

func (p *taskProcessor) worker() {
	defer p.wg.Done()
	for {
		select {
		case <-p.done:
			// Drain queued tasks so nothing waiting on a task's result
			// blocks forever.
			for {
				select {
				case task := <-p.tasks:
					task()
				default:
					return
				}
			}
		case task := <-p.tasks:
			task()
		}
	}
}

// submit queues a task and reports whether it was accepted. A full queue
// or a closed processor returns false; the caller decides whether to run
// the task inline or drop it.
func (p *taskProcessor) submit(task func()) bool {
	if task == nil || !p.running.Load() {
		return false
	}
	select {
	case p.tasks <- task:
		return true
	case <-p.done:
		return false
	default:
		return false
	}
}

// close stops accepting tasks, finishes queued ones, and waits for the
// workers to exit. Safe to call more than once.
func (p *taskProcessor) close() {
	if !p.running.CompareAndSwap(true, false) {
		return
	}
	close(p.done)
	p.wg.Wait()
}

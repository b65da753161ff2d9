package concurrent

import (
	"errors"
	"time"
)

// ErrScheduleTimeout returned by Pool to indicate that there are no free
// goroutines during some period of time.
var ErrScheduleTimeout = errors.New("schedule error: timed out")

// Pool. goroutine pool with a bounded spawn budget, used on the websocket
// accept path so a burst of connections cannot grow the goroutine count
// unbounded. ref: https://sergey.kamardin.org/articles/million-websockets-and-go/
type Pool struct {
	sem  chan struct{}
	work chan func()
}

// NewPool creates a pool with maximum size goroutines, queue sized work
// channel and spawn goroutines started eagerly.
func NewPool(size, queue, spawn int) *Pool {
	if spawn <= 0 && queue > 0 {
		panic("dead queue configuration detected")
	}
	if spawn > size {
		panic("spawn > size")
	}
	p := &Pool{
		sem:  make(chan struct{}, size),
		work: make(chan func(), queue),
	}
	for i := 0; i < spawn; i++ {
		p.sem <- struct{}{}
		go p.worker(func() {})
	}

	return p
}

// Schedule schedules task to be executed over pool's workers.
func (p *Pool) Schedule(task func()) error {
	return p.schedule(task, nil)
}

// ScheduleTimeout schedules task to be executed over pool's workers.
// It returns ErrScheduleTimeout when no free workers met during given timeout.
func (p *Pool) ScheduleTimeout(timeout time.Duration, task func()) error {
	return p.schedule(task, time.After(timeout))
}

func (p *Pool) schedule(task func(), timeout <-chan time.Time) error {
	select {
	case <-timeout:
		return ErrScheduleTimeout
	case p.work <- task:
		return nil
	case p.sem <- struct{}{}:
		go p.worker(task)
		return nil
	}
}

func (p *Pool) worker(task func()) {
	defer func() { <-p.sem }()

	task()
	for task := range p.work {
		task()
	}
}

// Close stops all idle workers. pending scheduled tasks still run.
func (p *Pool) Close() {
	close(p.work)
}

package engine

import (
	"sync"
	"time"
)

// Scheduler drives the engine with one repeating tick. A single goroutine
// calls AdvanceOneSecond synchronously, so ticks never overlap. Stop blocks
// until the loop has exited and is safe to call more than once.
type Scheduler struct {
	engine   *Engine
	interval time.Duration

	startOnce sync.Once
	stopOnce  sync.Once
	started   chan struct{}
	stop      chan struct{}
	done      chan struct{}
}

func NewScheduler(e *Engine, interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Scheduler{
		engine:   e,
		interval: interval,
		started:  make(chan struct{}),
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	s.startOnce.Do(func() {
		close(s.started)
		go s.run()
	})
}

func (s *Scheduler) run() {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.engine.AdvanceOneSecond()
		}
	}
}

func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.stop)
	})
	select {
	case <-s.started:
		<-s.done
	default:
	}
}

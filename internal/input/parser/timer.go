package parser

import (
	"sync"
	"time"
)

// Timer is a restartable single-shot timer. Start replaces any pending
// fire with a new one; Stop cancels without firing. Re-arming always
// supersedes an earlier scheduled fire, even one already in flight.
type Timer interface {
	Start(d time.Duration)
	Stop()
	Active() bool
}

// TimerFactory builds a Timer that invokes fn when it fires. Tests
// inject a fake factory to control time.
type TimerFactory func(fn func()) Timer

// afterFuncTimer backs Timer with time.AfterFunc. A mutex guards the
// state against the firing goroutine, and a generation counter makes a
// superseded fire a no-op: Start and Stop bump the generation, and the
// callback re-checks it when it actually runs. With a post function the
// check happens where post executes the callback, so a Stop issued
// after the fire was handed off but before it ran still wins.
type afterFuncTimer struct {
	mu     sync.Mutex
	fn     func()
	post   func(fn func())
	t      *time.Timer
	gen    uint64
	active bool
}

// NewTimer returns a time.AfterFunc-backed Timer invoking fn directly
// from the firing goroutine. It satisfies TimerFactory.
func NewTimer(fn func()) Timer {
	return &afterFuncTimer{fn: fn}
}

// NewLoopTimer returns a Timer that hands each fire to post, which
// should marshal it onto the goroutine driving the parsers. The
// cancellation check runs inside the marshalled callback, so stale
// fires queued behind a Stop or a restart never reach fn.
func NewLoopTimer(fn func(), post func(fn func())) Timer {
	return &afterFuncTimer{fn: fn, post: post}
}

func (a *afterFuncTimer) Start(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.t != nil {
		a.t.Stop()
	}
	a.gen++
	gen := a.gen
	a.active = true
	a.t = time.AfterFunc(d, func() {
		if a.post != nil {
			a.post(func() { a.fire(gen) })
		} else {
			a.fire(gen)
		}
	})
}

func (a *afterFuncTimer) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.t != nil {
		a.t.Stop()
		a.t = nil
	}
	a.gen++
	a.active = false
}

func (a *afterFuncTimer) Active() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.active
}

func (a *afterFuncTimer) fire(gen uint64) {
	a.mu.Lock()
	if gen != a.gen {
		a.mu.Unlock()
		return
	}
	a.active = false
	a.t = nil
	a.mu.Unlock()
	a.fn()
}

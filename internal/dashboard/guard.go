package dashboard

import (
	"errors"
	"sync/atomic"
)

// ErrBusy is returned when a guarded action is triggered while the previous
// one is still in flight. No request is made.
var ErrBusy = errors.New("request already in flight")

// Guard lets one action run at a time and drops the rest, the way a
// disabled button would.
type Guard struct {
	busy atomic.Bool
}

func (g *Guard) Busy() bool {
	return g.busy.Load()
}

// Do runs fn unless another call is in flight. The guard is released when
// fn returns, whether it failed or panicked.
func (g *Guard) Do(fn func() error) error {
	if !g.busy.CompareAndSwap(false, true) {
		return ErrBusy
	}
	defer g.busy.Store(false)
	return fn()
}

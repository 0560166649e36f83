package lib

import "go.uber.org/atomic"

// Busy is a shared loading indicator. It stays on while at least one operation holds it.
type Busy struct {
	holders atomic.Int32
}

func NewBusy() *Busy {
	return &Busy{}
}

// Acquire marks the indicator busy and returns the release func, meant to be deferred.
// Calling release more than once has no further effect.
func (b *Busy) Acquire() (release func()) {
	b.holders.Inc()
	released := atomic.NewBool(false)
	return func() {
		if released.CAS(false, true) {
			b.holders.Dec()
		}
	}
}

func (b *Busy) IsBusy() bool {
	return b.holders.Load() > 0
}

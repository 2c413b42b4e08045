// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

import (
	"container/heap"
	"time"
)

const (
	timerIdle = iota
	timerArmed
	timerFired
	timerCancelled
)

// Timer runs a callback on the reactor when its deadline passes.
// A timer is one-shot: it fires at most once per Arm, and firing and
// cancellation are mutually exclusive.
type Timer struct {
	r     *Reactor
	fn    func()
	at    time.Time
	idx   int
	state uint8
}

// NewTimer creates an unarmed timer that will run fn on r when it fires.
func NewTimer(r *Reactor, fn func()) *Timer {
	return &Timer{r: r, fn: fn, idx: -1}
}

// Arm schedules the timer to fire once the reactor's clock reaches at.
// Arming an already armed timer panics.
func (t *Timer) Arm(at time.Time) {
	if t.state == timerArmed {
		panic("reakt: timer already armed")
	}
	t.at = at
	t.state = timerArmed
	heap.Push(&t.r.timers, t)
}

// ArmIn arms the timer d from now on the reactor's clock.
func (t *Timer) ArmIn(d time.Duration) {
	t.Arm(t.r.clock.Now().Add(d))
}

// Cancel disarms the timer. It reports true when the timer was armed and
// had not fired: exactly the case where the callback will never run.
// A false return means the callback ran, is running, was never armed, or
// the timer was already cancelled.
func (t *Timer) Cancel() bool {
	if t.state != timerArmed {
		return false
	}
	t.state = timerCancelled
	heap.Remove(&t.r.timers, t.idx)
	return true
}

// timerHeap orders armed timers by deadline.
type timerHeap []*Timer

func (h timerHeap) Len() int { return len(h) }

func (h timerHeap) Less(i, j int) bool { return h[i].at.Before(h[j].at) }

func (h timerHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].idx = i
	h[j].idx = j
}

func (h *timerHeap) Push(x any) {
	t := x.(*Timer)
	t.idx = len(*h)
	*h = append(*h, t)
}

func (h *timerHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	t.idx = -1
	*h = old[:n-1]
	return t
}

// dueBefore reports whether the earliest timer deadline is at or before now.
func (h timerHeap) dueBefore(now time.Time) bool {
	return len(h) > 0 && !h[0].at.After(now)
}

// next returns the earliest deadline, if any timer is armed.
func (h timerHeap) next() (time.Time, bool) {
	if len(h) == 0 {
		return time.Time{}, false
	}
	return h[0].at, true
}

func (h *timerHeap) pop() *Timer {
	return heap.Pop(h).(*Timer)
}

// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

import (
	"errors"
	"time"
)

// ErrTimedOut is the error a [WithTimeout] future fails with when the
// deadline passes first.
var ErrTimedOut = errors.New("reakt: timed out")

// WithTimeout waits for f or for the deadline, whichever comes first.
// See [WithTimeoutErr] for the full contract.
func WithTimeout[T any](deadline time.Time, f Future[T]) Future[T] {
	return WithTimeoutErr(deadline, f, func() error { return ErrTimedOut })
}

// WithTimeoutErr is [WithTimeout] with an injected error factory, invoked
// only if the timer wins.
//
// Timing out does not cancel work behind the original future. If the
// timer fires first, f's eventual result is still observed, then
// discarded; callers needing real cancellation must coordinate
// out of band. An already-ready f is returned unchanged, timer-free.
func WithTimeoutErr[T any](deadline time.Time, f Future[T], factory func() error) Future[T] {
	if f.Available() {
		return f
	}
	r := f.reactor()
	pr := NewPromise[T](r)
	t := NewTimer(r, func() {
		pr.SetError(factory())
	})
	t.Arm(deadline)
	// The result reaches the caller through pr; this wrapper future only
	// keeps the race arbitration alive.
	_ = ThenWrapped(f, func(ft Future[T]) Future[Void] {
		if t.Cancel() {
			ft.ForwardTo(pr)
		} else {
			// The timer already fired and resolved pr.
			ft.Ignore()
		}
		return MakeReady(Void{})
	})
	return pr.GetFuture()
}

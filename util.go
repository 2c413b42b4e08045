// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

import "time"

// Now returns a ready no-value future. It does not allocate.
func Now() Future[Void] {
	return MakeReady(Void{})
}

// Later returns a future that resolves on the reactor's next iteration.
// It forces a preemption point: work chained after it runs from the run
// queue rather than inline.
func Later(r *Reactor) Future[Void] {
	pr := NewPromise[Void](r)
	r.Schedule(taskFunc(func() {
		pr.SetValue(Void{})
	}))
	return pr.GetFuture()
}

// Sleep returns a future that resolves once d has elapsed on the
// reactor's clock.
func Sleep(r *Reactor, d time.Duration) Future[Void] {
	pr := NewPromise[Void](r)
	t := NewTimer(r, func() {
		pr.SetValue(Void{})
	})
	t.ArmIn(d)
	return pr.GetFuture()
}

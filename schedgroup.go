// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

// WithSchedulingGroup runs fn under sg's CPU share. If sg is already
// active the callable runs immediately; otherwise it is queued on sg and
// its result is forwarded into a pre-created promise.
func WithSchedulingGroup[T any](sg *SchedulingGroup, fn func() Future[T]) Future[T] {
	if sg.Active() {
		return futurizeCall(fn)
	}
	pr := NewPromise[T](sg.r)
	sg.r.ScheduleIn(sg, taskFunc(func() {
		futurizeCall(fn).ForwardTo(pr)
	}))
	return pr.GetFuture()
}

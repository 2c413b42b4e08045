// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

import "iter"

// DoForEach applies action to each element in order, waiting for the
// previous invocation's future before starting the next. It fails fast:
// the first error resolves the returned future and no further element is
// visited. While futures come back ready and the preemption probe is
// quiet, iteration stays in a synchronous loop; a preemption request
// reroutes the rest of the range through the run queue.
func DoForEach[T any](r *Reactor, xs []T, action func(T) Future[Void]) Future[Void] {
	return doForEachFrom(r, xs, 0, action)
}

func doForEachFrom[T any](r *Reactor, xs []T, i int, action func(T) Future[Void]) Future[Void] {
	if i >= len(xs) {
		return MakeReady(Void{})
	}
	for {
		f := futurizeApply(action, xs[i])
		i++
		if i == len(xs) {
			// The last element's future is the aggregate.
			return f
		}
		if !f.Available() {
			next := i
			return Then(f, func(Void) Future[Void] {
				return doForEachFrom(r, xs, next, action)
			})
		}
		if f.Failed() {
			return f
		}
		if r.NeedPreempt() {
			next := i
			return Then(Later(r), func(Void) Future[Void] {
				return doForEachFrom(r, xs, next, action)
			})
		}
	}
}

// DoForEachSeq is [DoForEach] over an iterator sequence. The sequence is
// pulled one element ahead of the action so the last element's future can
// be returned directly, like the slice form.
func DoForEachSeq[T any](r *Reactor, seq iter.Seq[T], action func(T) Future[Void]) Future[Void] {
	next, stop := iter.Pull(seq)
	head, ok := next()
	if !ok {
		stop()
		return MakeReady(Void{})
	}
	return doForEachPull(r, head, next, stop, action)
}

func doForEachPull[T any](r *Reactor, head T, next func() (T, bool), stop func(), action func(T) Future[Void]) Future[Void] {
	for {
		f := futurizeApply(action, head)
		peek, ok := next()
		if !ok {
			stop()
			return f
		}
		if !f.Available() {
			head := peek
			return ThenWrapped(f, func(ft Future[Void]) Future[Void] {
				if err := ft.Error(); err != nil {
					stop()
					return MakeFailed[Void](err)
				}
				return doForEachPull(r, head, next, stop, action)
			})
		}
		if f.Failed() {
			stop()
			return f
		}
		if r.NeedPreempt() {
			head := peek
			return Then(Later(r), func(Void) Future[Void] {
				return doForEachPull(r, head, next, stop, action)
			})
		}
		head = peek
	}
}

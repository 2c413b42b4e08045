// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

// Future composition. Each form handles the ready case before building
// any closure or state: an already-resolved input runs its continuation
// inline, allocation-free, without consuming a reactor turn. Pending
// inputs share one continuation type across all forms.

// Then runs fn with f's value once f resolves, and returns the future of
// fn's result. An error in f bypasses fn and propagates unchanged.
func Then[T, U any](f Future[T], fn func(T) Future[U]) Future[U] {
	if f.Available() {
		v, err := f.Get()
		if err != nil {
			return MakeFailed[U](err)
		}
		return futurizeApply(fn, v)
	}
	return ThenWrapped(f, func(ft Future[T]) Future[U] {
		v, err := ft.Get()
		if err != nil {
			return MakeFailed[U](err)
		}
		return fn(v)
	})
}

// ThenValue is [Then] for a synchronous transformation that may fail.
func ThenValue[T, U any](f Future[T], fn func(T) (U, error)) Future[U] {
	if f.Available() {
		v, err := f.Get()
		if err != nil {
			return MakeFailed[U](err)
		}
		return futurizeValue(fn, v)
	}
	return ThenWrapped(f, func(ft Future[T]) Future[U] {
		v, err := ft.Get()
		if err != nil {
			return MakeFailed[U](err)
		}
		return futurizeValue(fn, v)
	})
}

// Map applies a pure transformation to f's value.
//
// Map is equivalent to [ThenValue] with a nil error, kept as a separate
// entry point to avoid the error-shaped closure at call sites.
func Map[T, U any](f Future[T], fn func(T) U) Future[U] {
	if f.Available() {
		v, err := f.Get()
		if err != nil {
			return MakeFailed[U](err)
		}
		return futurizeMap(fn, v)
	}
	return ThenWrapped(f, func(ft Future[T]) Future[U] {
		v, err := ft.Get()
		if err != nil {
			return MakeFailed[U](err)
		}
		return futurizeMap(fn, v)
	})
}

// ThenWrapped runs fn with f in its terminal state once f resolves,
// error included. fn observes the result and decides what propagates.
func ThenWrapped[T, U any](f Future[T], fn func(Future[T]) Future[U]) Future[U] {
	if f.Available() {
		return futurizeApply(fn, futureOf(f.take()))
	}
	pr := NewPromise[U](f.reactor())
	listen(f, &thenCont[T, U]{fn: fn, pr: pr})
	return pr.GetFuture()
}

// thenCont is the pending-path continuation behind all composition forms.
type thenCont[T, U any] struct {
	res result[T]
	fn  func(Future[T]) Future[U]
	pr  Promise[U]
}

func (c *thenCont[T, U]) feed(res result[T]) { c.res = res }

func (c *thenCont[T, U]) runAndDispose() {
	futurizeApply(c.fn, futureOf(c.res)).ForwardTo(c.pr)
}

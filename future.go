// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

// Void is the value type of futures that carry no value.
type Void struct{}

// result is a terminal value-or-error pair. A nil err means value.
type result[T any] struct {
	val T
	err error
}

// task is the unit of reactor execution. Ownership of the task transfers
// into runAndDispose: the reactor drops its reference after the call, and
// before returning the task either resolves whatever promise it carries or
// hands itself on to a pending future's continuation slot or the run queue.
type task interface {
	runAndDispose()
}

// taskFunc adapts a plain function to task.
type taskFunc func()

func (f taskFunc) runAndDispose() { f() }

// continuation is a task that receives a future's terminal result before
// being scheduled. The result is pre-loaded via feed; runAndDispose acts
// on it. Each future accepts at most one continuation.
type continuation[T any] interface {
	task
	feed(result[T])
}

// fstate is the shared cell behind a pending future and its promise.
// It lives on the heap exactly once per promise; ready-made futures
// ([MakeReady], [MakeFailed]) never touch it.
type fstate[T any] struct {
	r    *Reactor
	done bool
	res  result[T]
	cont continuation[T]
}

// resolve transitions the cell to its terminal state.
// At most one resolution per cell; violating that is a caller bug.
func (st *fstate[T]) resolve(res result[T]) {
	if st.done {
		panic("reakt: promise resolved twice")
	}
	st.done = true
	st.res = res
	if c := st.cont; c != nil {
		st.cont = nil
		c.feed(res)
		st.r.Schedule(c)
	}
}

// Future is a handle to a value or error that may not be available yet.
//
// The zero Future is invalid. Ready futures created by [MakeReady] and
// [MakeFailed] carry their result inline and involve no heap state, which
// keeps the already-ready fast paths of the combinators allocation-free.
// Pending futures share an fstate with the [Promise] that resolves them.
//
// A future resolves at most once, and accepts at most one continuation.
type Future[T any] struct {
	st    *fstate[T]
	res   result[T]
	ready bool
}

// MakeReady returns a ready future carrying v. It does not allocate.
func MakeReady[T any](v T) Future[T] {
	return Future[T]{res: result[T]{val: v}, ready: true}
}

// MakeFailed returns a ready future carrying err. It does not allocate.
func MakeFailed[T any](err error) Future[T] {
	return Future[T]{res: result[T]{err: err}, ready: true}
}

// futureOf rebuilds a ready future from a terminal result.
func futureOf[T any](res result[T]) Future[T] {
	return Future[T]{res: res, ready: true}
}

// Available reports whether the future holds its terminal value or error.
func (f Future[T]) Available() bool {
	return f.ready || (f.st != nil && f.st.done)
}

// Failed reports whether the future holds an error.
// Like Available, it does not consume the result.
func (f Future[T]) Failed() bool {
	if f.ready {
		return f.res.err != nil
	}
	return f.st != nil && f.st.done && f.st.res.err != nil
}

// Get extracts the result. The future must be available.
// Extraction is destructive in intent: a result is meant to be taken once,
// by whoever owns the future at that point.
func (f Future[T]) Get() (T, error) {
	res := f.take()
	return res.val, res.err
}

// Error extracts just the error of a failed future.
func (f Future[T]) Error() error {
	return f.take().err
}

// Ignore marks the result as observed without using it. Combinators call it
// on futures whose value is discarded so that no terminal state goes
// unobserved.
func (f Future[T]) Ignore() {
	_ = f.take()
}

func (f Future[T]) take() result[T] {
	if f.ready {
		return f.res
	}
	if f.st == nil || !f.st.done {
		panic("reakt: future not available")
	}
	return f.st.res
}

// ForwardTo resolves pr with this future's eventual result.
func (f Future[T]) ForwardTo(pr Promise[T]) {
	if f.Available() {
		pr.st.resolve(f.take())
		return
	}
	listen(f, &forwardCont[T]{pr: pr})
}

// reactor returns the reactor a pending future is bound to.
func (f Future[T]) reactor() *Reactor {
	return f.st.r
}

// listen installs c as f's one continuation. f must be pending; the caller
// hands ownership of c to f's cell, and the reactor takes it back when the
// cell resolves.
func listen[T any](f Future[T], c continuation[T]) {
	st := f.st
	if st == nil || st.done {
		panic("reakt: listen on ready future")
	}
	if st.cont != nil {
		panic("reakt: future already has a continuation")
	}
	st.cont = c
}

// forwardCont forwards a terminal result into a promise.
type forwardCont[T any] struct {
	res result[T]
	pr  Promise[T]
}

func (c *forwardCont[T]) feed(res result[T]) { c.res = res }

func (c *forwardCont[T]) runAndDispose() { c.pr.st.resolve(c.res) }

// Promise is the write end of a future. Exactly one of SetValue or
// SetError must be called, exactly once.
type Promise[T any] struct {
	st *fstate[T]
}

// NewPromise creates a promise whose continuations are scheduled on r.
func NewPromise[T any](r *Reactor) Promise[T] {
	return Promise[T]{st: &fstate[T]{r: r}}
}

// GetFuture obtains the single read end.
func (p Promise[T]) GetFuture() Future[T] {
	return Future[T]{st: p.st}
}

// SetValue resolves the future with v.
func (p Promise[T]) SetValue(v T) {
	p.st.resolve(result[T]{val: v})
}

// SetError resolves the future with err.
func (p Promise[T]) SetError(err error) {
	p.st.resolve(result[T]{err: err})
}

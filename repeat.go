// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

// Sequential loop engines. Each combinator runs a synchronous fast loop
// while its body's futures come back ready, allocates its continuation
// state only on the first pending future, and yields to the reactor when
// the preemption probe asks for it. Continuation is always expressed via
// the state or the tight loop, never via unbounded recursion.

// Repeat invokes body until it fails or returns [Stop].
//
// The body is called again as soon as its future resolves with [Continue].
// The returned future resolves with success on [Stop], or with the body's
// error. A panicking body is equivalent to one returning a failed future.
func Repeat(r *Reactor, body func() Future[StopIteration]) Future[Void] {
	for {
		f := futurizeCall(body)
		if !f.Available() {
			s := &repeater{r: r, body: body, pr: NewPromise[Void](r)}
			listen(f, s)
			return s.pr.GetFuture()
		}
		si, err := f.Get()
		if err != nil {
			return MakeFailed[Void](err)
		}
		if si == Stop {
			return MakeReady(Void{})
		}
		if r.NeedPreempt() {
			// Yield with a pre-seeded Continue so the state resumes the
			// loop without re-reading a future.
			s := &repeater{r: r, body: body, pr: NewPromise[Void](r)}
			s.res = result[StopIteration]{val: Continue}
			r.Schedule(s)
			return s.pr.GetFuture()
		}
	}
}

// repeater is the continuation state of [Repeat]. It owns itself while
// installed on the body's future or queued on the reactor, and resolves
// its outgoing promise exactly once.
type repeater struct {
	r    *Reactor
	body func() Future[StopIteration]
	pr   Promise[Void]
	res  result[StopIteration]
}

func (s *repeater) feed(res result[StopIteration]) { s.res = res }

func (s *repeater) runAndDispose() {
	if s.res.err != nil {
		s.pr.SetError(s.res.err)
		return
	}
	if s.res.val == Stop {
		s.pr.SetValue(Void{})
		return
	}
	for {
		f := futurizeCall(s.body)
		if !f.Available() {
			listen(f, s)
			return
		}
		si, err := f.Get()
		if err != nil {
			s.pr.SetError(err)
			return
		}
		if si == Stop {
			s.pr.SetValue(Void{})
			return
		}
		if s.r.NeedPreempt() {
			s.res = result[StopIteration]{val: Continue}
			s.r.Schedule(s)
			return
		}
	}
}

// RepeatUntilValue invokes body until it fails or returns an engaged
// [Option]; the contained value resolves the returned future.
func RepeatUntilValue[T any](r *Reactor, body func() Future[Option[T]]) Future[T] {
	for {
		f := futurizeCall(body)
		if !f.Available() {
			s := &untilValueState[T]{r: r, body: body, pr: NewPromise[T](r)}
			listen(f, s)
			return s.pr.GetFuture()
		}
		opt, err := f.Get()
		if err != nil {
			return MakeFailed[T](err)
		}
		if v, ok := opt.Get(); ok {
			return MakeReady(v)
		}
		if r.NeedPreempt() {
			s := &untilValueState[T]{r: r, body: body, pr: NewPromise[T](r)}
			s.res = result[Option[T]]{val: None[T]()}
			r.Schedule(s)
			return s.pr.GetFuture()
		}
	}
}

type untilValueState[T any] struct {
	r    *Reactor
	body func() Future[Option[T]]
	pr   Promise[T]
	res  result[Option[T]]
}

func (s *untilValueState[T]) feed(res result[Option[T]]) { s.res = res }

func (s *untilValueState[T]) runAndDispose() {
	if s.res.err != nil {
		s.pr.SetError(s.res.err)
		return
	}
	if v, ok := s.res.val.Get(); ok {
		s.pr.SetValue(v)
		return
	}
	for {
		f := futurizeCall(s.body)
		if !f.Available() {
			listen(f, s)
			return
		}
		opt, err := f.Get()
		if err != nil {
			s.pr.SetError(err)
			return
		}
		if v, ok := opt.Get(); ok {
			s.pr.SetValue(v)
			return
		}
		if s.r.NeedPreempt() {
			s.res = result[Option[T]]{val: None[T]()}
			s.r.Schedule(s)
			return
		}
	}
}

// DoUntil invokes body until stop returns true, checking stop before each
// invocation. Errors from body terminate the loop; a panicking stop
// condition is treated as a fatal body error and surfaces on the returned
// future.
func DoUntil(r *Reactor, stop func() bool, body func() Future[Void]) Future[Void] {
	for {
		done, err := evalStop(stop)
		if err != nil {
			return MakeFailed[Void](err)
		}
		if done {
			return MakeReady(Void{})
		}
		f := futurizeCall(body)
		if !f.Available() {
			s := &doUntilState{r: r, stop: stop, body: body, pr: NewPromise[Void](r)}
			listen(f, s)
			return s.pr.GetFuture()
		}
		if f.Failed() {
			return f
		}
		if r.NeedPreempt() {
			s := &doUntilState{r: r, stop: stop, body: body, pr: NewPromise[Void](r)}
			r.Schedule(s)
			return s.pr.GetFuture()
		}
	}
}

func evalStop(stop func() bool) (done bool, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = recoveredError(p)
		}
	}()
	return stop(), nil
}

type doUntilState struct {
	r    *Reactor
	stop func() bool
	body func() Future[Void]
	pr   Promise[Void]
	res  result[Void]
}

func (s *doUntilState) feed(res result[Void]) { s.res = res }

func (s *doUntilState) runAndDispose() {
	if s.res.err != nil {
		s.pr.SetError(s.res.err)
		return
	}
	s.res = result[Void]{}
	for {
		done, err := evalStop(s.stop)
		if err != nil {
			s.pr.SetError(err)
			return
		}
		if done {
			s.pr.SetValue(Void{})
			return
		}
		f := futurizeCall(s.body)
		if !f.Available() {
			listen(f, s)
			return
		}
		if err := f.Error(); err != nil {
			s.pr.SetError(err)
			return
		}
		if s.r.NeedPreempt() {
			s.r.Schedule(s)
			return
		}
	}
}

// KeepDoing invokes body over and over, waiting for each invocation's
// future before the next. It terminates only when body fails; the quota
// bounds how many ready iterations run per reactor dispatch.
func KeepDoing(r *Reactor, body func() Future[Void]) Future[Void] {
	return Repeat(r, func() Future[StopIteration] {
		return Map(futurizeCall(body), func(Void) StopIteration {
			return Continue
		})
	})
}

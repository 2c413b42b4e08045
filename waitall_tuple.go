// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

// Typed fan-in over heterogeneous futures, arities 2 through 4. Go has no
// variadic type lists, so each arity is emitted explicitly; the slice
// forms in waitall.go are the fallback for homogeneous or larger fan-ins.
//
// Each invocation allocates at most one state object. The per-slot
// continuations are fields of that state rather than separate
// allocations, and only one of them is installed at a time: the cursor
// walks the slots from the highest index down, skipping ready ones, so if
// the futures complete in order, waiting for the last finds the rest
// ready. Each slot is written exactly once, and the outgoing promise is
// resolved exactly once, after the cursor has visited every slot.

// Tuple2 is a pair of independently typed values.
type Tuple2[A, B any] struct {
	V1 A
	V2 B
}

// Tuple3 is a triple of independently typed values.
type Tuple3[A, B, C any] struct {
	V1 A
	V2 B
	V3 C
}

// Tuple4 is a quadruple of independently typed values.
type Tuple4[A, B, C, D any] struct {
	V1 A
	V2 B
	V3 C
	V4 D
}

// completer re-enters an aggregator after one of its slots resolves.
type completer interface {
	completeOne()
}

// slotCont writes a terminal state back into its slot, its future's final
// resting place, and re-enters the aggregator at the next lower index.
type slotCont[T any] struct {
	res    result[T]
	slot   *Future[T]
	parent completer
}

func (c *slotCont[T]) feed(res result[T]) { c.res = res }

func (c *slotCont[T]) runAndDispose() {
	*c.slot = futureOf(c.res)
	c.parent.completeOne()
}

// WaitAll2 waits for both futures to resolve, successfully or not, and
// yields them in their terminal states. The aggregate never fails. When
// both inputs are already ready the result is synchronous and
// allocation-free.
func WaitAll2[A, B any](fa Future[A], fb Future[B]) Future[Tuple2[Future[A], Future[B]]] {
	if fa.Available() && fb.Available() {
		return MakeReady(Tuple2[Future[A], Future[B]]{fa, fb})
	}
	pr := NewPromise[Tuple2[Future[A], Future[B]]](pendingReactor2(fa, fb))
	s := &waitAll2State[A, B]{fa: fa, fb: fb, remain: 2}
	s.finish = func(fa Future[A], fb Future[B]) {
		pr.SetValue(Tuple2[Future[A], Future[B]]{fa, fb})
	}
	s.start()
	return pr.GetFuture()
}

// WaitAllSucceed2 waits for both futures and yields their values. If
// either fails, the aggregate fails with one of the errors; both results
// are observed either way.
func WaitAllSucceed2[A, B any](fa Future[A], fb Future[B]) Future[Tuple2[A, B]] {
	if fa.Available() && fb.Available() {
		return extract2(fa, fb)
	}
	pr := NewPromise[Tuple2[A, B]](pendingReactor2(fa, fb))
	s := &waitAll2State[A, B]{fa: fa, fb: fb, remain: 2}
	s.finish = func(fa Future[A], fb Future[B]) {
		extract2(fa, fb).ForwardTo(pr)
	}
	s.start()
	return pr.GetFuture()
}

func extract2[A, B any](fa Future[A], fb Future[B]) Future[Tuple2[A, B]] {
	a, erra := fa.Get()
	b, errb := fb.Get()
	if erra != nil {
		return MakeFailed[Tuple2[A, B]](erra)
	}
	if errb != nil {
		return MakeFailed[Tuple2[A, B]](errb)
	}
	return MakeReady(Tuple2[A, B]{a, b})
}

func pendingReactor2[A, B any](fa Future[A], fb Future[B]) *Reactor {
	if !fa.Available() {
		return fa.reactor()
	}
	return fb.reactor()
}

type waitAll2State[A, B any] struct {
	fa     Future[A]
	fb     Future[B]
	remain int
	finish func(Future[A], Future[B])
	ca     slotCont[A]
	cb     slotCont[B]
}

func (s *waitAll2State[A, B]) start() {
	// Fake one pending completion so completeOne's decrement lands on the
	// true count.
	s.remain++
	s.completeOne()
}

func (s *waitAll2State[A, B]) completeOne() {
	s.remain--
	for s.remain > 0 {
		if !s.processOne(s.remain - 1) {
			return
		}
		s.remain--
	}
	s.finish(s.fa, s.fb)
}

// processOne reports whether slot idx is ready; if not it installs the
// slot's continuation and the aggregator suspends until it fires.
func (s *waitAll2State[A, B]) processOne(idx int) bool {
	switch idx {
	case 0:
		if s.fa.Available() {
			return true
		}
		s.ca = slotCont[A]{slot: &s.fa, parent: s}
		listen(s.fa, &s.ca)
	default:
		if s.fb.Available() {
			return true
		}
		s.cb = slotCont[B]{slot: &s.fb, parent: s}
		listen(s.fb, &s.cb)
	}
	return false
}

// WaitAll3 is [WaitAll2] for three futures.
func WaitAll3[A, B, C any](fa Future[A], fb Future[B], fc Future[C]) Future[Tuple3[Future[A], Future[B], Future[C]]] {
	if fa.Available() && fb.Available() && fc.Available() {
		return MakeReady(Tuple3[Future[A], Future[B], Future[C]]{fa, fb, fc})
	}
	pr := NewPromise[Tuple3[Future[A], Future[B], Future[C]]](pendingReactor3(fa, fb, fc))
	s := &waitAll3State[A, B, C]{fa: fa, fb: fb, fc: fc, remain: 3}
	s.finish = func(fa Future[A], fb Future[B], fc Future[C]) {
		pr.SetValue(Tuple3[Future[A], Future[B], Future[C]]{fa, fb, fc})
	}
	s.start()
	return pr.GetFuture()
}

// WaitAllSucceed3 is [WaitAllSucceed2] for three futures.
func WaitAllSucceed3[A, B, C any](fa Future[A], fb Future[B], fc Future[C]) Future[Tuple3[A, B, C]] {
	if fa.Available() && fb.Available() && fc.Available() {
		return extract3(fa, fb, fc)
	}
	pr := NewPromise[Tuple3[A, B, C]](pendingReactor3(fa, fb, fc))
	s := &waitAll3State[A, B, C]{fa: fa, fb: fb, fc: fc, remain: 3}
	s.finish = func(fa Future[A], fb Future[B], fc Future[C]) {
		extract3(fa, fb, fc).ForwardTo(pr)
	}
	s.start()
	return pr.GetFuture()
}

func extract3[A, B, C any](fa Future[A], fb Future[B], fc Future[C]) Future[Tuple3[A, B, C]] {
	a, erra := fa.Get()
	b, errb := fb.Get()
	c, errc := fc.Get()
	if erra != nil {
		return MakeFailed[Tuple3[A, B, C]](erra)
	}
	if errb != nil {
		return MakeFailed[Tuple3[A, B, C]](errb)
	}
	if errc != nil {
		return MakeFailed[Tuple3[A, B, C]](errc)
	}
	return MakeReady(Tuple3[A, B, C]{a, b, c})
}

func pendingReactor3[A, B, C any](fa Future[A], fb Future[B], fc Future[C]) *Reactor {
	if !fa.Available() {
		return fa.reactor()
	}
	return pendingReactor2(fb, fc)
}

type waitAll3State[A, B, C any] struct {
	fa     Future[A]
	fb     Future[B]
	fc     Future[C]
	remain int
	finish func(Future[A], Future[B], Future[C])
	ca     slotCont[A]
	cb     slotCont[B]
	cc     slotCont[C]
}

func (s *waitAll3State[A, B, C]) start() {
	s.remain++
	s.completeOne()
}

func (s *waitAll3State[A, B, C]) completeOne() {
	s.remain--
	for s.remain > 0 {
		if !s.processOne(s.remain - 1) {
			return
		}
		s.remain--
	}
	s.finish(s.fa, s.fb, s.fc)
}

func (s *waitAll3State[A, B, C]) processOne(idx int) bool {
	switch idx {
	case 0:
		if s.fa.Available() {
			return true
		}
		s.ca = slotCont[A]{slot: &s.fa, parent: s}
		listen(s.fa, &s.ca)
	case 1:
		if s.fb.Available() {
			return true
		}
		s.cb = slotCont[B]{slot: &s.fb, parent: s}
		listen(s.fb, &s.cb)
	default:
		if s.fc.Available() {
			return true
		}
		s.cc = slotCont[C]{slot: &s.fc, parent: s}
		listen(s.fc, &s.cc)
	}
	return false
}

// WaitAll4 is [WaitAll2] for four futures.
func WaitAll4[A, B, C, D any](fa Future[A], fb Future[B], fc Future[C], fd Future[D]) Future[Tuple4[Future[A], Future[B], Future[C], Future[D]]] {
	if fa.Available() && fb.Available() && fc.Available() && fd.Available() {
		return MakeReady(Tuple4[Future[A], Future[B], Future[C], Future[D]]{fa, fb, fc, fd})
	}
	pr := NewPromise[Tuple4[Future[A], Future[B], Future[C], Future[D]]](pendingReactor4(fa, fb, fc, fd))
	s := &waitAll4State[A, B, C, D]{fa: fa, fb: fb, fc: fc, fd: fd, remain: 4}
	s.finish = func(fa Future[A], fb Future[B], fc Future[C], fd Future[D]) {
		pr.SetValue(Tuple4[Future[A], Future[B], Future[C], Future[D]]{fa, fb, fc, fd})
	}
	s.start()
	return pr.GetFuture()
}

// WaitAllSucceed4 is [WaitAllSucceed2] for four futures.
func WaitAllSucceed4[A, B, C, D any](fa Future[A], fb Future[B], fc Future[C], fd Future[D]) Future[Tuple4[A, B, C, D]] {
	if fa.Available() && fb.Available() && fc.Available() && fd.Available() {
		return extract4(fa, fb, fc, fd)
	}
	pr := NewPromise[Tuple4[A, B, C, D]](pendingReactor4(fa, fb, fc, fd))
	s := &waitAll4State[A, B, C, D]{fa: fa, fb: fb, fc: fc, fd: fd, remain: 4}
	s.finish = func(fa Future[A], fb Future[B], fc Future[C], fd Future[D]) {
		extract4(fa, fb, fc, fd).ForwardTo(pr)
	}
	s.start()
	return pr.GetFuture()
}

func extract4[A, B, C, D any](fa Future[A], fb Future[B], fc Future[C], fd Future[D]) Future[Tuple4[A, B, C, D]] {
	a, erra := fa.Get()
	b, errb := fb.Get()
	c, errc := fc.Get()
	d, errd := fd.Get()
	if erra != nil {
		return MakeFailed[Tuple4[A, B, C, D]](erra)
	}
	if errb != nil {
		return MakeFailed[Tuple4[A, B, C, D]](errb)
	}
	if errc != nil {
		return MakeFailed[Tuple4[A, B, C, D]](errc)
	}
	if errd != nil {
		return MakeFailed[Tuple4[A, B, C, D]](errd)
	}
	return MakeReady(Tuple4[A, B, C, D]{a, b, c, d})
}

func pendingReactor4[A, B, C, D any](fa Future[A], fb Future[B], fc Future[C], fd Future[D]) *Reactor {
	if !fa.Available() {
		return fa.reactor()
	}
	return pendingReactor3(fb, fc, fd)
}

type waitAll4State[A, B, C, D any] struct {
	fa     Future[A]
	fb     Future[B]
	fc     Future[C]
	fd     Future[D]
	remain int
	finish func(Future[A], Future[B], Future[C], Future[D])
	ca     slotCont[A]
	cb     slotCont[B]
	cc     slotCont[C]
	cd     slotCont[D]
}

func (s *waitAll4State[A, B, C, D]) start() {
	s.remain++
	s.completeOne()
}

func (s *waitAll4State[A, B, C, D]) completeOne() {
	s.remain--
	for s.remain > 0 {
		if !s.processOne(s.remain - 1) {
			return
		}
		s.remain--
	}
	s.finish(s.fa, s.fb, s.fc, s.fd)
}

func (s *waitAll4State[A, B, C, D]) processOne(idx int) bool {
	switch idx {
	case 0:
		if s.fa.Available() {
			return true
		}
		s.ca = slotCont[A]{slot: &s.fa, parent: s}
		listen(s.fa, &s.ca)
	case 1:
		if s.fb.Available() {
			return true
		}
		s.cb = slotCont[B]{slot: &s.fb, parent: s}
		listen(s.fb, &s.cb)
	case 2:
		if s.fc.Available() {
			return true
		}
		s.cc = slotCont[C]{slot: &s.fc, parent: s}
		listen(s.fc, &s.cc)
	default:
		if s.fd.Available() {
			return true
		}
		s.cd = slotCont[D]{slot: &s.fd, parent: s}
		listen(s.fd, &s.cd)
	}
	return false
}

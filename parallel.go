// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

import "iter"

// ParallelForEach applies action to every element without waiting:
// elements are visited in order but each action starts immediately.
// The returned future resolves once every action's future has resolved.
// If one or more fail, the aggregate fails with one of the errors (the
// last one observed wins) after all sub-futures have completed; no error
// goes unobserved.
//
// Already-ready action futures are drained inline and never stored; the
// completion state is allocated only when a pending future appears, so an
// all-ready range resolves synchronously with no allocation.
func ParallelForEach[T any](r *Reactor, xs []T, action func(T) Future[Void]) Future[Void] {
	var s *parallelState
	var ex error
	for i, x := range xs {
		f := futurizeApply(action, x)
		if !f.Available() {
			if s == nil {
				s = &parallelState{pr: NewPromise[Void](r)}
				s.incomplete = make([]Future[Void], 0, len(xs)-i)
			}
			s.incomplete = append(s.incomplete, f)
		} else if err := f.Error(); err != nil {
			ex = err
		}
	}
	return finishParallel(s, ex)
}

// ParallelForEachSeq is [ParallelForEach] over an iterator sequence. No
// capacity estimate exists for a sequence, so the pending list grows as
// needed.
func ParallelForEachSeq[T any](r *Reactor, seq iter.Seq[T], action func(T) Future[Void]) Future[Void] {
	var s *parallelState
	var ex error
	for x := range seq {
		f := futurizeApply(action, x)
		if !f.Available() {
			if s == nil {
				s = &parallelState{pr: NewPromise[Void](r)}
			}
			s.incomplete = append(s.incomplete, f)
		} else if err := f.Error(); err != nil {
			ex = err
		}
	}
	return finishParallel(s, ex)
}

func finishParallel(s *parallelState, ex error) Future[Void] {
	if s == nil {
		if ex != nil {
			return MakeFailed[Void](ex)
		}
		return MakeReady(Void{})
	}
	if ex != nil {
		s.ex = ex
	}
	ret := s.pr.GetFuture()
	// waitForOne chains s onto one of its pending futures; s owns itself from
	// here until it resolves the promise.
	s.waitForOne()
	return ret
}

// parallelState collects the still-pending futures of one ParallelForEach
// invocation and waits them out one at a time.
type parallelState struct {
	incomplete []Future[Void]
	pr         Promise[Void]
	ex         error
	res        result[Void]
}

func (s *parallelState) feed(res result[Void]) { s.res = res }

func (s *parallelState) runAndDispose() {
	if s.res.err != nil {
		s.ex = s.res.err
	}
	s.res = result[Void]{}
	s.waitForOne()
}

// waitForOne waits for one of the incomplete futures and then decides:
// wait for another, or deliver the result if all are complete.
func (s *parallelState) waitForOne() {
	// Process back to front, on the assumption that the front futures are
	// likely to complete earlier than the back futures. If so, the front
	// futures will be found ready and need no waiting at all.
	for len(s.incomplete) > 0 && s.incomplete[len(s.incomplete)-1].Available() {
		if err := s.incomplete[len(s.incomplete)-1].Error(); err != nil {
			s.ex = err
		}
		s.incomplete = s.incomplete[:len(s.incomplete)-1]
	}

	if n := len(s.incomplete); n > 0 {
		f := s.incomplete[n-1]
		// The future's state is collected in runAndDispose, so the slot
		// can be dropped now.
		s.incomplete = s.incomplete[:n-1]
		listen(f, s)
		return
	}

	if s.ex != nil {
		s.pr.SetError(s.ex)
	} else {
		s.pr.SetValue(Void{})
	}
}

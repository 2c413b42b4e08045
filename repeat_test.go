// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/reakt"
)

func TestRepeatStopsSynchronously(t *testing.T) {
	r := reakt.NewReactor()
	calls := 0
	f := reakt.Repeat(r, func() reakt.Future[reakt.StopIteration] {
		calls++
		return reakt.MakeReady(reakt.Stop)
	})
	if !f.Available() {
		t.Fatal("immediate stop did not resolve synchronously")
	}
	if calls != 1 {
		t.Fatalf("calls = %d, want 1", calls)
	}
}

func TestRepeatInvocationCount(t *testing.T) {
	// Body invocations must equal the number of Continue returns plus the
	// terminating call.
	r := reakt.NewReactor()
	const continues = 1000
	calls := 0
	f := reakt.Repeat(r, func() reakt.Future[reakt.StopIteration] {
		calls++
		if calls > continues {
			return reakt.MakeReady(reakt.Stop)
		}
		return reakt.MakeReady(reakt.Continue)
	})
	r.RunUntilIdle()
	if !f.Available() {
		t.Fatal("loop did not resolve")
	}
	if calls != continues+1 {
		t.Fatalf("calls = %d, want %d", calls, continues+1)
	}
}

func TestRepeatYieldsOnQuota(t *testing.T) {
	r := reakt.NewReactor(reakt.WithQuota(8))
	calls := 0
	f := reakt.Repeat(r, func() reakt.Future[reakt.StopIteration] {
		calls++
		return reakt.MakeReady(reakt.Continue)
	})
	if f.Available() {
		t.Fatal("endless loop resolved")
	}
	if calls > 8 {
		t.Fatalf("ran %d iterations before first yield, quota is 8", calls)
	}
	before := calls
	r.Tick()
	if calls <= before {
		t.Fatal("loop did not resume after yield")
	}
	if calls > before+8 {
		t.Fatalf("ran %d iterations in one dispatch, quota is 8", calls-before)
	}
}

func TestRepeatAsyncBody(t *testing.T) {
	r := reakt.NewReactor()
	calls := 0
	f := reakt.Repeat(r, func() reakt.Future[reakt.StopIteration] {
		calls++
		stop := calls == 4
		return reakt.Then(reakt.Later(r), func(reakt.Void) reakt.Future[reakt.StopIteration] {
			if stop {
				return reakt.MakeReady(reakt.Stop)
			}
			return reakt.MakeReady(reakt.Continue)
		})
	})
	r.RunUntilIdle()
	if !f.Available() {
		t.Fatal("loop did not resolve")
	}
	if calls != 4 {
		t.Fatalf("calls = %d, want 4", calls)
	}
}

func TestRepeatBodyError(t *testing.T) {
	r := reakt.NewReactor()
	boom := errors.New("boom")
	f := reakt.Repeat(r, func() reakt.Future[reakt.StopIteration] {
		return reakt.MakeFailed[reakt.StopIteration](boom)
	})
	if err := f.Error(); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
}

func TestRepeatBodyPanicSurfacesAsError(t *testing.T) {
	// A synchronous panic must surface exactly like an async error.
	r := reakt.NewReactor()
	boom := errors.New("boom")
	f := reakt.Repeat(r, func() reakt.Future[reakt.StopIteration] {
		panic(boom)
	})
	if err := f.Error(); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom with preserved identity", err)
	}
}

func TestRepeatUntilValue(t *testing.T) {
	r := reakt.NewReactor()
	c := 0
	f := reakt.RepeatUntilValue(r, func() reakt.Future[reakt.Option[int]] {
		if c == 10000 {
			return reakt.MakeReady(reakt.Some(c))
		}
		c++
		return reakt.MakeReady(reakt.None[int]())
	})
	r.RunUntilIdle()
	v, err := f.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 10000 {
		t.Fatalf("got %d, want 10000", v)
	}
}

func TestRepeatUntilValueError(t *testing.T) {
	r := reakt.NewReactor()
	boom := errors.New("boom")
	f := reakt.RepeatUntilValue(r, func() reakt.Future[reakt.Option[int]] {
		return reakt.MakeFailed[reakt.Option[int]](boom)
	})
	if err := f.Error(); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
}

func TestDoUntil(t *testing.T) {
	r := reakt.NewReactor()
	n := 0
	f := reakt.DoUntil(r, func() bool { return n == 5 }, func() reakt.Future[reakt.Void] {
		n++
		return reakt.Now()
	})
	r.RunUntilIdle()
	if !f.Available() || f.Failed() {
		t.Fatalf("available=%v failed=%v, want resolved success", f.Available(), f.Failed())
	}
	if n != 5 {
		t.Fatalf("n = %d, want 5", n)
	}
}

func TestDoUntilStopConditionAlreadyTrue(t *testing.T) {
	r := reakt.NewReactor()
	called := false
	f := reakt.DoUntil(r, func() bool { return true }, func() reakt.Future[reakt.Void] {
		called = true
		return reakt.Now()
	})
	if !f.Available() || called {
		t.Fatalf("available=%v called=%v, want true false", f.Available(), called)
	}
}

func TestDoUntilStopConditionPanics(t *testing.T) {
	r := reakt.NewReactor()
	boom := errors.New("boom")
	f := reakt.DoUntil(r, func() bool { panic(boom) }, func() reakt.Future[reakt.Void] {
		return reakt.Now()
	})
	if err := f.Error(); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
}

func TestDoUntilAsyncBody(t *testing.T) {
	r := reakt.NewReactor()
	n := 0
	f := reakt.DoUntil(r, func() bool { return n == 3 }, func() reakt.Future[reakt.Void] {
		n++
		return reakt.Later(r)
	})
	r.RunUntilIdle()
	if !f.Available() || n != 3 {
		t.Fatalf("available=%v n=%d, want true 3", f.Available(), n)
	}
}

func TestKeepDoingYieldsWithinQuota(t *testing.T) {
	// A ready-body KeepDoing never resolves, but must yield to the reactor
	// at least every quota iterations instead of spinning or recursing.
	const quota = 16
	r := reakt.NewReactor(reakt.WithQuota(quota))
	calls := 0
	f := reakt.KeepDoing(r, func() reakt.Future[reakt.Void] {
		calls++
		return reakt.Now()
	})
	if f.Available() {
		t.Fatal("endless loop resolved")
	}
	const ticks = 5
	for i := 0; i < ticks; i++ {
		r.Tick()
	}
	if f.Available() {
		t.Fatal("endless loop resolved after ticks")
	}
	if calls == 0 {
		t.Fatal("body never ran")
	}
	if calls > (ticks+1)*quota {
		t.Fatalf("calls = %d, want at most %d across %d dispatches", calls, (ticks+1)*quota, ticks+1)
	}
}

func TestKeepDoingStopsOnError(t *testing.T) {
	r := reakt.NewReactor()
	boom := errors.New("boom")
	n := 0
	f := reakt.KeepDoing(r, func() reakt.Future[reakt.Void] {
		n++
		if n == 3 {
			return reakt.MakeFailed[reakt.Void](boom)
		}
		return reakt.Now()
	})
	r.RunUntilIdle()
	if err := f.Error(); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
	if n != 3 {
		t.Fatalf("n = %d, want 3", n)
	}
}

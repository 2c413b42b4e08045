// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt_test

import (
	"errors"
	"slices"
	"testing"

	"code.hybscloud.com/reakt"
)

func TestWaitAllAllReady(t *testing.T) {
	fs := []reakt.Future[int]{reakt.MakeReady(1), reakt.MakeReady(2), reakt.MakeReady(3)}
	f := reakt.WaitAll(fs)
	if !f.Available() {
		t.Fatal("all-ready wait did not resolve synchronously")
	}
	out, err := f.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(out) != 3 {
		t.Fatalf("arity = %d, want 3", len(out))
	}
	for i, ff := range out {
		if v, _ := ff.Get(); v != i+1 {
			t.Fatalf("slot %d = %d, want %d", i, v, i+1)
		}
	}
}

func TestWaitAllPreservesOrderAcrossCompletion(t *testing.T) {
	// Slots correspond positionally to inputs regardless of the order in
	// which the inputs complete.
	r := reakt.NewReactor()
	p1 := reakt.NewPromise[int](r)
	p2 := reakt.NewPromise[int](r)
	fs := []reakt.Future[int]{p1.GetFuture(), reakt.MakeReady(20), p2.GetFuture()}
	f := reakt.WaitAll(fs)
	if f.Available() {
		t.Fatal("wait resolved with pending inputs")
	}
	p2.SetValue(30)
	r.RunUntilIdle()
	if f.Available() {
		t.Fatal("wait resolved with one input still pending")
	}
	p1.SetValue(10)
	r.RunUntilIdle()
	out, _ := f.Get()
	var vals []int
	for _, ff := range out {
		v, _ := ff.Get()
		vals = append(vals, v)
	}
	if !slices.Equal(vals, []int{10, 20, 30}) {
		t.Fatalf("vals = %v, want input order", vals)
	}
}

func TestWaitAllNeverFails(t *testing.T) {
	boom := errors.New("boom")
	fs := []reakt.Future[int]{reakt.MakeFailed[int](boom), reakt.MakeReady(2)}
	f := reakt.WaitAll(fs)
	out, err := f.Get()
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if !out[0].Failed() {
		t.Fatal("slot 0 lost its error")
	}
	if err := out[0].Error(); !errors.Is(err, boom) {
		t.Fatalf("slot 0 error = %v, want boom", err)
	}
	if v, _ := out[1].Get(); v != 2 {
		t.Fatalf("slot 1 = %d, want 2", v)
	}
}

func TestWaitAllSucceedValues(t *testing.T) {
	r := reakt.NewReactor()
	pr := reakt.NewPromise[int](r)
	fs := []reakt.Future[int]{reakt.MakeReady(1), pr.GetFuture(), reakt.MakeReady(3)}
	f := reakt.WaitAllSucceed(fs)
	pr.SetValue(2)
	r.RunUntilIdle()
	vals, err := f.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !slices.Equal(vals, []int{1, 2, 3}) {
		t.Fatalf("vals = %v, want [1 2 3]", vals)
	}
}

func TestWaitAllSucceedError(t *testing.T) {
	boom := errors.New("boom")
	fs := []reakt.Future[int]{reakt.MakeReady(1), reakt.MakeFailed[int](boom)}
	f := reakt.WaitAllSucceed(fs)
	if _, err := f.Get(); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
}

func TestWaitAllEmpty(t *testing.T) {
	f := reakt.WaitAll[int](nil)
	if !f.Available() {
		t.Fatal("empty wait not synchronous")
	}
	out, _ := f.Get()
	if len(out) != 0 {
		t.Fatalf("arity = %d, want 0", len(out))
	}
}

func TestWaitAll2ReadyFastPath(t *testing.T) {
	f := reakt.WaitAll2(reakt.MakeReady("hi"), reakt.MakeReady(42))
	if !f.Available() {
		t.Fatal("all-ready wait not synchronous")
	}
	tup, _ := f.Get()
	if s, _ := tup.V1.Get(); s != "hi" {
		t.Fatalf("V1 = %q, want hi", s)
	}
	if v, _ := tup.V2.Get(); v != 42 {
		t.Fatalf("V2 = %d, want 42", v)
	}
}

func TestWaitAll2Pending(t *testing.T) {
	r := reakt.NewReactor()
	pa := reakt.NewPromise[string](r)
	pb := reakt.NewPromise[int](r)
	f := reakt.WaitAll2(pa.GetFuture(), pb.GetFuture())
	pb.SetValue(2)
	r.RunUntilIdle()
	if f.Available() {
		t.Fatal("wait resolved with one slot pending")
	}
	pa.SetValue("a")
	r.RunUntilIdle()
	tup, _ := f.Get()
	s, _ := tup.V1.Get()
	v, _ := tup.V2.Get()
	if s != "a" || v != 2 {
		t.Fatalf("got (%q, %d), want (a, 2)", s, v)
	}
}

func TestWaitAll2KeepsSlotError(t *testing.T) {
	r := reakt.NewReactor()
	boom := errors.New("boom")
	pb := reakt.NewPromise[int](r)
	f := reakt.WaitAll2(reakt.MakeFailed[string](boom), pb.GetFuture())
	pb.SetError(boom)
	r.RunUntilIdle()
	tup, err := f.Get()
	if err != nil {
		t.Fatalf("aggregate failed: %v", err)
	}
	if !tup.V1.Failed() || !tup.V2.Failed() {
		t.Fatal("slot errors lost")
	}
}

func TestWaitAllSucceed4Tuple(t *testing.T) {
	f := reakt.WaitAllSucceed4(
		reakt.MakeReady("hi"),
		reakt.MakeReady(42),
		reakt.MakeReady(reakt.Tuple2[int, string]{V1: 84, V2: "x"}),
		reakt.MakeReady(true),
	)
	tup, err := f.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tup.V1 != "hi" || tup.V2 != 42 || tup.V3.V1 != 84 || tup.V3.V2 != "x" || tup.V4 != true {
		t.Fatalf("tuple = %+v, want values preserved positionally", tup)
	}
}

func TestWaitAllSucceed2VoidSlot(t *testing.T) {
	f := reakt.WaitAllSucceed2(reakt.MakeReady(reakt.Void{}), reakt.MakeReady(7))
	tup, err := f.Get()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tup.V2 != 7 {
		t.Fatalf("V2 = %d, want 7", tup.V2)
	}
}

func TestWaitAllSucceed3ErrorObservesAll(t *testing.T) {
	r := reakt.NewReactor()
	boom := errors.New("boom")
	pc := reakt.NewPromise[int](r)
	f := reakt.WaitAllSucceed3(reakt.MakeReady(1), reakt.MakeFailed[int](boom), pc.GetFuture())
	if f.Available() {
		t.Fatal("aggregate resolved before all inputs")
	}
	pc.SetValue(3)
	r.RunUntilIdle()
	if _, err := f.Get(); !errors.Is(err, boom) {
		t.Fatalf("got %v, want boom", err)
	}
}

func TestWaitAll3MixedCompletion(t *testing.T) {
	r := reakt.NewReactor()
	pa := reakt.NewPromise[int](r)
	f := reakt.WaitAll3(pa.GetFuture(), reakt.MakeReady("mid"), reakt.MakeReady(3.5))
	pa.SetValue(1)
	r.RunUntilIdle()
	tup, _ := f.Get()
	v1, _ := tup.V1.Get()
	v2, _ := tup.V2.Get()
	v3, _ := tup.V3.Get()
	if v1 != 1 || v2 != "mid" || v3 != 3.5 {
		t.Fatalf("got (%v, %v, %v)", v1, v2, v3)
	}
}

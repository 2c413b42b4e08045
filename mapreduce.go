// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

// MapReduce transforms each element with an asynchronous mapper and folds
// the mapped values into an accumulator with a synchronous reducer,
// yielding the final accumulator.
//
// Every mapper invocation launches immediately, so mapped work may
// overlap; only the reduction is sequentialized, threaded through a chain
// of continuations. The first mapper or reducer error wins: later mapped
// values are observed and discarded, and the error resolves the returned
// future.
func MapReduce[T, A, R any](xs []T, mapper func(T) Future[A], initial R, reduce func(R, A) R) Future[R] {
	type state struct {
		result R
		reduce func(R, A) R
	}
	s := &state{result: initial, reduce: reduce}
	ret := MakeReady(Void{})
	for _, x := range xs {
		f := futurizeApply(mapper, x)
		prev := ret
		ret = ThenWrapped(f, func(ft Future[A]) Future[Void] {
			return ThenWrapped(prev, func(rt Future[Void]) Future[Void] {
				if rt.Failed() {
					ft.Ignore()
					return rt
				}
				rt.Ignore()
				v, err := ft.Get()
				if err != nil {
					return MakeFailed[Void](err)
				}
				return futurizeCall(func() Future[Void] {
					s.result = s.reduce(s.result, v)
					return MakeReady(Void{})
				})
			})
		})
	}
	return Then(ret, func(Void) Future[R] {
		return MakeReady(s.result)
	})
}

// Accumulator is the reducer-object side of [MapReduceTo]: a callable
// consuming one mapped value at a time, completing a future when the next
// value may be folded in.
type Accumulator[A any] interface {
	Accumulate(A) Future[Void]
}

// AccumulatorGet is an [Accumulator] that can yield a final value.
type AccumulatorGet[A, R any] interface {
	Accumulator[A]
	Get() R
}

// MapReduceTo is the reducer-object form of [MapReduce]: each mapped value
// is handed to the accumulator in sequence. Use it when the reduction is
// side-effecting, or compose the result with the accumulator's own
// accessor; [MapReduceGet] does the latter for accumulators with a Get.
func MapReduceTo[T, A any](xs []T, mapper func(T) Future[A], acc Accumulator[A]) Future[Void] {
	ret := MakeReady(Void{})
	for _, x := range xs {
		f := futurizeApply(mapper, x)
		prev := ret
		ret = ThenWrapped(f, func(ft Future[A]) Future[Void] {
			return ThenWrapped(prev, func(rt Future[Void]) Future[Void] {
				if rt.Failed() {
					ft.Ignore()
					return rt
				}
				rt.Ignore()
				v, err := ft.Get()
				if err != nil {
					return MakeFailed[Void](err)
				}
				return futurizeCall(func() Future[Void] {
					return acc.Accumulate(v)
				})
			})
		})
	}
	return ret
}

// MapReduceGet is [MapReduceTo] followed by the accumulator's Get.
func MapReduceGet[T, A, R any](xs []T, mapper func(T) Future[A], acc AccumulatorGet[A, R]) Future[R] {
	return Then(MapReduceTo(xs, mapper, acc), func(Void) Future[R] {
		return MakeReady(acc.Get())
	})
}

// summable constrains [Adder] to types the + operator accumulates.
type summable interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr |
		~float32 | ~float64 | ~string
}

// Adder is an [AccumulatorGet] that sums its inputs.
type Adder[R summable] struct {
	sum R
}

// Accumulate folds v into the running sum.
func (a *Adder[R]) Accumulate(v R) Future[Void] {
	a.sum += v
	return MakeReady(Void{})
}

// Get yields the sum.
func (a *Adder[R]) Get() R { return a.sum }

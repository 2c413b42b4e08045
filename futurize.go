// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

import "fmt"

// StopIteration is the two-valued tag loop bodies return to drive the
// sequential loop combinators: [Continue] runs another iteration, [Stop]
// terminates the loop successfully.
type StopIteration bool

const (
	// Continue requests another iteration.
	Continue StopIteration = false
	// Stop terminates the loop.
	Stop StopIteration = true
)

// Option carries the loop result of [RepeatUntilValue]: an empty option
// means keep looping, an engaged one terminates the loop with its value.
type Option[T any] struct {
	val T
	ok  bool
}

// Some creates an engaged option carrying v.
func Some[T any](v T) Option[T] {
	return Option[T]{val: v, ok: true}
}

// None creates an empty option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the option is engaged.
func (o Option[T]) IsSome() bool { return o.ok }

// Get returns the contained value and whether the option was engaged.
func (o Option[T]) Get() (T, bool) { return o.val, o.ok }

// PanicError is the error a combinator's outgoing future carries when a
// user callable panicked with a non-error value.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("reakt: callable panicked: %v", e.Value)
}

// recoveredError normalizes a recovered panic payload into an error,
// preserving identity when the payload already is one.
func recoveredError(p any) error {
	if err, ok := p.(error); ok {
		return err
	}
	return &PanicError{Value: p}
}

// Futurize lifts a synchronous callable into one returning a future.
// A returned error becomes a failed future; a panic is captured the same
// way. This is how bodies returning a bare value (a [StopIteration], an
// [Option], a result) feed combinators that consume only the future form.
func Futurize[T any](fn func() (T, error)) func() Future[T] {
	return func() Future[T] {
		return futurizeCall(func() Future[T] {
			v, err := fn()
			if err != nil {
				return MakeFailed[T](err)
			}
			return MakeReady(v)
		})
	}
}

// futurizeCall invokes a future-returning callable, converting a panic
// into a failed future. Synchronous panics never escape a combinator.
func futurizeCall[T any](fn func() Future[T]) (f Future[T]) {
	defer func() {
		if p := recover(); p != nil {
			f = MakeFailed[T](recoveredError(p))
		}
	}()
	return fn()
}

// futurizeApply is futurizeCall for a one-argument callable.
func futurizeApply[A, T any](fn func(A) Future[T], a A) (f Future[T]) {
	defer func() {
		if p := recover(); p != nil {
			f = MakeFailed[T](recoveredError(p))
		}
	}()
	return fn(a)
}

// futurizeValue lifts a fallible synchronous transformation's outcome.
func futurizeValue[A, T any](fn func(A) (T, error), a A) (f Future[T]) {
	defer func() {
		if p := recover(); p != nil {
			f = MakeFailed[T](recoveredError(p))
		}
	}()
	v, err := fn(a)
	if err != nil {
		return MakeFailed[T](err)
	}
	return MakeReady(v)
}

// futurizeMap lifts a pure synchronous transformation's outcome.
func futurizeMap[A, T any](fn func(A) T, a A) (f Future[T]) {
	defer func() {
		if p := recover(); p != nil {
			f = MakeFailed[T](recoveredError(p))
		}
	}()
	return MakeReady(fn(a))
}

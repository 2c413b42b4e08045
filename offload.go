// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

import "sync"

// Offload bridge. Submit is the one place where work leaves the reactor
// goroutine: the function runs on a pooled goroutine and its completion
// crosses back through the reactor's external queue, so the promise still
// resolves on the reactor goroutine and the single-threaded model holds
// everywhere else.

var envelopePool = sync.Pool{
	New: func() any { return new(envelope) },
}

// envelope carries one offloaded completion across the goroutine
// boundary. Envelopes are pooled; deliver runs on the reactor goroutine.
type envelope struct {
	deliver func()
}

func acquireEnvelope() *envelope {
	return envelopePool.Get().(*envelope)
}

func releaseEnvelope(e *envelope) {
	e.deliver = nil
	envelopePool.Put(e)
}

// Submit runs fn on a goroutine from the reactor's offload pool and
// returns a future for its result, resolved on the reactor goroutine
// during a later tick. When the pool is at its [WithOffloadLimit] bound,
// Submit blocks until a slot frees up.
func Submit[T any](r *Reactor, fn func() (T, error)) Future[T] {
	pr := NewPromise[T](r)
	r.inflight.Add(1)
	r.pool.Go(func() error {
		v, err := offloadCall(fn)
		e := acquireEnvelope()
		e.deliver = func() {
			if err != nil {
				pr.SetError(err)
			} else {
				pr.SetValue(v)
			}
		}
		r.external <- e
		return nil
	})
	return pr.GetFuture()
}

// offloadCall shields the pool goroutine from a panicking fn.
func offloadCall[T any](fn func() (T, error)) (v T, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = recoveredError(p)
		}
	}()
	return fn()
}

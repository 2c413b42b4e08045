// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

// WaitAll waits for every future in fs to resolve, successfully or not,
// and yields the same slice with each slot in its terminal state. Slots
// keep their input order regardless of completion order. The aggregate
// itself never fails; per-slot errors stay in their slots for the caller
// to examine.
//
// The walk skips ready entries; when every input is already ready the
// result is available synchronously with no allocation.
func WaitAll[T any](fs []Future[T]) Future[[]Future[T]] {
	return completeWaitAll(fs, 0)
}

func completeWaitAll[T any](fs []Future[T], pos int) Future[[]Future[T]] {
	for pos < len(fs) && fs[pos].Available() {
		pos++
	}
	if pos == len(fs) {
		return MakeReady(fs)
	}
	// Wait for the unready future, store its terminal state back into its
	// slot, and continue from the next index.
	pending := fs[pos]
	at := pos
	return ThenWrapped(pending, func(ft Future[T]) Future[[]Future[T]] {
		fs[at] = ft
		return completeWaitAll(fs, at+1)
	})
}

// WaitAllSucceed waits for every future in fs and yields their values in
// input order. If any input fails, the aggregate fails with one of the
// errors; the remaining results are still observed, then discarded.
func WaitAllSucceed[T any](fs []Future[T]) Future[[]T] {
	return ThenValue(WaitAll(fs), extractValues[T])
}

func extractValues[T any](fs []Future[T]) ([]T, error) {
	vals := make([]T, 0, len(fs))
	var ex error
	for _, f := range fs {
		if ex != nil {
			f.Ignore()
			continue
		}
		v, err := f.Get()
		if err != nil {
			ex = err
			continue
		}
		vals = append(vals, v)
	}
	if ex != nil {
		return nil, ex
	}
	return vals, nil
}

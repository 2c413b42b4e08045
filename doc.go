// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package reakt provides futures, promises, and asynchronous combinators
// on a cooperative, single-goroutine reactor.
//
// A [Future] is a handle to a value or error that resolves at most once;
// a [Promise] is its write end. Combinators compose futures into larger
// pipelines with well-defined sequencing, parallelism, deadline-bounded
// waiting, and fan-in semantics. The [Reactor] runs it all: one goroutine,
// a task queue per scheduling group, a timer heap, and a preemption probe
// that loop combinators consult to bound their latency contribution.
//
// # Design Philosophy
//
// reakt provides:
//   - Hand-written continuation state machines, one per combinator family
//   - Allocation-free fast paths when inputs are already ready, for all
//     combinators except the map/reduce forms and [DoForEachSeq]
//     (construction of pending pipelines may allocate)
//   - Exactly-once resolution of every outgoing promise, error paths
//     included
//
// Combinators do not allocate while their inputs come back ready, apart
// from a result slice: ready futures carry their result by value, and
// tight loops collapse chains of ready futures. The exceptions are
// [MapReduce], [MapReduceTo] and [MapReduceGet], which allocate their
// reduction closures even when every input is ready, and [DoForEachSeq],
// which allocates a pull iterator over its sequence. [Repeat],
// [RepeatUntilValue], [DoUntil], [ParallelForEach] and the typed
// WaitAllN forms allocate their state once, when the first pending future
// appears, and reuse it for the rest of the invocation; [DoForEach], the
// slice [WaitAll] forms and the map/reduce forms chain a new continuation
// for each pending input instead. State objects own themselves: they
// are transferred into a future's continuation slot, re-enter when that
// future resolves, and release themselves by resolving their outgoing
// promise.
//
// # Futures and Promises
//
//   - [MakeReady], [MakeFailed]: Ready futures, allocation-free
//   - [NewPromise], [Promise.SetValue], [Promise.SetError]: The write end
//   - [Future.Available], [Future.Failed]: Non-destructive probes
//   - [Future.Get], [Future.Error], [Future.Ignore]: Result extraction
//   - [Future.ForwardTo]: Resolve a promise with this future's result
//
// # Composition
//
//   - [Then]: Sequence a callable after a future's value
//   - [ThenValue]: Sequence a synchronous fallible transformation
//   - [Map]: Apply a pure transformation
//   - [ThenWrapped]: Sequence a callable observing the terminal future,
//     error included
//
// # Sequential Loops
//
// Bodies return futures; [Futurize] lifts synchronous bodies. Loops run a
// synchronous fast loop over ready results, suspend on the first pending
// future, and yield to the reactor when [Reactor.NeedPreempt] asks.
//
//   - [Repeat]: Loop until the body fails or returns [Stop]
//   - [RepeatUntilValue]: Loop until the body yields an engaged [Option]
//   - [DoUntil]: Loop until a stop condition holds
//   - [KeepDoing]: Loop until the body fails
//   - [DoForEach], [DoForEachSeq]: One element at a time, fail fast
//
// # Fan-Out and Fan-In
//
//   - [ParallelForEach], [ParallelForEachSeq]: Start every element's
//     action immediately, resolve after the last completes, surface one
//     error
//   - [WaitAll], [WaitAll2], [WaitAll3], [WaitAll4]: Wait for all inputs,
//     deliver each slot's terminal state, never fail as an aggregate
//   - [WaitAllSucceed], [WaitAllSucceed2], [WaitAllSucceed3],
//     [WaitAllSucceed4]: Wait for all inputs, deliver unwrapped values or
//     one of the errors
//
// # Map/Reduce
//
//   - [MapReduce]: Asynchronous map, synchronous left fold
//   - [MapReduceTo], [MapReduceGet]: Reducer-object forms
//   - [Adder]: A summing reducer
//
// # Time
//
//   - [WithTimeout], [WithTimeoutErr]: Race a future against a deadline;
//     timing out abandons the wait but never cancels the work
//   - [Sleep], [Later], [Now]: Timer-backed, next-iteration, and ready
//     futures
//   - [Clock], [SystemClock], [ManualClock]: Pluggable time sources
//
// # Reactor
//
//   - [NewReactor] with [WithClock], [WithQuota], [WithOffloadLimit]
//   - [Reactor.Tick], [Reactor.RunUntilIdle], [Await]: Driving the loop
//   - [Reactor.NewSchedulingGroup], [WithSchedulingGroup]: Named queues
//     with their own share of each tick
//   - [Submit]: Run blocking work on a bounded goroutine pool and resolve
//     its future back on the reactor goroutine
//
// # Concurrency Model
//
// Everything except [Submit]'s function runs on the goroutine driving the
// reactor. There are no locks and no data races by construction: a
// combinator runs atomically between suspension points, and a suspension
// happens only when a continuation is installed on a pending future or a
// loop voluntarily yields. Dropping an outgoing future does not stop its
// combinator; the state lives on its input future's continuation slot
// until natural completion.
package reakt

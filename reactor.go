// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// defaultQuota bounds how many times a loop combinator may probe
// [Reactor.NeedPreempt] before the probe answers yes.
const defaultQuota = 128

// Reactor is a cooperative, single-goroutine task scheduler. Combinators
// run on it, suspend on it, and deliver their results through it.
//
// All methods must be called from the goroutine driving the reactor,
// except the internal offload delivery path, which crosses goroutines
// through the external completion queue only.
type Reactor struct {
	clock  Clock
	quota  int
	polls  int
	groups []*SchedulingGroup
	def    *SchedulingGroup

	// current is the group whose task is running; tasks scheduled while it
	// runs land in the same group.
	current *SchedulingGroup

	timers timerHeap

	external chan *envelope
	inflight atomic.Int64
	pool     errgroup.Group
}

// ReactorOption configures a reactor at construction time.
type ReactorOption func(*Reactor)

// WithClock sets the reactor's time source. Tests pass a [ManualClock].
func WithClock(c Clock) ReactorOption {
	return func(r *Reactor) { r.clock = c }
}

// WithQuota sets the preemption quota. Smaller quotas make loop
// combinators yield more often.
func WithQuota(n int) ReactorOption {
	return func(r *Reactor) { r.quota = n }
}

// WithOffloadLimit bounds how many [Submit] functions may run at once.
func WithOffloadLimit(n int) ReactorOption {
	return func(r *Reactor) { r.pool.SetLimit(n) }
}

// NewReactor creates a reactor with a default scheduling group, the system
// clock, and the default preemption quota.
func NewReactor(opts ...ReactorOption) *Reactor {
	r := &Reactor{
		clock:    SystemClock{},
		quota:    defaultQuota,
		external: make(chan *envelope, 64),
	}
	r.def = &SchedulingGroup{r: r, name: "default"}
	r.groups = []*SchedulingGroup{r.def}
	r.current = r.def
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Clock returns the reactor's time source.
func (r *Reactor) Clock() Clock { return r.clock }

// NeedPreempt reports whether the running task has exhausted its quota and
// should yield. Each probe counts against the quota; the counter resets
// every time the reactor dispatches a task, so a loop that probes at each
// iteration runs at most quota iterations per dispatch.
func (r *Reactor) NeedPreempt() bool {
	r.polls++
	return r.polls >= r.quota
}

// Schedule enqueues t on the scheduling group that is currently running.
func (r *Reactor) Schedule(t task) {
	r.current.q = append(r.current.q, t)
}

// ScheduleIn enqueues t on sg.
func (r *Reactor) ScheduleIn(sg *SchedulingGroup, t task) {
	sg.q = append(sg.q, t)
}

// Tick runs one reactor iteration: deliver offloaded completions, fire due
// timers, then run each scheduling group's queue as it stands when the
// iteration reaches that group (capped by the group's shares). Tasks queued
// by this iteration's completions and timers therefore run in it; tasks a
// running task queues on its own group run on the next one. Reports
// whether any work was performed.
func (r *Reactor) Tick() bool {
	worked := r.drainExternal()

	now := r.clock.Now()
	for r.timers.dueBefore(now) {
		t := r.timers.pop()
		t.state = timerFired
		r.polls = 0
		t.fn()
		worked = true
	}

	for _, g := range r.groups {
		n := len(g.q)
		if g.shares > 0 && n > int(g.shares) {
			n = int(g.shares)
		}
		for i := 0; i < n; i++ {
			t := g.q[0]
			g.q = g.q[1:]
			r.current = g
			r.polls = 0
			t.runAndDispose()
			worked = true
		}
	}
	r.current = r.def

	return worked
}

// RunUntilIdle ticks until no queued task, due timer, or buffered
// completion remains. It does not wait for offloaded work still running;
// use [Await] for that.
func (r *Reactor) RunUntilIdle() {
	for r.Tick() {
	}
}

// Close waits for all offloaded work to finish. The reactor must still be
// ticked (or awaited) afterwards if completions remain queued.
func (r *Reactor) Close() error {
	return r.pool.Wait()
}

func (r *Reactor) drainExternal() bool {
	worked := false
	for {
		select {
		case e := <-r.external:
			r.deliver(e)
			worked = true
		default:
			return worked
		}
	}
}

func (r *Reactor) deliver(e *envelope) {
	e.deliver()
	releaseEnvelope(e)
	r.inflight.Add(-1)
}

// Await drives the reactor until f resolves, then extracts its result.
// When the reactor goes idle it blocks on offloaded completions if any are
// in flight, or sleeps until the next timer deadline if the clock can
// sleep. Idle with neither is a deadlock and panics.
func Await[T any](r *Reactor, f Future[T]) (T, error) {
	for !f.Available() {
		if r.Tick() {
			continue
		}
		if r.inflight.Load() > 0 {
			r.deliver(<-r.external)
			continue
		}
		if at, ok := r.timers.next(); ok {
			if c, ok := r.clock.(sleeper); ok {
				c.sleepUntil(at)
				continue
			}
		}
		panic("reakt: Await would deadlock: reactor idle")
	}
	return f.Get()
}

// SchedulingGroup is a named task queue within a reactor. Groups with
// nonzero shares run at most that many tasks per tick; zero means
// unbounded.
type SchedulingGroup struct {
	r      *Reactor
	name   string
	shares uint
	q      []task
}

// NewSchedulingGroup registers a new group on the reactor.
func (r *Reactor) NewSchedulingGroup(name string, shares uint) *SchedulingGroup {
	sg := &SchedulingGroup{r: r, name: name, shares: shares}
	r.groups = append(r.groups, sg)
	return sg
}

// Name returns the group's name.
func (sg *SchedulingGroup) Name() string { return sg.name }

// Active reports whether the reactor is currently running this group,
// meaning a callable dispatched to it may run immediately.
func (sg *SchedulingGroup) Active() bool { return sg.r.current == sg }

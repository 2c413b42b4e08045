// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package reakt

import "time"

// Clock is the time source a [Reactor] reads when firing timers.
// Implementations need not be monotonic, but going backwards will
// delay armed timers accordingly.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the operating system clock.
// It is the default clock of [NewReactor].
type SystemClock struct{}

// Now implements [Clock].
func (SystemClock) Now() time.Time { return time.Now() }

// sleepUntil parks the calling goroutine until t. Await uses it when the
// reactor is idle with armed timers; only real clocks can sleep.
func (SystemClock) sleepUntil(t time.Time) {
	if d := time.Until(t); d > 0 {
		time.Sleep(d)
	}
}

// sleeper is implemented by clocks that can park until a deadline.
type sleeper interface {
	sleepUntil(time.Time)
}

// ManualClock is a test clock that only moves when told to.
// Timers armed against it fire during the first tick after [ManualClock.Advance]
// moves the clock to or past their deadline.
type ManualClock struct {
	now time.Time
}

// NewManualClock creates a manual clock positioned at start.
func NewManualClock(start time.Time) *ManualClock {
	return &ManualClock{now: start}
}

// Now implements [Clock].
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

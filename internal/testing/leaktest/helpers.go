// Package leaktest detects goroutines left running by worker pools, schedulers and publishers under test.
package leaktest

import (
	"runtime"
	"testing"
	"time"
)

const (
	settleTimeout = 500 * time.Millisecond
	pollInterval  = 10 * time.Millisecond
	stackDumpSize = 64 << 10
)

// Baseline is the goroutine count taken before the code under test starts
type Baseline struct {
	t     testing.TB
	count int
}

// Take records the current goroutine count
func Take(t testing.TB) *Baseline {
	t.Helper()
	runtime.Gosched()
	return &Baseline{t: t, count: runtime.NumGoroutine()}
}

// Verify fails the test when more than extra goroutines outlive the baseline.
// Goroutines that are still exiting get settleTimeout to finish.
func (b *Baseline) Verify(extra int) {
	b.t.Helper()

	if leaked := settle(b.count + extra); leaked > 0 {
		buf := make([]byte, stackDumpSize)
		n := runtime.Stack(buf, true)
		b.t.Errorf("%d goroutine(s) still running (baseline %d, allowed extra %d)\n%s",
			leaked, b.count, extra, buf[:n])
	}
}

// settle polls until the goroutine count drops to limit and returns the excess left at the deadline
func settle(limit int) int {
	deadline := time.Now().Add(settleTimeout)
	for {
		excess := runtime.NumGoroutine() - limit
		if excess <= 0 || time.Now().After(deadline) {
			return excess
		}
		time.Sleep(pollInterval)
	}
}

// CheckNoGoroutineLeak runs fn and fails if it leaves goroutines behind
func CheckNoGoroutineLeak(t testing.TB, fn func()) {
	t.Helper()

	base := Take(t)
	fn()
	base.Verify(0)
}

package kernel

import "sync"

// AtomicSection is the scoped mutual-exclusion primitive every kernel
// mutation of shared state (semaphore counters, FIFO indices, a task's
// blocked/sleep fields) goes through. On real hardware this is
// CPU_disable_irq/CPU_enable_irq around a critical section; here it is a
// mutex, because task code and the simulated interrupt-context handlers
// (event tick, dispatch) are all real goroutines that can otherwise run
// concurrently.
//
// The source's primitive supports blind nesting (an inner disable is a
// no-op, the outer enable is the one that actually re-enables). Go's
// sync.Mutex is deliberately not reentrant, so this port does not recreate
// a counting/nesting lock; instead every public kernel entry point
// acquires the section itself through Lock/Unlock (some, such as Sleep and
// FIFOGet, in two spans one after the other), and any code that must run
// while the section is already held calls the unexported *Locked sibling
// of that entry point directly. No code path acquires the section while
// already holding it, so nesting is avoided by construction rather than
// counted.
type AtomicSection struct {
	mu sync.Mutex
}

// Do runs f with the section held, releasing it on every exit path
// (including a panic unwinding through f).
func (a *AtomicSection) Do(f func()) {
	a.mu.Lock()
	defer a.mu.Unlock()
	f()
}

// Lock and Unlock are exposed for call sites that need to hold the section
// across more than a single straight-line f (e.g. pend's blocking path,
// which must leave the section before it parks the calling task).
func (a *AtomicSection) Lock()   { a.mu.Lock() }
func (a *AtomicSection) Unlock() { a.mu.Unlock() }

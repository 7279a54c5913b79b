package kernel

// Semaphore is a signed counting synchronization primitive. A
// nonnegative value counts available permits; a negative value counts
// parked waiters. Every field is mutated only under the owning Kernel's
// atomic section, matching the gvisor sentry semaphore package's
// lock-guarded counter, adapted here to a single global value instead of
// a System V semaphore set.
type Semaphore struct {
	value int32
}

// SemInit sets the starting counter value. Must be called before any Pend
// or Post reaches this semaphore, and never again afterward — there is no
// thread-safety story for re-initializing a live semaphore.
func (k *Kernel) SemInit(sem *Semaphore, value int32) {
	sem.value = value
}

// Pend decrements sem and blocks the calling task if the result is
// negative. It returns only once the task has been unblocked by a
// matching Post. t must be the task currently running on this Kernel.
func (k *Kernel) Pend(t *Task, sem *Semaphore) {
	k.atomic.Lock()
	sem.value--
	blocks := sem.value < 0
	if blocks {
		t.blocked = sem
	}
	k.atomic.Unlock()

	if blocks {
		k.dispatcher.yield(t)
	}
}

// Post increments sem and, if the result is not positive, unblocks
// exactly one task parked on it. The search starts at running.next and
// walks the circular list in admission order, so tasks queued on the same
// semaphore are released in rotation rather than LIFO. Post never itself
// requests a dispatch: the unblocked task becomes runnable and is picked
// up at the next scheduling point.
func (k *Kernel) Post(sem *Semaphore) {
	k.atomic.Lock()
	defer k.atomic.Unlock()
	k.postLocked(sem)
}

func (k *Kernel) postLocked(sem *Semaphore) {
	sem.value++
	if sem.value > 0 {
		return
	}

	n := k.tasks.len()
	cur := k.tasks.at(k.running).next
	for i := 0; i < n; i++ {
		t := k.tasks.at(cur)
		if t.blocked == sem {
			t.blocked = nil
			return
		}
		cur = t.next
	}
	// Invariant violated: sem.value <= 0 implies at least |value| tasks
	// are blocked on sem. Misuse (e.g. Post on a semaphore nothing ever
	// Pends) is undefined behavior per the release contract; a debug
	// build would want to panic here instead of silently continuing.
}

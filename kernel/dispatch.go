package kernel

// Dispatcher is the Go-native stand-in for the source's architecture-
// specific assembly stub. On real hardware, "save context" is pushing
// callee-saved registers onto the outgoing task's stack and writing its
// stack pointer into the TCB; "restore context" is the symmetric load
// followed by an exception return. Go offers no way to suspend and
// resume a goroutine's machine state from outside it, so this port
// replaces the register save/restore with a handoff: the outgoing task's
// own goroutine blocks on its resumeCh, and the dispatcher's job reduces
// to deciding who runs next and unblocking exactly that one goroutine's
// channel.
//
// Every transition the spec names still applies:
//   - current -> blocked/ready: the running task calls yield, which (if it
//     is not already holding the atomic section) picks the next runnable
//     task, signals it, and parks the caller on its own resumeCh.
//   - blocked/ready -> current: the signaled channel receive returning is
//     the restore.
type Dispatcher struct {
	k *Kernel
}

// dispatcherYield performs one dispatch: request it from the board the way
// OS_suspend's SysTick_set_pending does, select the next runnable task
// under the atomic section, hand it the CPU, and park the caller until it
// is resumed. t must be the task currently occupying k.running.
//
// The board has no real interrupt to defer to here (there is no separate
// "later, on the dispatch tick" for this port to land on), so the pend
// request and the actual switch happen back to back on the caller's own
// goroutine; PendDispatch still runs so every voluntary yield exercises
// the same board hook a forced dispatch tick would.
func (k *Kernel) dispatcherYield(t *Task) {
	k.board.PendDispatch()

	k.atomic.Lock()
	next := k.scheduler.Select(k.tasks, k.running)
	k.running = next
	k.atomic.Unlock()

	if next == t.idx {
		// Nothing else is runnable besides t itself (or the walk
		// selected t again because everyone else is blocked); there
		// is no handoff to perform and no reason to park.
		return
	}

	k.tasks.at(next).resumeCh <- struct{}{}
	<-t.resumeCh
}

// yield is the method task code actually calls (via Task.Suspend/Sleep
// and the blocking path of Pend/FIFOGet).
func (d *Dispatcher) yield(t *Task) {
	d.k.dispatcherYield(t)
}

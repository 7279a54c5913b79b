package kernel

// stackSentinel reproduces the debug fill pattern the original
// init_task_stack wrote into the last 16 words of each task's virgin
// stack (0x0N0N0N0N for general-purpose register N). Go manages real
// goroutine stacks, so there is no literal stack pointer to seed; the
// sentinel survives here purely as a debug aid carried over from the
// source, checkable through Task.StackSentinelIntact, and written into
// the tail of a per-task array sized by Config.StackWords the same way
// g_stacks[task][STACK_SIZE-16..STACK_SIZE-1] sits at the end of
// g_stacks[task][STACK_SIZE].
var stackSentinel = [16]uint32{
	0x04040404, 0x05050505, 0x06060606, 0x07070707,
	0x08080808, 0x09090909, 0x10101010, 0x11111111,
	0x00000000, 0x01010101, 0x02020202, 0x03030303,
	0x12121212, 0x14141414, 0x00000000, 0x01000000,
}

// Task is the Go representation of a TCB. A Task owns exactly one
// goroutine, which runs its entry function and parks on resumeCh whenever
// it is not the kernel's running task.
type Task struct {
	idx      int
	priority uint8
	blocked  *Semaphore // non-nil while parked on a semaphore
	sleep    uint32     // ms remaining; 0 means not sleeping
	next     int        // index of the next TCB in the circular list

	k        *Kernel
	resumeCh chan struct{} // signaled by the dispatcher to let this task run
	entry    func(*Task)

	// stackGuard is Config.StackWords long, mirroring g_stacks[task]; only
	// its trailing 16 words are ever written (the sentinel, at admission).
	// It is never written to by kernel code after admission; a debug
	// build can compare the tail against stackSentinel to notice a task
	// that corrupted its declared working set, the nearest analogue of
	// the source's stack-overflow-into-sentinel-words detection.
	stackGuard []uint32
}

// Priority returns the task's fixed scheduling priority (0 is highest).
func (t *Task) Priority() uint8 { return t.priority }

// StackSentinelIntact reports whether the debug sentinel region is
// unmodified. It is never consulted by the scheduler; stack overflow
// detection is explicitly out of the kernel's release contract.
func (t *Task) StackSentinelIntact() bool {
	tail := t.stackGuard[len(t.stackGuard)-len(stackSentinel):]
	for i, want := range stackSentinel {
		if tail[i] != want {
			return false
		}
	}
	return true
}

// Suspend voluntarily releases the CPU, pending a scheduler dispatch. A
// sleep time of 0 passed to Sleep is equivalent to calling Suspend.
func (t *Task) Suspend() {
	t.k.dispatcher.yield(t)
}

// Sleep sets this task's sleep countdown and releases the CPU. Because
// sleep is nonzero the scheduler will not re-select this task until the
// event-tick handler has decremented it to zero.
func (t *Task) Sleep(ms uint32) {
	if ms == 0 {
		t.Suspend()
		return
	}
	t.k.atomic.Lock()
	t.sleep = ms
	t.k.atomic.Unlock()
	t.k.dispatcher.yield(t)
}

// Pend is a convenience forwarder so task code can write t.Pend(sem)
// instead of threading the Kernel through every call site.
func (t *Task) Pend(sem *Semaphore) { t.k.Pend(t, sem) }

// Post forwards to the owning Kernel; it is legal from any task context.
func (t *Task) Post(sem *Semaphore) { t.k.Post(sem) }

// FIFOPut forwards to the owning Kernel's global FIFO.
func (t *Task) FIFOPut(data uint32) error { return t.k.FIFOPut(data) }

// FIFOGet forwards to the owning Kernel's global FIFO, blocking this task
// while the FIFO is empty.
func (t *Task) FIFOGet() uint32 { return t.k.FIFOGet(t) }

// taskTable is the fixed-capacity circular list of admitted TCBs, indexed
// by admission order. The list is built once during admission and is
// never restructured after Start.
type taskTable struct {
	tasks []*Task
	cap   int
}

func newTaskTable(capacity int) *taskTable {
	return &taskTable{tasks: make([]*Task, 0, capacity), cap: capacity}
}

func (tt *taskTable) len() int { return len(tt.tasks) }

// admit appends a new TCB to the end of the circular list in insertion
// order, closing the cycle back to index 0.
func (tt *taskTable) admit(k *Kernel, entry func(*Task), priority uint8) (*Task, error) {
	if len(tt.tasks) >= tt.cap {
		return nil, ErrTableFull
	}
	idx := len(tt.tasks)
	stackGuard := make([]uint32, k.cfg.StackWords)
	copy(stackGuard[len(stackGuard)-len(stackSentinel):], stackSentinel[:])
	t := &Task{
		idx:        idx,
		priority:   priority,
		blocked:    nil,
		sleep:      0,
		next:       0, // closes the cycle; fixed up below
		k:          k,
		resumeCh:   make(chan struct{}),
		entry:      entry,
		stackGuard: stackGuard,
	}
	tt.tasks = append(tt.tasks, t)
	if idx > 0 {
		tt.tasks[idx-1].next = idx
	}
	t.next = 0
	return t, nil
}

func (tt *taskTable) at(i int) *Task { return tt.tasks[i] }

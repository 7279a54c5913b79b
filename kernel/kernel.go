// Package kernel implements the portable core of a small preemptive
// fixed-priority multitasking kernel: task admission, the scheduler,
// counting semaphores, a bounded FIFO, sleep accounting and periodic
// event signaling. It is the Go-native rework of a bare-metal ARM
// Cortex-M kernel; see SPEC_FULL.md for the mapping from hardware
// concepts (register context, NVIC, a timer IRQ) to their Go equivalents
// (goroutine handoff, the board.Board interface, a fakeable 1 kHz clock).
package kernel

import "log"

// idlePriority is the priority given to the kernel's automatically
// admitted idle task: the lowest usable value, so any admitted task
// preempts it.
const idlePriority uint8 = 254

// Board is the hardware interface the core consumes: two independent
// 1 kHz sources (event accounting and scheduler dispatch), a way to pend
// the dispatch interrupt from task context, and the CPU clock used to
// convert 1 kHz into cycle counts on real hardware. Out-of-scope hardware
// concerns (PLL/clock-tree setup, NVIC priority programming, the
// register-banking exception stubs) live entirely behind this interface.
type Board interface {
	// StartEventTicker arms the 1 kHz event source; onTick is called once
	// per period until Stop.
	StartEventTicker(periodMS uint32, onTick func())
	// StartDispatchTicker arms the 1 kHz dispatch source.
	StartDispatchTicker(periodMS uint32, onTick func())
	// PendDispatch requests a dispatch as soon as possible, the software
	// equivalent of dispatch_pend()/OS_suspend's SysTick_set_pending.
	PendDispatch()
	// CPUClockHz returns the core clock frequency. Start sizes the tick
	// periods in milliseconds from Config.EventHz and Config.DispatchHz and
	// does not consult it.
	CPUClockHz() uint32
	// Stop releases both tickers. Used by tests and bounded demo runs;
	// real firmware never calls it.
	Stop()
}

// Kernel is the process-wide kernel-state aggregate: the TCB table, the
// ECB table, the one global FIFO and the running-task pointer, plus the
// atomic section that guards all of it. There is no package-level
// singleton; every operation is a method on a *Kernel handle returned by
// New.
type Kernel struct {
	cfg Config

	atomic    AtomicSection
	tasks     *taskTable
	events    *eventTable
	fifo      FIFO
	scheduler Scheduler
	dispatcher Dispatcher

	running       int
	millis        uint32
	started       bool
	dispatchTicks uint64

	idle  *Task
	board Board
}

// New builds a Kernel against the given configuration and hardware board.
// The FIFO is initialized empty; callers may call FIFOInit again before
// Start to empty it, but its capacity always comes from cfg.FIFOSize and
// cannot change after New.
func New(cfg Config, board Board) *Kernel {
	k := &Kernel{
		cfg:    cfg,
		tasks:  newTaskTable(cfg.MaxTasks + 1), // +1 for the idle task
		events: newEventTable(cfg.MaxEvents),
		board:  board,
	}
	k.dispatcher = Dispatcher{k: k}
	k.FIFOInit()
	k.idle = k.mustAdmitIdle()
	return k
}

// AdmitTask appends a new TCB and spawns its goroutine. The goroutine
// immediately parks on its resume channel; it does not execute entry
// until Start (or a later dispatch) selects it, matching the source's
// "stack pre-populated so the first restore resumes at entry with
// interrupts enabled."
func (k *Kernel) AdmitTask(entry func(*Task), priority uint8) (*Task, error) {
	if k.started {
		// Admission after Start is undefined behavior per the release
		// contract; a debug build logs instead of silently corrupting
		// the table.
		log.Printf("[rtos] AdmitTask called after Start")
	}
	t, err := k.tasks.admit(k, entry, priority)
	if err != nil {
		return nil, err
	}
	go func() {
		<-t.resumeCh
		t.entry(t)
	}()
	return t, nil
}

func (k *Kernel) mustAdmitIdle() *Task {
	t, err := k.AdmitTask(func(t *Task) {
		for {
			t.Suspend()
		}
	}, idlePriority)
	if err != nil {
		// cfg.MaxTasks+1 capacity always has room for exactly this
		// one extra admission; a failure here means New was given an
		// inconsistent Config.
		panic("rtos: no room for idle task: " + err.Error())
	}
	return t
}

// Start arms the two 1 kHz hardware sources and performs the first
// dispatch. It requires at least one admitted task beyond the automatic
// idle task and never returns on success.
func (k *Kernel) Start() error {
	if k.tasks.len() < 2 {
		return errNoTasks
	}
	k.started = true

	k.board.StartEventTicker(1000/k.cfg.EventHz, k.handleEventTick)
	k.board.StartDispatchTicker(1000/k.cfg.DispatchHz, k.handleDispatchTick)

	k.atomic.Lock()
	first := k.scheduler.Select(k.tasks, k.idle.idx)
	k.running = first
	k.atomic.Unlock()

	k.tasks.at(first).resumeCh <- struct{}{}

	// Start itself is not a task; it has nothing further to do but
	// block forever, matching "never returns" on the calling goroutine.
	block := make(chan struct{})
	<-block
	return nil
}

// handleEventTick is the simulated 1 kHz event-timer IRQ entry point.
func (k *Kernel) handleEventTick() {
	k.atomic.Lock()
	k.onEventTickLocked()
	k.atomic.Unlock()
}

// handleDispatchTick is the simulated 1 kHz scheduler-dispatch IRQ entry
// point. On real hardware this preempts whatever instruction is running
// and performs a full context switch unconditionally. This port cannot
// suspend an arbitrary running goroutine from the outside (see
// SPEC_FULL.md §0), so a tick here only records that a dispatch was
// requested; the actual switch still happens at the running task's next
// voluntary suspension point. Tasks that must stay responsive under a
// lower-priority busy loop call Suspend once per loop iteration.
func (k *Kernel) handleDispatchTick() {
	k.atomic.Lock()
	k.dispatchTicks++
	k.atomic.Unlock()
}

// Millis returns the kernel's monotonically increasing millisecond
// counter, as observed at the last event tick.
func (k *Kernel) Millis() uint32 {
	k.atomic.Lock()
	defer k.atomic.Unlock()
	return k.millis
}

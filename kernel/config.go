package kernel

// Config holds the compile-time-constant sizing of the kernel's static
// tables. Everything here corresponds to a #define in the original source
// and must be settled before New; nothing here is mutable once a Kernel is
// running.
type Config struct {
	MaxTasks    int    // NUM_TASKS
	MaxEvents   int    // NUM_EVENTS
	StackWords  int    // STACK_SIZE, per-task stackGuard length (sentinel lives in its last 16 words)
	FIFOSize    int    // FIFO_SIZE
	CPUClockHz  uint32 // CPU_CLOCK_FREQ
	EventHz     uint32 // EVENT_FREQ
	DispatchHz  uint32 // TASK_FREQ
}

// DefaultConfig mirrors the constants used by the original firmware image:
// 8 tasks, 2 events, 100 words/task, a 10-entry FIFO, 80 MHz core clock and
// 1 kHz event/dispatch sources.
func DefaultConfig() Config {
	return Config{
		MaxTasks:   8,
		MaxEvents:  2,
		StackWords: 100,
		FIFOSize:   10,
		CPUClockHz: 80_000_000,
		EventHz:    1000,
		DispatchHz: 1000,
	}
}

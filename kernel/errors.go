package kernel

import "errors"

// ErrTableFull is returned by AdmitTask and AdmitEvent when the fixed-size
// TCB or ECB table has no room for another entry.
var ErrTableFull = errors.New("rtos: table full")

// ErrFIFOFull is returned by FIFOPut when the global FIFO has no free slot.
// The producer must drop the data, retry later, or treat it as fatal; the
// kernel never buffers beyond the configured capacity.
var ErrFIFOFull = errors.New("rtos: fifo full")

// errNoTasks is returned by Start when no task beyond the automatically
// admitted idle task has been admitted.
var errNoTasks = errors.New("rtos: start requires at least one admitted task")

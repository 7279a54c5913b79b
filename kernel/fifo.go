package kernel

// FIFO is the single global bounded ring buffer. Its current-size counter
// is itself a Semaphore, so a consumer blocked on an empty FIFO is parked
// exactly the way a task pending any other semaphore would be.
type FIFO struct {
	data   []uint32
	putIdx int
	getIdx int
	size   Semaphore
}

// FIFOInit resets indices and the size semaphore to empty. Must run
// before Start; capacity is fixed by Config.FIFOSize for the life of the
// Kernel.
func (k *Kernel) FIFOInit() {
	k.fifo.data = make([]uint32, k.cfg.FIFOSize)
	k.fifo.putIdx = 0
	k.fifo.getIdx = 0
	k.SemInit(&k.fifo.size, 0)
}

// FIFOPut writes data at the put index and posts the size semaphore. It
// never blocks: a full FIFO returns ErrFIFOFull and the caller must drop,
// retry, or treat it as fatal. The full-check and write happen inside one
// atomic section so two concurrent producers (task and ISR context, or
// two tasks) cannot both observe room for one slot and overwrite it — the
// source's fifo_put lacks this and the spec calls it out as an Open
// Question the implementation should close.
func (k *Kernel) FIFOPut(data uint32) error {
	k.atomic.Lock()
	defer k.atomic.Unlock()

	if int(k.fifo.size.value) == len(k.fifo.data) {
		return ErrFIFOFull
	}
	k.fifo.data[k.fifo.putIdx] = data
	k.fifo.putIdx = (k.fifo.putIdx + 1) % len(k.fifo.data)
	k.postLocked(&k.fifo.size)
	return nil
}

// FIFOGet pends the size semaphore (blocking the calling task while the
// FIFO is empty), then reads and advances the get index. The read/advance
// pair is also inside the atomic section so a second concurrent consumer
// cannot race the index update — the source documents single-consumer use
// only; this port keeps the invariant safe even if that assumption is
// violated.
func (k *Kernel) FIFOGet(t *Task) uint32 {
	k.Pend(t, &k.fifo.size)

	k.atomic.Lock()
	defer k.atomic.Unlock()
	data := k.fifo.data[k.fifo.getIdx]
	k.fifo.getIdx = (k.fifo.getIdx + 1) % len(k.fifo.data)
	return data
}

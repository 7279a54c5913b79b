package kernel

// Event is an Event Control Block: a periodic post of sem every periodMS
// milliseconds, driven by the simulated 1 kHz event-tick source. A period
// of 0 marks an inactive slot.
type Event struct {
	sem       *Semaphore
	periodMS  uint32
	remaining uint32 // countdown to the next post; reloaded from periodMS
}

type eventTable struct {
	events []*Event
	cap    int
}

func newEventTable(capacity int) *eventTable {
	return &eventTable{events: make([]*Event, 0, capacity), cap: capacity}
}

// AdmitEvent appends a periodic event. Must be called before Start.
func (k *Kernel) AdmitEvent(sem *Semaphore, periodMS uint32) (*Event, error) {
	if len(k.events.events) >= k.events.cap {
		return nil, ErrTableFull
	}
	e := &Event{sem: sem, periodMS: periodMS, remaining: periodMS}
	k.events.events = append(k.events.events, e)
	return e, nil
}

// onEventTickLocked is the simulated 1 kHz event-timer handler. It must run with
// the atomic section held (it is invoked from the board's event-timer
// goroutine, which calls in through Kernel.handleEventTick).
//
// Ordering matters: sleep decrement happens before event dispatch so a
// task whose sleep expires on the same tick as an event it is waiting on
// is already runnable when that event's Post looks for it.
func (k *Kernel) onEventTickLocked() {
	for i := 0; i < k.tasks.len(); i++ {
		t := k.tasks.at(i)
		if t.sleep > 0 {
			t.sleep--
		}
	}

	k.millis++

	for _, e := range k.events.events {
		if e.periodMS == 0 {
			continue
		}
		// Per-ECB countdown rather than millis % period: immune to
		// the global millisecond counter wrapping at 2^32 ms, per the
		// Open Question resolution in the spec's design notes.
		e.remaining--
		if e.remaining == 0 {
			e.remaining = e.periodMS
			k.postLocked(e.sem)
		}
	}
}

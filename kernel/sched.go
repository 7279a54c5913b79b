package kernel

// Scheduler implements the fixed-priority, round-robin-within-priority
// selection rule. It holds no state of its own; every input it needs
// (the task table, the currently running index) is passed in under the
// caller's atomic section.
type Scheduler struct{}

// Select starts at tasks[running].next and walks the circular list once.
// Among all TCBs with blocked == nil && sleep == 0, it returns the index
// of the one with the numerically smallest priority; ties go to whichever
// such TCB is encountered first on the walk, which is what gives
// equal-priority tasks round-robin rotation across successive invocations
// (the starting point advances because running advances).
//
// Select assumes at least one runnable task exists in the table (the
// kernel guarantees this by always admitting an idle task); it never
// returns -1.
func (s *Scheduler) Select(tasks *taskTable, running int) int {
	best := -1
	var bestPriority uint8

	n := tasks.len()
	cur := tasks.at(running).next
	for i := 0; i < n; i++ {
		t := tasks.at(cur)
		if t.blocked == nil && t.sleep == 0 {
			if best == -1 || t.priority < bestPriority {
				best = cur
				bestPriority = t.priority
			}
		}
		if cur == running {
			break
		}
		cur = t.next
	}
	return best
}

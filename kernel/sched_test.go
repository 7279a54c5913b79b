package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func admitN(t *testing.T, tt *taskTable, priorities ...uint8) {
	t.Helper()
	k := &Kernel{cfg: testConfig()}
	for _, p := range priorities {
		_, err := tt.admit(k, func(*Task) {}, p)
		require.NoError(t, err)
	}
}

// Property 4: among runnable tasks, Select always picks the numerically
// smallest priority.
func TestSelectPicksHighestPriorityRunnable(t *testing.T) {
	tt := newTaskTable(4)
	admitN(t, tt, 5, 0, 3, 254) // idx 0..3

	var sched Scheduler
	got := sched.Select(tt, 3) // running = the lowest-priority task
	require.Equal(t, 1, got)   // idx 1 has priority 0, the smallest
}

// Equal-priority tasks rotate: successive Select calls starting from the
// previously selected task pick the other one in turn.
func TestSelectRoundRobinsEqualPriority(t *testing.T) {
	tt := newTaskTable(2)
	admitN(t, tt, 1, 1)

	var sched Scheduler
	first := sched.Select(tt, 0)
	require.Equal(t, 1, first)

	second := sched.Select(tt, first)
	require.Equal(t, 0, second)
}

func TestSelectSkipsBlockedAndSleepingTasks(t *testing.T) {
	tt := newTaskTable(3)
	admitN(t, tt, 0, 0, 254)

	sem := &Semaphore{}
	tt.at(0).blocked = sem
	tt.at(1).sleep = 5

	var sched Scheduler
	got := sched.Select(tt, 2)
	require.Equal(t, 2, got) // only the idle-priority task (idx 2) is runnable
}

func TestSelectSingleTaskSelectsItself(t *testing.T) {
	tt := newTaskTable(1)
	admitN(t, tt, idlePriority)

	var sched Scheduler
	got := sched.Select(tt, 0)
	require.Equal(t, 0, got)
}

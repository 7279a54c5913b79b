package kernel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Property 1: admission builds a single circular list closing back to
// index 0, regardless of how many TCBs are admitted.
func TestTaskTableAdmitClosesCircularList(t *testing.T) {
	tt := newTaskTable(5)
	k := &Kernel{cfg: testConfig()}

	var admitted []*Task
	for i := 0; i < 4; i++ {
		task, err := tt.admit(k, func(*Task) {}, uint8(i))
		require.NoError(t, err)
		admitted = append(admitted, task)
	}

	cur := 0
	for i := 0; i < len(admitted); i++ {
		require.Equal(t, i, cur)
		cur = tt.at(cur).next
	}
	require.Equal(t, 0, cur)
}

func TestTaskTableAdmitSingleTaskPointsToItself(t *testing.T) {
	tt := newTaskTable(1)
	k := &Kernel{cfg: testConfig()}

	task, err := tt.admit(k, func(*Task) {}, 0)
	require.NoError(t, err)
	require.Equal(t, task.idx, task.next)
}

func TestTaskTableAdmitReturnsTableFullAtCapacity(t *testing.T) {
	tt := newTaskTable(1)
	k := &Kernel{cfg: testConfig()}

	_, err := tt.admit(k, func(*Task) {}, 0)
	require.NoError(t, err)

	_, err = tt.admit(k, func(*Task) {}, 0)
	require.ErrorIs(t, err, ErrTableFull)
}

func TestTaskStackSentinelIntactOnAdmission(t *testing.T) {
	tt := newTaskTable(1)
	k := &Kernel{cfg: testConfig()}

	task, err := tt.admit(k, func(*Task) {}, 0)
	require.NoError(t, err)
	require.True(t, task.StackSentinelIntact())

	task.stackGuard[len(task.stackGuard)-1] = 0xdeadbeef
	require.False(t, task.StackSentinelIntact())
}

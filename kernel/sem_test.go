package kernel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Property 2: Post never leaves the semaphore's counter lower than the
// number of tasks actually parked on it, and a Post matching an immediately
// prior Pend never blocks the poster.
func TestPendBlocksThenPostUnblocksExactlyOneWaiter(t *testing.T) {
	k := New(testConfig(), fakeBoard{})

	sem := &Semaphore{}
	k.SemInit(sem, 0)

	woke := make(chan struct{}, 1)
	_, err := k.AdmitTask(func(t *Task) {
		t.Pend(sem)
		woke <- struct{}{}
		for {
			t.Suspend()
		}
	}, 0)
	require.NoError(t, err)

	startAsync(t, k)

	// Give the waiter a chance to actually park before posting.
	require.Eventually(t, func() bool {
		k.atomic.Lock()
		defer k.atomic.Unlock()
		return k.tasks.at(1).blocked == sem
	}, time.Second, time.Millisecond)

	k.Post(sem)

	select {
	case <-woke:
	case <-time.After(time.Second):
		t.Fatal("waiter never woke after Post")
	}
}

func TestPendDoesNotBlockWhenPermitAvailable(t *testing.T) {
	k := New(testConfig(), fakeBoard{})

	sem := &Semaphore{}
	k.SemInit(sem, 1)

	done := make(chan struct{})
	_, err := k.AdmitTask(func(t *Task) {
		t.Pend(sem) // must return immediately, value goes 1 -> 0
		close(done)
		for {
			t.Suspend()
		}
	}, 0)
	require.NoError(t, err)

	startAsync(t, k)

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("pend on available semaphore never returned")
	}

	k.atomic.Lock()
	defer k.atomic.Unlock()
	require.EqualValues(t, 0, sem.value)
}

func TestPostWithoutWaiterOnlyIncrementsCounter(t *testing.T) {
	k := New(testConfig(), fakeBoard{})
	sem := &Semaphore{}
	k.SemInit(sem, 0)

	k.Post(sem)

	k.atomic.Lock()
	defer k.atomic.Unlock()
	require.EqualValues(t, 1, sem.value)
}

package board

import (
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"
)

func TestSimEventTickerFiresOncePerPeriod(t *testing.T) {
	mock := clock.NewMock()
	b := New(mock, 80_000_000)
	defer b.Stop()

	fired := make(chan struct{}, 8)
	b.StartEventTicker(1, func() { fired <- struct{}{} })

	for i := 0; i < 5; i++ {
		mock.Add(time.Millisecond)
		select {
		case <-fired:
		case <-time.After(time.Second):
			t.Fatalf("tick %d: onTick not invoked", i)
		}
	}

	select {
	case <-fired:
		t.Fatalf("unexpected extra tick before additional time elapsed")
	default:
	}
}

func TestSimPendDispatchCollapsesRepeatedRequests(t *testing.T) {
	b := New(clock.NewMock(), 80_000_000)
	defer b.Stop()

	b.PendDispatch()
	b.PendDispatch()
	b.PendDispatch()

	require.Len(t, b.dispatchPending, 1)
}

func TestSimCPUClockHz(t *testing.T) {
	b := New(clock.NewMock(), 80_000_000)
	defer b.Stop()
	require.Equal(t, uint32(80_000_000), b.CPUClockHz())
}

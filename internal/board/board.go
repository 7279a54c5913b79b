// Package board implements the hardware interface the kernel core
// consumes (kernel.Board): two independent 1 kHz tick sources and a
// software dispatch-pend request. Real TM4C123G firmware would satisfy
// this with WideTimer5A (event accounting) and SysTick (scheduler
// dispatch) configured through the PLL/NVIC; this package is a
// host-runnable simulation built on a fakeable clock so the kernel can be
// driven deterministically in tests and in the cmd/demo example, the same
// role the teacher's Bus interface plays for memory-mapped hardware.
package board

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

// Sim is a simulated Board backed by a clock.Clock, which may be a real
// wall-clock ticker in production use or a clock.Mock in tests, letting
// callers advance simulated time deterministically one millisecond at a
// time without racing the wall clock.
type Sim struct {
	clk        clock.Clock
	cpuClockHz uint32

	mu              sync.Mutex
	eventTicker     *clock.Ticker
	dispatchTicker  *clock.Ticker
	stopEvent       chan struct{}
	stopDispatch    chan struct{}
	dispatchPending chan struct{}
}

// New returns a Sim driven by clk. cpuClockHz is reported via CPUClockHz
// only; the simulated tickers run directly off clk's millisecond periods
// rather than converting through a cycle count, since there is no real
// bus to time against.
func New(clk clock.Clock, cpuClockHz uint32) *Sim {
	return &Sim{
		clk:             clk,
		cpuClockHz:      cpuClockHz,
		dispatchPending: make(chan struct{}, 1),
	}
}

func (s *Sim) StartEventTicker(periodMS uint32, onTick func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eventTicker = s.clk.Ticker(msDuration(periodMS))
	s.stopEvent = make(chan struct{})
	go runTicker(s.eventTicker, s.stopEvent, onTick)
}

func (s *Sim) StartDispatchTicker(periodMS uint32, onTick func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dispatchTicker = s.clk.Ticker(msDuration(periodMS))
	s.stopDispatch = make(chan struct{})
	go runTicker(s.dispatchTicker, s.stopDispatch, onTick)
}

// PendDispatch records a dispatch request in a channel buffered to 1, so
// repeated requests collapse into the single pending slot, matching a
// hardware pend bit that is either set or not. Nothing in this package
// drains the slot or performs a dispatch in response to it.
func (s *Sim) PendDispatch() {
	select {
	case s.dispatchPending <- struct{}{}:
	default:
	}
}

func (s *Sim) CPUClockHz() uint32 { return s.cpuClockHz }

// Stop releases both tickers. Safe to call once after Start*Ticker; real
// firmware never calls it because the kernel never returns.
func (s *Sim) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.eventTicker != nil {
		close(s.stopEvent)
		s.eventTicker.Stop()
	}
	if s.dispatchTicker != nil {
		close(s.stopDispatch)
		s.dispatchTicker.Stop()
	}
}

func runTicker(t *clock.Ticker, stop chan struct{}, onTick func()) {
	for {
		select {
		case <-t.C:
			onTick()
		case <-stop:
			return
		}
	}
}

func msDuration(ms uint32) time.Duration { return time.Duration(ms) * time.Millisecond }

package engine

import (
	"sync"
	"time"
)

// Record holds the command accounting counters. All counters are
// monotonically non-decreasing for the life of the process.
type Record struct {
	Accepted uint64
	Rejected uint64
	Overflow uint64
}

// State is the logical snapshot of everything the engine can address:
// one flag per digital output, the command counters, and the uptime
// origin. It is mutated only through dispatch handlers (or a halted
// debugger via Hooks) and read by the telemetry emitter and the hooks.
type State struct {
	pins   []int
	flags  map[int]bool
	mode   Mode
	rec    Record
	frames uint32
	start  time.Time

	lock sync.RWMutex
}

// NewState creates a State tracking the given pin ids. The pin order is
// fixed and determines the telemetry field order.
func NewState(pins []int) *State {
	s := &State{
		pins:  pins,
		flags: make(map[int]bool),
		start: time.Now(),
	}
	return s
}

// Pins gets the tracked pin ids in fixed order.
func (s *State) Pins() []int {
	return s.pins
}

// Mode gets the current mode.
func (s *State) Mode() Mode {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.mode
}

// SetMode forces the mode. Setting the current mode again is a no-op.
func (s *State) SetMode(m Mode) {
	s.lock.Lock()
	s.mode = m
	s.lock.Unlock()
}

// Flag gets the mirrored level of a pin.
func (s *State) Flag(id int) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.flags[id]
}

// SetFlag mirrors a peripheral level change. Called by handlers only
// after the capability call succeeded.
func (s *State) SetFlag(id int, on bool) {
	s.lock.Lock()
	s.flags[id] = on
	s.lock.Unlock()
}

// Counters gets a copy of the command counters.
func (s *State) Counters() Record {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return s.rec
}

// RecordAccepted counts one accepted command.
func (s *State) RecordAccepted() {
	s.lock.Lock()
	s.rec.Accepted++
	s.lock.Unlock()
}

// RecordRejected counts one rejected command.
func (s *State) RecordRejected() {
	s.lock.Lock()
	s.rec.Rejected++
	s.lock.Unlock()
}

// RecordOverflow counts one discarded over-long line.
func (s *State) RecordOverflow() {
	s.lock.Lock()
	s.rec.Overflow++
	s.lock.Unlock()
}

// NextFrame counts one emitted telemetry frame and returns the new
// frame counter.
func (s *State) NextFrame() uint32 {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.frames++
	return s.frames
}

// UptimeMS gets milliseconds elapsed since boot relative to now.
func (s *State) UptimeMS(now time.Time) int64 {
	return int64(now.Sub(s.start) / time.Millisecond)
}

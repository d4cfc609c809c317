package engine

import (
	"bytes"
	"fmt"
	"time"
)

// DefaultEmitInterval is the telemetry rate limit used when none is
// configured: at most 10 frames per second.
const DefaultEmitInterval = 100 * time.Millisecond

// Emitter serializes periodic telemetry frames while streaming.
//
// A frame is a single line of ordered key=value fields drawn from
// State. The field order is stable across peripheral additions: new
// fields append at the end, so a line-oriented parser written against
// an earlier firmware keeps working on the fields it knows.
type Emitter struct {
	Interval time.Duration

	state *State
	last  time.Time
}

// NewEmitter creates an Emitter over the state. Non-positive interval
// selects DefaultEmitInterval.
func NewEmitter(state *State, interval time.Duration) *Emitter {
	if interval <= 0 {
		interval = DefaultEmitInterval
	}
	return &Emitter{Interval: interval, state: state}
}

// MaybeEmit produces one telemetry frame when the engine is streaming
// and at least Interval elapsed since the previous frame. It is invoked
// once per loop iteration and rate-limits output bandwidth itself.
func (e *Emitter) MaybeEmit(now time.Time) (string, bool) {
	if e.state.Mode() != ModeStreaming {
		return "", false
	}
	if !e.last.IsZero() && now.Sub(e.last) < e.Interval {
		return "", false
	}
	e.last = now
	return e.frame(now), true
}

func (e *Emitter) frame(now time.Time) string {
	var w bytes.Buffer
	w.WriteByte('[')
	for _, id := range e.state.Pins() {
		v := 0
		if e.state.Flag(id) {
			v = 1
		}
		fmt.Fprintf(&w, "gpio%d=%d ", id, v)
	}
	rec := e.state.Counters()
	fmt.Fprintf(&w, "counter=%d uptime_ms=%d accepted=%d rejected=%d overflow=%d",
		e.state.NextFrame(), e.state.UptimeMS(now),
		rec.Accepted, rec.Rejected, rec.Overflow)
	w.WriteByte(']')
	return w.String()
}

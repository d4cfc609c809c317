package engine

// Mode selects between interactive command processing and periodic
// telemetry output. Exactly one instance exists per engine, defaulting
// to Interactive at boot. Transitions are total: every (mode, trigger)
// pair maps to a defined next mode, and re-entering the current mode is
// idempotent rather than an error.
type Mode int

const (
	// ModeInteractive processes commands and echoes replies only.
	ModeInteractive Mode = iota
	// ModeStreaming additionally emits periodic telemetry frames.
	// Commands are still tokenized and dispatched while streaming.
	ModeStreaming
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	if m == ModeStreaming {
		return "streaming"
	}
	return "interactive"
}

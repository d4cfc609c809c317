package engine

// Hooks exposes out-of-band entry points for an attached debugger or a
// test harness, independent of the serial path. Each entry point takes
// and returns only primitive values and performs at most one intended
// mutation, so state can be asserted without parsing the telemetry text
// format.
//
// The caller assumes the main loop is halted (the debugger-pauses-the-
// core model); the engine state itself stays consistent either way, but
// ordering relative to in-flight dispatch is only defined when halted.
// Every state reachable through Hooks is also reachable through
// ordinary commands.
type Hooks struct {
	eng *Engine
}

// Hooks gets the validation hook interface of the engine.
func (e *Engine) Hooks() Hooks {
	return Hooks{eng: e}
}

// Mode reads back the current mode.
func (h Hooks) Mode() Mode {
	return h.eng.state.Mode()
}

// SetMode forces the mode directly, bypassing command validation. Used
// to regain an interactive prompt when the serial channel is saturated
// by streaming output, without a reset.
func (h Hooks) SetMode(m Mode) {
	h.eng.state.SetMode(m)
}

// ReadPeripheralFlag reads a peripheral level back through the
// capability interface, not through the engine's mirrored state.
func (h Hooks) ReadPeripheralFlag(id int) (bool, error) {
	return h.eng.capability.Read(id)
}

// Counters reads back the command accounting counters.
func (h Hooks) Counters() Record {
	return h.eng.state.Counters()
}

package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Controller defines one unit of work executed per loop iteration.
type Controller interface {
	Control(ControlContext) error
}

// TimeSource provides the time for controlling logic.
type TimeSource interface {
	Time() time.Time
}

// ControlContext provides the context of the current loop iteration.
type ControlContext interface {
	TimeSource
	// Context retrieves context.Context.
	Context() context.Context
	// Stage gets the pipeline stage being executed.
	Stage() int
	// PostRun injects post-run one-shot hooks at the current stage.
	// If called from a post-run hook, new hooks run next iteration.
	PostRun(hooks ...Controller)

	LoopControl
}

// Stages is the total number of pipeline stages per iteration.
const Stages int = 4

// Pipeline stages, executed in order every iteration. Receive drains
// pending input bytes, Dispatch executes completed command lines, Emit
// produces telemetry. The ordering guarantees commands are dispatched
// strictly in arrival order and telemetry never reorders relative to
// dispatch.
const (
	StageReceive int = iota
	StageDispatch
	StageEmit
	StageIdle
)

// LoopControl exposes access to the controlling loop.
type LoopControl interface {
	// PreRunAt injects one-shot pre-run controller hooks at the
	// specified stage of the next iteration.
	PreRunAt(stage int, controllers ...Controller)
	// PostRunAt injects one-shot post-run controller hooks at the
	// specified stage.
	PostRunAt(stage int, controllers ...Controller)
	// TriggerNext schedules the next iteration to be executed
	// immediately, without waiting for the tick.
	TriggerNext()
}

// ControlFunc defines the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(cc ControlContext) error {
	return f(cc)
}

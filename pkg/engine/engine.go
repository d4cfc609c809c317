package engine

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/golang/glog"

	"github.com/devtalks/devlink.go/pkg/engine/dispatch"
	"github.com/devtalks/devlink.go/pkg/engine/line"
	fx "github.com/devtalks/devlink.go/pkg/framework"
	"github.com/devtalks/devlink.go/pkg/periph"
)

const engineKey = "$engine"

const (
	prompt = "> "
	banner = "\r\n=== devlink CLI ===\r\nType 'help' for commands\r\n\r\n"
)

// Options configures an Engine.
type Options struct {
	// Pins is the supported peripheral id set, in telemetry order.
	// Empty selects periph.DefaultPins.
	Pins []int
	// BufferSize is the receive line buffer capacity.
	BufferSize int
	// EmitInterval is the telemetry rate limit.
	EmitInterval time.Duration
	// LoopInterval overrides the loop tick.
	LoopInterval time.Duration
	// Echo enables character echo, prompt and boot banner for human
	// operators on a terminal.
	Echo bool
}

// TelemetrySink receives a copy of every emitted telemetry frame, in
// addition to the serial link itself.
type TelemetrySink interface {
	Publish(frame string) error
}

// Engine is the command/telemetry protocol engine over one serial
// link. It owns the line buffer, the dispatch table, the peripheral
// state and the telemetry emitter, and drives them from a cooperative
// loop: poll received bytes, dispatch completed lines in arrival
// order, then maybe emit one telemetry frame.
type Engine struct {
	rw         io.ReadWriter
	buf        *line.Buffer
	table      *dispatch.Table
	state      *State
	capability periph.Capability
	emitter    *Emitter

	echo         bool
	loopInterval time.Duration

	byteCh chan byte
	lines  []string
	sinks  []TelemetrySink
}

// New creates an Engine over a serial link and a peripheral
// capability. The dispatch table is populated from the command
// providers registered via dispatch.Register.
func New(rw io.ReadWriter, capability periph.Capability, opts Options) *Engine {
	pins := opts.Pins
	if len(pins) == 0 {
		pins = periph.DefaultPins
	}
	e := &Engine{
		rw:           rw,
		buf:          line.NewBuffer(opts.BufferSize),
		state:        NewState(pins),
		capability:   capability,
		echo:         opts.Echo,
		loopInterval: opts.LoopInterval,
		byteCh:       make(chan byte, 256),
	}
	e.emitter = NewEmitter(e.state, opts.EmitInterval)
	e.table = dispatch.NewTable(dispatch.Registered()...)
	e.table.Set(engineKey, e)
	return e
}

// From gets the Engine from a dispatch call context.
func From(c *dispatch.Call) *Engine {
	return c.Get(engineKey).(*Engine)
}

// Name implements Named.
func (e *Engine) Name() string {
	return "engine"
}

// Table gets the dispatch table.
func (e *Engine) Table() *dispatch.Table {
	return e.table
}

// State gets the peripheral state.
func (e *Engine) State() *State {
	return e.state
}

// Capability gets the peripheral capability interface.
func (e *Engine) Capability() periph.Capability {
	return e.capability
}

// AddSink attaches extra telemetry sinks.
func (e *Engine) AddSink(sinks ...TelemetrySink) *Engine {
	e.sinks = append(e.sinks, sinks...)
	return e
}

// ProcessByte consumes one received byte. This is the receive
// "interrupt" path: it only feeds the line buffer (and the echo), no
// tokenizing or dispatch happens here.
func (e *Engine) ProcessByte(c byte) {
	lenBefore := e.buf.Len()
	r := e.buf.Push(c)
	e.echoByte(c, lenBefore)
	switch r.Event {
	case line.Ready:
		e.lines = append(e.lines, r.Line)
	case line.Overflow:
		glog.V(2).Info("line overflow, input discarded")
		e.state.RecordOverflow()
	}
}

func (e *Engine) echoByte(c byte, lenBefore int) {
	if !e.echo || e.state.Mode() != ModeInteractive {
		return
	}
	switch {
	case c == '\n' || c == '\r':
		io.WriteString(e.rw, "\r\n")
	case c == 0x08 || c == 0x7f:
		if e.buf.Len() < lenBefore {
			io.WriteString(e.rw, "\x08 \x08")
		}
	case c >= 0x20 && c < 0x7f:
		e.rw.Write([]byte{c})
	}
}

// DispatchLine tokenizes and dispatches one complete line, writes the
// OK/ERROR reply and updates the command counters. Blank lines are
// no-ops and are not counted.
func (e *Engine) DispatchLine(s string) {
	cmd := line.Tokenize(s)
	if cmd.IsNoOp() {
		e.writePrompt()
		return
	}
	glog.V(2).Infof("dispatch %q", s)
	msg, err := e.table.Dispatch(e.rw, cmd)
	if err != nil {
		e.state.RecordRejected()
		fmt.Fprintf(e.rw, "ERROR: %s\r\n", err.Error())
	} else {
		e.state.RecordAccepted()
		if msg == "" {
			io.WriteString(e.rw, "OK\r\n")
		} else {
			fmt.Fprintf(e.rw, "OK [%s]\r\n", msg)
		}
	}
	e.writePrompt()
}

func (e *Engine) writePrompt() {
	if e.echo && e.state.Mode() == ModeInteractive {
		io.WriteString(e.rw, prompt)
	}
}

// receive drains bytes queued by the receiver runnable.
func (e *Engine) receive(cc fx.ControlContext) error {
	for {
		select {
		case c := <-e.byteCh:
			e.ProcessByte(c)
		default:
			return nil
		}
	}
}

// dispatchPending dispatches lines completed during receive, strictly
// in the order their terminators arrived.
func (e *Engine) dispatchPending(cc fx.ControlContext) error {
	lines := e.lines
	e.lines = nil
	for _, s := range lines {
		e.DispatchLine(s)
	}
	return nil
}

// emit produces at most one telemetry frame per iteration.
func (e *Engine) emit(cc fx.ControlContext) error {
	frame, ok := e.emitter.MaybeEmit(cc.Time())
	if !ok {
		return nil
	}
	if _, err := fmt.Fprintf(e.rw, "%s\r\n", frame); err != nil {
		return err
	}
	for _, sink := range e.sinks {
		if err := sink.Publish(frame); err != nil {
			glog.Errorf("telemetry sink error: %v", err)
		}
	}
	return nil
}

// AddToLoop implements LoopAdder.
func (e *Engine) AddToLoop(l *fx.Loop) {
	e.addToLoop(l, &receiver{eng: e})
}

func (e *Engine) addToLoop(l *fx.Loop, r *receiver) {
	l.AddController(fx.StageReceive, fx.ControlFunc(e.receive))
	l.AddController(fx.StageDispatch, fx.ControlFunc(e.dispatchPending))
	l.AddController(fx.StageEmit, fx.ControlFunc(e.emit))
	l.AddRunnable(fx.NamedRun("receiver", r))
}

// Run implements Runnable: it drives the engine until the context is
// canceled or the link closes.
func (e *Engine) Run(ctx context.Context) error {
	if e.echo {
		io.WriteString(e.rw, banner)
		e.writePrompt()
	}
	subCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	r := &receiver{eng: e, stop: cancel}
	loop := fx.NewLoop()
	if e.loopInterval > 0 {
		loop.Interval = e.loopInterval
	}
	e.addToLoop(loop, r)
	err := loop.Run(subCtx)
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if err == context.Canceled {
		// the link closed underneath the loop
		return r.err
	}
	return err
}

// receiver moves bytes from the link into the engine's receive queue.
// It does no other work, keeping the receive path latency bounded.
type receiver struct {
	eng  *Engine
	stop func()
	err  error
}

// Run implements Runnable.
func (r *receiver) Run(ctx context.Context) error {
	wake := fx.LoopCtlFrom(ctx)
	buf := make([]byte, 64)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		n, err := r.eng.rw.Read(buf)
		for i := 0; i < n; i++ {
			select {
			case r.eng.byteCh <- buf[i]:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if n > 0 {
			wake.TriggerNext()
		}
		if err != nil {
			if err != io.EOF {
				r.err = err
			}
			if r.stop != nil {
				r.stop()
			}
			return r.err
		}
	}
}

package stream

import (
	"github.com/devtalks/devlink.go/pkg/engine"
	"github.com/devtalks/devlink.go/pkg/engine/dispatch"
)

var (
	// StartCmd exposes stream.start. Starting while already streaming
	// is idempotent, not an error.
	StartCmd = dispatch.Entry{
		Name: "stream.start",
		Help: "Start streaming mode",
		Func: func(c *dispatch.Call) (string, error) {
			c.Println("[Switching to streaming mode...]")
			engine.From(c).State().SetMode(engine.ModeStreaming)
			return "streaming", nil
		},
	}

	// StopCmd exposes stream.stop. Stopping while already interactive
	// is idempotent, not an error. The dispatch table stays reachable
	// while streaming, so this command takes effect even when telemetry
	// is printing.
	StopCmd = dispatch.Entry{
		Name: "stream.stop",
		Help: "Stop streaming (back to CLI)",
		Func: func(c *dispatch.Call) (string, error) {
			c.Println("[Switching to CLI mode...]")
			engine.From(c).State().SetMode(engine.ModeInteractive)
			return "interactive", nil
		},
	}
)

func init() {
	dispatch.Register(
		&StartCmd,
		&StopCmd,
	)
}

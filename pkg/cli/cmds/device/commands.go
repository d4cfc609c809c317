package device

import (
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/devtalks/devlink.go/pkg/cli/sh"
)

// relay forwards the shell command verbatim to the connected engine;
// the reply is printed by the connection's read loop.
func relay(name string) func(c *ishell.Context) {
	return sh.MustBeConnected(func(c *ishell.Context) {
		line := name
		if len(c.Args) > 0 {
			line += " " + strings.Join(c.Args, " ")
		}
		if err := sh.ShellFrom(c).Send(line); err != nil {
			c.Err(err)
		}
	})
}

var (
	// GpioInitCmd exposes gpio.init.
	GpioInitCmd = ishell.Cmd{
		Name: "gpio.init",
		Help: "PIN",
		Func: relay("gpio.init"),
	}

	// GpioDeinitCmd exposes gpio.deinit.
	GpioDeinitCmd = ishell.Cmd{
		Name: "gpio.deinit",
		Help: "PIN",
		Func: relay("gpio.deinit"),
	}

	// GpioOnCmd exposes gpio.on.
	GpioOnCmd = ishell.Cmd{
		Name: "gpio.on",
		Help: "PIN",
		Func: relay("gpio.on"),
	}

	// GpioOffCmd exposes gpio.off.
	GpioOffCmd = ishell.Cmd{
		Name: "gpio.off",
		Help: "PIN",
		Func: relay("gpio.off"),
	}

	// GpioReadCmd exposes gpio.read.
	GpioReadCmd = ishell.Cmd{
		Name: "gpio.read",
		Help: "PIN",
		Func: relay("gpio.read"),
	}

	// StreamStartCmd exposes stream.start.
	StreamStartCmd = ishell.Cmd{
		Name: "stream.start",
		Help: "",
		Func: relay("stream.start"),
	}

	// StreamStopCmd exposes stream.stop.
	StreamStopCmd = ishell.Cmd{
		Name: "stream.stop",
		Help: "",
		Func: relay("stream.stop"),
	}
)

func init() {
	sh.AddCmds(
		&GpioInitCmd,
		&GpioDeinitCmd,
		&GpioOnCmd,
		&GpioOffCmd,
		&GpioReadCmd,
		&StreamStartCmd,
		&StreamStopCmd,
	)
}

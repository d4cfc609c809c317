package gpio

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/devtalks/devlink.go/pkg/engine"
	"github.com/devtalks/devlink.go/pkg/engine/dispatch"
)

func parsePin(s string) (int, error) {
	pin, err := strconv.Atoi(s)
	if err != nil || pin < 0 {
		return 0, errors.New("invalid pin number")
	}
	return pin, nil
}

var (
	// InitCmd exposes gpio.init.
	InitCmd = dispatch.Entry{
		Name:    "gpio.init",
		Usage:   "<pin>",
		Help:    "Initialize GPIO as output",
		MinArgs: 1, MaxArgs: 1,
		Func: func(c *dispatch.Call) (string, error) {
			pin, err := parsePin(c.Args[0])
			if err != nil {
				return "", err
			}
			if err := engine.From(c).Capability().Enable(pin); err != nil {
				return "", err
			}
			return fmt.Sprintf("GPIO%d initialized as output", pin), nil
		},
	}

	// DeinitCmd exposes gpio.deinit.
	DeinitCmd = dispatch.Entry{
		Name:    "gpio.deinit",
		Usage:   "<pin>",
		Help:    "Deinitialize GPIO",
		MinArgs: 1, MaxArgs: 1,
		Func: func(c *dispatch.Call) (string, error) {
			pin, err := parsePin(c.Args[0])
			if err != nil {
				return "", err
			}
			eng := engine.From(c)
			if err := eng.Capability().Disable(pin); err != nil {
				return "", err
			}
			eng.State().SetFlag(pin, false)
			return fmt.Sprintf("GPIO%d deinitialized", pin), nil
		},
	}

	// OnCmd exposes gpio.on.
	OnCmd = dispatch.Entry{
		Name:    "gpio.on",
		Usage:   "<pin>",
		Help:    "Set GPIO high",
		MinArgs: 1, MaxArgs: 1,
		Func:    setFunc(true),
	}

	// OffCmd exposes gpio.off.
	OffCmd = dispatch.Entry{
		Name:    "gpio.off",
		Usage:   "<pin>",
		Help:    "Set GPIO low",
		MinArgs: 1, MaxArgs: 1,
		Func:    setFunc(false),
	}

	// ReadCmd exposes gpio.read.
	ReadCmd = dispatch.Entry{
		Name:    "gpio.read",
		Usage:   "<pin>",
		Help:    "Read GPIO level",
		MinArgs: 1, MaxArgs: 1,
		Func: func(c *dispatch.Call) (string, error) {
			pin, err := parsePin(c.Args[0])
			if err != nil {
				return "", err
			}
			high, err := engine.From(c).Capability().Read(pin)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("GPIO%d = %s", pin, level(high)), nil
		},
	}
)

func level(high bool) string {
	if high {
		return "HIGH"
	}
	return "LOW"
}

// setFunc validates the pin, drives it through the capability and only
// then mirrors the level into engine state. A validation or driver
// failure leaves the state untouched.
func setFunc(on bool) dispatch.HandlerFunc {
	return func(c *dispatch.Call) (string, error) {
		pin, err := parsePin(c.Args[0])
		if err != nil {
			return "", err
		}
		eng := engine.From(c)
		if err := eng.Capability().Set(pin, on); err != nil {
			return "", err
		}
		eng.State().SetFlag(pin, on)
		return fmt.Sprintf("GPIO%d = %s", pin, level(on)), nil
	}
}

func init() {
	dispatch.Register(
		&InitCmd,
		&DeinitCmd,
		&OnCmd,
		&OffCmd,
		&ReadCmd,
	)
}

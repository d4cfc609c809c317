// Package periph defines the peripheral capability surface consumed by
// the engine.
package periph

import "errors"

// Capability is the abstract peripheral interface. The engine treats it
// as opaque: failures surface to the operator as-is, with no
// engine-level retry. Retry policy, if any, belongs to the driver.
type Capability interface {
	// Enable initializes a peripheral as an output.
	Enable(id int) error
	// Disable releases a previously enabled peripheral.
	Disable(id int) error
	// Set drives the peripheral high or low.
	Set(id int, on bool) error
	// Read samples the current peripheral level.
	Read(id int) (bool, error)
}

var (
	// ErrUnsupported indicates the id is outside the supported set.
	ErrUnsupported = errors.New("unsupported pin")
	// ErrFault indicates the peripheral driver failed the operation.
	ErrFault = errors.New("peripheral fault")
)

// DefaultPins is the conventional supported pin set used when a
// deployment does not specify its own.
var DefaultPins = []int{2, 4, 12, 13}

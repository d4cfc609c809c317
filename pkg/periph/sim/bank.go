// Package sim provides an in-memory peripheral bank for running the
// engine without hardware.
package sim

import (
	"sync"

	"github.com/devtalks/devlink.go/pkg/periph"
)

type pin struct {
	enabled bool
	high    bool
	faulty  bool
}

// Bank is a simulated GPIO bank implementing periph.Capability.
type Bank struct {
	ids  []int
	pins map[int]*pin
	lock sync.RWMutex
}

// NewBank creates a Bank supporting the given pin ids.
// With no ids, periph.DefaultPins is used.
func NewBank(ids ...int) *Bank {
	if len(ids) == 0 {
		ids = periph.DefaultPins
	}
	b := &Bank{ids: ids, pins: make(map[int]*pin)}
	for _, id := range ids {
		b.pins[id] = &pin{}
	}
	return b
}

// Pins gets the supported pin ids in a fixed order.
func (b *Bank) Pins() []int {
	return b.ids
}

// SetFault injects a driver fault on a pin. Subsequent operations on
// the pin fail with periph.ErrFault until cleared. Used to exercise the
// fault path without hardware.
func (b *Bank) SetFault(id int, faulty bool) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if p := b.pins[id]; p != nil {
		p.faulty = faulty
	}
}

func (b *Bank) pinFor(id int) (*pin, error) {
	p := b.pins[id]
	if p == nil {
		return nil, periph.ErrUnsupported
	}
	if p.faulty {
		return nil, periph.ErrFault
	}
	return p, nil
}

// Enable implements periph.Capability.
func (b *Bank) Enable(id int) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	p, err := b.pinFor(id)
	if err != nil {
		return err
	}
	p.enabled = true
	return nil
}

// Disable implements periph.Capability.
func (b *Bank) Disable(id int) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	p, err := b.pinFor(id)
	if err != nil {
		return err
	}
	p.enabled, p.high = false, false
	return nil
}

// Set implements periph.Capability.
func (b *Bank) Set(id int, on bool) error {
	b.lock.Lock()
	defer b.lock.Unlock()
	p, err := b.pinFor(id)
	if err != nil {
		return err
	}
	p.high = on
	return nil
}

// Read implements periph.Capability.
func (b *Bank) Read(id int) (bool, error) {
	b.lock.RLock()
	defer b.lock.RUnlock()
	p, err := b.pinFor(id)
	if err != nil {
		return false, err
	}
	return p.high, nil
}

// Enabled reports whether a pin is currently enabled.
func (b *Bank) Enabled(id int) bool {
	b.lock.RLock()
	defer b.lock.RUnlock()
	p := b.pins[id]
	return p != nil && p.enabled
}

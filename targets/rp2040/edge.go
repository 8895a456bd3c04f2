//go:build rp2040 || rp2350

package main

import (
	"machine"

	"winch/core"
)

// The FG edge callback must be a static function for TinyGo's pin
// interrupt machinery, so the handler lives in a package variable.
var fgHandler func()

func fgPinISR(machine.Pin) {
	if fgHandler != nil {
		fgHandler()
	}
}

// FGEdgeDriver implements core.EdgeDriver on a TinyGo pin interrupt. Each
// rising edge of the FG line calls the attached handler; SetEnabled masks
// the interrupt by deregistering the callback.
type FGEdgeDriver struct {
	pin machine.Pin
}

// NewFGEdgeDriver configures the FG pin as a pulled-up input.
func NewFGEdgeDriver(pin core.GPIOPin) (*FGEdgeDriver, error) {
	machinePin := machine.Pin(pin)
	machinePin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &FGEdgeDriver{pin: machinePin}, nil
}

// Attach registers the edge handler and enables the interrupt.
func (d *FGEdgeDriver) Attach(handler func()) error {
	fgHandler = handler
	return d.pin.SetInterrupt(machine.PinRising, fgPinISR)
}

// SetEnabled masks (false) or unmasks (true) the FG edge interrupt.
func (d *FGEdgeDriver) SetEnabled(enabled bool) {
	if fgHandler == nil {
		return
	}
	if enabled {
		_ = d.pin.SetInterrupt(machine.PinRising, fgPinISR)
	} else {
		_ = d.pin.SetInterrupt(machine.PinRising, nil)
	}
}

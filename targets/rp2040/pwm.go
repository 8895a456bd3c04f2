//go:build rp2040 || rp2350

package main

import (
	"machine"

	"winch/core"
)

// PWM_MAX is the duty range the core sees (8-bit)
const PWM_MAX = 255

// pwmPeripheral abstracts over TinyGo's unexported *pwmGroup type
type pwmPeripheral interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// RP2040PWMDriver implements core.PWMDriver on the RP2040's hardware PWM
// slices (8 slices, 2 channels each).
type RP2040PWMDriver struct {
	// pin number -> PWM channel, filled by ConfigurePWM
	channels map[uint32]uint8

	// slice number -> PWM peripheral
	peripherals map[uint8]pwmPeripheral
}

// NewRP2040PWMDriver creates a new RP2040 PWM driver
func NewRP2040PWMDriver() *RP2040PWMDriver {
	return &RP2040PWMDriver{
		channels:    make(map[uint32]uint8),
		peripherals: make(map[uint8]pwmPeripheral),
	}
}

// GetMaxValue returns the maximum PWM value (255)
func (d *RP2040PWMDriver) GetMaxValue() uint32 {
	return PWM_MAX
}

// ConfigurePWM configures a pin for hardware PWM output at freqHz.
// RP2040 pin N maps to slice (N>>1)&7, channel N&1.
func (d *RP2040PWMDriver) ConfigurePWM(pin core.PWMPin, freqHz uint32) (uint32, error) {
	pinNum := uint32(pin)
	sliceNum := uint8((pinNum >> 1) & 0x7)

	pwm, exists := d.peripherals[sliceNum]
	if !exists {
		pwm = d.getPWMPeripheral(sliceNum)
		d.peripherals[sliceNum] = pwm
	}

	period := uint64(1_000_000_000) / uint64(freqHz)
	if err := pwm.Configure(machine.PWMConfig{Period: period}); err != nil {
		return 0, err
	}

	machinePin := machine.Pin(pinNum)
	channel, err := pwm.Channel(machinePin)
	if err != nil {
		return 0, err
	}
	d.channels[pinNum] = channel

	// Start fully off
	pwm.Set(channel, 0)

	return freqHz, nil
}

// SetDutyCycle scales the 0..255 value to the slice's Top() and applies it.
func (d *RP2040PWMDriver) SetDutyCycle(pin core.PWMPin, value core.PWMValue) error {
	pinNum := uint32(pin)

	channel, exists := d.channels[pinNum]
	if !exists {
		// Pin not configured
		return nil
	}

	sliceNum := uint8((pinNum >> 1) & 0x7)
	pwm, exists := d.peripherals[sliceNum]
	if !exists {
		return nil
	}

	top := pwm.Top()
	dutyCycle := (uint32(value) * top) / PWM_MAX
	pwm.Set(channel, dutyCycle)

	return nil
}

// getPWMPeripheral returns the PWM peripheral for a slice number (PWM0-PWM7)
func (d *RP2040PWMDriver) getPWMPeripheral(sliceNum uint8) pwmPeripheral {
	switch sliceNum {
	case 0:
		return machine.PWM0
	case 1:
		return machine.PWM1
	case 2:
		return machine.PWM2
	case 3:
		return machine.PWM3
	case 4:
		return machine.PWM4
	case 5:
		return machine.PWM5
	case 6:
		return machine.PWM6
	case 7:
		return machine.PWM7
	default:
		return machine.PWM0
	}
}

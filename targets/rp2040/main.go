//go:build rp2040 || rp2350

// Winch controller bring-up for the RP2040/RP2350 boards.
// Wires the HAL drivers, configures the motor pins and the FG feedback
// interrupt, then runs the demo unwind/hold/wind cycle. Set benchMode to
// stream pulse-rate reports over USB instead (hand-spin the drum).
package main

import (
	"time"

	"winch/core"
)

const (
	pwmPin = core.PWMPin(15)  // motor driver PWM input
	dirPin = core.GPIOPin(14) // motor driver direction input
	fgPin  = core.GPIOPin(16) // FG feedback line, external 10k pull-up to 3.3V recommended

	// 20 kHz keeps the drive out of the audible range
	pwmFreqHz = 20000

	// benchMode streams FG pulse-rate reports instead of running the
	// demo motion cycle
	benchMode = false
)

func main() {
	core.SetGPIODriver(NewRPGPIODriver())
	core.SetPWMDriver(NewRP2040PWMDriver())
	core.SetClockDriver(&RPClockDriver{})

	edge, err := NewFGEdgeDriver(fgPin)
	if err != nil {
		return
	}
	core.SetEdgeDriver(edge)
	if err := edge.Attach(core.FGPulseISR); err != nil {
		return
	}

	if _, err := core.MustPWM().ConfigurePWM(pwmPin, pwmFreqHz); err != nil {
		return
	}
	if err := core.ConfigureDrive(pwmPin, dirPin, core.ActiveLowClockwise); err != nil {
		return
	}
	core.SetMechanicalProfile(core.DefaultProfile())
	core.SetDebugWriter(func(s string) { println(s) })

	initTOF()

	// Let USB enumerate and the rig settle before moving anything.
	time.Sleep(5 * time.Second)

	if benchMode {
		for {
			core.MonitorPulseRate(60, 1000)
		}
	}

	for {
		runDemoCycle()
		time.Sleep(5 * time.Second)
	}
}

// runDemoCycle pays out 0.3m, holds the load for 2s (tow-up is clockwise),
// then winds the 0.3m back up, reporting each outcome and the optional
// time-of-flight cross-check over USB.
func runDemoCycle() {
	before, haveTOF := payloadDistanceMM()

	outcome := core.Unwind(0.3, 100)
	println("unwind:", outcome.String())
	if haveTOF {
		if after, ok := payloadDistanceMM(); ok {
			println("tof_delta_mm:", int(after)-int(before))
		}
	}
	if outcome != core.OutcomeSuccess {
		return
	}

	outcome = core.HoldMS(2000, true)
	println("hold:", outcome.String())

	outcome = core.Wind(0.3, 100)
	println("wind:", outcome.String())
}

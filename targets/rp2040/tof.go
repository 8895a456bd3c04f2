//go:build rp2040 || rp2350

// Optional VL53L1X time-of-flight sensor pointed at the payload. Gives a
// bench cross-check of commanded line travel against measured distance;
// the control loop never depends on it.
package main

import (
	"machine"

	"tinygo.org/x/drivers/vl53l1x"
)

const (
	tofSDA = machine.GP4
	tofSCL = machine.GP5

	// 50ms timing budget, per the sensor's medium-range preset
	tofTimingBudgetUS = 50000
)

var (
	tofSensor vl53l1x.Device
	tofReady  bool
)

// initTOF brings up the sensor on I2C0. Missing hardware is fine: the
// cross-check is simply skipped.
func initTOF() {
	err := machine.I2C0.Configure(machine.I2CConfig{
		Frequency: 400_000,
		SDA:       tofSDA,
		SCL:       tofSCL,
	})
	if err != nil {
		return
	}

	tofSensor = vl53l1x.New(machine.I2C0)
	if !tofSensor.Connected() {
		return
	}
	tofSensor.Configure(true) // 2.8V I/O mode
	tofSensor.SetMeasurementTimingBudget(tofTimingBudgetUS)
	tofSensor.StartContinuous(50)
	tofReady = true
}

// payloadDistanceMM returns one blocking distance measurement in
// millimeters, or ok=false when no sensor is present.
func payloadDistanceMM() (int32, bool) {
	if !tofReady {
		return 0, false
	}
	tofSensor.Read(true)
	distance := tofSensor.Distance()
	if distance >= 8190 {
		// Out of range
		return 0, false
	}
	return distance, true
}

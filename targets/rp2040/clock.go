//go:build rp2040 || rp2350

package main

import (
	"runtime/volatile"
	"time"
	"unsafe"
)

// RP2040/RP2350 timer peripheral memory map. The hardware timer is a
// 64-bit microsecond counter running at 1MHz.
const (
	timerBase     = 0x40054000
	timerTIMERAWH = timerBase + 0x08 // Raw timer high word
	timerTIMERAWL = timerBase + 0x0C // Raw timer low word
)

var (
	timerRAWH = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWH)))
	timerRAWL = (*volatile.Register32)(unsafe.Pointer(uintptr(timerTIMERAWL)))
)

// RPClockDriver implements core.ClockDriver on the RP2040 hardware timer
type RPClockDriver struct{}

// NowUS reads the full 64-bit microsecond counter.
func (RPClockDriver) NowUS() uint64 {
	// Read high, then low, then high again to detect rollover between
	// the two word reads.
	for {
		high1 := timerRAWH.Get()
		low := timerRAWL.Get()
		high2 := timerRAWH.Get()

		if high1 == high2 {
			return (uint64(high1) << 32) | uint64(low)
		}
	}
}

func (RPClockDriver) SleepMS(ms uint32) {
	time.Sleep(time.Duration(ms) * time.Millisecond)
}

//go:build rp2040

package main

import "mcuhal/core"

// RP2040 TIMER peripheral. The raw counter runs at 1 MHz and is 64 bits
// wide, split over two registers.
const (
	timerBase    = 0x40054000
	timerRawHigh = timerBase + 0x08
	timerRawLow  = timerBase + 0x0C
)

var (
	timerRAWH = core.MMIORO[uint32](timerRawHigh)
	timerRAWL = core.MMIORO[uint32](timerRawLow)
)

// Clock frequencies after the standard boot clock setup.
const (
	sysClockHz   = 125_000_000
	usbClockHz   = 48_000_000
	periClockHz  = 125_000_000
	timerClockHz = 1_000_000
	tickHz       = 1_000
)

// rpClock implements the clock surface over the RP2040 hardware timer.
// The microtick is the raw 1 MHz counter; the tick is derived from it at
// 1 kHz so tick arithmetic stays cheap.
type rpClock struct{}

func (c rpClock) CurrentTick() core.Tick {
	// Derived from the full 64-bit count so the tick wraps across the
	// whole 32-bit range.
	return core.Tick(uint64(c.CurrentMicrotick()) / (timerClockHz / tickHz))
}

func (rpClock) TickFrequencyHz() uint64 { return tickHz }

func (rpClock) CurrentMicrotick() core.Microtick {
	// Read high, low, high again to detect a carry between the two
	// register reads.
	for {
		high1 := timerRAWH.Read()
		low := timerRAWL.Read()
		high2 := timerRAWH.Read()
		if high1 == high2 {
			return core.Microtick(uint64(high1)<<32 | uint64(low))
		}
	}
}

func (rpClock) MicrotickFrequencyHz() uint64 { return timerClockHz }

func (rpClock) Frequency(domain string) uint64 {
	switch domain {
	case "sys":
		return sysClockHz
	case "usb":
		return usbClockHz
	case "peri":
		return periClockHz
	case "timer":
		return timerClockHz
	default:
		return 0
	}
}

// initClock registers the RP2040 clock driver.
func initClock() {
	core.SetClockDriver(rpClock{})
}

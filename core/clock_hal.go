package core

// ClockDriver is the abstract clock interface that core code uses.
// Platform-specific implementations read the hardware counters.
type ClockDriver interface {
	// CurrentTick returns the coarse monotonic counter, updated by the
	// chip tick interrupt.
	CurrentTick() Tick

	// TickFrequencyHz returns the tick rate in Hz.
	TickFrequencyHz() uint64

	// Frequency returns the configured rate of a named clock domain
	// (e.g. "cpu", "peripheral"). Unknown domains return 0.
	Frequency(domain string) uint64
}

// MicrotickSource is implemented by clock drivers with a fine-grained
// free-running counter. Core code probes for it where sub-tick timing
// is required.
type MicrotickSource interface {
	// CurrentMicrotick returns the fine monotonic counter.
	CurrentMicrotick() Microtick

	// MicrotickFrequencyHz returns the microtick rate in Hz.
	MicrotickFrequencyHz() uint64
}

// Global singleton used by core code.
var clockDriver ClockDriver

// SetClockDriver is called by target-specific code to register its driver.
func SetClockDriver(d ClockDriver) {
	clockDriver = d
}

// MustClock returns the configured driver or fails fatally if missing.
func MustClock() ClockDriver {
	if clockDriver == nil {
		Fatal("clock driver not configured")
	}
	return clockDriver
}

// MustMicrotick returns the clock driver's microtick source, or fails
// fatally when the chip has none.
func MustMicrotick() MicrotickSource {
	src, ok := MustClock().(MicrotickSource)
	if !ok {
		Fatal("clock driver has no microtick source")
	}
	return src
}

// HasMicrotick reports whether the registered clock driver supplies a
// fine-grained counter.
func HasMicrotick() bool {
	src, ok := clockDriver.(MicrotickSource)
	return ok && src != nil
}

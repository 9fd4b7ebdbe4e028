package core

// Tick is the framework's coarse monotonic time unit, supplied by the
// chip's periodic tick interrupt. Ordering uses the sign of the wrapping
// difference, so comparisons are only reliable for values less than half
// the 32-bit range apart. At 1 kHz that is roughly 24 days; callers
// should keep compared ticks within ~15 minutes of each other anyway.
type Tick int32

// Microtick is the optional fine-grained monotonic time unit, typically a
// free-running hardware counter.
type Microtick int64

// CurrentTick reads the chip tick counter.
func CurrentTick() Tick {
	return MustClock().CurrentTick()
}

// CurrentMicrotick reads the chip microtick counter.
func CurrentMicrotick() Microtick {
	return MustMicrotick().CurrentMicrotick()
}

// IsAfter reports t > o under wrapping arithmetic.
func (t Tick) IsAfter(o Tick) bool { return t-o > 0 }

// IsBefore reports t < o under wrapping arithmetic.
func (t Tick) IsBefore(o Tick) bool { return o-t > 0 }

// Plus returns the tick advanced by d at the chip tick frequency.
// The result is always at least one tick later.
func (t Tick) Plus(d Duration) Tick {
	return t + Tick(d.inTicks(MustClock().TickFrequencyHz()))
}

// IsAfter reports m > o under wrapping arithmetic.
func (m Microtick) IsAfter(o Microtick) bool { return m-o > 0 }

// IsBefore reports m < o under wrapping arithmetic.
func (m Microtick) IsBefore(o Microtick) bool { return o-m > 0 }

// Plus returns the microtick advanced by d at the chip microtick
// frequency. The result is always at least one microtick later.
func (m Microtick) Plus(d Duration) Microtick {
	return m + Microtick(d.inTicks(MustMicrotick().MicrotickFrequencyHz()))
}

// BlockUntilTick busy-waits until the tick counter passes deadline.
func BlockUntilTick(deadline Tick) {
	for CurrentTick().IsBefore(deadline) {
	}
}

// BlockUntilMicrotick busy-waits until the microtick counter passes
// deadline.
func BlockUntilMicrotick(deadline Microtick) {
	for CurrentMicrotick().IsBefore(deadline) {
	}
}

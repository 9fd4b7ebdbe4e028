package core

// FormatFrequency renders a frequency in Hz as a human-readable string
// with the largest unit that keeps the integer part non-zero. Fractional
// digits are exact, with trailing zeros trimmed: 12_000_000 formats as
// "12 MHz", 12_345_000 as "12.345 MHz", 1_234 as "1.234 kHz".
func FormatFrequency(hz uint64) string {
	switch {
	case hz >= 1_000_000:
		return scaledFrequency(hz, 1_000_000, " MHz")
	case hz >= 1_000:
		return scaledFrequency(hz, 1_000, " kHz")
	default:
		return utoa64(hz) + " Hz"
	}
}

func scaledFrequency(hz, unit uint64, suffix string) string {
	whole := hz / unit
	frac := hz % unit
	if frac == 0 {
		return utoa64(whole) + suffix
	}
	digits := zeroPad(frac, unit/10)
	for digits[len(digits)-1] == '0' {
		digits = digits[:len(digits)-1]
	}
	return utoa64(whole) + "." + digits + suffix
}

// zeroPad renders n with leading zeros so the string has one digit per
// decimal place of the unit. firstPlace is the value of the leading
// digit position (unit/10).
func zeroPad(n, firstPlace uint64) string {
	s := ""
	for place := firstPlace; place > 0; place /= 10 {
		s += string(byte('0' + (n/place)%10))
	}
	return s
}

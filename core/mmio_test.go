package core

import "testing"

func TestMMIOCellAccess(t *testing.T) {
	var word uint32

	rw := AsRW(&word)
	rw.Write(0xdeadbeef)
	if got := rw.Read(); got != 0xdeadbeef {
		t.Errorf("Read() = %#x, want 0xdeadbeef", got)
	}

	ro := AsRO(&word)
	if got := ro.Read(); got != 0xdeadbeef {
		t.Errorf("RO Read() = %#x, want 0xdeadbeef", got)
	}

	wo := AsWO(&word)
	wo.Write(0x12345678)
	if word != 0x12345678 {
		t.Errorf("word = %#x after WO write, want 0x12345678", word)
	}
}

func TestMMIOBitOps(t *testing.T) {
	var word uint32 = 0b1100

	rw := AsRW(&word)
	if !rw.HasBits(0b0100) {
		t.Error("HasBits(0b0100) should hold")
	}
	if rw.HasBits(0b0110) {
		t.Error("HasBits requires all bits of the mask")
	}
	if !AsRO(&word).HasBits(0b1000) {
		t.Error("RO HasBits(0b1000) should hold")
	}

	rw.SetBits(0b0011)
	if word != 0b1111 {
		t.Errorf("word = %#b after SetBits, want 0b1111", word)
	}
	rw.ClearBits(0b1010)
	if word != 0b0101 {
		t.Errorf("word = %#b after ClearBits, want 0b0101", word)
	}
}

func TestMMIOFields(t *testing.T) {
	// A register with a 3-bit mode field and an enable bit.
	mode := Field[uint32]{Mask: 0b111 << 4, Shift: 4}
	enable := Field[uint32]{Mask: 1 << 0, Shift: 0}

	var word uint32 = 0xffff_ffff
	rw := AsRW(&word)

	rw.Modify(mode.With(0b101), enable.With(0))
	if got := mode.Get(word); got != 0b101 {
		t.Errorf("mode = %#b, want 0b101", got)
	}
	if got := enable.Get(word); got != 0 {
		t.Errorf("enable = %d, want 0", got)
	}
	// Bits outside the named fields stay put.
	if word&^(mode.Mask|enable.Mask) != 0xffff_ffff&^(mode.Mask|enable.Mask) {
		t.Errorf("Modify disturbed unnamed bits: %#x", word)
	}

	// A value wider than the field is clipped by the mask.
	rw.Modify(mode.With(0b1111))
	if got := mode.Get(word); got != 0b111 {
		t.Errorf("mode = %#b after oversized write, want 0b111", got)
	}
}

func TestMMIOToggle(t *testing.T) {
	led := Field[uint8]{Mask: 1 << 3, Shift: 3}

	var word uint8
	rw := AsRW(&word)
	rw.Toggle(led)
	if word != 1<<3 {
		t.Errorf("word = %#b after toggle, want bit 3 set", word)
	}
	rw.Toggle(led)
	if word != 0 {
		t.Errorf("word = %#b after second toggle, want 0", word)
	}
}

func TestMMIOWidths(t *testing.T) {
	var w8 uint8
	AsRW(&w8).Write(0xa5)
	if w8 != 0xa5 {
		t.Errorf("uint8 cell = %#x", w8)
	}

	var w16 uint16
	AsRW(&w16).Write(0xbeef)
	if w16 != 0xbeef {
		t.Errorf("uint16 cell = %#x", w16)
	}

	var w64 uint64
	AsRW(&w64).Write(0x0123_4567_89ab_cdef)
	if w64 != 0x0123_4567_89ab_cdef {
		t.Errorf("uint64 cell = %#x", w64)
	}
}

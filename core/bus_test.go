package core

import "testing"

func TestBusScattersAcrossPorts(t *testing.T) {
	f := withFakePorts(t)

	// Logical bits 0..2 live on A0, B3, A1 in that order.
	b := NewBus("scatter", []PadID{"A0", "B3", "A1"}, BusConfig{Mode: BusOutput})
	b.Init()
	defer b.Deinit()

	b.Modify(0b101)
	if f.output[0] != 0b11 {
		t.Errorf("port A output = %#x, want %#x", f.output[0], 0b11)
	}
	if f.output[1]&(1<<3) != 0 {
		t.Errorf("port B bit 3 should be clear, output = %#x", f.output[1])
	}
	if got := b.Get(); got != 0b101 {
		t.Errorf("Get() = %#b, want 0b101", got)
	}

	b.Modify(0b010)
	if f.output[0] != 0 {
		t.Errorf("port A output = %#x, want 0", f.output[0])
	}
	if f.output[1]&(1<<3) == 0 {
		t.Error("port B bit 3 should be set")
	}
	if got := b.Get(); got != 0b010 {
		t.Errorf("Get() = %#b, want 0b010", got)
	}
}

func TestBusBitAlgebra(t *testing.T) {
	withFakePorts(t)

	b := NewBus("algebra", []PadID{"A4", "A5", "A6", "A7"}, BusConfig{Mode: BusOutput})
	b.Init()
	defer b.Deinit()

	b.Modify(0b0000)
	b.SetBits(0b1010)
	if got := b.Get(); got != 0b1010 {
		t.Errorf("after SetBits, Get() = %#b, want 0b1010", got)
	}
	b.SetBits(0b0001)
	if got := b.Get(); got != 0b1011 {
		t.Errorf("SetBits must leave untouched bits alone, Get() = %#b", got)
	}
	b.ClearBits(0b0010)
	if got := b.Get(); got != 0b1001 {
		t.Errorf("after ClearBits, Get() = %#b, want 0b1001", got)
	}
}

func TestBusRead(t *testing.T) {
	f := withFakePorts(t)

	b := NewBus("sense", []PadID{"A8", "B9", "A10"}, BusConfig{Mode: BusInput})
	b.Init()
	defer b.Deinit()

	f.input[0] = 1 << 10
	f.input[1] = 1 << 9
	if got := b.Read(); got != 0b110 {
		t.Errorf("Read() = %#b, want 0b110", got)
	}
}

func TestBusInitConfiguresPads(t *testing.T) {
	f := withFakePorts(t)

	pads := []PadID{"A12", "A13"}
	b := NewBus("cfg", pads, BusConfig{
		Mode:        BusOutput,
		Slew:        SlewFast,
		Drive:       Drive8mA,
		Termination: TermPullUp,
	})
	b.Init()

	for _, p := range pads {
		if !PadReserved(p) {
			t.Errorf("pad %s not reserved after Init", p)
		}
		if !f.IsOutput(p) {
			t.Errorf("pad %s not driven as output", p)
		}
		if f.slew[p] != SlewFast {
			t.Errorf("pad %s slew = %v, want SlewFast", p, f.slew[p])
		}
		if f.drive[p] != Drive8mA {
			t.Errorf("pad %s drive = %v, want Drive8mA", p, f.drive[p])
		}
		if f.term[p] != TermPullUp {
			t.Errorf("pad %s termination = %v, want TermPullUp", p, f.term[p])
		}
	}

	b.Deinit()
	for _, p := range pads {
		if PadReserved(p) {
			t.Errorf("pad %s still reserved after Deinit", p)
		}
		if !f.unused[p] {
			t.Errorf("pad %s not returned to unused", p)
		}
		if f.term[p] != TermFloat {
			t.Errorf("pad %s termination not floated on Deinit", p)
		}
	}
}

func TestBusBidirectional(t *testing.T) {
	f := withFakePorts(t)

	b := NewBus("bidi", []PadID{"A14", "A15"}, BusConfig{Mode: BusBidirectional})
	b.Init()
	defer b.Deinit()

	// A bidirectional bus comes up as input.
	if b.Direction() != DirInput {
		t.Error("bidirectional bus must start as input")
	}

	f.input[0] = 1 << 15
	if got := b.Read(); got != 0b10 {
		t.Errorf("Read() = %#b, want 0b10", got)
	}

	b.SetDirection(DirOutput)
	if b.Direction() != DirOutput {
		t.Error("direction not output after SetDirection")
	}
	b.Modify(0b01)
	if got := b.Get(); got != 0b01 {
		t.Errorf("Get() = %#b, want 0b01", got)
	}

	b.SetDirection(DirInput)
	if b.Direction() != DirInput {
		t.Error("direction not input after SetDirection")
	}
}

func TestBusModeMisuse(t *testing.T) {
	withFakePorts(t)

	in := NewBus("misuse-in", []PadID{"A16"}, BusConfig{Mode: BusInput})
	in.Init()
	defer in.Deinit()
	expectFatal(t, func() { in.Get() })
	expectFatal(t, func() { in.Modify(1) })
	expectFatal(t, func() { in.SetBits(1) })
	expectFatal(t, func() { in.ClearBits(1) })
	expectFatal(t, func() { in.SetDirection(DirOutput) })
	expectFatal(t, func() { in.Direction() })

	out := NewBus("misuse-out", []PadID{"A17"}, BusConfig{Mode: BusOutput})
	out.Init()
	defer out.Deinit()
	expectFatal(t, func() { out.Read() })
	expectFatal(t, func() { out.SetDirection(DirInput) })
}

func TestBusLifecycleMisuse(t *testing.T) {
	withFakePorts(t)

	b := NewBus("lifecycle", []PadID{"A18"}, BusConfig{Mode: BusOutput})
	expectFatal(t, func() { b.Deinit() })
	b.Init()
	expectFatal(t, func() { b.Init() })
	b.Deinit()
}

func TestBusRejectsBadPadSets(t *testing.T) {
	withFakePorts(t)

	expectFatal(t, func() { NewBus("empty", nil, BusConfig{}) })

	wide := make([]PadID, 33)
	for i := range wide {
		wide[i] = PadID("A" + itoa(i%30))
	}
	expectFatal(t, func() { NewBus("wide", wide, BusConfig{}) })
}

func TestBusPadConflict(t *testing.T) {
	withFakePorts(t)

	first := NewBus("holder", []PadID{"A19"}, BusConfig{Mode: BusOutput})
	first.Init()
	defer first.Deinit()

	second := NewBus("taker", []PadID{"A19"}, BusConfig{Mode: BusInput})
	expectFatal(t, func() { second.Init() })
}

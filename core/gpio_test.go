package core

import "testing"

// fakePorts is a two-port in-memory PortDriver. Pads are named "A0".."A31"
// and "B0".."B31"; the letter selects the port, the number the offset.
type fakePorts struct {
	input  [2]uint32
	output [2]uint32
	oe     [2]uint32
	term   map[PadID]Termination
	slew   map[PadID]SlewRate
	drive  map[PadID]DriveMode
	unused map[PadID]bool
}

func newFakePorts() *fakePorts {
	return &fakePorts{
		term:   make(map[PadID]Termination),
		slew:   make(map[PadID]SlewRate),
		drive:  make(map[PadID]DriveMode),
		unused: make(map[PadID]bool),
	}
}

func (f *fakePorts) split(pad PadID) (Port, uint8) {
	name := string(pad)
	port := Port(0)
	if name[0] == 'B' {
		port = 1
	}
	offset := uint8(0)
	for _, c := range name[1:] {
		offset = offset*10 + uint8(c-'0')
	}
	return port, offset
}

func (f *fakePorts) EnsurePortsEnabled(pads []PadID) {}

func (f *fakePorts) ConfigureAsInput(pad PadID) {
	port, offset := f.split(pad)
	f.oe[port] &^= 1 << offset
	f.unused[pad] = false
}

func (f *fakePorts) ConfigureAsOutput(pad PadID, initial bool) {
	port, offset := f.split(pad)
	f.oe[port] |= 1 << offset
	if initial {
		f.output[port] |= 1 << offset
	} else {
		f.output[port] &^= 1 << offset
	}
	f.unused[pad] = false
}

func (f *fakePorts) ConfigureAsUnused(pad PadID) {
	port, offset := f.split(pad)
	f.oe[port] &^= 1 << offset
	f.unused[pad] = true
}

func (f *fakePorts) ConfigureSlewRate(pad PadID, slew SlewRate) { f.slew[pad] = slew }

func (f *fakePorts) ConfigureDriveMode(pad PadID, drive DriveMode) { f.drive[pad] = drive }

func (f *fakePorts) ConfigureTermination(pad PadID, term Termination) { f.term[pad] = term }

func (f *fakePorts) ReadInput(pad PadID) bool {
	port, offset := f.split(pad)
	return f.input[port]&(1<<offset) != 0
}

func (f *fakePorts) WriteOutput(pad PadID, value bool) {
	port, offset := f.split(pad)
	if value {
		f.output[port] |= 1 << offset
	} else {
		f.output[port] &^= 1 << offset
	}
}

func (f *fakePorts) IsOutput(pad PadID) bool {
	port, offset := f.split(pad)
	return f.oe[port]&(1<<offset) != 0
}

func (f *fakePorts) IOPort(pad PadID) Port {
	port, _ := f.split(pad)
	return port
}

func (f *fakePorts) Offset(pad PadID) uint8 {
	_, offset := f.split(pad)
	return offset
}

func (f *fakePorts) ReadInputPort(port Port) uint32 { return f.input[port] }

func (f *fakePorts) ReadOutputPort(port Port) uint32 { return f.output[port] }

func (f *fakePorts) ModifyOutputPort(port Port, clear, set uint32) {
	f.output[port] = f.output[port]&^clear | set
}

// withFakePorts installs a fresh fake driver for one test.
func withFakePorts(t *testing.T) *fakePorts {
	t.Helper()
	prev := portDriver
	t.Cleanup(func() { portDriver = prev })
	f := newFakePorts()
	SetPortDriver(f)
	return f
}

func TestMustPortsUnregistered(t *testing.T) {
	prev := portDriver
	defer func() { portDriver = prev }()
	portDriver = nil

	expectFatal(t, func() { MustPorts() })
}

func TestPadInSet(t *testing.T) {
	set := []PadID{"A0", "B3"}
	if !PadInSet("A0", set) {
		t.Error("A0 should be in set")
	}
	if PadInSet("A1", set) {
		t.Error("A1 should not be in set")
	}
	if PadInSet(NoPad, set) {
		t.Error("NoPad should never match")
	}
}

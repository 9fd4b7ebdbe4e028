package core

// BusMode selects which side of a bus is usable.
type BusMode uint8

const (
	BusInput BusMode = iota
	BusOutput
	BusBidirectional
)

// BusDirection is the live direction of a bidirectional bus.
type BusDirection uint8

const (
	DirInput BusDirection = iota
	DirOutput
)

// BusConfig describes how the bus pads are configured at Init.
type BusConfig struct {
	Mode        BusMode
	Slew        SlewRate
	Drive       DriveMode
	Termination Termination
}

// busBit maps one logical bus bit onto a physical port bit.
type busBit struct {
	logical uint8
	offset  uint8
}

// portGroup collects the bus bits living on one physical port so each
// port word is read or written once per operation.
type portGroup struct {
	port Port
	bits []busBit
}

// Bus projects a fixed-order tuple of pads onto a single state word.
// Bit i of the word corresponds to pad i in declaration order, regardless
// of which physical port the pad lives on.
type Bus struct {
	name   string
	pads   []PadID
	cfg    BusConfig
	groups []portGroup
	inited bool
}

// NewBus builds a bus over pads in declaration order. The pad count is
// limited to the 32-bit state word. Port groupings are computed here,
// once, so the per-operation cost is one register access per distinct
// port.
func NewBus(name string, pads []PadID, cfg BusConfig) *Bus {
	if len(pads) == 0 {
		Fatal("bus " + name + ": no pads")
	}
	if len(pads) > 32 {
		Fatal("bus " + name + ": more than 32 pads")
	}
	gpio := MustPorts()
	b := &Bus{name: name, pads: pads, cfg: cfg}
	for i, pad := range pads {
		port := gpio.IOPort(pad)
		bit := busBit{logical: uint8(i), offset: gpio.Offset(pad)}
		found := false
		for gi := range b.groups {
			if b.groups[gi].port == port {
				b.groups[gi].bits = append(b.groups[gi].bits, bit)
				found = true
				break
			}
		}
		if !found {
			b.groups = append(b.groups, portGroup{port: port, bits: []busBit{bit}})
		}
	}
	return b
}

// Owner returns the ledger descriptor the bus reserves its pads under.
func (b *Bus) Owner() string {
	return "Bus " + b.name
}

// Init reserves the pads and configures them. A bidirectional bus starts
// as input. Runs in a critical section so interrupts never observe a
// torn configuration.
func (b *Bus) Init() {
	if b.inited {
		Fatal("bus " + b.name + ": double init")
	}
	gpio := MustPorts()
	cs := EnterCritical()
	defer cs.Leave()

	ReservePads(b.pads, b.Owner())
	gpio.EnsurePortsEnabled(b.pads)
	for _, pad := range b.pads {
		gpio.ConfigureTermination(pad, b.cfg.Termination)
	}
	switch b.cfg.Mode {
	case BusInput, BusBidirectional:
		for _, pad := range b.pads {
			gpio.ConfigureAsInput(pad)
		}
	case BusOutput:
		b.configureOutputs(gpio)
	}
	b.inited = true
}

// Deinit restores the pads to unused and releases them.
func (b *Bus) Deinit() {
	if !b.inited {
		Fatal("bus " + b.name + ": deinit before init")
	}
	gpio := MustPorts()
	cs := EnterCritical()
	defer cs.Leave()

	for _, pad := range b.pads {
		gpio.ConfigureTermination(pad, TermFloat)
		gpio.ConfigureAsUnused(pad)
	}
	ReleasePads(b.pads, b.Owner())
	b.inited = false
}

func (b *Bus) configureOutputs(gpio PortDriver) {
	for _, pad := range b.pads {
		gpio.ConfigureAsOutput(pad, false)
		gpio.ConfigureSlewRate(pad, b.cfg.Slew)
		gpio.ConfigureDriveMode(pad, b.cfg.Drive)
	}
}

// Read samples the input side and gathers it into the logical state word.
// Valid for input and bidirectional buses.
func (b *Bus) Read() uint32 {
	if b.cfg.Mode == BusOutput {
		Fatal("bus " + b.name + ": read on output bus")
	}
	gpio := MustPorts()
	return b.gather(gpio.ReadInputPort)
}

// Get reads back the last written state word from the output latches.
// Valid for output and bidirectional buses.
func (b *Bus) Get() uint32 {
	if b.cfg.Mode == BusInput {
		Fatal("bus " + b.name + ": get on input bus")
	}
	gpio := MustPorts()
	return b.gather(gpio.ReadOutputPort)
}

func (b *Bus) gather(readPort func(Port) uint32) uint32 {
	var state uint32
	for _, g := range b.groups {
		word := readPort(g.port)
		for _, bit := range g.bits {
			if word&(1<<bit.offset) != 0 {
				state |= 1 << bit.logical
			}
		}
	}
	return state
}

// Modify drives the full state word onto the bus, one port write per
// distinct port. Valid for output and bidirectional buses.
func (b *Bus) Modify(state uint32) {
	b.checkWritable("modify")
	gpio := MustPorts()
	for _, g := range b.groups {
		var toSet, toClear uint32
		for _, bit := range g.bits {
			if state&(1<<bit.logical) != 0 {
				toSet |= 1 << bit.offset
			} else {
				toClear |= 1 << bit.offset
			}
		}
		gpio.ModifyOutputPort(g.port, toClear, toSet)
	}
}

// SetBits drives high every bus bit set in mask, leaving the rest alone.
func (b *Bus) SetBits(mask uint32) {
	b.checkWritable("setBits")
	gpio := MustPorts()
	for _, g := range b.groups {
		var toSet uint32
		for _, bit := range g.bits {
			if mask&(1<<bit.logical) != 0 {
				toSet |= 1 << bit.offset
			}
		}
		if toSet != 0 {
			gpio.ModifyOutputPort(g.port, 0, toSet)
		}
	}
}

// ClearBits drives low every bus bit set in mask, leaving the rest alone.
func (b *Bus) ClearBits(mask uint32) {
	b.checkWritable("clearBits")
	gpio := MustPorts()
	for _, g := range b.groups {
		var toClear uint32
		for _, bit := range g.bits {
			if mask&(1<<bit.logical) != 0 {
				toClear |= 1 << bit.offset
			}
		}
		if toClear != 0 {
			gpio.ModifyOutputPort(g.port, toClear, 0)
		}
	}
}

func (b *Bus) checkWritable(op string) {
	if b.cfg.Mode != BusOutput && b.cfg.Mode != BusBidirectional {
		Fatal("bus " + b.name + ": " + op + " on input bus")
	}
}

// SetDirection flips all pads of a bidirectional bus between input and
// output together.
func (b *Bus) SetDirection(dir BusDirection) {
	if b.cfg.Mode != BusBidirectional {
		Fatal("bus " + b.name + ": setDirection on fixed-direction bus")
	}
	gpio := MustPorts()
	cs := EnterCritical()
	defer cs.Leave()

	if dir == DirOutput {
		b.configureOutputs(gpio)
	} else {
		for _, pad := range b.pads {
			gpio.ConfigureAsInput(pad)
		}
	}
}

// Direction reports the live direction of a bidirectional bus. Pad 0 is
// authoritative since all pads move together.
func (b *Bus) Direction() BusDirection {
	if b.cfg.Mode != BusBidirectional {
		Fatal("bus " + b.name + ": direction on fixed-direction bus")
	}
	if MustPorts().IsOutput(b.pads[0]) {
		return DirOutput
	}
	return DirInput
}

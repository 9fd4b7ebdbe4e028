package core

// PadID names a single physical I/O pin of the package, e.g. "PA0" or
// "GPIO25". Identity is the tag name itself: generic board code may probe
// a pad against sets that include names not defined on every package, so
// pad equality is string equality.
type PadID string

// NoPad is the zero pad, never a valid pin.
const NoPad PadID = ""

// PadInSet reports whether p appears in set, comparing by name.
func PadInSet(p PadID, set []PadID) bool {
	for _, s := range set {
		if s == p {
			return true
		}
	}
	return false
}

// Port identifies a group of pads whose register word is accessed
// together.
type Port uint8

// SlewRate selects the output edge rate of a pad.
type SlewRate uint8

const (
	SlewSlow SlewRate = iota
	SlewFast
)

// DriveMode selects the output drive strength of a pad.
type DriveMode uint8

const (
	DriveDefault DriveMode = iota
	Drive2mA
	Drive4mA
	Drive8mA
	Drive12mA
)

// Termination selects the pad's input termination.
type Termination uint8

const (
	TermFloat Termination = iota
	TermPullUp
	TermPullDown
)

// PortDriver is the abstract GPIO interface that core code uses.
// Platform-specific implementations handle actual hardware control.
// Port words are at most 32 bits wide; narrower ports use the low bits.
type PortDriver interface {
	// EnsurePortsEnabled clocks up every port containing one of pads.
	EnsurePortsEnabled(pads []PadID)

	// ConfigureAsInput configures a pad as a digital input.
	ConfigureAsInput(pad PadID)

	// ConfigureAsOutput configures a pad as a push-pull output driving
	// the given initial level.
	ConfigureAsOutput(pad PadID, initial bool)

	// ConfigureAsUnused returns a pad to its reset, high-impedance state.
	ConfigureAsUnused(pad PadID)

	// ConfigureSlewRate sets the output edge rate.
	ConfigureSlewRate(pad PadID, slew SlewRate)

	// ConfigureDriveMode sets the output drive strength.
	ConfigureDriveMode(pad PadID, drive DriveMode)

	// ConfigureTermination sets the input termination.
	ConfigureTermination(pad PadID, term Termination)

	// ReadInput reads the pad's input level.
	ReadInput(pad PadID) bool

	// WriteOutput drives the pad's output level.
	WriteOutput(pad PadID, value bool)

	// IsOutput reports whether the pad is currently an output.
	IsOutput(pad PadID) bool

	// IOPort returns the port a pad belongs to.
	IOPort(pad PadID) Port

	// Offset returns the pad's bit position within its port word.
	Offset(pad PadID) uint8

	// ReadInputPort reads the port's input word.
	ReadInputPort(port Port) uint32

	// ReadOutputPort reads back the port's output latch.
	ReadOutputPort(port Port) uint32

	// ModifyOutputPort clears the bits of clear and sets the bits of set
	// in the port's output latch, in one operation.
	ModifyOutputPort(port Port, clear, set uint32)
}

// Global singleton used by core code.
var portDriver PortDriver

// SetPortDriver is called by target-specific code to register its driver.
func SetPortDriver(d PortDriver) {
	portDriver = d
}

// MustPorts returns the configured driver or fails fatally if missing.
func MustPorts() PortDriver {
	if portDriver == nil {
		Fatal("GPIO port driver not configured")
	}
	return portDriver
}

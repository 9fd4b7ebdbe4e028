package core

// Bit-banged IEEE 1149.1 adapter over four GPIO pads. TMS is sampled by
// the target on the rising edge of TCK; TDO is sampled by us while TCK
// is low.

// TAPState is the adapter's view of the target TAP state machine: the 16
// standard states plus five pseudo-states walked through during initial
// synchronisation. Holding TMS high for five clocks forces any TAP into
// reset, which is exactly the unknown chain below.
type TAPState uint8

const (
	TAPUnknown TAPState = iota
	TAPUnknown2
	TAPUnknown3
	TAPUnknown4
	TAPUnknown5
	TAPReset
	TAPIdle
	TAPDRSelect
	TAPDRCapture
	TAPDRShift
	TAPDRExit1
	TAPDRPause
	TAPDRExit2
	TAPDRUpdate
	TAPIRSelect
	TAPIRCapture
	TAPIRShift
	TAPIRExit1
	TAPIRPause
	TAPIRExit2
	TAPIRUpdate
)

// String names the state for diagnostics.
func (s TAPState) String() string {
	switch s {
	case TAPUnknown, TAPUnknown2, TAPUnknown3, TAPUnknown4, TAPUnknown5:
		return "unknown"
	case TAPReset:
		return "reset"
	case TAPIdle:
		return "idle"
	case TAPDRSelect:
		return "DR-select"
	case TAPDRCapture:
		return "DR-capture"
	case TAPDRShift:
		return "DR-shift"
	case TAPDRExit1:
		return "DR-exit1"
	case TAPDRPause:
		return "DR-pause"
	case TAPDRExit2:
		return "DR-exit2"
	case TAPDRUpdate:
		return "DR-update"
	case TAPIRSelect:
		return "IR-select"
	case TAPIRCapture:
		return "IR-capture"
	case TAPIRShift:
		return "IR-shift"
	case TAPIRExit1:
		return "IR-exit1"
	case TAPIRPause:
		return "IR-pause"
	case TAPIRExit2:
		return "IR-exit2"
	case TAPIRUpdate:
		return "IR-update"
	}
	return "invalid"
}

func isDRSubState(s TAPState) bool {
	return s >= TAPDRCapture && s <= TAPDRUpdate
}

func isIRSubState(s TAPState) bool {
	return s >= TAPIRCapture && s <= TAPIRUpdate
}

// tapStep returns the TMS level to clock and the state it leads to, for
// one transition of the walk from state toward target.
func tapStep(state, target TAPState) (tms bool, next TAPState) {
	switch state {
	case TAPUnknown:
		return true, TAPUnknown2
	case TAPUnknown2:
		return true, TAPUnknown3
	case TAPUnknown3:
		return true, TAPUnknown4
	case TAPUnknown4:
		return true, TAPUnknown5
	case TAPUnknown5:
		return true, TAPReset
	case TAPReset:
		return false, TAPIdle
	case TAPIdle:
		return true, TAPDRSelect

	case TAPDRSelect:
		if isDRSubState(target) {
			return false, TAPDRCapture
		}
		return true, TAPIRSelect
	case TAPDRCapture:
		if target == TAPDRShift {
			return false, TAPDRShift
		}
		return true, TAPDRExit1
	case TAPDRShift:
		return true, TAPDRExit1
	case TAPDRExit1:
		if target == TAPDRPause || target == TAPDRExit2 || target == TAPDRShift {
			return false, TAPDRPause
		}
		return true, TAPDRUpdate
	case TAPDRPause:
		return true, TAPDRExit2
	case TAPDRExit2:
		// Targeting DR-exit1 or DR-pause from here passes back through
		// DR-shift and clocks one extra bit into the data register.
		// Best effort; callers that care route through DR-update.
		if target == TAPDRShift || target == TAPDRExit1 || target == TAPDRPause {
			return false, TAPDRShift
		}
		return true, TAPDRUpdate
	case TAPDRUpdate:
		if target == TAPIdle {
			return false, TAPIdle
		}
		return true, TAPDRSelect

	case TAPIRSelect:
		if isIRSubState(target) {
			return false, TAPIRCapture
		}
		return true, TAPReset
	case TAPIRCapture:
		if target == TAPIRShift {
			return false, TAPIRShift
		}
		return true, TAPIRExit1
	case TAPIRShift:
		return true, TAPIRExit1
	case TAPIRExit1:
		if target == TAPIRPause || target == TAPIRExit2 || target == TAPIRShift {
			return false, TAPIRPause
		}
		return true, TAPIRUpdate
	case TAPIRPause:
		return true, TAPIRExit2
	case TAPIRExit2:
		// Same extra-bit caveat as DR-exit2.
		if target == TAPIRShift || target == TAPIRExit1 || target == TAPIRPause {
			return false, TAPIRShift
		}
		return true, TAPIRUpdate
	case TAPIRUpdate:
		if target == TAPIdle {
			return false, TAPIdle
		}
		return true, TAPDRSelect
	}
	Fatal("jtag: invalid TAP state")
	return false, TAPUnknown
}

// JTAGConfig describes one adapter: the four pads, the clock ceiling,
// and the instruction-register width of each TAP in the scan chain,
// nearest to TDO first.
type JTAGConfig struct {
	TCK PadID
	TMS PadID
	TDI PadID
	TDO PadID

	// MaxFrequencyHz caps the TCK rate. The half period is rounded up
	// to whole microticks, so the effective rate never exceeds it.
	MaxFrequencyHz uint32

	// Chain holds the IR width of each TAP in the scan chain.
	Chain []uint8
}

// JTAG owns the four JTAG pads and tracks the target TAP state.
type JTAG struct {
	cfg        JTAGConfig
	state      TAPState
	halfPeriod Microtick
	gpio       PortDriver
	micro      MicrotickSource
	idleBurst  func(n uint32)
	inited     bool
}

// NewJTAG builds an adapter. The TCK half period in microticks is fixed
// here from the microtick rate and the configured frequency ceiling.
func NewJTAG(cfg JTAGConfig) *JTAG {
	if cfg.MaxFrequencyHz == 0 {
		Fatal("jtag: zero max frequency")
	}
	if len(cfg.Chain) == 0 {
		Fatal("jtag: empty scan chain")
	}
	micro := MustMicrotick()
	half := ceilDiv(micro.MicrotickFrequencyHz(), 2*uint64(cfg.MaxFrequencyHz))
	return &JTAG{
		cfg:        cfg,
		state:      TAPUnknown,
		halfPeriod: Microtick(half),
		gpio:       MustPorts(),
		micro:      micro,
	}
}

// HalfPeriodMicroticks reports the fixed TCK half period.
func (j *JTAG) HalfPeriodMicroticks() Microtick { return j.halfPeriod }

// State reports the adapter's view of the target TAP state.
func (j *JTAG) State() TAPState { return j.state }

func (j *JTAG) pads() []PadID {
	return []PadID{j.cfg.TCK, j.cfg.TMS, j.cfg.TDI, j.cfg.TDO}
}

// Init reserves the four pads and configures them: TCK, TMS and TDI as
// slow-slew push-pull outputs, TDO as input. The target state is unknown
// until the first ChangeState walks it into reset.
func (j *JTAG) Init() {
	if j.inited {
		Fatal("jtag: double init")
	}
	cs := EnterCritical()
	defer cs.Leave()

	ReservePads(j.pads(), "JTAG")
	j.gpio.EnsurePortsEnabled(j.pads())
	for _, pad := range []PadID{j.cfg.TCK, j.cfg.TMS, j.cfg.TDI} {
		j.gpio.ConfigureAsOutput(pad, false)
		j.gpio.ConfigureSlewRate(pad, SlewSlow)
	}
	j.gpio.ConfigureAsInput(j.cfg.TDO)
	j.state = TAPUnknown
	j.inited = true
}

// Deinit returns the pads to unused and releases them.
func (j *JTAG) Deinit() {
	if !j.inited {
		Fatal("jtag: deinit before init")
	}
	cs := EnterCritical()
	defer cs.Leave()

	for _, pad := range j.pads() {
		j.gpio.ConfigureAsUnused(pad)
	}
	ReleasePads(j.pads(), "JTAG")
	j.inited = false
}

func (j *JTAG) waitHalfPeriod() {
	deadline := j.micro.CurrentMicrotick() + j.halfPeriod
	for j.micro.CurrentMicrotick().IsBefore(deadline) {
	}
}

// clockPulse emits one full TCK cycle and returns the TDO bit sampled
// during the low phase.
func (j *JTAG) clockPulse() bool {
	j.gpio.WriteOutput(j.cfg.TCK, false)
	j.waitHalfPeriod()
	bit := j.gpio.ReadInput(j.cfg.TDO)
	j.gpio.WriteOutput(j.cfg.TCK, true)
	j.waitHalfPeriod()
	return bit
}

// ChangeState drives TMS and strobes TCK until the TAP reaches target.
// From any state the walk terminates within seven transitions.
func (j *JTAG) ChangeState(target TAPState) {
	for j.state != target {
		tms, next := tapStep(j.state, target)
		j.gpio.WriteOutput(j.cfg.TMS, tms)
		j.clockPulse()
		j.state = next
	}
}

// Shift moves to shiftState and clocks width bits of value out on TDI,
// LSB first, capturing TDO into the result the same way: the first bit
// sampled lands in bit 0. The final bit is clocked with TMS high, which
// moves the TAP to exitState. A zero-width shift is a no-op.
func (j *JTAG) Shift(value uint64, width uint8, shiftState, exitState TAPState) uint64 {
	if width == 0 {
		return 0
	}
	if width > 64 {
		Fatal("jtag: shift wider than 64 bits")
	}
	j.ChangeState(shiftState)
	j.gpio.WriteOutput(j.cfg.TMS, false)
	var captured uint64
	for i := uint8(0); i < width; i++ {
		if i == width-1 {
			j.gpio.WriteOutput(j.cfg.TMS, true)
		}
		j.gpio.WriteOutput(j.cfg.TDI, value&1 != 0)
		value >>= 1
		captured >>= 1
		if j.clockPulse() {
			captured |= 1 << (width - 1)
		}
	}
	j.state = exitState
	return captured
}

// ShiftDR shifts width bits through the data register, leaving the TAP
// in DR-exit1.
func (j *JTAG) ShiftDR(value uint64, width uint8) uint64 {
	return j.Shift(value, width, TAPDRShift, TAPDRExit1)
}

// ShiftIR shifts width bits through the instruction register, leaving
// the TAP in IR-exit1.
func (j *JTAG) ShiftIR(value uint64, width uint8) uint64 {
	return j.Shift(value, width, TAPIRShift, TAPIRExit1)
}

// SetIdleBurst installs a hardware TCK burst generator. Idle hands its
// pulse count to the generator instead of bit-banging; TMS is already
// driven low, so the extra clocks leave the TAP in idle. The generator
// must not return before the last pulse has completed.
func (j *JTAG) SetIdleBurst(burst func(n uint32)) {
	j.idleBurst = burst
}

// Idle strobes TCK n times in the idle state.
func (j *JTAG) Idle(n uint32) {
	j.ChangeState(TAPIdle)
	j.gpio.WriteOutput(j.cfg.TMS, false)
	if j.idleBurst != nil && n > 0 {
		j.idleBurst(n)
		return
	}
	for i := uint32(0); i < n; i++ {
		j.clockPulse()
	}
}

// IdleUntil strobes TCK in the idle state until the tick deadline has
// passed, then keeps going until at least minClocks pulses have been
// emitted in total.
func (j *JTAG) IdleUntil(deadline Tick, minClocks uint32) {
	j.ChangeState(TAPIdle)
	j.gpio.WriteOutput(j.cfg.TMS, false)
	count := uint32(0)
	for CurrentTick().IsBefore(deadline) {
		j.clockPulse()
		count++
	}
	for count < minClocks {
		j.clockPulse()
		count++
	}
}

// TAP projects the adapter onto one TAP of the scan chain. Every other
// TAP is kept in BYPASS, whose one-bit register makes the padding
// arithmetic exact: index bits for the TAPs between it and TDO,
// chain-length minus index minus one for those between it and TDI.
type TAP struct {
	j     *JTAG
	index int
}

// Tap selects the TAP at index in the scan chain.
func (j *JTAG) Tap(index int) TAP {
	if index < 0 || index >= len(j.cfg.Chain) {
		Fatal("jtag: TAP index out of range")
	}
	return TAP{j: j, index: index}
}

// Instruction shifts insn into the selected TAP's instruction register
// while loading BYPASS (all ones) into every other TAP, then moves to
// end.
func (t TAP) Instruction(insn uint64, end TAPState) {
	var value uint64
	var width uint8
	for i, w := range t.j.cfg.Chain {
		if i == t.index {
			value |= (insn & onesMask(w)) << width
		} else {
			value |= onesMask(w) << width
		}
		width += w
	}
	t.j.Shift(value, width, TAPIRShift, TAPIRExit1)
	t.j.ChangeState(end)
}

// Data shifts width bits of value through the selected TAP's data
// register, padded with the bypass bits of the other TAPs, then moves to
// end. The returned word is the selected TAP's response with the bypass
// delay stripped.
func (t TAP) Data(value uint64, width uint8, end TAPState) uint64 {
	pre := uint8(t.index)
	post := uint8(len(t.j.cfg.Chain) - t.index - 1)
	if int(pre)+int(width)+int(post) > 64 {
		Fatal("jtag: data shift wider than 64 bits")
	}
	total := pre + width + post
	captured := t.j.Shift((value&onesMask(width))<<pre, total, TAPDRShift, TAPDRExit1)
	t.j.ChangeState(end)
	return (captured >> pre) & onesMask(width)
}

func onesMask(width uint8) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

//go:build rp2040

package main

import (
	"machine"

	"mcuhal/core"
)

// RP2040 pad control registers, one 32-bit register per GPIO in BANK0.
const (
	padsBank0Base = 0x4001c000
	padGPIO0      = padsBank0Base + 0x04

	padSlewFast  = 1 << 0
	padDriveMask = 0x3 << 4
	padDrivePos  = 4
	padPullDown  = 1 << 2
	padPullUp    = 1 << 3
)

// SIO GPIO registers. All 30 GPIOs of BANK0 live in a single port word.
const (
	sioBase       = 0xd0000000
	sioGPIOIn     = sioBase + 0x004
	sioGPIOOut    = sioBase + 0x010
	sioGPIOOutSet = sioBase + 0x014
	sioGPIOOutClr = sioBase + 0x018
	sioGPIOOE     = sioBase + 0x020
)

var (
	sioIn     = core.MMIORO[uint32](sioGPIOIn)
	sioOut    = core.MMIORO[uint32](sioGPIOOut)
	sioOutSet = core.MMIOWO[uint32](sioGPIOOutSet)
	sioOutClr = core.MMIOWO[uint32](sioGPIOOutClr)
	sioOE     = core.MMIORO[uint32](sioGPIOOE)
)

// rpPorts implements the core GPIO surface for the RP2040. Pads are named
// "gpio0" through "gpio29" and all live on port 0.
type rpPorts struct{}

const numGPIO = 30

// pinOf resolves a pad name to its GPIO number and fails fatally on names
// this package does not define.
func pinOf(pad core.PadID) machine.Pin {
	name := string(pad)
	if len(name) < 5 || name[:4] != "gpio" {
		core.Fatal("gpio: unknown pad " + name)
	}
	n := 0
	for _, c := range name[4:] {
		if c < '0' || c > '9' {
			core.Fatal("gpio: unknown pad " + name)
		}
		n = n*10 + int(c-'0')
	}
	if n >= numGPIO {
		core.Fatal("gpio: pad out of range " + name)
	}
	return machine.Pin(n)
}

func padReg(pin machine.Pin) core.RW[uint32] {
	return core.MMIO[uint32](uintptr(padGPIO0) + uintptr(pin)*4)
}

func (rpPorts) EnsurePortsEnabled(pads []core.PadID) {
	// BANK0 is always clocked on the RP2040.
}

func (rpPorts) ConfigureAsInput(pad core.PadID) {
	pinOf(pad).Configure(machine.PinConfig{Mode: machine.PinInput})
}

func (rpPorts) ConfigureAsOutput(pad core.PadID, initial bool) {
	pin := pinOf(pad)
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	pin.Set(initial)
}

func (rpPorts) ConfigureAsUnused(pad core.PadID) {
	pin := pinOf(pad)
	pin.Configure(machine.PinConfig{Mode: machine.PinInput})
	reg := padReg(pin)
	reg.ClearBits(padPullUp | padPullDown | padSlewFast)
}

func (rpPorts) ConfigureSlewRate(pad core.PadID, slew core.SlewRate) {
	reg := padReg(pinOf(pad))
	if slew == core.SlewFast {
		reg.SetBits(padSlewFast)
	} else {
		reg.ClearBits(padSlewFast)
	}
}

func (rpPorts) ConfigureDriveMode(pad core.PadID, drive core.DriveMode) {
	var sel uint32
	switch drive {
	case core.Drive2mA:
		sel = 0
	case core.Drive4mA, core.DriveDefault:
		sel = 1
	case core.Drive8mA:
		sel = 2
	case core.Drive12mA:
		sel = 3
	}
	reg := padReg(pinOf(pad))
	reg.Write(reg.Read()&^uint32(padDriveMask) | sel<<padDrivePos)
}

func (rpPorts) ConfigureTermination(pad core.PadID, term core.Termination) {
	reg := padReg(pinOf(pad))
	switch term {
	case core.TermPullUp:
		reg.Write(reg.Read()&^uint32(padPullDown) | padPullUp)
	case core.TermPullDown:
		reg.Write(reg.Read()&^uint32(padPullUp) | padPullDown)
	default:
		reg.ClearBits(padPullUp | padPullDown)
	}
}

func (rpPorts) ReadInput(pad core.PadID) bool {
	return sioIn.Read()&(1<<pinOf(pad)) != 0
}

func (rpPorts) WriteOutput(pad core.PadID, value bool) {
	mask := uint32(1) << pinOf(pad)
	if value {
		sioOutSet.Write(mask)
	} else {
		sioOutClr.Write(mask)
	}
}

func (rpPorts) IsOutput(pad core.PadID) bool {
	return sioOE.Read()&(1<<pinOf(pad)) != 0
}

func (rpPorts) IOPort(pad core.PadID) core.Port { return 0 }

func (rpPorts) Offset(pad core.PadID) uint8 { return uint8(pinOf(pad)) }

func (rpPorts) ReadInputPort(port core.Port) uint32 { return sioIn.Read() }

func (rpPorts) ReadOutputPort(port core.Port) uint32 { return sioOut.Read() }

func (rpPorts) ModifyOutputPort(port core.Port, clear, set uint32) {
	if clear != 0 {
		sioOutClr.Write(clear)
	}
	if set != 0 {
		sioOutSet.Write(set)
	}
}

// initGPIO registers the RP2040 port driver.
func initGPIO() {
	core.SetPortDriver(rpPorts{})
}

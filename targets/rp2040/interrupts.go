//go:build rp2040

package main

import (
	"device/arm"

	"mcuhal/core"
)

// Cortex-M0+ NVIC. The RP2040 routes 26 peripheral lines through it;
// priority is two bits wide, stored in the top bits of each IPR byte
// lane.
const (
	nvicISER = 0xe000e100
	nvicICER = 0xe000e180
	nvicISPR = 0xe000e200
	nvicIPR  = 0xe000e400

	numIRQ = 26
)

var (
	iser = core.MMIOWO[uint32](nvicISER)
	icer = core.MMIOWO[uint32](nvicICER)
	ispr = core.MMIO[uint32](nvicISPR)
)

type rpNVIC struct{}

func (rpNVIC) SetEnabled(irq core.IRQ, enable bool) {
	if irq >= numIRQ {
		core.Fatal("nvic: irq out of range")
	}
	if enable {
		iser.Write(1 << irq)
	} else {
		icer.Write(1 << irq)
	}
}

func (rpNVIC) SetPriority(irq core.IRQ, priority uint8) {
	if irq >= numIRQ {
		core.Fatal("nvic: irq out of range")
	}
	reg := core.MMIO[uint32](uintptr(nvicIPR) + uintptr(irq/4)*4)
	shift := (irq % 4) * 8
	// Only the top two bits of each lane are implemented.
	lane := uint32(priority&0xc0) << shift
	reg.Write(reg.Read()&^(uint32(0xff)<<shift) | lane)
}

func (rpNVIC) SetPending(irq core.IRQ) {
	ispr.Write(1 << irq)
}

func (rpNVIC) IsPending(irq core.IRQ) bool {
	return ispr.Read()&(1<<irq) != 0
}

func (rpNVIC) WaitForInterrupt() {
	arm.Asm("wfi")
}

// initInterrupts registers the NVIC shim.
func initInterrupts() {
	core.SetInterruptDriver(rpNVIC{})
}

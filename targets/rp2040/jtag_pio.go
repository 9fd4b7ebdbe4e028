//go:build rp2040

package main

import (
	"machine"

	rp2pio "github.com/tinygo-org/pio/rp2-pio"

	"mcuhal/core"
)

// PIO-driven TCK burst generator. Long idle bursts (run-test cycles
// between flash operations) dominate JTAG wall time when bit-banged;
// this offloads them to a PIO state machine that pulses TCK at the
// adapter's configured rate while the CPU waits out the burst on the
// microsecond timer.
//
// Program, 4 PIO cycles per TCK period:
//
//	pull block          ; burst length - 1
//	out x, 32
//	loop:
//	set pins, 1 [1]     ; TCK high
//	set pins, 0         ; TCK low
//	jmp x-- loop
func buildTCKBurstProgram() []uint16 {
	asm := rp2pio.AssemblerV0{SidesetBits: 0}
	return []uint16{
		asm.Pull(false, true).Encode(),
		asm.Out(rp2pio.OutDestX, 32).Encode(),
		asm.Set(rp2pio.SetDestPins, 1).Delay(1).Encode(),
		asm.Set(rp2pio.SetDestPins, 0).Encode(),
		asm.Jmp(2, rp2pio.JmpXNZeroDec).Encode(),
	}
}

const tckBurstOrigin = 0

const pioCyclesPerTCK = 4

type tckBurster struct {
	pio      *rp2pio.PIO
	sm       rp2pio.StateMachine
	tck      machine.Pin
	tckHz    uint32
	periodUs uint64
	offset   uint8
}

// newTCKBurster claims a state machine on pioNum and loads the burst
// program. The pin stays under SIO control until the first burst.
func newTCKBurster(pioNum, smNum uint8, tck machine.Pin, tckHz uint32) (*tckBurster, error) {
	pioHW := rp2pio.PIO0
	if pioNum != 0 {
		pioHW = rp2pio.PIO1
	}
	b := &tckBurster{
		pio:      pioHW,
		sm:       pioHW.StateMachine(smNum),
		tck:      tck,
		tckHz:    tckHz,
		periodUs: uint64(1_000_000)/uint64(tckHz) + 1,
	}

	b.sm.TryClaim()
	program := buildTCKBurstProgram()
	offset, err := b.pio.AddProgram(program, tckBurstOrigin)
	if err != nil {
		return nil, err
	}
	b.offset = offset

	cfg := rp2pio.DefaultStateMachineConfig()
	cfg.SetSetPins(tck, 1)
	cfg.SetOutShift(true, false, 32)
	cfg.SetWrap(offset+uint8(len(program))-1, offset)

	// One TCK period is pioCyclesPerTCK state machine cycles.
	div := sysClockHz / (pioCyclesPerTCK * tckHz)
	if div == 0 {
		div = 1
	}
	cfg.SetClkDivIntFrac(uint16(div), 0)

	b.sm.Init(offset, cfg)
	b.sm.SetPindirsConsecutive(tck, 1, true)
	b.sm.SetPinsConsecutive(tck, 1, false)
	return b, nil
}

// Burst pulses TCK n times and returns after the last pulse is on the
// wire. The pin is handed to the PIO for the duration of the burst and
// back to SIO afterwards so bit-banged pulses keep working.
func (b *tckBurster) Burst(n uint32) {
	b.tck.Configure(machine.PinConfig{Mode: b.pio.PinMode()})
	b.sm.SetEnabled(true)

	for b.sm.IsTxFIFOFull() {
	}
	b.sm.TxPut(n - 1)

	// The program has no completion feedback path, so wait out the
	// burst on the microsecond timer with one period of slack.
	clk := core.MustMicrotick()
	deadline := clk.CurrentMicrotick() + core.Microtick(uint64(n)*b.periodUs+b.periodUs)
	for clk.CurrentMicrotick().IsBefore(deadline) {
	}

	b.sm.SetEnabled(false)
	b.tck.Configure(machine.PinConfig{Mode: machine.PinOutput})
	b.tck.Low()
}

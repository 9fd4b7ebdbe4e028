//go:build rp2040

package main

import (
	"machine"

	"github.com/jangala-dev/tinygo-uartx/uartx"

	"mcuhal/core"
)

// rpUART exposes a uartx-driven UART through the capability surface the
// front-end probes. The driver is interrupt-fed with software rings on
// both sides, so reads never block at the register level and writes
// block only when both the ring and the FIFO are full.
type rpUART struct {
	bus  *uartx.UART
	baud uint32
	tx   machine.Pin
	rx   machine.Pin
}

// newRPUART wraps one of the two hardware UARTs.
func newRPUART(bus *uartx.UART, baud uint32, tx, rx machine.Pin) *rpUART {
	return &rpUART{bus: bus, baud: baud, tx: tx, rx: rx}
}

func (u *rpUART) Init() error {
	return u.bus.Configure(uartx.UARTConfig{
		BaudRate: u.baud,
		TX:       u.tx,
		RX:       u.rx,
	})
}

func (u *rpUART) Stop() error {
	return u.bus.Flush()
}

func (u *rpUART) SetBaudRate(hz uint32) error {
	u.baud = hz
	u.bus.SetBaudRate(hz)
	return nil
}

func (u *rpUART) ReadBlocking(p []byte) (int, error) {
	return u.bus.Read(p)
}

func (u *rpUART) ReadNonBlocking(p []byte) (int, error) {
	n := u.bus.TryRead(p)
	if n == 0 {
		return 0, core.ErrWouldBlock
	}
	return n, nil
}

func (u *rpUART) WriteBlocking(p []byte) (int, error) {
	return u.bus.Write(p)
}

func (u *rpUART) WriteNonBlocking(p []byte) (int, error) {
	n := u.bus.TryWrite(p)
	if n == 0 {
		return 0, core.ErrWouldBlock
	}
	return n, nil
}

func (u *rpUART) RxBytesAvailable() int {
	return u.bus.Buffered()
}

func (u *rpUART) TxBytesFree() int {
	return u.bus.TxFree()
}

// initUART wires UART0 on the standard pins and returns the initialised
// front-end.
func initUART() *core.UART {
	impl := newRPUART(uartx.UART0, 115_200, machine.UART0_TX_PIN, machine.UART0_RX_PIN)
	u := core.MustUART(impl)
	if err := u.Init(); err != nil {
		core.Fatal("uart0: " + err.Error())
	}
	return u
}

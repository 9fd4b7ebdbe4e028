package core

import "errors"

// Read-side errors a chip UART can report. The non-blocking operations
// add ErrWouldBlock.
var (
	ErrOverrun    = errors.New("uart: overrun")
	ErrParity     = errors.New("uart: parity error")
	ErrFraming    = errors.New("uart: framing error")
	ErrBreak      = errors.New("uart: break interrupt")
	ErrNoise      = errors.New("uart: noise error")
	ErrWouldBlock = errors.New("uart: would block")
)

// ErrNoUARTCapability is returned by NewUART when the chip implementation
// exposes neither a receive nor a transmit capability.
var ErrNoUARTCapability = errors.New("uart: implementation has neither rx nor tx")

// The chip UART surface is a bundle of small capability interfaces.
// An implementation provides whatever subset its hardware and driver
// support; NewUART probes the set once and synthesises the rest.

// UARTRx is the simplified single-byte receive interface. Rx blocks
// until a byte or an error is available. Errors reported here are
// sticky: Rx keeps failing with the same error until it is acknowledged
// through UARTReadErrorLatch.ClearReadError.
type UARTRx interface {
	Rx() (byte, error)
}

// UARTTx is the simplified single-byte transmit interface. Tx blocks
// until the byte has been accepted.
type UARTTx interface {
	Tx(b byte) error
}

// UARTReadErrorLatch exposes the sticky read-error state. ReadError
// reports the pending error without consuming it; ClearReadError
// acknowledges exactly that error.
type UARTReadErrorLatch interface {
	ReadError() error
	ClearReadError(err error)
}

// UARTBlockingReader reads into p, blocking until at least one byte has
// arrived. It returns the number of bytes read.
type UARTBlockingReader interface {
	ReadBlocking(p []byte) (int, error)
}

// UARTNonBlockingReader reads whatever is already buffered.
// It returns ErrWouldBlock when nothing is available.
type UARTNonBlockingReader interface {
	ReadNonBlocking(p []byte) (int, error)
}

// UARTBlockingWriter writes all of p, blocking for room as needed.
type UARTBlockingWriter interface {
	WriteBlocking(p []byte) (int, error)
}

// UARTNonBlockingWriter writes as much of p as fits right now.
// It returns ErrWouldBlock when nothing fits.
type UARTNonBlockingWriter interface {
	WriteNonBlocking(p []byte) (int, error)
}

// UARTRxQuery reports how many received bytes are buffered.
type UARTRxQuery interface {
	RxBytesAvailable() int
}

// UARTCanRead reports whether at least one byte is buffered.
type UARTCanRead interface {
	CanRead() bool
}

// UARTTxQuery reports how much transmit room is available.
type UARTTxQuery interface {
	TxBytesFree() int
}

// UARTCanWrite reports whether at least one byte of transmit room is
// available.
type UARTCanWrite interface {
	CanWrite() bool
}

// UARTPeeker returns the next received byte without consuming it.
type UARTPeeker interface {
	Peek() (byte, error)
}

// Optional lifecycle hooks on a chip UART implementation.
type (
	// UARTIniter powers up and configures the peripheral.
	UARTIniter interface{ Init() error }
	// UARTStarter enables reception and transmission.
	UARTStarter interface{ Start() error }
	// UARTStopper aborts reception and drains pending transmission
	// before returning.
	UARTStopper interface{ Stop() error }
	// UARTDeiniter powers the peripheral back down.
	UARTDeiniter interface{ Deinit() }
)

// UARTBaudSetter reconfigures the line rate on implementations that
// support it.
type UARTBaudSetter interface {
	SetBaudRate(hz uint32) error
}

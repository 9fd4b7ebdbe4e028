package core

import "io"

// UART is the front-end over a chip UART implementation. It asks the
// implementation which capabilities it exposes, once, at construction,
// and synthesises the missing ones from whatever subset is present.
// After that every call goes through a resolved strategy; there is no
// per-call probing.
type UART struct {
	impl any

	readBlocking     func(p []byte) (int, error)
	readNonBlocking  func(p []byte) (int, error)
	writeBlocking    func(p []byte) (int, error)
	writeNonBlocking func(p []byte) (int, error)
	canRead          func() bool
	rxAvailable      func() int
	canWrite         func() bool
	txFree           func() int
	peek             func() (byte, error)
	readError        func() error
	clearReadError   func(err error)
}

// NewUART wraps a chip UART implementation. It fails when the
// implementation exposes neither a receive nor a transmit capability.
func NewUART(impl any) (*UART, error) {
	u := &UART{impl: impl}
	u.resolveQueries()
	u.resolveReaders()
	u.resolveWriters()
	if u.readBlocking == nil && u.readNonBlocking == nil &&
		u.writeBlocking == nil && u.writeNonBlocking == nil {
		return nil, ErrNoUARTCapability
	}
	return u, nil
}

// MustUART wraps a chip UART implementation and fails fatally on a
// configuration with neither TX nor RX.
func MustUART(impl any) *UART {
	u, err := NewUART(impl)
	if err != nil {
		Fatal("uart: implementation has neither rx nor tx")
	}
	return u
}

// resolveQueries wires CanRead/RxBytesAvailable and CanWrite/TxBytesFree,
// deriving each of a pair from the other when only one is native.
func (u *UART) resolveQueries() {
	if q, ok := u.impl.(UARTRxQuery); ok {
		u.rxAvailable = q.RxBytesAvailable
	}
	if c, ok := u.impl.(UARTCanRead); ok {
		u.canRead = c.CanRead
	}
	if u.canRead == nil && u.rxAvailable != nil {
		avail := u.rxAvailable
		u.canRead = func() bool { return avail() > 0 }
	}
	if u.rxAvailable == nil && u.canRead != nil {
		can := u.canRead
		u.rxAvailable = func() int {
			if can() {
				return 1
			}
			return 0
		}
	}

	if q, ok := u.impl.(UARTTxQuery); ok {
		u.txFree = q.TxBytesFree
	}
	if c, ok := u.impl.(UARTCanWrite); ok {
		u.canWrite = c.CanWrite
	}
	if u.canWrite == nil && u.txFree != nil {
		free := u.txFree
		u.canWrite = func() bool { return free() > 0 }
	}
	if u.txFree == nil && u.canWrite != nil {
		can := u.canWrite
		u.txFree = func() int {
			if can() {
				return 1
			}
			return 0
		}
	}

	if l, ok := u.impl.(UARTReadErrorLatch); ok {
		u.readError = l.ReadError
		u.clearReadError = l.ClearReadError
	}
	if p, ok := u.impl.(UARTPeeker); ok {
		u.peek = p.Peek
	}
}

func (u *UART) resolveReaders() {
	switch impl := u.impl.(type) {
	case UARTBlockingReader:
		u.readBlocking = impl.ReadBlocking
	case UARTRx:
		u.readBlocking = u.synthReadBlocking(impl)
	case io.Reader:
		u.readBlocking = impl.Read
	}

	if impl, ok := u.impl.(UARTNonBlockingReader); ok {
		u.readNonBlocking = impl.ReadNonBlocking
	} else if impl, ok := u.impl.(UARTRx); ok && u.canRead != nil {
		u.readNonBlocking = u.synthReadNonBlocking(impl)
	}
}

func (u *UART) resolveWriters() {
	switch impl := u.impl.(type) {
	case UARTBlockingWriter:
		u.writeBlocking = impl.WriteBlocking
	case UARTTx:
		u.writeBlocking = u.synthWriteBlocking(impl)
	case io.Writer:
		u.writeBlocking = impl.Write
	}

	if impl, ok := u.impl.(UARTNonBlockingWriter); ok {
		u.writeNonBlocking = impl.WriteNonBlocking
	} else if impl, ok := u.impl.(UARTTx); ok && u.canWrite != nil {
		u.writeNonBlocking = u.synthWriteNonBlocking(impl)
	}
}

// ackReadError acknowledges err on implementations that latch errors.
func (u *UART) ackReadError(err error) {
	if u.clearReadError != nil {
		u.clearReadError(err)
	}
}

// synthReadBlocking builds a buffered blocking read over the simplified
// single-byte interface. An error on the first byte is acknowledged and
// returned; an error after data has been captured is left latched so the
// good bytes are delivered first and the error surfaces on the next call.
func (u *UART) synthReadBlocking(rx UARTRx) func(p []byte) (int, error) {
	return func(p []byte) (int, error) {
		if u.readError != nil {
			if err := u.readError(); err != nil {
				u.ackReadError(err)
				return 0, err
			}
		}
		n := 0
		for n < len(p) {
			b, err := rx.Rx()
			if err != nil {
				if n == 0 {
					u.ackReadError(err)
					return 0, err
				}
				return n, nil
			}
			p[n] = b
			n++
		}
		return n, nil
	}
}

// synthReadNonBlocking is synthReadBlocking with a data-availability
// check before every byte. With no data and nothing read yet it returns
// ErrWouldBlock; otherwise it returns the bytes captured so far.
func (u *UART) synthReadNonBlocking(rx UARTRx) func(p []byte) (int, error) {
	return func(p []byte) (int, error) {
		if u.readError != nil {
			if err := u.readError(); err != nil {
				u.ackReadError(err)
				return 0, err
			}
		}
		n := 0
		for n < len(p) {
			if !u.canRead() {
				if n == 0 {
					return 0, ErrWouldBlock
				}
				return n, nil
			}
			b, err := rx.Rx()
			if err != nil {
				if n == 0 {
					u.ackReadError(err)
					return 0, err
				}
				return n, nil
			}
			p[n] = b
			n++
		}
		return n, nil
	}
}

func (u *UART) synthWriteBlocking(tx UARTTx) func(p []byte) (int, error) {
	return func(p []byte) (int, error) {
		for i, b := range p {
			if err := tx.Tx(b); err != nil {
				return i, err
			}
		}
		return len(p), nil
	}
}

func (u *UART) synthWriteNonBlocking(tx UARTTx) func(p []byte) (int, error) {
	return func(p []byte) (int, error) {
		n := 0
		for n < len(p) {
			if !u.canWrite() {
				if n == 0 {
					return 0, ErrWouldBlock
				}
				return n, nil
			}
			if err := tx.Tx(p[n]); err != nil {
				if n == 0 {
					return 0, err
				}
				return n, nil
			}
			n++
		}
		return n, nil
	}
}

// HasRx reports whether the UART can receive.
func (u *UART) HasRx() bool { return u.readBlocking != nil || u.readNonBlocking != nil }

// HasTx reports whether the UART can transmit.
func (u *UART) HasTx() bool { return u.writeBlocking != nil || u.writeNonBlocking != nil }

// ReadBlocking reads into p, blocking until at least one byte or a line
// error is available.
func (u *UART) ReadBlocking(p []byte) (int, error) {
	if u.readBlocking == nil {
		Fatal("uart: blocking read not supported by implementation")
	}
	return u.readBlocking(p)
}

// ReadNonBlocking reads whatever is already buffered; ErrWouldBlock when
// nothing is.
func (u *UART) ReadNonBlocking(p []byte) (int, error) {
	if u.readNonBlocking == nil {
		Fatal("uart: non-blocking read not supported by implementation")
	}
	return u.readNonBlocking(p)
}

// WriteBlocking writes all of p, blocking for room as needed.
func (u *UART) WriteBlocking(p []byte) (int, error) {
	if u.writeBlocking == nil {
		Fatal("uart: blocking write not supported by implementation")
	}
	return u.writeBlocking(p)
}

// WriteNonBlocking writes as much of p as fits right now; ErrWouldBlock
// when nothing fits.
func (u *UART) WriteNonBlocking(p []byte) (int, error) {
	if u.writeNonBlocking == nil {
		Fatal("uart: non-blocking write not supported by implementation")
	}
	return u.writeNonBlocking(p)
}

// CanRead reports whether a read would find buffered data.
func (u *UART) CanRead() bool {
	if u.canRead == nil {
		Fatal("uart: rx queries not supported by implementation")
	}
	return u.canRead()
}

// RxBytesAvailable reports how many received bytes are buffered.
func (u *UART) RxBytesAvailable() int {
	if u.rxAvailable == nil {
		Fatal("uart: rx queries not supported by implementation")
	}
	return u.rxAvailable()
}

// CanWrite reports whether a write would find room.
func (u *UART) CanWrite() bool {
	if u.canWrite == nil {
		Fatal("uart: tx queries not supported by implementation")
	}
	return u.canWrite()
}

// TxBytesFree reports how much transmit room is available.
func (u *UART) TxBytesFree() int {
	if u.txFree == nil {
		Fatal("uart: tx queries not supported by implementation")
	}
	return u.txFree()
}

// Peek returns the next received byte without consuming it.
func (u *UART) Peek() (byte, error) {
	if u.peek == nil {
		Fatal("uart: peek not supported by implementation")
	}
	return u.peek()
}

// ReadError reports the pending sticky read error, if any.
func (u *UART) ReadError() error {
	if u.readError == nil {
		return nil
	}
	return u.readError()
}

// ClearReadError acknowledges a sticky read error.
func (u *UART) ClearReadError(err error) {
	u.ackReadError(err)
}

// Init powers up the implementation if it has an init hook.
func (u *UART) Init() error {
	if h, ok := u.impl.(UARTIniter); ok {
		return h.Init()
	}
	return nil
}

// Start enables reception and transmission.
func (u *UART) Start() error {
	if h, ok := u.impl.(UARTStarter); ok {
		return h.Start()
	}
	return nil
}

// Stop aborts reception and drains pending transmission.
func (u *UART) Stop() error {
	if h, ok := u.impl.(UARTStopper); ok {
		return h.Stop()
	}
	return nil
}

// Deinit powers the implementation back down.
func (u *UART) Deinit() {
	if h, ok := u.impl.(UARTDeiniter); ok {
		h.Deinit()
	}
}

// uartReader adapts the blocking read side to io.Reader.
type uartReader struct{ u *UART }

func (r uartReader) Read(p []byte) (int, error) { return r.u.ReadBlocking(p) }

// uartWriter adapts the blocking write side to io.Writer.
type uartWriter struct{ u *UART }

func (w uartWriter) Write(p []byte) (int, error) { return w.u.WriteBlocking(p) }

// Reader returns the UART's generic blocking reader.
func (u *UART) Reader() io.Reader { return uartReader{u} }

// Writer returns the UART's generic blocking writer.
func (u *UART) Writer() io.Writer { return uartWriter{u} }

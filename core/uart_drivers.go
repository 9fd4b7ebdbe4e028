package core

import "tinygo.org/x/drivers"

// driverUART adapts the front-end to the tinygo.org/x/drivers UART
// contract so device drivers from that collection can run on top of any
// chip implementation the front-end wraps.
type driverUART struct {
	u *UART
}

var _ drivers.UART = (*driverUART)(nil)

// Driver exposes the UART as a drivers.UART.
func (u *UART) Driver() drivers.UART {
	return &driverUART{u: u}
}

func (d *driverUART) Configure(config drivers.UARTConfig) error {
	if config.BaudRate == 0 {
		return nil
	}
	if s, ok := d.u.impl.(UARTBaudSetter); ok {
		return s.SetBaudRate(config.BaudRate)
	}
	return nil
}

func (d *driverUART) Buffered() int {
	if d.u.rxAvailable == nil {
		return 0
	}
	return d.u.rxAvailable()
}

func (d *driverUART) ReadByte() (byte, error) {
	var buf [1]byte
	if _, err := d.u.ReadBlocking(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (d *driverUART) WriteByte(c byte) error {
	buf := [1]byte{c}
	_, err := d.u.WriteBlocking(buf[:])
	return err
}

func (d *driverUART) Read(p []byte) (int, error) { return d.u.ReadBlocking(p) }

func (d *driverUART) Write(p []byte) (int, error) { return d.u.WriteBlocking(p) }

// Package board is a host-side client for the firmware's line console.
// Commands go out as a single line; the firmware answers with one reply
// line per command.
package board

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"

	"mcuhal/host/serial"
)

// Board is one connection to a running board
type Board struct {
	port   serial.Port
	reader *bufio.Reader
}

// Connect opens the serial device and wraps it
func Connect(device string) (*Board, error) {
	port, err := serial.Open(serial.DefaultConfig(device))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to board: %w", err)
	}
	return NewBoard(port), nil
}

// NewBoard wraps an already-open port (used by tests with a mock port)
func NewBoard(port serial.Port) *Board {
	return &Board{
		port:   port,
		reader: bufio.NewReader(port),
	}
}

// Close closes the underlying port
func (b *Board) Close() error {
	return b.port.Close()
}

// Command sends one command line and returns the reply line with the
// line terminator stripped
func (b *Board) Command(line string) (string, error) {
	if _, err := b.port.Write([]byte(line + "\n")); err != nil {
		return "", fmt.Errorf("failed to send %q: %w", line, err)
	}
	reply, err := b.reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("no reply to %q: %w", line, err)
	}
	return strings.TrimRight(reply, "\r\n"), nil
}

// Ping checks that the firmware console is alive
func (b *Board) Ping() error {
	reply, err := b.Command("ping")
	if err != nil {
		return err
	}
	if reply != "pong" {
		return fmt.Errorf("unexpected ping reply %q", reply)
	}
	return nil
}

// Frequency asks the board for a clock domain frequency report,
// e.g. "sys: 125 MHz"
func (b *Board) Frequency(domain string) (string, error) {
	return b.Command("freq " + domain)
}

// SetBus drives the demo bus to value
func (b *Board) SetBus(value uint32) error {
	reply, err := b.Command("bus " + strconv.FormatUint(uint64(value), 10))
	if err != nil {
		return err
	}
	if reply != "ok" {
		return fmt.Errorf("bus write failed: %s", reply)
	}
	return nil
}

// ReadBus reads back the demo bus state
func (b *Board) ReadBus() (uint32, error) {
	reply, err := b.Command("bus?")
	if err != nil {
		return 0, err
	}
	value, ok := strings.CutPrefix(reply, "bus: 0x")
	if !ok {
		return 0, fmt.Errorf("unexpected bus reply %q", reply)
	}
	v, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("unexpected bus reply %q: %w", reply, err)
	}
	return uint32(v), nil
}

// IDCode resets the board's scan chain and reads the first TAP's IDCODE
func (b *Board) IDCode() (uint32, error) {
	reply, err := b.Command("idcode")
	if err != nil {
		return 0, err
	}
	value, ok := strings.CutPrefix(reply, "idcode: 0x")
	if !ok {
		return 0, fmt.Errorf("unexpected idcode reply %q", reply)
	}
	v, err := strconv.ParseUint(value, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("unexpected idcode reply %q: %w", reply, err)
	}
	return uint32(v), nil
}

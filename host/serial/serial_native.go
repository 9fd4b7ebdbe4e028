//go:build !wasm

package serial

import (
	"fmt"
	"time"

	"github.com/tarm/serial"
)

// NativePort is a real serial device backed by tarm/serial.
type NativePort struct {
	port   *serial.Port
	device string
}

// Open opens the serial device described by cfg. A nil config gets the
// defaults, which match the firmware console settings.
func Open(cfg *Config) (Port, error) {
	if cfg == nil {
		cfg = DefaultConfig("")
	}
	if cfg.Device == "" {
		return nil, fmt.Errorf("no serial device given")
	}

	port, err := serial.OpenPort(&serial.Config{
		Name:        cfg.Device,
		Baud:        cfg.Baud,
		ReadTimeout: time.Duration(cfg.ReadTimeout) * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", cfg.Device, err)
	}
	return &NativePort{port: port, device: cfg.Device}, nil
}

func (p *NativePort) Read(b []byte) (int, error) { return p.port.Read(b) }

func (p *NativePort) Write(b []byte) (int, error) { return p.port.Write(b) }

func (p *NativePort) Close() error {
	if p.port == nil {
		return nil
	}
	return p.port.Close()
}

// Flush is a no-op here; tarm/serial writes through and exposes no
// explicit drain.
func (p *NativePort) Flush() error { return nil }

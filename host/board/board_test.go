package board

import (
	"testing"

	"mcuhal/host/serial"
)

func TestPing(t *testing.T) {
	port := serial.NewMockPort()
	port.QueueReply("pong\r\n")
	b := NewBoard(port)

	if err := b.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if got := port.Written(); got != "ping\n" {
		t.Errorf("wrote %q, want %q", got, "ping\n")
	}
}

func TestPingBadReply(t *testing.T) {
	port := serial.NewMockPort()
	port.QueueReply("ready\r\n")
	b := NewBoard(port)

	if err := b.Ping(); err == nil {
		t.Error("expected error for wrong reply")
	}
}

func TestFrequency(t *testing.T) {
	port := serial.NewMockPort()
	port.QueueReply("sys: 125 MHz\r\n")
	b := NewBoard(port)

	reply, err := b.Frequency("sys")
	if err != nil {
		t.Fatalf("Frequency: %v", err)
	}
	if reply != "sys: 125 MHz" {
		t.Errorf("reply = %q", reply)
	}
	if got := port.Written(); got != "freq sys\n" {
		t.Errorf("wrote %q", got)
	}
}

func TestBusRoundTrip(t *testing.T) {
	port := serial.NewMockPort()
	port.QueueReply("ok\r\n")
	port.QueueReply("bus: 0x00000005\r\n")
	b := NewBoard(port)

	if err := b.SetBus(5); err != nil {
		t.Fatalf("SetBus: %v", err)
	}
	value, err := b.ReadBus()
	if err != nil {
		t.Fatalf("ReadBus: %v", err)
	}
	if value != 5 {
		t.Errorf("ReadBus = %d, want 5", value)
	}
	if got := port.Written(); got != "bus 5\nbus?\n" {
		t.Errorf("wrote %q", got)
	}
}

func TestIDCode(t *testing.T) {
	port := serial.NewMockPort()
	port.QueueReply("idcode: 0x4ba00477\r\n")
	b := NewBoard(port)

	id, err := b.IDCode()
	if err != nil {
		t.Fatalf("IDCode: %v", err)
	}
	if id != 0x4ba00477 {
		t.Errorf("IDCode = %#x", id)
	}
}

func TestMalformedReply(t *testing.T) {
	port := serial.NewMockPort()
	port.QueueReply("idcode: garbage\r\n")
	b := NewBoard(port)

	if _, err := b.IDCode(); err == nil {
		t.Error("expected error for malformed reply")
	}
}

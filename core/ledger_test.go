package core

import (
	"strings"
	"testing"
)

func TestPadLedgerRoundTrip(t *testing.T) {
	pads := []PadID{"LT0", "LT1", "LT2"}

	ReservePads(pads, "test owner")
	for _, p := range pads {
		if !PadReserved(p) {
			t.Errorf("pad %s not reserved", p)
		}
	}
	ReleasePads(pads, "test owner")
	for _, p := range pads {
		if PadReserved(p) {
			t.Errorf("pad %s still reserved after release", p)
		}
	}
}

func TestPadLedgerConflictNamesBothOwners(t *testing.T) {
	ReservePads([]PadID{"LT10"}, "SPI bus")
	defer ReleasePads([]PadID{"LT10"}, "SPI bus")

	msg := expectFatal(t, func() {
		ReservePads([]PadID{"LT10"}, "UART console")
	})
	if !strings.Contains(msg, "SPI bus") || !strings.Contains(msg, "UART console") {
		t.Errorf("conflict message should name both owners: %q", msg)
	}
	// A failed reservation must leave the original one in place.
	if !PadReserved("LT10") {
		t.Error("original reservation lost")
	}
}

func TestPadLedgerPartialConflictReservesNothing(t *testing.T) {
	ReservePads([]PadID{"LT21"}, "first")
	defer ReleasePads([]PadID{"LT21"}, "first")

	expectFatal(t, func() {
		ReservePads([]PadID{"LT20", "LT21"}, "second")
	})
	if PadReserved("LT20") {
		t.Error("conflicting reservation must not take any pads")
	}
}

func TestPadLedgerForeignRelease(t *testing.T) {
	ReservePads([]PadID{"LT30"}, "rightful owner")
	defer ReleasePads([]PadID{"LT30"}, "rightful owner")

	msg := expectFatal(t, func() {
		ReleasePads([]PadID{"LT30"}, "impostor")
	})
	if !strings.Contains(msg, "rightful owner") {
		t.Errorf("release conflict should name the owner: %q", msg)
	}
	if !PadReserved("LT30") {
		t.Error("foreign release must not clear the reservation")
	}
}

func TestPadLedgerReleaseUnreserved(t *testing.T) {
	expectFatal(t, func() {
		ReleasePads([]PadID{"LT40"}, "anyone")
	})
}

func TestDMALedger(t *testing.T) {
	chans := []DMAChannel{4, 5}

	ReserveDMAChannels(chans, "ADC sampler")
	if !DMAChannelReserved(4) || !DMAChannelReserved(5) {
		t.Error("channels not reserved")
	}

	msg := expectFatal(t, func() {
		ReserveDMAChannels([]DMAChannel{5}, "SPI streamer")
	})
	if !strings.Contains(msg, "5") {
		t.Errorf("conflict message should name the channel: %q", msg)
	}

	ReleaseDMAChannels(chans, "ADC sampler")
	if DMAChannelReserved(4) {
		t.Error("channel still reserved after release")
	}
}

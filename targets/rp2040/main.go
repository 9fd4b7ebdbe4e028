//go:build rp2040

package main

import "mcuhal/core"

// Demo firmware: a line console on UART0 for poking the framework from
// a host. Commands are a single word plus optional argument:
//
//	ping           liveness check
//	freq <domain>  report a clock domain frequency
//	bus <value>    drive the demo bus to a value
//	bus?           read back the demo bus
//	idcode         reset the scan chain and read the first TAP's IDCODE
var (
	console *core.UART
	demoBus *core.Bus
	jtag    *core.JTAG
)

const maxLine = 64

func main() {
	initClock()
	initGPIO()
	initInterrupts()

	core.Run(core.App{
		Init: appInit,
		Main: appMain,
	})
}

func appInit() error {
	console = initUART()

	demoBus = core.NewBus("demo", []core.PadID{"gpio2", "gpio3", "gpio4", "gpio5"}, core.BusConfig{
		Mode:  core.BusOutput,
		Slew:  core.SlewSlow,
		Drive: core.Drive4mA,
	})
	demoBus.Init()

	const jtagTCKPin = 10
	const jtagTCKHz = 100_000
	jtag = core.NewJTAG(core.JTAGConfig{
		TCK:            "gpio10",
		TMS:            "gpio11",
		TDI:            "gpio12",
		TDO:            "gpio13",
		MaxFrequencyHz: jtagTCKHz,
		Chain:          []uint8{4},
	})
	jtag.Init()
	if b, err := newTCKBurster(0, 0, jtagTCKPin, jtagTCKHz); err == nil {
		jtag.SetIdleBurst(b.Burst)
	}

	core.SetLogWriter(func(line string) {
		console.WriteBlocking([]byte(line))
		console.WriteBlocking([]byte("\r\n"))
	})
	return nil
}

func appMain() error {
	var line [maxLine]byte
	n := 0
	reply("ready")
	for {
		var b [1]byte
		if _, err := console.ReadBlocking(b[:]); err != nil {
			continue
		}
		switch b[0] {
		case '\r', '\n':
			if n > 0 {
				dispatch(string(line[:n]))
				n = 0
			}
		default:
			if n < maxLine {
				line[n] = b[0]
				n++
			}
		}
	}
}

func dispatch(cmd string) {
	word, arg := splitWord(cmd)
	switch word {
	case "ping":
		reply("pong")
	case "freq":
		hz := core.MustClock().Frequency(arg)
		if hz == 0 {
			reply("freq: unknown domain " + arg)
			return
		}
		reply(arg + ": " + core.FormatFrequency(hz))
	case "bus":
		v, ok := parseUint(arg)
		if !ok {
			reply("bus: bad value " + arg)
			return
		}
		demoBus.Modify(v)
		reply("ok")
	case "bus?":
		reply("bus: " + hexString(demoBus.Get()))
	case "idcode":
		jtag.ChangeState(core.TAPReset)
		id := jtag.Tap(0).Data(0, 32, core.TAPIdle)
		reply("idcode: " + hexString(uint32(id)))
	default:
		reply("unknown command " + word)
	}
}

func reply(s string) {
	console.WriteBlocking([]byte(s))
	console.WriteBlocking([]byte("\r\n"))
}

func splitWord(s string) (word, rest string) {
	for i := 0; i < len(s); i++ {
		if s[i] == ' ' {
			return s[:i], s[i+1:]
		}
	}
	return s, ""
}

func parseUint(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	var v uint32
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + uint32(c-'0')
	}
	return v, true
}

const hexDigits = "0123456789abcdef"

func hexString(v uint32) string {
	var buf [10]byte
	buf[0] = '0'
	buf[1] = 'x'
	for i := 0; i < 8; i++ {
		buf[2+i] = hexDigits[(v>>uint(28-4*i))&0xf]
	}
	return string(buf[:])
}

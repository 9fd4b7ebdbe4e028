package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/google/shlex"

	"mcuhal/host/board"
)

var (
	device  = flag.String("device", "/dev/ttyACM0", "Serial device path")
	verbose = flag.Bool("verbose", false, "Echo raw command lines")
)

func main() {
	flag.Parse()

	fmt.Println("HAL Console - board line-protocol client")
	fmt.Println()

	fmt.Printf("Connecting to board on %s...\n", *device)
	b, err := board.Connect(*device)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer b.Close()

	if err := b.Ping(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: board not responding: %v\n", err)
		os.Exit(1)
	}
	fmt.Println("Connected successfully!")

	fmt.Println("Enter commands (type 'help' for available commands, 'quit' to exit):")
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}

		parts, err := shlex.Split(scanner.Text())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			continue
		}
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "quit", "exit", "q":
			fmt.Println("Goodbye!")
			return

		case "help", "?":
			printHelp()

		case "ping":
			if err := b.Ping(); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Println("pong")

		case "freq":
			if len(args) != 1 {
				fmt.Println("usage: freq <domain>")
				continue
			}
			reply, err := b.Frequency(args[0])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Println(reply)

		case "bus":
			if len(args) != 1 {
				fmt.Println("usage: bus <value>")
				continue
			}
			value, err := strconv.ParseUint(args[0], 0, 32)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: bad value %q\n", args[0])
				continue
			}
			if err := b.SetBus(uint32(value)); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}

		case "bus?":
			value, err := b.ReadBus()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Printf("bus: 0x%08x\n", value)

		case "idcode":
			id, err := b.IDCode()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Printf("idcode: 0x%08x\n", id)

		case "raw":
			if len(args) == 0 {
				fmt.Println("usage: raw <line...>")
				continue
			}
			line := args[0]
			for _, a := range args[1:] {
				line += " " + a
			}
			if *verbose {
				fmt.Printf("-> %s\n", line)
			}
			reply, err := b.Command(line)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				continue
			}
			fmt.Println(reply)

		default:
			fmt.Printf("Unknown command: %s (type 'help' for available commands)\n", cmd)
		}
	}

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}
}

func printHelp() {
	fmt.Println("\nAvailable commands:")
	fmt.Println("  help           - Show this help message")
	fmt.Println("  ping           - Check the board is alive")
	fmt.Println("  freq <domain>  - Report a clock domain frequency (sys, usb, peri, timer)")
	fmt.Println("  bus <value>    - Drive the demo bus")
	fmt.Println("  bus?           - Read back the demo bus")
	fmt.Println("  idcode         - Read the first TAP's IDCODE")
	fmt.Println("  raw <line...>  - Send a raw command line")
	fmt.Println("  quit/exit/q    - Exit the program")
	fmt.Println()
}

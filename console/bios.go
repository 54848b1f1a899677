package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
)

// stackDepth is how many stack entries the (T) option shows.
const stackDepth = 3

func readAddress(sc *bufio.Scanner, out io.Writer, prompt string) (uint16, bool) {
	for {
		fmt.Fprint(out, prompt)
		if !sc.Scan() {
			return 0, false
		}
		s := strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(sc.Text()), "$"), "0x")
		v, err := strconv.ParseUint(s, 16, 16)
		if err == nil {
			return uint16(v), true
		}
		fmt.Fprintf(out, "Invalid address %q: %v\n", s, err)
	}
}

// BIOS is a line oriented monitor. It returns when the user quits, in
// reaches end of input, or ctx is done.
func (m *Machine) BIOS(ctx context.Context, in io.Reader, out io.Writer) error {
	sc := bufio.NewScanner(in)

	for {
		if ctx.Err() != nil {
			return nil
		}

		fmt.Fprintf(out, "%s\n\n", m.cpu)
		fmt.Fprintln(out, "(B)reak - add breakpoint")
		fmt.Fprintln(out, "(C)lear - clear breakpoints")
		fmt.Fprintln(out, "(R)un - run to completion")
		fmt.Fprintln(out, "(S)tep - step the cpu one instruction")
		fmt.Fprintln(out, "R(e)set - hit the reset button")
		fmt.Fprintln(out, "(M)emory - select a memory range to display")
		fmt.Fprintln(out, "S(t)ack - show last 3 items on the stack")
		fmt.Fprintln(out, "(I)nstruction - show instruction memory locations")
		fmt.Fprintln(out, "(P)C - set program counter")
		fmt.Fprintln(out, "(Q)uit - shutdown the gin6502")
		fmt.Fprintf(out, "Choice: ")

		if !sc.Scan() {
			return sc.Err()
		}
		choice := strings.TrimSpace(sc.Text())
		if choice == "" {
			continue
		}

		switch choice[0] {
		case 'b', 'B':
			if a, ok := readAddress(sc, out, "Breakpoint (eg: ff15): "); ok {
				m.AddBreakpoint(a)
			}
		case 'c', 'C':
			m.ClearBreakpoints()
		case 'p', 'P':
			if a, ok := readAddress(sc, out, "Set PC to what address (eg: 0400)?: "); ok {
				m.cpu.SetPC(a)
			}
		case 'q', 'Q':
			return nil
		case 'r', 'R':
			cctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			reason, err := m.Run(cctx)
			stop()
			fmt.Fprintf(out, "\nStopped: %s\n", reason)
			if err != nil {
				fmt.Fprintf(out, "%v\n", err)
			}
		case 's', 'S':
			if err := m.Step(); err != nil {
				fmt.Fprintf(out, "\n%v\n", err)
			}
		case 't', 'T':
			fmt.Fprintln(out)
			a := m.cpu.StackAddr()
			for i := 0; i < stackDepth && a < 0x01FF; i++ {
				a++
				fmt.Fprintf(out, "0x%04x: 0x%02x ", a, m.cpu.Read(a))
			}
			fmt.Fprintf(out, "\n\n")
		case 'i', 'I':
			fmt.Fprintln(out)
			_, _, length, _ := m.cpu.Decode(m.cpu.PC())
			for i := 0; i < int(length); i++ {
				a := m.cpu.PC() + uint16(i)
				fmt.Fprintf(out, "0x%04x: 0x%02x ", a, m.cpu.Read(a))
			}
			fmt.Fprintf(out, "\n\n")
		case 'e', 'E':
			m.Reset()
		case 'm', 'M':
			fmt.Fprintln(out)
			low, ok := readAddress(sc, out, "Low address (eg f00d): ")
			if !ok {
				return sc.Err()
			}
			high, ok := readAddress(sc, out, "High address (eg beef): ")
			if !ok {
				return sc.Err()
			}
			fmt.Fprintln(out)
			fmt.Fprint(out, FormatSnapshot(m.cpu.Dump(low, high)))
			fmt.Fprintln(out)
		default:
			fmt.Fprintf(out, "Unknown choice %q\n", choice)
		}
	}
}

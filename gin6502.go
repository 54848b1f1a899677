package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/bdwalton/gin6502/console"
	"github.com/bdwalton/gin6502/mappers"
	"github.com/bdwalton/gin6502/monitor"
	"github.com/bdwalton/gin6502/mos6502"
	"github.com/bdwalton/gin6502/nesrom"
	"github.com/bdwalton/gin6502/script"
	"github.com/bdwalton/gin6502/viewer"
	"github.com/gdamore/tcell/v2"
	"github.com/k0kubun/pp/v3"
	"golang.org/x/term"
)

var (
	romFile         = flag.String("nes_rom", "", "Path to NES ROM to run.")
	entry           = flag.String("entry", "", "Hex address to start at. Defaults to the ROM's reset vector.")
	loadAddr        = flag.String("load_addr", "", "Hex address to copy PRG ROM to, bypassing the mapper.")
	hz              = flag.Int("hz", 0, "Instructions per second when running. 0 is unpaced.")
	ui              = flag.String("ui", "auto", "Front end: auto, bios, tui, window or none.")
	breaks          = flag.String("break", "", "Comma separated hex breakpoint addresses.")
	skipUnsupported = flag.Bool("skip_unsupported", false, "Step over unsupported opcodes instead of stopping.")
	haltOnBRK       = flag.Bool("halt_on_brk", false, "Stop running when a BRK is reached.")
	scriptFile      = flag.String("script", "", "Lua script to run against the machine before the front end starts.")
	info            = flag.Bool("info", false, "Print the ROM header summary and exit.")
	maxSteps        = flag.Uint64("max_steps", 0, "Stop running after this many instructions. 0 is unlimited.")
)

// parseAddr parses a hex address with an optional $ or 0x prefix.
func parseAddr(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "$"), "0x")
	v, err := strconv.ParseUint(s, 16, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid address %q: %w", s, err)
	}
	return uint16(v), nil
}

func parseAddrs(s string) ([]uint16, error) {
	var addrs []uint16
	for _, f := range strings.Split(s, ",") {
		if strings.TrimSpace(f) == "" {
			continue
		}
		a, err := parseAddr(f)
		if err != nil {
			return nil, err
		}
		addrs = append(addrs, a)
	}
	return addrs, nil
}

// pickUI resolves "auto" to the tcell monitor on a terminal and the
// line BIOS otherwise.
func pickUI(name string, tty bool) string {
	if name != "auto" {
		return name
	}
	if tty {
		return "tui"
	}
	return "bios"
}

const RESET_VECTOR = 0xFFFC

// loadROM places rom in cpu, at the hex address at if one is given and
// through the ROM's mapper otherwise, and returns the entry point it
// implies: the word at $FFFC when the image put its reset vector there,
// else the load address.
func loadROM(cpu *mos6502.CPU, rom *nesrom.ROM, at string) (uint16, error) {
	if at != "" {
		a, err := parseAddr(at)
		if err != nil {
			return 0, err
		}
		rom.LoadAt(cpu, a)
		return a, nil
	}

	covered := true
	m, err := mappers.Get(rom.Header().MapperNum())
	if err != nil {
		log.Printf("%v; loading PRG ROM flat at $%04X", err, nesrom.LoadAddress)
		rom.Load(cpu)
		covered = nesrom.LoadAddress+len(rom.Prg()) == mos6502.MEM_SIZE
	} else if err := m.Load(cpu, rom); err != nil {
		return 0, err
	}

	if _, ok := rom.ResetVector(); ok && covered {
		return uint16(cpu.Read(RESET_VECTOR+1))<<8 | uint16(cpu.Read(RESET_VECTOR)), nil
	}
	return nesrom.LoadAddress, nil
}

func main() {
	flag.Parse()

	if *romFile == "" && *scriptFile == "" {
		log.Fatalf("One of -nes_rom or -script is required.")
	}

	cpu := mos6502.New()
	if *romFile != "" {
		rom, err := nesrom.Open(*romFile)
		if err != nil {
			log.Fatalf("Invalid ROM: %v", err)
		}

		if *info {
			pp.Println(rom.Info())
			return
		}

		start, err := loadROM(cpu, rom, *loadAddr)
		if err != nil {
			log.Fatalf("Couldn't load ROM: %v", err)
		}
		cpu.SetEntry(start)
	}

	if *entry != "" {
		a, err := parseAddr(*entry)
		if err != nil {
			log.Fatalf("Bad -entry: %v", err)
		}
		cpu.SetEntry(a)
	}
	cpu.Reset()

	m := console.New(cpu, console.Options{
		Hz:              *hz,
		SkipUnsupported: *skipUnsupported,
		HaltOnBRK:       *haltOnBRK,
		MaxSteps:        *maxSteps,
	})

	bps, err := parseAddrs(*breaks)
	if err != nil {
		log.Fatalf("Bad -break: %v", err)
	}
	for _, b := range bps {
		m.AddBreakpoint(b)
	}

	if *scriptFile != "" {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		e := script.New(m, os.Stdout)
		err := e.DoFile(ctx, *scriptFile)
		e.Close()
		stop()
		if err != nil {
			log.Fatalf("%v", err)
		}
	}

	tty := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
	switch pickUI(*ui, tty) {
	case "bios":
		if err := m.BIOS(context.Background(), os.Stdin, os.Stdout); err != nil {
			log.Fatalf("BIOS: %v", err)
		}
	case "tui":
		s, err := tcell.NewScreen()
		if err != nil {
			log.Fatalf("Error opening screen: %v", err)
		}
		if err := s.Init(); err != nil {
			log.Fatalf("Error opening screen: %v", err)
		}
		err = monitor.New(s, m).Run(context.Background())
		s.Fini()
		if err != nil {
			log.Fatalf("Monitor: %v", err)
		}
	case "window":
		if err := viewer.New(m, viewer.Options{}).Run("gin6502"); err != nil {
			log.Fatalf("Viewer: %v", err)
		}
	case "none":
		if *scriptFile != "" {
			return
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		reason, err := m.Run(ctx)
		fmt.Printf("Stopped: %s after %d steps\n%s\n", reason, m.Steps(), cpu)
		if err != nil {
			log.Fatalf("%v", err)
		}
	default:
		log.Fatalf("Unknown -ui %q", *ui)
	}
}

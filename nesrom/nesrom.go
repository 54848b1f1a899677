package nesrom

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var (
	ErrTruncatedHeader = errors.New("truncated iNES header")
	ErrEmptyProgram    = errors.New("empty PRG ROM")
)

const (
	TRAINER_SIZE   = 512
	PRG_BLOCK_SIZE = 16384
	CHR_BLOCK_SIZE = 8192
	PC_INST_SIZE   = 8192
	PC_PROM_SIZE   = 32

	// LoadAddress is where program ROM is copied into the CPU's
	// address space.
	LoadAddress = 0x8000
)

// ROM is a parsed cartridge image.
type ROM struct {
	h       *Header
	trainer []byte // if present
	prg     []byte // up to 16384 * x bytes; x from header
	chr     []byte // up to 8192 * y bytes; y from header

	pcInstRom []byte          // if present
	pcPROM    *PlayChoicePROM // if present; often missing - see PC10 ROM-Images
}

// PlayChoicePROM is the decryption PROM some PlayChoice-10 dumps carry
// after the INST-ROM.
type PlayChoicePROM struct {
	Data       [16]byte
	CounterOut [16]byte
}

// Memory is the part of the CPU the loader needs.
type Memory interface {
	LoadProgram(addr uint16, data []uint8) int
}

// New parses an iNES image. The program region may be shorter than
// the header claims (it is used up to end of file), but it must not
// be empty.
func New(r io.Reader) (*ROM, error) {
	hbytes := make([]byte, HEADER_SIZE)
	if n, err := io.ReadFull(r, hbytes); err != nil {
		return nil, fmt.Errorf("%w: read %d of %d bytes: %v", ErrTruncatedHeader, n, HEADER_SIZE, err)
	}

	rom := &ROM{h: parseHeader(hbytes)}
	if rom.h.HasTrainer() {
		rom.trainer = make([]byte, TRAINER_SIZE)
		if _, err := io.ReadFull(r, rom.trainer); err != nil {
			return nil, fmt.Errorf("error reading trainer data: %w", err)
		}
	}

	if rom.h.PrgBanks() == 0 {
		return nil, fmt.Errorf("%w: header declares 0 banks", ErrEmptyProgram)
	}

	prg, err := readUpTo(r, PRG_BLOCK_SIZE*int(rom.h.PrgBanks()))
	if err != nil {
		return nil, fmt.Errorf("error reading PRG ROM: %w", err)
	}
	if len(prg) == 0 {
		return nil, fmt.Errorf("%w: no bytes follow the header", ErrEmptyProgram)
	}
	rom.prg = prg

	chr, err := readUpTo(r, CHR_BLOCK_SIZE*int(rom.h.ChrBanks()))
	if err != nil {
		return nil, fmt.Errorf("error reading CHR ROM: %w", err)
	}
	rom.chr = chr

	if rom.h.HasPlayChoice() {
		if rom.pcInstRom, err = readUpTo(r, PC_INST_SIZE); err != nil {
			return nil, fmt.Errorf("error reading PlayChoice INST-ROM: %w", err)
		}
		prom, err := readUpTo(r, PC_PROM_SIZE)
		if err != nil {
			return nil, fmt.Errorf("error reading PlayChoice PROM: %w", err)
		}
		if len(prom) == PC_PROM_SIZE {
			rom.pcPROM = &PlayChoicePROM{}
			copy(rom.pcPROM.Data[:], prom[:16])
			copy(rom.pcPROM.CounterOut[:], prom[16:])
		}
	}

	return rom, nil
}

// Open parses the iNES image at path.
func Open(path string) (*ROM, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("couldn't open ROM file %q: %w", path, err)
	}
	defer f.Close()

	rom, err := New(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return rom, nil
}

// readUpTo reads at most n bytes, treating an early end of file as
// the end of the region.
func readUpTo(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	got, err := io.ReadFull(r, buf)
	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		return buf[:got], nil
	}
	return nil, err
}

func (r *ROM) Header() *Header {
	return r.h
}

// Prg returns the program ROM bytes as read from the image.
func (r *ROM) Prg() []byte {
	return r.prg
}

func (r *ROM) Chr() []byte {
	return r.chr
}

// PlayChoice returns the PlayChoice-10 INST-ROM and PROM, either of
// which may be missing from the image.
func (r *ROM) PlayChoice() ([]byte, *PlayChoicePROM) {
	return r.pcInstRom, r.pcPROM
}

// Load copies the program ROM into m at LoadAddress and returns how
// many bytes fit below the top of the address space.
func (r *ROM) Load(m Memory) int {
	return r.LoadAt(m, LoadAddress)
}

// LoadAt is Load with a caller chosen load address, for images built
// to run from somewhere other than $8000 (e.g. 16KB images assembled
// for $C000).
func (r *ROM) LoadAt(m Memory, addr uint16) int {
	return m.LoadProgram(addr, r.prg)
}

// ResetVector returns the little endian word stored in the fourth and
// third to last bytes of program ROM. That is where the 6502 reset
// vector ($FFFC) lands when the program ends at the top of memory.
// ok is false unless the program region is made of whole banks; the
// tail of a truncated image is code, not a vector.
func (r *ROM) ResetVector() (addr uint16, ok bool) {
	if len(r.prg) == 0 || len(r.prg)%PRG_BLOCK_SIZE != 0 {
		return 0, false
	}
	v := r.prg[len(r.prg)-4:]
	return uint16(v[1])<<8 | uint16(v[0]), true
}

func (r *ROM) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%s\n", r.h))
	if r.h.HasTrainer() {
		sb.WriteString(fmt.Sprintf("Trainer: %d bytes\n", len(r.trainer)))
	}
	sb.WriteString(fmt.Sprintf("PRG: %d bytes\n", len(r.prg)))
	sb.WriteString(fmt.Sprintf("CHR: %d bytes\n", len(r.chr)))

	return sb.String()
}

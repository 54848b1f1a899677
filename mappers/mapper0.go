package mappers

import (
	"fmt"

	"github.com/bdwalton/gin6502/nesrom"
)

func init() {
	RegisterMapper(newMapper0())
}

const (
	NROM_MAX_BANKS = 2
	MIRROR_ADDRESS = 0xC000 // where a single bank is repeated
)

// mapper0 is NROM: up to 32KB of program ROM at $8000 with no bank
// switching. A 16KB image appears at both $8000 and $C000.
type mapper0 struct {
	*baseMapper
}

func newMapper0() *mapper0 {
	return &mapper0{baseMapper: newBaseMapper(0, "NROM")}
}

func (m *mapper0) Load(mem nesrom.Memory, r *nesrom.ROM) error {
	prg := r.Prg()
	if len(prg) > NROM_MAX_BANKS*nesrom.PRG_BLOCK_SIZE {
		return fmt.Errorf("%s: %d bytes of PRG ROM exceeds %d", m, len(prg), NROM_MAX_BANKS*nesrom.PRG_BLOCK_SIZE)
	}

	r.Load(mem)
	if len(prg) <= nesrom.PRG_BLOCK_SIZE {
		r.LoadAt(mem, MIRROR_ADDRESS)
	}

	return nil
}

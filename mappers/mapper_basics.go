// Package mappers implements and registers the ways cartridge program
// ROM is placed in the 6502 address space. Mappers are referenced
// numerically by iNES and NES2.0 ROM files.
package mappers

import (
	"errors"
	"fmt"

	"github.com/bdwalton/gin6502/nesrom"
)

var ErrUnknownMapper = errors.New("unsupported mapper")

// A global registry of mappers, keyed by mapper id
var AllMappers map[uint8]Mapper = map[uint8]Mapper{}

type Mapper interface {
	ID() uint8
	Name() string
	// Load places r's program ROM into m.
	Load(m nesrom.Memory, r *nesrom.ROM) error
}

func RegisterMapper(m Mapper) {
	AllMappers[m.ID()] = m
}

// Get returns the registered mapper for id.
func Get(id uint8) (Mapper, error) {
	m, ok := AllMappers[id]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownMapper, id)
	}
	return m, nil
}

type baseMapper struct {
	id   uint8
	name string
}

func newBaseMapper(id uint8, name string) *baseMapper {
	return &baseMapper{id: id, name: name}
}

func (bm *baseMapper) ID() uint8 {
	return bm.id
}

func (bm *baseMapper) Name() string {
	return bm.name
}

func (bm *baseMapper) String() string {
	return fmt.Sprintf("%s (mapper %d)", bm.name, bm.id)
}

package nesrom

import (
	"fmt"
)

// Info is a flat summary of a parsed image for display.
type Info struct {
	Format      string
	Mapper      uint8
	Mirroring   string
	PrgBanks    uint8
	PrgBytes    int
	ChrBanks    uint8
	ChrBytes    int
	Trainer     bool
	PrgRAMUnits uint8
	PlayChoice  bool
	ResetVector string
}

func (r *ROM) Info() Info {
	format := "unknown"
	switch {
	case r.h.IsNES2Format():
		format = "NES 2.0"
	case r.h.IsINesFormat():
		format = "iNES"
	}

	rv := "none"
	if a, ok := r.ResetVector(); ok {
		rv = fmt.Sprintf("$%04X", a)
	}

	return Info{
		Format:      format,
		Mapper:      r.h.MapperNum(),
		Mirroring:   mirrorNames[r.h.MirroringMode()],
		PrgBanks:    r.h.PrgBanks(),
		PrgBytes:    len(r.prg),
		ChrBanks:    r.h.ChrBanks(),
		ChrBytes:    len(r.chr),
		Trainer:     r.h.HasTrainer(),
		PrgRAMUnits: r.h.PrgRAMSize(),
		PlayChoice:  r.h.HasPlayChoice(),
		ResetVector: rv,
	}
}

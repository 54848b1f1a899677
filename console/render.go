package console

import (
	"fmt"
	"strings"

	"github.com/bdwalton/gin6502/mos6502"
)

const BYTES_PER_ROW = 16

// FormatStatus renders the status byte as two lines: the flag labels
// from bit 0 up, and each bit's value beneath its label.
func FormatStatus(f mos6502.Flags) string {
	names := mos6502.FlagNames()
	bits := f.Bits()

	var top, bottom []string
	for i := range names {
		top = append(top, names[i])
		bottom = append(bottom, fmt.Sprintf("%d", bits[i]))
	}

	return strings.Join(top, " ") + "\n" + strings.Join(bottom, " ") + "\n"
}

// FormatMemory renders the snapshot's memory as rows of hex bytes,
// each prefixed with the address of its first byte.
func FormatMemory(s mos6502.Snapshot) string {
	var sb strings.Builder

	for i, b := range s.Memory {
		if i%BYTES_PER_ROW == 0 {
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(fmt.Sprintf("0x%04x:", int(s.Start)+i))
		}
		sb.WriteString(fmt.Sprintf(" %02x", b))
	}
	if len(s.Memory) > 0 {
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatSnapshot renders registers, flags and memory together.
func FormatSnapshot(s mos6502.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(s.Registers.String())
	sb.WriteString("\n\nStatus register:\n")
	sb.WriteString(FormatStatus(s.Status()))
	sb.WriteString("\nMemory:\n")
	sb.WriteString(FormatMemory(s))

	return sb.String()
}

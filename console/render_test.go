package console

import (
	"testing"

	"github.com/bdwalton/gin6502/mos6502"
)

func TestFormatStatus(t *testing.T) {
	cases := []struct {
		f    mos6502.Flags
		want string
	}{
		{0x00, "C Z I D B - V N\n0 0 0 0 0 0 0 0\n"},
		{0x81, "C Z I D B - V N\n1 0 0 0 0 0 0 1\n"},
		{0x34, "C Z I D B - V N\n0 0 1 0 1 1 0 0\n"},
	}

	for i, tc := range cases {
		if got := FormatStatus(tc.f); got != tc.want {
			t.Errorf("%d: Got\n%s\nwant\n%s", i, got, tc.want)
		}
	}
}

func TestFormatMemory(t *testing.T) {
	mem := make([]uint8, 18)
	for i := range mem {
		mem[i] = uint8(i)
	}

	cases := []struct {
		s    mos6502.Snapshot
		want string
	}{
		{mos6502.Snapshot{Start: 0x0200, Memory: []uint8{}}, ""},
		{mos6502.Snapshot{Start: 0x0200, Memory: []uint8{0xde, 0xad}}, "0x0200: de ad\n"},
		{
			mos6502.Snapshot{Start: 0x0010, Memory: mem},
			"0x0010: 00 01 02 03 04 05 06 07 08 09 0a 0b 0c 0d 0e 0f\n0x0020: 10 11\n",
		},
	}

	for i, tc := range cases {
		if got := FormatMemory(tc.s); got != tc.want {
			t.Errorf("%d: Got %q, want %q", i, got, tc.want)
		}
	}
}

package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestBIOS(t *testing.T) {
	// INX; INX; INX; BRK
	prog := []uint8{0xE8, 0xE8, 0xE8, 0x00}

	cases := []struct {
		input    string
		wantPC   uint16
		wantX    uint8
		wantOut  string
		wantBrks int
	}{
		{"s\ns\nq\n", 0x0602, 2, "", 0},
		{"b\n0602\nr\nq\n", 0x0602, 2, "Stopped: breakpoint", 1},
		{"b\n0602\nc\nr\nq\n", 0x0603, 3, "Stopped: halted", 0},
		{"p\n$0700\nq\n", 0x0700, 0, "", 0},
		{"p\nzz\n0x0601\nq\n", 0x0601, 0, "Invalid address", 0},
		{"m\n0600\n0603\nq\n", 0x0600, 0, "0x0600: e8 e8 e8 00", 0},
		{"s\ns\ne\nq\n", 0x0600, 0, "", 0},
		{"i\nq\n", 0x0600, 0, "0x0600: 0xe8", 0},
		{"z\nq\n", 0x0600, 0, "Unknown choice \"z\"", 0},
		{"s\n", 0x0601, 1, "", 0}, // end of input quits
	}

	for i, tc := range cases {
		m := newTestMachine(Options{HaltOnBRK: true}, prog...)
		var out bytes.Buffer
		if err := m.BIOS(context.Background(), strings.NewReader(tc.input), &out); err != nil {
			t.Errorf("%d: unexpected error: %v", i, err)
		}

		r := m.CPU().Registers()
		if r.PC != tc.wantPC || r.X != tc.wantX {
			t.Errorf("%d: Got PC 0x%04x X %d, want PC 0x%04x X %d", i, r.PC, r.X, tc.wantPC, tc.wantX)
		}
		if !strings.Contains(out.String(), tc.wantOut) {
			t.Errorf("%d: output missing %q:\n%s", i, tc.wantOut, out.String())
		}
		if n := len(m.Breakpoints()); n != tc.wantBrks {
			t.Errorf("%d: Got %d breakpoints, want %d", i, n, tc.wantBrks)
		}
	}
}

func TestBIOSStack(t *testing.T) {
	// LDA #$42; PHA; LDA #$43; PHA
	m := newTestMachine(Options{}, 0xA9, 0x42, 0x48, 0xA9, 0x43, 0x48)

	var out bytes.Buffer
	if err := m.BIOS(context.Background(), strings.NewReader("s\ns\ns\ns\nt\nq\n"), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "0x01fe: 0x43 0x01ff: 0x42"
	if !strings.Contains(out.String(), want) {
		t.Errorf("output missing %q:\n%s", want, out.String())
	}
}

func TestBIOSCancelled(t *testing.T) {
	m := newTestMachine(Options{}, 0xE8)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	if err := m.BIOS(ctx, strings.NewReader("s\n"), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pc := m.CPU().PC(); pc != testOrigin {
		t.Errorf("Got PC 0x%04x, want 0x%04x", pc, testOrigin)
	}
}

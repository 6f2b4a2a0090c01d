package soc

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"rvblink/core"
)

func testBus(t *testing.T, prom []uint32) *Bus {
	t.Helper()
	p, err := FindPlatform("blink")
	if err != nil {
		t.Fatalf("FindPlatform: %v", err)
	}
	b, err := NewBus(p, prom)
	if err != nil {
		t.Fatalf("NewBus: %v", err)
	}
	return b
}

func TestBusDecodesGPO(t *testing.T) {
	b := testBus(t, nil)

	b.Write(0x2000_0000, 0xdead_beef, 0x1)
	if b.GPO() != 0xdead_beef {
		t.Errorf("GPO = %#x, want full word regardless of sel", b.GPO())
	}
	if !b.LED() {
		t.Error("LED should follow bit 0")
	}

	// Any address in the region hits the latch.
	b.Write(0x2fff_fffc, 0, SelAll)
	if b.LED() {
		t.Error("LED should be off after writing 0")
	}

	writes := b.GPOWrites()
	if len(writes) != 2 {
		t.Fatalf("got %d GPO writes, want 2", len(writes))
	}
	if writes[0].Cycle != 1 || writes[1].Cycle != 2 {
		t.Errorf("write cycles = %d,%d, want 1,2", writes[0].Cycle, writes[1].Cycle)
	}
}

func TestBusDataMemoryByteLanes(t *testing.T) {
	b := testBus(t, nil)

	b.Write(DataBase+8, 0x1122_3344, SelAll)
	b.Write(DataBase+8, 0xaabb_ccdd, 0b0101)

	if got := b.Read(DataBase + 8); got != 0x11bb_33dd {
		t.Errorf("Read = %#x, want 0x11bb33dd", got)
	}
	if b.GPO() != 0 {
		t.Error("data write leaked into GPO")
	}
}

func TestBusIgnoresUnmappedWrites(t *testing.T) {
	b := testBus(t, []uint32{0x13})

	b.Write(0x0000_0000, 0xffff_ffff, SelAll)
	b.Write(0x3000_0000, 0xffff_ffff, SelAll)

	if b.Fetch(0) != 0x13 {
		t.Error("instruction memory was written through the data bus")
	}
	if b.IMem().Depth() != 1024 || b.DMem().Depth() != 1024 {
		t.Errorf("memory depths = %d/%d, want 1024/1024", b.IMem().Depth(), b.DMem().Depth())
	}
	if b.GPO() != 0 || len(b.GPOWrites()) != 0 {
		t.Error("unmapped write reached the GPO")
	}
}

func TestBusReadsAlwaysReturnDataMemory(t *testing.T) {
	b := testBus(t, nil)

	b.Write(DataBase, 0x55, SelAll)
	// The read path is wired to data memory only; a load from the GPO
	// region consumes a cycle and returns data word 0.
	if got := b.Read(0x2000_0000); got != 0x55 {
		t.Errorf("Read(GPO) = %#x, want data word 0", got)
	}
}

func TestBusCycleAccounting(t *testing.T) {
	b := testBus(t, nil)

	b.WriteGPO(1)
	b.Advance(100)
	b.Read(DataBase)
	if b.Cycle() != 102 {
		t.Errorf("Cycle = %d, want 102", b.Cycle())
	}
}

func TestBusImplementsGPODriver(t *testing.T) {
	var _ core.GPODriver = (*Bus)(nil)

	b := testBus(t, nil)
	b.WriteGPO(core.LEDBit)
	if !b.LED() {
		t.Error("WriteGPO did not reach the latch")
	}
	if b.GPOBase() != uint32(core.GPOAddress) {
		t.Errorf("GPOBase = %#x, want %#x", b.GPOBase(), core.GPOAddress)
	}
}

func TestBusWriteGPOUsesPlatformBase(t *testing.T) {
	p, err := ParsePlatform([]byte("name: moved\ngpoBase: 0x20000100\n"))
	if err != nil {
		t.Fatalf("ParsePlatform: %v", err)
	}
	b, err := NewBus(p, nil)
	if err != nil {
		t.Fatalf("NewBus: %v", err)
	}

	if b.GPOBase() != 0x2000_0100 {
		t.Fatalf("GPOBase = %#x, want 0x20000100", b.GPOBase())
	}
	b.WriteGPO(0x5)
	if b.GPO() != 0x5 || len(b.GPOWrites()) != 1 {
		t.Errorf("GPO = %#x after %d writes, want 0x5 after 1", b.GPO(), len(b.GPOWrites()))
	}
}

func TestMemoryWraps(t *testing.T) {
	m := NewMemory(4, []uint32{1, 2, 3, 4})
	if m.Read(5) != 2 {
		t.Errorf("Read(5) = %d, want 2", m.Read(5))
	}
}

func TestPackFirmware(t *testing.T) {
	raw := []byte{0x13, 0x00, 0x00, 0x00, 0xb7, 0x02, 0x00, 0x20, 0xff}
	words, err := PackFirmware(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("PackFirmware: %v", err)
	}
	want := []uint32{0x0000_0013, 0x2000_02b7}
	if len(words) != len(want) {
		t.Fatalf("got %d words, want %d", len(words), len(want))
	}
	for i := range want {
		if words[i] != want[i] {
			t.Errorf("word %d = %#08x, want %#08x", i, words[i], want[i])
		}
	}
}

func TestPackFirmwareTooLarge(t *testing.T) {
	p, _ := FindPlatform("blink")
	raw := make([]byte, (p.IMemWords+1)*4)

	_, err := PackFirmwareFor(p, bytes.NewReader(raw))
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("err = %v, want ErrImageTooLarge", err)
	}

	_, err = NewBus(p, make([]uint32, p.IMemWords+1))
	if !errors.Is(err, ErrImageTooLarge) {
		t.Errorf("NewBus err = %v, want ErrImageTooLarge", err)
	}
}

func TestBuiltinPlatforms(t *testing.T) {
	testCases := []struct {
		name      string
		imemWords int
		dmemWords int
		resources []string
	}{
		{"blink", 1024, 1024, []string{"led"}},
		{"adc", 4096, 4096, []string{"led", "la"}},
	}

	for _, tc := range testCases {
		p, err := FindPlatform(tc.name)
		if err != nil {
			t.Fatalf("FindPlatform(%q): %v", tc.name, err)
		}
		if p.Clock.Hz != 20_000_000 {
			t.Errorf("%s: clock = %d", tc.name, p.Clock.Hz)
		}
		if p.IMemWords != tc.imemWords || p.DMemWords != tc.dmemWords {
			t.Errorf("%s: memories = %d/%d words, want %d/%d",
				tc.name, p.IMemWords, p.DMemWords, tc.imemWords, tc.dmemWords)
		}
		if p.GPOBase != uint32(core.GPOAddress) {
			t.Errorf("%s: GPO base = %#x", tc.name, p.GPOBase)
		}
		for _, r := range tc.resources {
			if _, ok := p.Resource(r); !ok {
				t.Errorf("%s: missing resource %q", tc.name, r)
			}
		}
	}

	led, _ := Platforms()[0].Resource("led")
	if len(led.Pins) != 1 || led.Pins[0] != "T4" {
		t.Errorf("led pins = %v, want [T4]", led.Pins)
	}
}

func TestFindPlatformUnknown(t *testing.T) {
	if _, err := FindPlatform("icebreaker"); !errors.Is(err, ErrUnknownPlatform) {
		t.Errorf("err = %v, want ErrUnknownPlatform", err)
	}
}

func TestLoadPlatformAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.yaml")
	data := []byte("name: slow\nclock:\n  hz: 1000000\ndmemWords: 256\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPlatform(path)
	if err != nil {
		t.Fatalf("LoadPlatform: %v", err)
	}
	if p.Clock.Hz != 1_000_000 {
		t.Errorf("clock = %d, want 1000000", p.Clock.Hz)
	}
	if p.DMemWords != 256 || p.IMemWords != 1024 {
		t.Errorf("memories = %d/%d, want 1024/256", p.IMemWords, p.DMemWords)
	}
	if p.GPOBase != uint32(core.GPOAddress) || p.Device != "LFE5U-45F" {
		t.Errorf("defaults not applied: %+v", p)
	}
}

func TestParsePlatformRejects(t *testing.T) {
	testCases := []struct {
		name string
		yaml string
	}{
		{"unknown field", "name: x\nleds: 4\n"},
		{"gpo outside region", "gpoBase: 0x10000000\n"},
		{"negative depth", "imemWords: -1\n"},
		{"not yaml", "[[[\n"},
	}
	for _, tc := range testCases {
		if _, err := ParsePlatform([]byte(tc.yaml)); !errors.Is(err, ErrInvalidPlatform) {
			t.Errorf("%s: err = %v, want ErrInvalidPlatform", tc.name, err)
		}
	}
}

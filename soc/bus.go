package soc

import "rvblink/core"

// Regions selected by the top nibble of a data-bus address.
const (
	RegionData uint32 = 0x1
	RegionGPO  uint32 = 0x2
)

// DataBase is the first byte address of data memory.
const DataBase = uint32(core.ProbeAddress)

// SelAll enables every byte lane of a write.
const SelAll uint8 = 0xf

// GPOWrite is one store that reached the GPO latch.
type GPOWrite struct {
	Cycle uint64
	Value uint32
}

// Bus models the CPU's instruction and data buses as wired on the board:
// instructions come from a read-only memory loaded with the firmware image,
// data writes are decoded on the top address nibble, data reads always
// return data memory, and every access is acknowledged one cycle later.
type Bus struct {
	imem *Memory
	dmem *Memory

	gpoBase uint32
	gpo     uint32
	cycle   uint64
	writes  []GPOWrite
}

// NewBus builds the bus for a platform and loads prom into instruction memory.
func NewBus(p Platform, prom []uint32) (*Bus, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(prom) > p.IMemWords {
		return nil, imageTooLarge(len(prom), p.IMemWords)
	}
	return &Bus{
		imem:    NewMemory(p.IMemWords, prom),
		dmem:    NewMemory(p.DMemWords, nil),
		gpoBase: p.GPOBase,
	}, nil
}

func wordIndex(addr uint32) uint32 {
	return addr >> 2
}

func region(addr uint32) uint32 {
	return addr >> 28
}

// Fetch reads an instruction word.
func (b *Bus) Fetch(addr uint32) uint32 {
	b.cycle++
	return b.imem.Read(wordIndex(addr))
}

// Read performs a data-bus load. Only data memory drives the read path, so
// loads from any region return a data memory word.
func (b *Bus) Read(addr uint32) uint32 {
	b.cycle++
	return b.dmem.Read(wordIndex(addr))
}

// Write performs a data-bus store with byte-lane select sel.
// Stores to the GPO region latch the whole word regardless of sel;
// stores to unmapped regions are dropped.
func (b *Bus) Write(addr uint32, data uint32, sel uint8) {
	b.cycle++
	switch region(addr) {
	case RegionData:
		b.dmem.Write(wordIndex(addr), data, sel)
	case RegionGPO:
		b.gpo = data
		b.writes = append(b.writes, GPOWrite{Cycle: b.cycle, Value: data})
	}
}

// WriteGPO implements core.GPODriver with a full-word store to the
// platform's GPO address.
func (b *Bus) WriteGPO(value uint32) {
	b.Write(b.gpoBase, value, SelAll)
}

// GPOBase returns the address WriteGPO stores to.
func (b *Bus) GPOBase() uint32 {
	return b.gpoBase
}

// Advance accounts for cycles spent executing without bus traffic.
func (b *Bus) Advance(cycles uint64) {
	b.cycle += cycles
}

// Cycle returns the number of elapsed core clock cycles.
func (b *Bus) Cycle() uint64 {
	return b.cycle
}

// GPO returns the latched output word.
func (b *Bus) GPO() uint32 {
	return b.gpo
}

// LED reports the level of the LED pin, bit 0 of the GPO latch.
func (b *Bus) LED() bool {
	return b.gpo&core.LEDBit != 0
}

// GPOWrites returns every store that reached the GPO latch, in order.
func (b *Bus) GPOWrites() []GPOWrite {
	return b.writes
}

// IMem and DMem expose the memories for inspection.
func (b *Bus) IMem() *Memory { return b.imem }
func (b *Bus) DMem() *Memory { return b.dmem }

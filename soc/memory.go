package soc

// Memory is a 32-bit wide block RAM. Addresses are word indices and wrap at
// the depth, the way a BRAM ignores address bits above its width.
type Memory struct {
	words []uint32
}

// NewMemory creates a zeroed memory of depth words, preloaded with init.
// init longer than depth is truncated; callers check sizes first.
func NewMemory(depth int, init []uint32) *Memory {
	m := &Memory{words: make([]uint32, depth)}
	copy(m.words, init)
	return m
}

// Depth returns the number of words.
func (m *Memory) Depth() int {
	return len(m.words)
}

// Read returns the word at index.
func (m *Memory) Read(index uint32) uint32 {
	return m.words[int(index)%len(m.words)]
}

// Write stores data at index, one byte lane per bit of sel.
func (m *Memory) Write(index uint32, data uint32, sel uint8) {
	i := int(index) % len(m.words)
	word := m.words[i]
	for lane := uint(0); lane < 4; lane++ {
		if sel&(1<<lane) == 0 {
			continue
		}
		mask := uint32(0xff) << (8 * lane)
		word = word&^mask | data&mask
	}
	m.words[i] = word
}

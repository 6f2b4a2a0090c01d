//go:build minerva

package main

import (
	"runtime/volatile"
	"unsafe"

	"rvblink/core"
)

// MMIOGPODriver implements core.GPODriver with a volatile store to the
// 32-bit latch decoded from the 0x2xxx_xxxx region. Only stores reach it;
// loads from the region return data memory.
type MMIOGPODriver struct {
	reg *volatile.Register32
}

// NewMMIOGPODriver creates a driver for the board's GPO latch
func NewMMIOGPODriver() *MMIOGPODriver {
	return &MMIOGPODriver{
		reg: (*volatile.Register32)(unsafe.Pointer(core.GPOAddress)),
	}
}

// WriteGPO stores the full word in the latch
func (d *MMIOGPODriver) WriteGPO(value uint32) {
	d.reg.Set(value)
}

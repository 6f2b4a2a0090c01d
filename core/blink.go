// Blink loop
// Drives the GPO register through an endless on/off cycle
package core

import "sync/atomic"

// LEDState is the last value written to the LED bit.
type LEDState uint8

const (
	LEDUnknown LEDState = iota // nothing written since reset
	LEDOn
	LEDOff
)

func (s LEDState) String() string {
	switch s {
	case LEDOn:
		return "on"
	case LEDOff:
		return "off"
	default:
		return "unknown"
	}
}

// Blinker toggles bit 0 of a GPO register with a fixed delay between writes.
type Blinker struct {
	gpo        GPODriver
	delay      DelayFunc
	iterations uint32

	state   atomic.Uint32 // LEDState
	writes  atomic.Uint32
	faulted atomic.Bool
}

// NewBlinker creates a blinker that waits iterations between transitions.
func NewBlinker(gpo GPODriver, delay DelayFunc, iterations uint32) *Blinker {
	return &Blinker{
		gpo:        gpo,
		delay:      delay,
		iterations: iterations,
	}
}

// Toggle writes the next LED value and then busy-waits one phase.
// The first write after reset turns the LED on.
func (b *Blinker) Toggle() {
	next := LEDOn
	value := LEDBit
	if LEDState(b.state.Load()) == LEDOn {
		next = LEDOff
		value = 0
	}

	b.gpo.WriteGPO(value)
	b.state.Store(uint32(next))
	n := b.writes.Add(1)
	RecordEvent(EvtWrite, n, value)

	b.delay(b.iterations)
}

// Run blinks forever. A panic inside the loop is treated as an unrecoverable
// fault: it is recorded and control passes to the halt handler, so the
// register keeps whatever value it last held.
func (b *Blinker) Run() {
	defer b.recoverFault()
	for {
		b.Toggle()
	}
}

func (b *Blinker) recoverFault() {
	r := recover()
	if r == nil {
		return
	}
	b.faulted.Store(true)
	RecordFault(b.writes.Load(), faultReason(r))
	Halt()
}

// State returns the last value written to the LED.
func (b *Blinker) State() LEDState {
	return LEDState(b.state.Load())
}

// Writes returns the number of GPO writes issued so far.
func (b *Blinker) Writes() uint32 {
	return b.writes.Load()
}

// Faulted reports whether the loop has stopped on a fault.
func (b *Blinker) Faulted() bool {
	return b.faulted.Load()
}

// faultReason extracts a printable reason from a recovered panic value.
func faultReason(r interface{}) string {
	switch v := r.(type) {
	case string:
		return v
	case error:
		return v.Error()
	default:
		return "panic"
	}
}

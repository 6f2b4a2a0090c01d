package core

// haltHandler is the process-wide fault sink. It must not return.
// nil selects defaultHalt; globals stay zero so firmware needs no .data.
var haltHandler func()

// SetHaltHandler replaces the fault sink. Passing nil restores the default,
// which parks the processor forever.
func SetHaltHandler(h func()) {
	haltHandler = h
}

// Halt dumps the event ring to the debug writer, if any, and hands control
// to the halt handler. It never returns to the caller.
func Halt() {
	DumpEventRing()
	if haltHandler != nil {
		haltHandler()
	}
	// A handler that returns would resume a faulted loop.
	defaultHalt()
}

package core

// DebugWriter is a function type for writing debug messages
type DebugWriter func(string)

// Event captures one blink-loop event for post-mortem analysis
type Event struct {
	Kind  uint8  // Event kind code
	Seq   uint32 // Write sequence number at the time of the event
	Value uint32 // Value written, or 0 for faults
}

// Event kind codes
const (
	EvtWrite = 1 // GPO written
	EvtFault = 2 // Loop faulted
)

const (
	EventRingSize = 16 // Keep last 16 events for post-mortem
)

var (
	// debugPrintln is the global debug print function (can be set by platform code)
	// nil means no output, which is the firmware's only option
	debugPrintln DebugWriter

	// Event capture ring buffer (non-blocking, for post-mortem)
	eventRing     [EventRingSize]Event
	eventRingHead uint8

	lastFault string
)

// SetDebugWriter sets the platform-specific debug output function.
// Passing nil disables output.
func SetDebugWriter(writer DebugWriter) {
	debugPrintln = writer
}

// RecordEvent stores an event in the ring buffer
func RecordEvent(kind uint8, seq, value uint32) {
	idx := eventRingHead
	eventRing[idx] = Event{Kind: kind, Seq: seq, Value: value}
	eventRingHead = (idx + 1) % EventRingSize
}

// RecordFault stores a fault event and remembers its reason
func RecordFault(seq uint32, reason string) {
	lastFault = reason
	RecordEvent(EvtFault, seq, 0)
}

// LastFault returns the reason of the most recent fault, or "" if none.
func LastFault() string {
	return lastFault
}

// Events returns the ring contents from oldest to newest, skipping empty slots.
func Events() []Event {
	out := make([]Event, 0, EventRingSize)
	start := eventRingHead
	for i := uint8(0); i < EventRingSize; i++ {
		evt := eventRing[(start+i)%EventRingSize]
		if evt.Kind == 0 {
			continue
		}
		out = append(out, evt)
	}
	return out
}

// DumpEventRing writes the ring buffer to the debug writer, oldest first
func DumpEventRing() {
	if debugPrintln == nil {
		return
	}

	debugPrintln("[EVENT] === Event Ring Dump ===")
	for _, evt := range Events() {
		var name string
		switch evt.Kind {
		case EvtWrite:
			name = "GPO_WRITE"
		case EvtFault:
			name = "FAULT!"
		default:
			name = "UNKNOWN"
		}
		line := "[EVENT] " + name + " seq=" + utoa(evt.Seq) + " value=" + utoaHex(evt.Value)
		if evt.Kind == EvtFault && lastFault != "" {
			line += " reason=" + lastFault
		}
		debugPrintln(line)
	}
	debugPrintln("[EVENT] === End Dump ===")
}

// ClearEventRing clears the ring buffer and the recorded fault
func ClearEventRing() {
	for i := range eventRing {
		eventRing[i] = Event{}
	}
	eventRingHead = 0
	lastFault = ""
}

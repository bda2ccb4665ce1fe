// internal/kbc/tracker.go
package kbc

// Tracker holds the pressed set as of the last completed scan cycle
// and turns each new cycle into release/press events.
//
// Not safe for concurrent use; the engine serializes access under its
// fine lock.
type Tracker struct {
	pressed [MaxEntries]uint16
	n       int
}

// Report emits one cycle's events for the given (possibly remapped)
// entries, then replaces the stored pressed set.
//
// Releases come strictly before presses so a key that changed scancode
// identity between cycles is never seen down under two codes at once.
// Presses are re-asserted every cycle a key stays down; repeat
// suppression is the sink's business.
func (t *Tracker) Report(sink EventSink, entries []ScanEntry) {
	for i := 0; i < t.n; i++ {
		held := false
		for _, e := range entries {
			if e.Keycode == t.pressed[i] {
				held = true
				break
			}
		}
		if !held {
			sink.Key(t.pressed[i], false)
		}
	}

	for _, e := range entries {
		sink.Scan(e.Scancode)
		sink.Key(e.Keycode, true)
	}

	sink.Sync()

	t.n = len(entries)
	if t.n > MaxEntries {
		t.n = MaxEntries
	}
	for i := 0; i < t.n; i++ {
		t.pressed[i] = entries[i].Keycode
	}
}

// ReleaseAll releases every tracked key and clears the set. Used when
// the FIFO drains empty and when the engine stops. The sync marker is
// emitted even with nothing tracked, so a drained cycle always closes
// a frame.
func (t *Tracker) ReleaseAll(sink EventSink) {
	for i := 0; i < t.n; i++ {
		sink.Key(t.pressed[i], false)
	}
	sink.Sync()
	t.n = 0
}

// Pressed returns the currently tracked keycodes.
func (t *Tracker) Pressed() []uint16 {
	out := make([]uint16, t.n)
	copy(out, t.pressed[:t.n])
	return out
}

// internal/kbc/types.go
package kbc

import "time"

// ScanEntry is one decoded FIFO entry: a matrix position, its packed
// scancode and the logical keycode it resolved to.
type ScanEntry struct {
	Row      uint8
	Col      uint8
	Scancode uint8
	Keycode  uint16
}

// Keymap resolves scancodes to logical keycodes. It holds two planes:
// indices 0..MaxKeys-1 are the primary mappings, MaxKeys..2*MaxKeys-1
// the Fn-shifted mappings.
type Keymap [2 * MaxKeys]uint16

// WakeKey names one matrix position allowed to raise a wake interrupt.
type WakeKey struct {
	Row uint8
	Col uint8
}

// RegisterInterface is the engine's only route to the peripheral.
// Accesses are non-blocking memory operations; offsets are byte-addressed.
type RegisterInterface interface {
	Read(offset uint32) uint32
	Write(offset uint32, value uint32)
}

// PollTimer schedules the engine's poll callback. One outstanding
// timer at a time; ScheduleAfter replaces any pending schedule.
// Cancel is synchronous: it does not return while a fired callback
// is still running.
type PollTimer interface {
	ScheduleAfter(d time.Duration)
	Cancel()
}

// InterruptLine gates delivery of the peripheral interrupt and its
// wake capability across power transitions.
type InterruptLine interface {
	Enable()
	Disable()
	SetWake(enable bool) error
}

// Clock gates the peripheral clock and reset line.
type Clock interface {
	Enable() error
	Disable()
	ResetAssert()
	ResetDeassert()
}

// EventSink accepts the ordered event stream: a scan-code auxiliary
// event, press/release key events, and a synchronization marker
// closing each cycle.
type EventSink interface {
	Scan(scancode uint8)
	Key(keycode uint16, pressed bool)
	Sync()
}

// NopInterruptLine is for rigs where interrupt routing is managed
// elsewhere (tests, pure-poll bring-up).
type NopInterruptLine struct{}

func (NopInterruptLine) Enable()                   {}
func (NopInterruptLine) Disable()                  {}
func (NopInterruptLine) SetWake(enable bool) error { return nil }

// NopClock is for rigs without a controllable peripheral clock.
type NopClock struct{}

func (NopClock) Enable() error  { return nil }
func (NopClock) Disable()       {}
func (NopClock) ResetAssert()   {}
func (NopClock) ResetDeassert() {}

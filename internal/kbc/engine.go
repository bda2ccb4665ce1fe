// internal/kbc/engine.go
package kbc

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// State is the engine's session state.
type State uint8

const (
	// StateStopped: peripheral disabled, no interrupts, no timer.
	StateStopped State = iota

	// StateIdle: FIFO-threshold interrupt armed, waiting for a key.
	StateIdle

	// StatePolling: interrupt deferred, timer-driven FIFO reads.
	StatePolling

	// StateSuspended: wake-filtered low-power mode, only the
	// configured wake keys can raise the keypress interrupt.
	StateSuspended
)

func (s State) String() string {
	switch s {
	case StateStopped:
		return "stopped"
	case StateIdle:
		return "idle"
	case StatePolling:
		return "polling"
	case StateSuspended:
		return "suspended"
	}
	return "unknown"
}

// PinType classifies one peripheral pin.
type PinType uint8

const (
	PinIgnore PinType = iota
	PinRow
	PinCol
)

// PinCfg assigns a pin to a matrix row or column.
type PinCfg struct {
	Type PinType
	Num  uint8
}

// Params is the immutable per-session configuration of an engine.
type Params struct {
	Pins   [MaxPins]PinCfg
	Keymap Keymap
	Timing TimingParams // RowCount is derived from Pins, ignore it here

	UseFnMap       bool
	FnKeycode      uint16
	UseGhostFilter bool

	// Wakeup enables wake-filtered suspend. WakeupKey, when non-zero,
	// is the logical key synthesized on a keypress-caused wake whose
	// exact source cannot be resolved.
	Wakeup    bool
	WakeupKey uint16
	WakeKeys  []WakeKey
}

// Deps are the engine's collaborators.
type Deps struct {
	Regs RegisterInterface
	Sink EventSink

	// Timer is optional; when nil the engine runs its own Timer.
	Timer PollTimer

	// Irq and Clock are optional; nil means no-op.
	Irq   InterruptLine
	Clock Clock
}

// Engine owns the interrupt/poll state machine and drives the
// decode -> ghost -> remap -> diff pipeline each poll cycle.
//
// Two locks, as the shared state is touched from the interrupt and
// poll contexts as well as from blocking lifecycle calls: opMu
// serializes Start/Stop/Suspend/Resume against each other, mu
// serializes every register/state touch and is never held across
// blocking work.
type Engine struct {
	params Params

	regs  RegisterInterface
	timer PollTimer
	irq   InterruptLine
	clk   Clock
	sink  EventSink

	dec *Decoder

	// opMu: lifecycle contexts. mu: interrupt/poll contexts and any
	// register or state touch. opMu before mu, never the reverse.
	opMu sync.Mutex
	mu   sync.Mutex

	// Everything below is guarded by mu.
	state            State
	tracker          Tracker
	timing           DerivedTiming
	intToPollDelay   time.Duration
	savedScanTimeout uint32
	wakeKeypress     bool
}

// New validates params and wires an engine. No hardware register is
// touched here; the engine starts in StateStopped.
func New(params Params, deps Deps) (*Engine, error) {
	if deps.Regs == nil {
		return nil, errors.New("kbc: register interface required")
	}
	if deps.Sink == nil {
		return nil, errors.New("kbc: event sink required")
	}

	rows, cols := 0, 0
	for i, p := range params.Pins {
		switch p.Type {
		case PinRow:
			if p.Num >= MaxRows {
				return nil, fmt.Errorf("kbc: pin %d: invalid row number %d", i, p.Num)
			}
			rows++
		case PinCol:
			if p.Num >= MaxCols {
				return nil, fmt.Errorf("kbc: pin %d: invalid column number %d", i, p.Num)
			}
			cols++
		case PinIgnore:
		default:
			return nil, fmt.Errorf("kbc: pin %d: invalid pin type %d", i, p.Type)
		}
	}
	if rows == 0 || cols == 0 {
		return nil, errors.New("kbc: at least one row and one column pin required")
	}
	for _, w := range params.WakeKeys {
		if w.Row >= MaxRows || w.Col >= MaxCols {
			return nil, fmt.Errorf("kbc: wake key (%d,%d) out of range", w.Row, w.Col)
		}
	}

	e := &Engine{
		params: params,
		regs:   deps.Regs,
		sink:   deps.Sink,
		irq:    deps.Irq,
		clk:    deps.Clock,
	}
	e.params.Timing.RowCount = uint32(rows)
	e.dec = NewDecoder(&e.params.Keymap, params.FnKeycode, params.UseFnMap)

	if e.irq == nil {
		e.irq = NopInterruptLine{}
	}
	if e.clk == nil {
		e.clk = NopClock{}
	}
	e.timer = deps.Timer
	if e.timer == nil {
		e.timer = NewTimer(e.onPollTimer)
	}

	return e, nil
}

// State reports the current session state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Pressed reports the keycodes tracked as down after the last cycle.
func (e *Engine) Pressed() []uint16 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tracker.Pressed()
}

// ---- INTERRUPT CONTEXT ----

// HandleInterrupt is the interrupt-source callback. It reads and
// clears the latched status itself. On a FIFO-threshold interrupt it
// hands off to the polling loop; the FIFO interrupt stays disabled
// until all keys are released again. A keypress-status interrupt is
// only reachable on the resume path and is recorded, not decoded: a
// full report cannot run in this context.
func (e *Engine) HandleInterrupt() {
	e.mu.Lock()
	defer e.mu.Unlock()

	// A latched interrupt can still be delivered after Stop has
	// released the lock. The controller is de-clocked by then; do not
	// touch it, and do not let the callback move the session out of
	// the stopped state.
	if e.state == StateStopped {
		return
	}

	val := e.regs.Read(RegIntStatus)
	e.regs.Write(RegIntStatus, val)

	if val&IntFIFOStatus != 0 {
		e.setFIFOInterrupt(false)
		e.state = StatePolling
		e.timer.ScheduleAfter(e.intToPollDelay)
	} else if val&IntKeypressStatus != 0 {
		e.wakeKeypress = true
	}
}

// ---- POLL CONTEXT ----

// minRepollDelay is used instead of the computed repoll delay when
// more than one entry was read, so a fast multi-key sequence is not
// lost to a long wait.
const minRepollDelay = time.Millisecond

func (e *Engine) onPollTimer() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StatePolling {
		return
	}

	n := e.fifoCount()
	if n == 0 {
		// All keys released: leave the polling loop and re-arm
		// the FIFO interrupt.
		e.tracker.ReleaseAll(e.sink)
		e.setFIFOInterrupt(true)
		e.state = StateIdle
		return
	}

	e.reportCycle()

	dly := minRepollDelay
	if n == 1 {
		dly = e.timing.RepollDelay
	}
	e.timer.ScheduleAfter(dly)
}

// reportCycle runs decode -> ghost -> remap -> diff over one FIFO
// snapshot. Caller holds mu.
func (e *Engine) reportCycle() {
	w0 := e.regs.Read(RegFIFO0)
	w1 := e.regs.Read(RegFIFO1)

	rep := e.dec.Decode(fifoBytes(w0, w1))

	// Ghost detection works on the un-remapped scancodes; a veto
	// drops the whole cycle and leaves the tracked set untouched.
	if e.params.UseGhostFilter && Ghosted(rep.Entries) {
		return
	}

	if rep.Fn {
		e.dec.Remap(rep.Entries)
	}

	e.tracker.Report(e.sink, rep.Entries)
}

// ---- REGISTER HELPERS (caller holds mu) ----

func (e *Engine) fifoCount() uint32 {
	return (e.regs.Read(RegIntStatus) >> intFIFOCountShift) & intFIFOCountMask
}

func (e *Engine) setFIFOInterrupt(enable bool) {
	val := e.regs.Read(RegControl)
	if enable {
		val |= ControlFIFOIntEn
	} else {
		val &^= ControlFIFOIntEn
	}
	e.regs.Write(RegControl, val)
}

func (e *Engine) setKeypressInterrupt(enable bool) {
	val := e.regs.Read(RegControl)
	if enable {
		val |= ControlKeypressIntEn
	} else {
		val &^= ControlKeypressIntEn
	}
	e.regs.Write(RegControl, val)
}

func (e *Engine) configPins() {
	for i := 0; i < MaxPins; i++ {
		rShift := uint(5 * (i % 6))
		cShift := uint(4 * (i % 8))
		rOff := uint32(i/6)*4 + RegRowCfg0
		cOff := uint32(i/8)*4 + RegColCfg0

		rowCfg := e.regs.Read(rOff) &^ (0x1f << rShift)
		colCfg := e.regs.Read(cOff) &^ (0x0f << cShift)

		switch e.params.Pins[i].Type {
		case PinRow:
			rowCfg |= (uint32(e.params.Pins[i].Num)<<1 | 1) << rShift
		case PinCol:
			colCfg |= (uint32(e.params.Pins[i].Num)<<1 | 1) << cShift
		}

		e.regs.Write(rOff, rowCfg)
		e.regs.Write(cOff, colCfg)
	}
}

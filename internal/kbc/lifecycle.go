// internal/kbc/lifecycle.go
package kbc

import (
	"errors"
	"fmt"
	"time"
)

// wakeSettleDelay lets the wake masks and forced interrupt mode settle
// before the keypress interrupt is trusted.
const wakeSettleDelay = 30 * time.Millisecond

// Start powers the peripheral, programs the session configuration and
// arms the FIFO-threshold interrupt.
func (e *Engine) Start() error {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	return e.startLocked()
}

func (e *Engine) startLocked() error {
	if e.State() != StateStopped {
		return errors.New("kbc: engine already started")
	}

	if err := e.clk.Enable(); err != nil {
		return fmt.Errorf("kbc: clock enable: %w", err)
	}

	// Reset the controller to clear all previous status.
	e.clk.ResetAssert()
	e.clk.ResetDeassert()

	e.mu.Lock()

	e.configPins()
	setupWakeKeys(e.regs, e.params.WakeKeys, false)

	e.timing = ComputeTiming(e.params.Timing)

	e.regs.Write(RegRepeatDelay, e.params.Timing.RepeatDelay)

	val := e.timing.DebounceCount << controlDebounceShift
	val |= 1 << controlFIFOThreshShift // FIFO interrupt threshold 1
	val |= ControlFIFOIntEn | ControlKeypressIntEn | ControlEnable
	e.regs.Write(RegControl, val)

	e.regs.Write(RegInitDelay, DefaultInitDelay)
	e.regs.Write(RegScanTimeout, e.timing.ScanTimeoutCount)

	// The interrupt-to-poll handoff delay comes from the programmed
	// init delay, in 32 kHz cycles.
	e.intToPollDelay = InterruptToPollDelay(e.regs.Read(RegInitDelay))

	e.tracker = Tracker{}
	e.wakeKeypress = false

	// Drain stale FIFO contents, then clear the latched status.
	// Bounded so a stuck count register cannot hang start.
	for i := 0; i < 2*MaxEntries && e.fifoCount() > 0; i++ {
		e.regs.Read(RegFIFO0)
		e.regs.Read(RegFIFO1)
	}
	e.regs.Write(RegIntStatus, IntClearAll)

	e.state = StateIdle
	e.mu.Unlock()

	e.irq.Enable()

	return nil
}

// Stop disables the peripheral, disarms the interrupt, cancels any
// pending poll and releases the clock. Safe to call from any state.
func (e *Engine) Stop() {
	e.opMu.Lock()
	defer e.opMu.Unlock()
	e.stopLocked()
}

func (e *Engine) stopLocked() {
	e.mu.Lock()
	if e.state == StateStopped {
		e.mu.Unlock()
		return
	}
	val := e.regs.Read(RegControl)
	val &^= ControlEnable
	e.regs.Write(RegControl, val)
	e.state = StateStopped
	e.mu.Unlock()

	e.irq.Disable()

	// Cancel is synchronous: no poll callback may still be running
	// once the clock goes away.
	e.timer.Cancel()

	e.clk.Disable()
}

// Suspend enters the low-power state. With wake capability enabled the
// controller is forced into pure interrupt mode with only the
// configured wake keys unmasked; without it the device powers down.
func (e *Engine) Suspend() error {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	if e.State() == StateStopped {
		return nil
	}

	if !e.params.Wakeup {
		e.stopLocked()
		return nil
	}

	e.irq.Disable()
	e.timer.Cancel()

	e.mu.Lock()
	e.setFIFOInterrupt(false)
	e.regs.Write(RegIntStatus, IntClearAll)

	// Save the continuous-polling resident time and force the
	// controller into interrupt mode.
	e.savedScanTimeout = e.regs.Read(RegScanTimeout)
	e.regs.Write(RegScanTimeout, 0)

	setupWakeKeys(e.regs, e.params.WakeKeys, true)
	e.mu.Unlock()

	time.Sleep(wakeSettleDelay)

	e.mu.Lock()
	e.wakeKeypress = false
	e.setKeypressInterrupt(true)
	e.state = StateSuspended
	e.mu.Unlock()

	e.irq.Enable()
	if err := e.irq.SetWake(true); err != nil {
		return fmt.Errorf("kbc: arm wake interrupt: %w", err)
	}
	return nil
}

// Resume leaves the low-power state. If the engine was fully stopped
// by a wake-less suspend it is restarted instead. When the wake was
// caused by a keypress and a wakeup key is configured, one synthetic
// press+release pair is reported for it, since the exact wake source
// is not otherwise resolvable.
func (e *Engine) Resume() error {
	e.opMu.Lock()
	defer e.opMu.Unlock()

	switch e.State() {
	case StateStopped:
		return e.startLocked()
	case StateSuspended:
	default:
		return nil
	}

	if err := e.irq.SetWake(false); err != nil {
		return fmt.Errorf("kbc: disarm wake interrupt: %w", err)
	}

	e.mu.Lock()
	setupWakeKeys(e.regs, e.params.WakeKeys, false)

	// Back to FIFO interrupts for key detection.
	e.setKeypressInterrupt(false)
	e.regs.Write(RegScanTimeout, e.savedScanTimeout)
	e.setFIFOInterrupt(true)

	wake := e.wakeKeypress
	e.wakeKeypress = false
	e.state = StateIdle
	e.mu.Unlock()

	if wake && e.params.WakeupKey != 0 {
		e.sink.Key(e.params.WakeupKey, true)
		e.sink.Key(e.params.WakeupKey, false)
		e.sink.Sync()
	}

	return nil
}

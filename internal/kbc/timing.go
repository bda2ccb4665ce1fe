// internal/kbc/timing.go
package kbc

import "time"

// TimingParams is the static timing configuration a session starts
// from. Immutable for the lifetime of an active session.
type TimingParams struct {
	DebounceCount uint32
	RepeatDelay   uint32
	ScanCount     uint32
	RowCount      uint32
}

// DerivedTiming is what the engine actually programs and schedules
// with. Recomputed before every (re)start; never while running.
type DerivedTiming struct {
	// RepollDelay separates two consecutive FIFO reads while keys
	// are held.
	RepollDelay time.Duration

	// ScanTimeoutCount is the continuous-polling resident time for
	// the scan timeout register, truncated to its 20-bit width.
	ScanTimeoutCount uint32

	// DebounceCount is the clamped value programmed into the
	// control register.
	DebounceCount uint32
}

// ComputeTiming derives the session timing from static parameters.
// Pure and deterministic: equal inputs always yield equal outputs.
func ComputeTiming(p TimingParams) DerivedTiming {
	var d DerivedTiming

	d.DebounceCount = p.DebounceCount
	if d.DebounceCount > MaxDebounceCount {
		d.DebounceCount = MaxDebounceCount
	}

	// The delay between two FIFO reads is the row scan start delay,
	// the time to scan every row, and the repeat delay, rounded up
	// to whole milliseconds of the 32 kHz cycle.
	scanTimeRows := (RowScanTime + d.DebounceCount) * p.RowCount
	repoll := RowScanStartDelay + scanTimeRows + p.RepeatDelay
	repollMs := (repoll + CycleMillis - 1) / CycleMillis
	d.RepollDelay = time.Duration(repollMs) * time.Millisecond

	scanCount := p.ScanCount
	if scanCount == 0 {
		scanCount = DefaultScanCount
	}
	timeout := (DefaultInitDelay + scanTimeRows + p.RepeatDelay) * scanCount
	d.ScanTimeoutCount = timeout & 0xfffff

	return d
}

// InterruptToPollDelay converts the programmed init-delay register
// value (20 bits, peripheral clock cycles) to wall-clock time: the
// peripheral clock is 32 kHz, one cycle per 32 microseconds.
func InterruptToPollDelay(initDelayReg uint32) time.Duration {
	return time.Duration(initDelayReg&0xfffff) * 32 * time.Microsecond
}

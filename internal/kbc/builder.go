// internal/kbc/builder.go
package kbc

import (
	"github.com/tamzrod/matrix-kbc/internal/config"
)

// Build turns validated, normalized configuration into an engine.
// No register is touched until Start.
func Build(k *config.KBCConfig, deps Deps) (*Engine, error) {
	var params Params

	for row, pin := range k.RowPins {
		if int(pin) < len(params.Pins) {
			params.Pins[pin] = PinCfg{Type: PinRow, Num: uint8(row)}
		}
	}
	for col, pin := range k.ColPins {
		if int(pin) < len(params.Pins) {
			params.Pins[pin] = PinCfg{Type: PinCol, Num: uint8(col)}
		}
	}

	for _, e := range k.Keymap {
		params.Keymap[ScanCode(e.Row, e.Col)] = e.Code
	}
	for _, e := range k.FnKeymap {
		params.Keymap[MaxKeys+int(ScanCode(e.Row, e.Col))] = e.Code
	}

	params.Timing = TimingParams{
		DebounceCount: k.DebounceCount,
		RepeatDelay:   k.RepeatDelay,
		ScanCount:     k.ScanCount,
	}

	params.UseFnMap = k.FnMap
	params.FnKeycode = k.FnKeycode
	params.UseGhostFilter = k.GhostFilter

	params.Wakeup = k.WakeupSource
	params.WakeupKey = k.WakeupKey
	for _, w := range k.WakeKeys {
		params.WakeKeys = append(params.WakeKeys, WakeKey{Row: w.Row, Col: w.Col})
	}

	return New(params, deps)
}

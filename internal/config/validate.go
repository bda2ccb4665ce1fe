// internal/config/validate.go
package config

import (
	"fmt"
)

// Controller geometry limits. Must match the register layout in
// internal/kbc.
const (
	maxRows = 16
	maxCols = 8
	maxPins = 24
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	k := &cfg.KBC

	// ------------------------------------------------------------
	// PIN ASSIGNMENT
	// ------------------------------------------------------------

	if len(k.RowPins) == 0 {
		return fmt.Errorf("kbc: row_pins is required")
	}
	if len(k.ColPins) == 0 {
		return fmt.Errorf("kbc: col_pins is required")
	}
	if len(k.RowPins) > maxRows {
		return fmt.Errorf("kbc: %d row pins exceeds the %d-row matrix", len(k.RowPins), maxRows)
	}
	if len(k.ColPins) > maxCols {
		return fmt.Errorf("kbc: %d column pins exceeds the %d-column matrix", len(k.ColPins), maxCols)
	}
	if len(k.RowPins)+len(k.ColPins) > maxPins {
		return fmt.Errorf("kbc: %d pins assigned, budget is %d",
			len(k.RowPins)+len(k.ColPins), maxPins)
	}

	assigned := make(map[uint8]string)
	for i, pin := range k.RowPins {
		if pin >= maxPins {
			return fmt.Errorf("kbc: row %d: invalid pin %d", i, pin)
		}
		if prev, dup := assigned[pin]; dup {
			return fmt.Errorf("kbc: pin %d assigned to both %s and row %d", pin, prev, i)
		}
		assigned[pin] = fmt.Sprintf("row %d", i)
	}
	for i, pin := range k.ColPins {
		if pin >= maxPins {
			return fmt.Errorf("kbc: column %d: invalid pin %d", i, pin)
		}
		if prev, dup := assigned[pin]; dup {
			return fmt.Errorf("kbc: pin %d assigned to both %s and column %d", pin, prev, i)
		}
		assigned[pin] = fmt.Sprintf("column %d", i)
	}

	// ------------------------------------------------------------
	// KEYMAP
	// ------------------------------------------------------------

	if len(k.Keymap) == 0 {
		return fmt.Errorf("kbc: keymap is required")
	}
	if err := checkKeymapRange("keymap", k.Keymap, k); err != nil {
		return err
	}
	if err := checkKeymapRange("fn_keymap", k.FnKeymap, k); err != nil {
		return err
	}
	if len(k.FnKeymap) > 0 && !k.FnMap {
		return fmt.Errorf("kbc: fn_keymap is set but fn_map is disabled")
	}

	// ------------------------------------------------------------
	// WAKE KEYS
	// ------------------------------------------------------------

	if len(k.WakeKeys) > 0 && !k.WakeupSource {
		return fmt.Errorf("kbc: wake_keys are set but wakeup_source is disabled")
	}
	for i, w := range k.WakeKeys {
		if int(w.Row) >= len(k.RowPins) || int(w.Col) >= len(k.ColPins) {
			return fmt.Errorf("kbc: wake_keys[%d]: (%d,%d) outside the %dx%d matrix",
				i, w.Row, w.Col, len(k.RowPins), len(k.ColPins))
		}
	}

	// ------------------------------------------------------------
	// DEVICE NAME (ASCII only, uinput constraint)
	// ------------------------------------------------------------

	for i := 0; i < len(k.DeviceName); i++ {
		if k.DeviceName[i] > 0x7F {
			return fmt.Errorf("kbc: device_name must contain ASCII characters only")
		}
	}

	return nil
}

func checkKeymapRange(name string, entries []KeymapEntry, k *KBCConfig) error {
	for i, e := range entries {
		if int(e.Row) >= len(k.RowPins) || int(e.Col) >= len(k.ColPins) {
			return fmt.Errorf("kbc: %s[%d]: (%d,%d) outside the %dx%d matrix",
				name, i, e.Row, e.Col, len(k.RowPins), len(k.ColPins))
		}
		if e.Code == 0 {
			return fmt.Errorf("kbc: %s[%d]: keycode must be non-zero", name, i)
		}
	}
	return nil
}

// internal/config/validate_test.go
package config

import "testing"

// helper to build a workable config quickly
func validConfig() *Config {
	return &Config{
		KBC: KBCConfig{
			UIODevice: "/dev/uio0",
			RowPins:   []uint8{0, 1, 2, 3},
			ColPins:   []uint8{16, 17, 18, 19, 20, 21},
			Keymap: []KeymapEntry{
				{Row: 0, Col: 0, Code: 30},
				{Row: 2, Col: 5, Code: 46},
			},
		},
	}
}

// ---- tests ----

func TestValidate_Accepts(t *testing.T) {
	if err := Validate(validConfig()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_RequiresPins(t *testing.T) {
	cfg := validConfig()
	cfg.KBC.RowPins = nil
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for missing row pins")
	}

	cfg = validConfig()
	cfg.KBC.ColPins = nil
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for missing column pins")
	}
}

func TestValidate_MatrixBounds(t *testing.T) {
	cfg := validConfig()
	cfg.KBC.RowPins = make([]uint8, maxRows+1)
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for too many rows")
	}

	cfg = validConfig()
	cfg.KBC.ColPins = make([]uint8, maxCols+1)
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for too many columns")
	}
}

func TestValidate_PinBudget(t *testing.T) {
	cfg := validConfig()
	cfg.KBC.RowPins = []uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15}
	cfg.KBC.ColPins = []uint8{16, 17, 18, 19, 20, 21, 22, 23}
	cfg.KBC.Keymap = []KeymapEntry{{Row: 0, Col: 0, Code: 30}}
	if err := Validate(cfg); err != nil {
		t.Fatalf("full 24-pin budget should be valid: %v", err)
	}

	cfg.KBC.RowPins[15] = 24 // pin index past the budget
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for pin index beyond budget")
	}
}

func TestValidate_DuplicatePin(t *testing.T) {
	cfg := validConfig()
	cfg.KBC.ColPins[0] = cfg.KBC.RowPins[0]
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for pin assigned to row and column")
	}
}

func TestValidate_KeymapRequired(t *testing.T) {
	cfg := validConfig()
	cfg.KBC.Keymap = nil
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for missing keymap")
	}
}

func TestValidate_KeymapOutsideMatrix(t *testing.T) {
	cfg := validConfig()
	cfg.KBC.Keymap = append(cfg.KBC.Keymap, KeymapEntry{Row: 4, Col: 0, Code: 1})
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for keymap row outside matrix")
	}

	cfg = validConfig()
	cfg.KBC.Keymap = append(cfg.KBC.Keymap, KeymapEntry{Row: 0, Col: 6, Code: 1})
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for keymap column outside matrix")
	}
}

func TestValidate_FnKeymapNeedsFnMap(t *testing.T) {
	cfg := validConfig()
	cfg.KBC.FnKeymap = []KeymapEntry{{Row: 0, Col: 0, Code: 59}}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for fn_keymap without fn_map")
	}

	cfg.KBC.FnMap = true
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_WakeKeysNeedWakeupSource(t *testing.T) {
	cfg := validConfig()
	cfg.KBC.WakeKeys = []WakeKey{{Row: 0, Col: 0}}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for wake_keys without wakeup_source")
	}

	cfg.KBC.WakeupSource = true
	if err := Validate(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg.KBC.WakeKeys = []WakeKey{{Row: 0, Col: 6}}
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for wake key outside matrix")
	}
}

func TestValidate_DeviceNameASCII(t *testing.T) {
	cfg := validConfig()
	cfg.KBC.DeviceName = "kbc\x80"
	if err := Validate(cfg); err == nil {
		t.Fatal("expected error for non-ASCII device name")
	}
}

func TestNormalize_Defaults(t *testing.T) {
	cfg := validConfig()
	Normalize(cfg)

	if cfg.KBC.UinputDevice != "/dev/uinput" {
		t.Errorf("uinput device=%q", cfg.KBC.UinputDevice)
	}
	if cfg.KBC.DeviceName != "matrix-kbc" {
		t.Errorf("device name=%q", cfg.KBC.DeviceName)
	}
	if cfg.KBC.FnKeycode != defaultFnKeycode {
		t.Errorf("fn keycode=%d", cfg.KBC.FnKeycode)
	}

	Normalize(nil) // tolerated
}

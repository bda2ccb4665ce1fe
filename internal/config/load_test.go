// internal/config/load_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
)

const sampleYAML = `
kbc:
  uio_device: /dev/uio0
  device_name: test-kbd
  row_pins: [0, 1, 2]
  col_pins: [16, 17]
  debounce_count: 2
  repeat_delay: 10
  fn_map: true
  fn_keycode: 464
  ghost_filter: true
  wakeup_source: true
  wakeup_key: 143
  wake_keys:
    - {row: 0, col: 0}
  keymap:
    - {row: 0, col: 0, code: 30}
    - {row: 2, col: 1, code: 46}
  fn_keymap:
    - {row: 0, col: 0, code: 59}
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "kbc.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatalf("write sample: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() err=%v", err)
	}

	k := cfg.KBC
	if k.UIODevice != "/dev/uio0" || k.DeviceName != "test-kbd" {
		t.Errorf("device fields: %+v", k)
	}
	if len(k.RowPins) != 3 || len(k.ColPins) != 2 {
		t.Errorf("pins: rows=%v cols=%v", k.RowPins, k.ColPins)
	}
	if !k.FnMap || !k.GhostFilter || !k.WakeupSource {
		t.Errorf("flags: %+v", k)
	}
	if len(k.Keymap) != 2 || k.Keymap[1].Code != 46 {
		t.Errorf("keymap: %+v", k.Keymap)
	}
	if len(k.WakeKeys) != 1 || k.WakeupKey != 143 {
		t.Errorf("wake: %+v key=%d", k.WakeKeys, k.WakeupKey)
	}

	if err := Validate(cfg); err != nil {
		t.Fatalf("sample should validate: %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("kbc: ["), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

// internal/config/config.go
package config

type Config struct {
	KBC KBCConfig `yaml:"kbc"`
}

// ---- CONTROLLER ----

type KBCConfig struct {
	// UIODevice is the UIO node exposing the controller's register
	// window and interrupt line, e.g. /dev/uio0.
	UIODevice string `yaml:"uio_device"`

	// UinputDevice is where decoded events are delivered.
	UinputDevice string `yaml:"uinput_device"`
	DeviceName   string `yaml:"device_name"`

	// RowPins[i] is the peripheral pin wired to matrix row i;
	// ColPins likewise for columns.
	RowPins []uint8 `yaml:"row_pins"`
	ColPins []uint8 `yaml:"col_pins"`

	// ---- TIMING ----

	DebounceCount uint32 `yaml:"debounce_count"`
	RepeatDelay   uint32 `yaml:"repeat_delay"`
	ScanCount     uint32 `yaml:"scan_count"`

	// ---- FEATURES ----

	FnMap            bool   `yaml:"fn_map"`
	FnKeycode        uint16 `yaml:"fn_keycode"`
	GhostFilter      bool   `yaml:"ghost_filter"`
	DisableKeyRepeat bool   `yaml:"disable_key_repeat"`

	// ---- WAKE ----

	WakeupSource bool      `yaml:"wakeup_source"`
	WakeupKey    uint16    `yaml:"wakeup_key"`
	WakeKeys     []WakeKey `yaml:"wake_keys"`

	// ---- KEYMAP ----

	Keymap   []KeymapEntry `yaml:"keymap"`
	FnKeymap []KeymapEntry `yaml:"fn_keymap"`
}

// ---- WAKE KEYS ----

type WakeKey struct {
	Row uint8 `yaml:"row"`
	Col uint8 `yaml:"col"`
}

// ---- KEYMAP ENTRIES ----

type KeymapEntry struct {
	Row  uint8  `yaml:"row"`
	Col  uint8  `yaml:"col"`
	Code uint16 `yaml:"code"`
}

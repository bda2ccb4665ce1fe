// internal/config/normalize.go
package config

// Linux KEY_FN; the conventional function-shift keycode.
const defaultFnKeycode = 464

// uinput device names are at most 79 characters plus NUL.
const deviceNameMaxChars = 79

// Normalize applies post-validation defaults.
// It is allowed to mutate configuration.
// It MUST be called only after Validate().
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}
	k := &cfg.KBC

	if k.UinputDevice == "" {
		k.UinputDevice = "/dev/uinput"
	}
	if k.DeviceName == "" {
		k.DeviceName = "matrix-kbc"
	}
	if len(k.DeviceName) > deviceNameMaxChars {
		k.DeviceName = k.DeviceName[:deviceNameMaxChars]
	}

	if k.FnKeycode == 0 {
		k.FnKeycode = defaultFnKeycode
	}

	// ScanCount 0 means the controller default; the timing
	// calculator applies it, not us.
}

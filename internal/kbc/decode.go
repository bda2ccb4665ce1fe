// internal/kbc/decode.go
package kbc

// Decoder turns raw FIFO bytes into scan entries.
// Pure: no IO, no state beyond its configuration.
type Decoder struct {
	keymap    *Keymap
	fnKeycode uint16
	useFnMap  bool
}

// Report is the outcome of decoding one FIFO snapshot.
type Report struct {
	Entries []ScanEntry

	// Fn is set when a valid entry resolved to the designated
	// function-shift keycode. Such entries are withheld from
	// Entries and never reported as ordinary keys.
	Fn bool
}

func NewDecoder(keymap *Keymap, fnKeycode uint16, useFnMap bool) *Decoder {
	return &Decoder{keymap: keymap, fnKeycode: fnKeycode, useFnMap: useFnMap}
}

// Decode processes raw FIFO bytes in order. Bytes without the validity
// bit are skipped. Malformed or empty input yields an empty report.
func (d *Decoder) Decode(raw []byte) Report {
	var rep Report
	rep.Entries = make([]ScanEntry, 0, MaxEntries)

	for i, b := range raw {
		if i >= MaxEntries {
			break
		}
		if b&entryValid == 0 {
			continue
		}

		col := b & entryColMask
		row := (b >> entryRowShift) & entryRowMask
		sc := ScanCode(row, col)
		kc := d.keymap[sc]

		// The Fn key itself is never reported when Fn mapping is on.
		if d.useFnMap && kc == d.fnKeycode {
			rep.Fn = true
			continue
		}

		rep.Entries = append(rep.Entries, ScanEntry{
			Row:      row,
			Col:      col,
			Scancode: sc,
			Keycode:  kc,
		})
	}

	return rep
}

// Remap shifts every entry into the Fn plane and re-resolves its
// keycode. Call only after ghost detection, which works on the
// primary-plane scancodes.
func (d *Decoder) Remap(entries []ScanEntry) {
	for i := range entries {
		entries[i].Scancode += MaxKeys
		entries[i].Keycode = d.keymap[entries[i].Scancode]
	}
}

// fifoBytes unpacks the two FIFO words into entry bytes, low byte first.
func fifoBytes(w0, w1 uint32) []byte {
	var out [MaxEntries]byte
	for i := 0; i < 4; i++ {
		out[i] = byte(w0 >> (8 * uint(i)))
		out[4+i] = byte(w1 >> (8 * uint(i)))
	}
	return out[:]
}

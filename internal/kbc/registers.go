// internal/kbc/registers.go
package kbc

// KBC register layout and bit assignments.
// These values define the hardware protocol and MUST NOT be configurable.

// ---- REGISTER OFFSETS (byte-addressed) ----

// RegControl is the control register: enable, interrupt enables,
// debounce count and FIFO threshold.
const RegControl = 0x00

// RegIntStatus is the interrupt status register. Write-1-to-clear.
const RegIntStatus = 0x04

// RegRowCfg0 is the first row pin configuration word.
// Six 5-bit fields per word, bit 0 of each field enables the pin.
const RegRowCfg0 = 0x08

// RegColCfg0 is the first column pin configuration word.
// Eight 4-bit fields per word, bit 0 of each field enables the pin.
const RegColCfg0 = 0x18

// RegScanTimeout holds the continuous-polling resident time, 20 bits.
const RegScanTimeout = 0x24

// RegInitDelay holds the delay before row scanning starts, 20 bits,
// in peripheral clock cycles.
const RegInitDelay = 0x28

// RegRepeatDelay holds the inter-scan repeat delay.
const RegRepeatDelay = 0x2c

// RegFIFO0 and RegFIFO1 hold the scan entry FIFO, four entries per
// word, low byte first.
const RegFIFO0 = 0x30
const RegFIFO1 = 0x34

// RegRowMask0 is the wake mask for row 0; row n is at RegRowMask0 + 4*n.
// A set bit means the column is ignored during wake filtering.
const RegRowMask0 = 0x38

// ---- CONTROL REGISTER BITS ----

const (
	ControlEnable          = 1 << 0
	ControlKeypressIntEn   = 1 << 1
	ControlFIFOIntEn       = 1 << 3
	controlDebounceShift   = 4
	controlFIFOThreshShift = 14
)

// ---- INTERRUPT STATUS BITS ----

const (
	IntKeypressStatus = 1 << 0
	IntFIFOStatus     = 1 << 2

	// FIFO entry count lives in bits 4..7 of the status register.
	intFIFOCountShift = 4
	intFIFOCountMask  = 0xf

	// IntClearAll clears every latched status bit.
	IntClearAll = 0x7
)

// ---- FIFO ENTRY LAYOUT ----

// Each FIFO byte: bit 7 validity, bits 3..6 row, bits 0..2 column.
const (
	entryValid    = 0x80
	entryColMask  = 0x07
	entryRowMask  = 0x0f
	entryRowShift = 3
)

// RowShift is the matrix addressing width: scancode = row<<RowShift | col.
const RowShift = 3

// ---- MATRIX LIMITS ----

// MaxRows and MaxCols bound the scan matrix.
const MaxRows = 16
const MaxCols = 8

// MaxKeys is the logical scancode space for one keymap plane.
// The keymap table holds two planes (primary + Fn-shifted).
const MaxKeys = MaxRows * MaxCols

// MaxEntries is the hardware FIFO capacity: the most keys a single
// scan cycle can report.
const MaxEntries = 8

// MaxPins is the addressable pin budget shared by rows and columns.
const MaxPins = 24

// MaxDebounceCount is the widest debounce value the control register holds.
const MaxDebounceCount = 0x3ff

// ---- TIMING CONSTANTS ----

// Row scan time and the delay before row scanning begins, in cycles.
const RowScanTime = 16
const RowScanStartDelay = 5

// CycleMillis: the peripheral runs from a 32 kHz clock, so 32 cycles
// make one millisecond.
const CycleMillis = 32

const DefaultScanCount = 2
const DefaultInitDelay = 5

// ScanCode packs a matrix position into its scancode.
func ScanCode(row, col uint8) uint8 {
	return row<<RowShift | col
}

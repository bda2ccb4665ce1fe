// internal/uinput/event.go
package uinput

import "encoding/binary"

// Linux input event codes used by the sink.
// These values define the kernel ABI and MUST NOT be configurable.

const (
	EvSyn = 0x00
	EvKey = 0x01
	EvMsc = 0x04
	EvRep = 0x14

	MscScan   = 0x04
	SynReport = 0x00
)

// EventSize is the wire size of one input_event record on 64-bit
// targets: two 8-byte time fields, type, code, value.
const EventSize = 24

// EncodeEvent marshals one input_event into b, which must be at least
// EventSize bytes. Time fields are left zero; the kernel input core
// timestamps injected events itself.
func EncodeEvent(b []byte, typ uint16, code uint16, value int32) {
	for i := 0; i < 16; i++ {
		b[i] = 0
	}
	binary.LittleEndian.PutUint16(b[16:18], typ)
	binary.LittleEndian.PutUint16(b[18:20], code)
	binary.LittleEndian.PutUint32(b[20:24], uint32(value))
}

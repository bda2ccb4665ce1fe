// internal/uinput/uinput.go

//go:build linux

// Package uinput delivers the engine's event stream to the kernel
// input layer through /dev/uinput. It is the only consumer-facing
// output surface; everything upstream is register decode.
package uinput

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// uinput ioctl requests, _IOW('U', n, int) / _IO('U', n).
const (
	uiSetEvBit  = 0x40045564
	uiSetKeyBit = 0x40045565
	uiSetMscBit = 0x40045568

	uiDevCreate  = 0x5501
	uiDevDestroy = 0x5502
)

const busHost = 0x19

// userDevSize is sizeof(struct uinput_user_dev):
// name[80] + input_id(4*u16) + ff_effects_max(u32) + 4*absinfo[64]*i32.
const userDevSize = 80 + 8 + 4 + 4*64*4

// Config describes the registered input device.
type Config struct {
	Path string
	Name string

	// Keycodes lists every logical key the device may report.
	Keycodes []uint16

	// EnableKeyRepeat advertises EV_REP so the input core performs
	// key repeat downstream; the engine itself never repeats.
	EnableKeyRepeat bool
}

// Device is a registered uinput keyboard. Implements kbc.EventSink.
type Device struct {
	f *os.File

	emitErr error // first failed event write, reported by Close
}

func Open(cfg Config) (*Device, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("uinput: path required")
	}
	if len(cfg.Keycodes) == 0 {
		return nil, fmt.Errorf("uinput: at least one keycode required")
	}

	f, err := os.OpenFile(cfg.Path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("uinput: %w", err)
	}

	fd := int(f.Fd())

	bits := []int{EvKey, EvMsc, EvSyn}
	if cfg.EnableKeyRepeat {
		bits = append(bits, EvRep)
	}
	for _, b := range bits {
		if err := unix.IoctlSetInt(fd, uiSetEvBit, b); err != nil {
			f.Close()
			return nil, fmt.Errorf("uinput: set event bit %#x: %w", b, err)
		}
	}
	if err := unix.IoctlSetInt(fd, uiSetMscBit, MscScan); err != nil {
		f.Close()
		return nil, fmt.Errorf("uinput: set MSC_SCAN: %w", err)
	}
	for _, kc := range cfg.Keycodes {
		if err := unix.IoctlSetInt(fd, uiSetKeyBit, int(kc)); err != nil {
			f.Close()
			return nil, fmt.Errorf("uinput: set key bit %d: %w", kc, err)
		}
	}

	var dev [userDevSize]byte
	copy(dev[:79], cfg.Name)
	putU16 := func(off int, v uint16) {
		dev[off] = byte(v)
		dev[off+1] = byte(v >> 8)
	}
	putU16(80, busHost) // id.bustype; vendor/product/version stay 0

	if _, err := f.Write(dev[:]); err != nil {
		f.Close()
		return nil, fmt.Errorf("uinput: write device record: %w", err)
	}
	if err := unix.IoctlSetInt(fd, uiDevCreate, 0); err != nil {
		f.Close()
		return nil, fmt.Errorf("uinput: create device: %w", err)
	}

	return &Device{f: f}, nil
}

// Close destroys the registered device. It also reports the first
// event write that failed during the session, since the EventSink
// contract gives the emit path no error returns of its own.
func (d *Device) Close() error {
	if d == nil || d.f == nil {
		return nil
	}
	unix.IoctlSetInt(int(d.f.Fd()), uiDevDestroy, 0)
	err := d.f.Close()
	if d.emitErr != nil {
		return fmt.Errorf("uinput: event write: %w", d.emitErr)
	}
	return err
}

// ---- kbc.EventSink ----

func (d *Device) Scan(scancode uint8) {
	d.emit(EvMsc, MscScan, int32(scancode))
}

func (d *Device) Key(keycode uint16, pressed bool) {
	var v int32
	if pressed {
		v = 1
	}
	d.emit(EvKey, keycode, v)
}

func (d *Device) Sync() {
	d.emit(EvSyn, SynReport, 0)
}

func (d *Device) emit(typ, code uint16, value int32) {
	var b [EventSize]byte
	EncodeEvent(b[:], typ, code, value)
	if _, err := d.f.Write(b[:]); err != nil && d.emitErr == nil {
		d.emitErr = err
	}
}

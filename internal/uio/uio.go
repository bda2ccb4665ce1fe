// internal/uio/uio.go

//go:build linux

// Package uio backs the engine's register and interrupt capabilities
// with a Linux Userspace-IO device: the controller's register window
// is mmap'd from the UIO node, and interrupts arrive as blocking
// 4-byte reads on the same descriptor.
package uio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/unix"
)

// DefaultMapSize covers the controller's register window; UIO maps
// are page-granular.
const DefaultMapSize = 4096

// Device is an open UIO node. It implements the engine's
// RegisterInterface and InterruptLine.
type Device struct {
	f   *os.File
	mem []byte

	mu     sync.Mutex
	irqErr error // first failed irq-control write, pending pickup
}

func Open(path string, mapSize int) (*Device, error) {
	if mapSize <= 0 {
		mapSize = DefaultMapSize
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_SYNC, 0)
	if err != nil {
		return nil, fmt.Errorf("uio: %w", err)
	}

	mem, err := unix.Mmap(int(f.Fd()), 0, mapSize,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("uio: mmap %s: %w", path, err)
	}

	return &Device{f: f, mem: mem}, nil
}

func (d *Device) Close() error {
	if d == nil || d.f == nil {
		return nil
	}
	if d.mem != nil {
		unix.Munmap(d.mem)
		d.mem = nil
	}
	return d.f.Close()
}

// ---- RegisterInterface ----

// Read and Write go through atomics so the compiler cannot elide,
// merge or reorder device accesses.

func (d *Device) Read(offset uint32) uint32 {
	return atomic.LoadUint32((*uint32)(unsafe.Pointer(&d.mem[offset])))
}

func (d *Device) Write(offset uint32, value uint32) {
	atomic.StoreUint32((*uint32)(unsafe.Pointer(&d.mem[offset])), value)
}

// ---- InterruptLine ----

// UIO gates the interrupt by writing 1 (enable) or 0 (disable) to the
// descriptor. The InterruptLine contract has no error path; a failed
// control write is kept and surfaced by the pump on its next pass.

func (d *Device) Enable() {
	d.writeIrqControl(1)
}

func (d *Device) Disable() {
	d.writeIrqControl(0)
}

// SetWake is a no-op: wake routing for a UIO line is the platform's
// business (sysfs wakeup attributes), not this process's.
func (d *Device) SetWake(enable bool) error { return nil }

func (d *Device) writeIrqControl(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	if _, err := d.f.Write(b[:]); err != nil {
		d.mu.Lock()
		if d.irqErr == nil {
			d.irqErr = err
		}
		d.mu.Unlock()
		return err
	}
	return nil
}

func (d *Device) takeIrqErr() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	err := d.irqErr
	d.irqErr = nil
	return err
}

// ---- INTERRUPT PUMP ----

// ServeInterrupts blocks delivering interrupts to fn until the device
// is closed. The line is re-enabled only after fn has cleared the
// source, per the UIO contract for level-triggered interrupts. A
// failed control write ends the pump: a line that cannot be
// re-enabled stays masked and no further interrupts will arrive.
func (d *Device) ServeInterrupts(fn func()) error {
	var b [4]byte
	for {
		if err := d.takeIrqErr(); err != nil {
			return fmt.Errorf("uio: interrupt control: %w", err)
		}
		if _, err := d.f.Read(b[:]); err != nil {
			if errors.Is(err, os.ErrClosed) {
				return nil
			}
			return fmt.Errorf("uio: interrupt wait: %w", err)
		}
		fn()
		if err := d.writeIrqControl(1); err != nil {
			return fmt.Errorf("uio: interrupt control: %w", err)
		}
	}
}

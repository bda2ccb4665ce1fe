// internal/uinput/uinput_test.go

//go:build linux

package uinput

import (
	"os"
	"strings"
	"testing"
)

// A dead descriptor must not lose the failure: emit is fire-and-forget
// by contract, so the first write error surfaces from Close.
func TestEmit_WriteFailureReportedByClose(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	r.Close()

	d := &Device{f: w}
	d.Key(30, true)
	d.Sync()

	err = d.Close()
	if err == nil {
		t.Fatal("Close() = nil, want event write error")
	}
	if !strings.Contains(err.Error(), "event write") {
		t.Fatalf("Close() = %v, want event write error", err)
	}
}

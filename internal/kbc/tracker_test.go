// internal/kbc/tracker_test.go
package kbc

import (
	"fmt"
	"reflect"
	"testing"
)

// recordSink records the ordered event stream as strings.
type recordSink struct {
	events []string
}

func (s *recordSink) Scan(scancode uint8) {
	s.events = append(s.events, fmt.Sprintf("scan:%d", scancode))
}

func (s *recordSink) Key(keycode uint16, pressed bool) {
	if pressed {
		s.events = append(s.events, fmt.Sprintf("press:%d", keycode))
	} else {
		s.events = append(s.events, fmt.Sprintf("release:%d", keycode))
	}
}

func (s *recordSink) Sync() {
	s.events = append(s.events, "sync")
}

func (s *recordSink) reset() { s.events = nil }

func entry(sc uint8, kc uint16) ScanEntry {
	return ScanEntry{Scancode: sc, Keycode: kc}
}

func TestTracker_PressThenRelease(t *testing.T) {
	var tr Tracker
	sink := &recordSink{}

	tr.Report(sink, []ScanEntry{entry(21, 121)})
	want := []string{"scan:21", "press:121", "sync"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Fatalf("cycle 1: got %v, want %v", sink.events, want)
	}

	sink.reset()
	tr.Report(sink, nil)
	want = []string{"release:121", "sync"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Fatalf("cycle 2: got %v, want %v", sink.events, want)
	}
}

func TestTracker_HeldKeyReassertedEveryCycle(t *testing.T) {
	var tr Tracker
	sink := &recordSink{}

	for i := 0; i < 3; i++ {
		sink.reset()
		tr.Report(sink, []ScanEntry{entry(21, 121)})
		want := []string{"scan:21", "press:121", "sync"}
		if !reflect.DeepEqual(sink.events, want) {
			t.Fatalf("cycle %d: got %v, want %v", i, sink.events, want)
		}
	}
}

func TestTracker_ReleasesBeforePresses(t *testing.T) {
	// A key changing scancode identity between cycles (the Fn remap
	// case) must be released under its old code before any press.
	var tr Tracker
	sink := &recordSink{}

	tr.Report(sink, []ScanEntry{entry(21, 121)})
	sink.reset()
	tr.Report(sink, []ScanEntry{entry(149, 321)})

	want := []string{"release:121", "scan:149", "press:321", "sync"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Fatalf("got %v, want %v", sink.events, want)
	}
}

func TestTracker_PartialRelease(t *testing.T) {
	var tr Tracker
	sink := &recordSink{}

	tr.Report(sink, []ScanEntry{entry(1, 101), entry(2, 102), entry(3, 103)})
	sink.reset()
	tr.Report(sink, []ScanEntry{entry(2, 102)})

	want := []string{"release:101", "release:103", "scan:2", "press:102", "sync"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Fatalf("got %v, want %v", sink.events, want)
	}
}

func TestTracker_ReleaseAll(t *testing.T) {
	var tr Tracker
	sink := &recordSink{}

	tr.Report(sink, []ScanEntry{entry(1, 101), entry(2, 102)})
	sink.reset()
	tr.ReleaseAll(sink)

	want := []string{"release:101", "release:102", "sync"}
	if !reflect.DeepEqual(sink.events, want) {
		t.Fatalf("got %v, want %v", sink.events, want)
	}
	if len(tr.Pressed()) != 0 {
		t.Fatalf("pressed set not cleared: %v", tr.Pressed())
	}

	// Nothing tracked: no releases, but the frame still closes.
	sink.reset()
	tr.ReleaseAll(sink)
	if want := []string{"sync"}; !reflect.DeepEqual(sink.events, want) {
		t.Fatalf("empty release emitted %v, want %v", sink.events, want)
	}
}

package gesture

import (
	"bytes"
	"testing"

	"github.com/quadtap/quadtap/internal/binding"
	"github.com/quadtap/quadtap/internal/device"
)

// Points well inside each zone's triangle on the 100x100 surface.
var (
	pointH = [2]float64{50, 15} // symbol 'h'
	pointG = [2]float64{15, 50} // symbol 'g'
	pointD = [2]float64{85, 50} // symbol 'd'
	pointB = [2]float64{50, 85} // symbol 'b'
)

func newTestEngine(t *testing.T, specs ...string) (*Engine, *binding.Recorder) {
	t.Helper()
	rec := &binding.Recorder{}
	table := binding.NewTable(rec, &bytes.Buffer{})
	for _, spec := range specs {
		if _, err := table.Add(spec); err != nil {
			t.Fatalf("Add(%q): %v", spec, err)
		}
	}
	return NewEngine(table), rec
}

func TestTwoFingerGestureFiresOnce(t *testing.T) {
	e, rec := newTestEngine(t, "hh-echo hi")

	e.TouchDown(0, pointH[0], pointH[1])
	if len(rec.Actions) != 0 {
		t.Fatalf("first finger alone dispatched %v", rec.Actions)
	}

	e.TouchDown(1, pointH[0], pointH[1])
	if len(rec.Actions) != 1 || rec.Actions[0] != "echo hi" {
		t.Fatalf("executed actions = %v, want [echo hi]", rec.Actions)
	}
}

func TestFirstFingerNeverDispatches(t *testing.T) {
	e, rec := newTestEngine(t, "hh-a", "gg-b", "bb-c")
	for _, p := range [][2]float64{pointH, pointG, pointB, pointD} {
		e.TouchDown(0, p[0], p[1])
	}
	if len(rec.Actions) != 0 {
		t.Fatalf("slot 0 touches dispatched %v", rec.Actions)
	}
}

func TestOutOfRangeSlotsIgnored(t *testing.T) {
	e, rec := newTestEngine(t, "hh-a")
	e.TouchDown(0, pointH[0], pointH[1])

	before := e.buffer
	for _, slot := range []int{-1, -100, MaxSlots, MaxSlots + 1, 42} {
		e.TouchDown(slot, pointB[0], pointB[1])
	}
	if e.buffer != before {
		t.Fatalf("out-of-range slots mutated the buffer: %v -> %v", before, e.buffer)
	}
	if len(rec.Actions) != 0 {
		t.Fatalf("out-of-range slots dispatched %v", rec.Actions)
	}
}

// A shorter binding fires as soon as its prefix lands, even while a longer
// compatible gesture is still in progress.
func TestShorterPatternFiresFirst(t *testing.T) {
	e, rec := newTestEngine(t, "hhh-three", "hh-two")

	e.TouchDown(0, pointH[0], pointH[1])
	e.TouchDown(1, pointH[0], pointH[1])
	e.TouchDown(2, pointH[0], pointH[1])

	if len(rec.Actions) != 2 {
		t.Fatalf("executed actions = %v, want [two three]", rec.Actions)
	}
	if rec.Actions[0] != "two" || rec.Actions[1] != "three" {
		t.Fatalf("executed actions = %v, want [two three]", rec.Actions)
	}
}

// The buffer is never cleared between gestures, but a candidate only covers
// slots up to the finger that just landed, so entries left over from a larger
// previous gesture never leak into a shorter one.
func TestStaleSlotsBeyondGestureAreUnread(t *testing.T) {
	e, rec := newTestEngine(t, "hhh-three", "dd-two")

	// Three fingers, all 'h'.
	e.TouchDown(0, pointH[0], pointH[1])
	e.TouchDown(1, pointH[0], pointH[1])
	e.TouchDown(2, pointH[0], pointH[1])
	if len(rec.Actions) != 1 || rec.Actions[0] != "three" {
		t.Fatalf("executed actions = %v, want [three]", rec.Actions)
	}

	// Two fingers, both 'd'. Slot 2 still holds 'h' but must not be read.
	e.TouchDown(0, pointD[0], pointD[1])
	e.TouchDown(1, pointD[0], pointD[1])
	if len(rec.Actions) != 2 || rec.Actions[1] != "two" {
		t.Fatalf("executed actions = %v, want [three two]", rec.Actions)
	}
}

// Stale entries in lower slots do influence later gestures when only higher
// slots are re-touched. Characterizes the buffer-reuse behavior rather than
// guarding a desirable property.
func TestStaleLowerSlotsInfluenceCandidates(t *testing.T) {
	e, rec := newTestEngine(t, "hd-mixed")

	e.TouchDown(0, pointH[0], pointH[1])
	// Slot 1 lands without slot 0 being touched again: candidate is built
	// from the stale slot 0 entry plus the fresh slot 1 entry.
	e.TouchDown(1, pointD[0], pointD[1])
	if len(rec.Actions) != 1 || rec.Actions[0] != "mixed" {
		t.Fatalf("executed actions = %v, want [mixed]", rec.Actions)
	}
}

func TestHandleTouch(t *testing.T) {
	e, rec := newTestEngine(t, "hh-via handler")
	events := []device.TouchEvent{
		{Slot: 0, X: pointH[0], Y: pointH[1]},
		{Slot: 1, X: pointH[0], Y: pointH[1]},
	}
	for _, ev := range events {
		if err := e.HandleTouch(ev); err != nil {
			t.Fatalf("HandleTouch(%+v): %v", ev, err)
		}
	}
	if len(rec.Actions) != 1 || rec.Actions[0] != "via handler" {
		t.Fatalf("executed actions = %v", rec.Actions)
	}
}

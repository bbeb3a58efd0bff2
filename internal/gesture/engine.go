// Package gesture accumulates per-slot zone symbols and matches the
// gesture-in-progress against the binding table.
package gesture

import (
	"github.com/quadtap/quadtap/internal/binding"
	"github.com/quadtap/quadtap/internal/device"
	"github.com/quadtap/quadtap/internal/zone"
)

// MaxSlots is the number of concurrently tracked touch slots. Touch-downs
// reported for higher slots are dropped.
const MaxSlots = 5

// Engine owns the per-slot zone buffer and drives binding dispatch. A gesture
// is the sequence of zones touched by fingers landing in increasing slot
// order: each finger after the first re-evaluates the full prefix against the
// table, so a gesture is recognized incrementally as fingers land.
//
// The buffer is never cleared between gestures. A candidate only covers slots
// 0..s for the slot s that just landed, so entries above s are stale but
// unread; entries below s are simply overwritten by the next gesture.
type Engine struct {
	buffer [MaxSlots]zone.Symbol
	table  *binding.Table
}

// NewEngine creates an engine dispatching into table.
func NewEngine(table *binding.Table) *Engine {
	return &Engine{table: table}
}

// TouchDown records the zone for a finger landing at slot. Slots outside
// [0, MaxSlots) are silently ignored: the event stream may track more
// contacts than we do, and dropping them is not an error.
//
// The first finger (slot 0) only arms the gesture; matching starts with the
// second.
func (e *Engine) TouchDown(slot int, x, y float64) {
	if slot < 0 || slot >= MaxSlots {
		return
	}
	e.buffer[slot] = zone.Classify(x, y)
	if slot == 0 {
		return
	}
	e.table.Dispatch(e.candidate(slot))
}

// HandleTouch feeds a device touch-down event into the engine. It implements
// the coordinator's Handler interface.
func (e *Engine) HandleTouch(ev device.TouchEvent) error {
	e.TouchDown(ev.Slot, ev.X, ev.Y)
	return nil
}

// candidate builds the gesture string for slots 0 through slot inclusive.
func (e *Engine) candidate(slot int) string {
	buf := make([]byte, slot+1)
	for i := range buf {
		buf[i] = byte(e.buffer[i])
	}
	return string(buf)
}

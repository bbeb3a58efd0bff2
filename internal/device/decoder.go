package device

import (
	evdev "github.com/holoplot/go-evdev"

	"github.com/quadtap/quadtap/internal/zone"
)

// axis scales raw absolute-axis values into the logical surface.
type axis struct {
	min, max int32
}

func (a axis) scale(v int32, size float64) float64 {
	r := a.max - a.min + 1
	if r <= 1 {
		// Uninitialized axis range (seen on uinput devices); values are
		// already logical coordinates.
		return float64(v)
	}
	return float64(v-a.min) * size / float64(r)
}

// decoder turns a raw evdev event stream into touch-down events.
//
// Multitouch protocol B: the kernel selects a contact with ABS_MT_SLOT, then
// reports per-slot properties; SYN_REPORT closes the frame. A nonnegative
// ABS_MT_TRACKING_ID written to a slot is a touch-down, -1 a release.
// Releases are not reported upstream; only downs matter for gestures.
type decoder struct {
	xAxis, yAxis axis

	slot  int
	pos   map[int]position
	downs []int
}

type position struct {
	x, y int32
}

func newDecoder(xAxis, yAxis axis) *decoder {
	return &decoder{
		xAxis: xAxis,
		yAxis: yAxis,
		pos:   make(map[int]position),
	}
}

// feed consumes one raw event and returns the touch-downs completed by it,
// which is only ever non-empty on a SYN_REPORT. Unknown event types and codes
// are ignored; the stream is treated as noisy.
func (d *decoder) feed(ev *evdev.InputEvent) []TouchEvent {
	switch ev.Type {
	case evdev.EV_ABS:
		switch ev.Code {
		case evdev.ABS_MT_SLOT:
			d.slot = int(ev.Value)
		case evdev.ABS_MT_TRACKING_ID:
			if ev.Value >= 0 {
				d.downs = append(d.downs, d.slot)
			}
		case evdev.ABS_MT_POSITION_X:
			p := d.pos[d.slot]
			p.x = ev.Value
			d.pos[d.slot] = p
		case evdev.ABS_MT_POSITION_Y:
			p := d.pos[d.slot]
			p.y = ev.Value
			d.pos[d.slot] = p
		}
	case evdev.EV_SYN:
		if ev.Code == evdev.SYN_REPORT {
			return d.flush()
		}
	}
	return nil
}

// flush emits one TouchEvent per slot that went down in the closed frame, in
// the order the downs were reported. Positions use the last value seen for
// the slot, whether it arrived in this frame or an earlier one.
func (d *decoder) flush() []TouchEvent {
	if len(d.downs) == 0 {
		return nil
	}
	events := make([]TouchEvent, 0, len(d.downs))
	for _, slot := range d.downs {
		p := d.pos[slot]
		events = append(events, TouchEvent{
			Slot: slot,
			X:    d.xAxis.scale(p.x, zone.SurfaceWidth),
			Y:    d.yAxis.scale(p.y, zone.SurfaceHeight),
		})
	}
	d.downs = d.downs[:0]
	return events
}

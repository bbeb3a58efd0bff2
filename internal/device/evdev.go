package device

import (
	"fmt"

	evdev "github.com/holoplot/go-evdev"
)

// Evdev adapts a kernel evdev device node to the Device interface.
type Evdev struct {
	path string
	grab bool
	dev  *evdev.InputDevice
	dec  *decoder
}

// NewEvdev creates an adapter for the device node at path. With grab set,
// Open takes the device exclusively so no other client sees its events.
func NewEvdev(path string, grab bool) *Evdev {
	return &Evdev{path: path, grab: grab}
}

// Open opens the device node and reads its multitouch axis ranges, which are
// needed to transform raw coordinates into the logical surface. Devices
// without multitouch position axes are rejected.
func (e *Evdev) Open() error {
	dev, err := evdev.Open(e.path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", e.path, err)
	}

	abs, err := dev.AbsInfos()
	if err != nil {
		dev.Close()
		return fmt.Errorf("reading axis info for %s: %w", e.path, err)
	}
	x, okX := abs[evdev.ABS_MT_POSITION_X]
	y, okY := abs[evdev.ABS_MT_POSITION_Y]
	if !okX || !okY {
		dev.Close()
		return fmt.Errorf("%s is not a multitouch device", e.path)
	}

	if e.grab {
		if err := dev.Grab(); err != nil {
			dev.Close()
			return fmt.Errorf("grabbing %s: %w", e.path, err)
		}
	}

	e.dev = dev
	e.dec = newDecoder(
		axis{min: x.Minimum, max: x.Maximum},
		axis{min: y.Minimum, max: y.Maximum},
	)
	return nil
}

// Close releases the device node. A blocked Listen returns with an error.
func (e *Evdev) Close() error {
	if e.dev == nil {
		return nil
	}
	return e.dev.Close()
}

// Name returns the kernel-reported device name, falling back to the node path.
func (e *Evdev) Name() string {
	if e.dev == nil {
		return e.path
	}
	name, err := e.dev.Name()
	if err != nil {
		return e.path
	}
	return name
}

// Path returns the device node path.
func (e *Evdev) Path() string {
	return e.path
}

// Listen reads raw events until a read error and sends decoded touch-downs on
// events. The terminating error is reported on errCh.
func (e *Evdev) Listen(events chan<- TouchEvent, errCh chan<- error) {
	for {
		raw, err := e.dev.ReadOne()
		if err != nil {
			errCh <- fmt.Errorf("reading %s: %w", e.path, err)
			return
		}
		for _, ev := range e.dec.feed(raw) {
			events <- ev
		}
	}
}

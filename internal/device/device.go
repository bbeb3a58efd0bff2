// Package device defines the abstraction layer over evdev touch hardware.
package device

// TouchEvent is one finger landing on the touch surface. Coordinates are
// already transformed into the logical surface used for zone classification.
type TouchEvent struct {
	Slot int
	X    float64
	Y    float64
}

// Device is the interface the event loop consumes touch-downs from. The real
// evdev adapter implements it; tests substitute a scripted fake.
type Device interface {
	// Open prepares the device for reading. It must be called before Listen.
	Open() error

	// Close releases the device. Closing unblocks a running Listen.
	Close() error

	// Name returns a human-readable device name.
	Name() string

	// Path returns the device node path.
	Path() string

	// Listen blocks reading the device, sending decoded touch-down events on
	// events until a read error occurs (device closed or unplugged), which is
	// reported on errCh before returning.
	Listen(events chan<- TouchEvent, errCh chan<- error)
}

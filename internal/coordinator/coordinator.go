// Package coordinator owns the input event loop: it fans events from the
// selected devices into a single channel and hands them to a handler one at a
// time, so handler state never needs locking.
package coordinator

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/quadtap/quadtap/internal/device"
)

// debounceDelay coalesces the burst of events produced by several fingers
// landing nearly at once: after each processed batch the loop pauses before
// picking up the next one.
const debounceDelay = 100 * time.Millisecond

// Handler consumes touch-down events.
type Handler interface {
	HandleTouch(ev device.TouchEvent) error
}

// Coordinator runs the event loop for a set of devices and one handler.
type Coordinator struct {
	handler Handler
	devices []device.Device

	events chan device.TouchEvent
	errCh  chan error
	opened []device.Device
}

// New creates a coordinator feeding the handler from the given devices.
func New(handler Handler, devices ...device.Device) *Coordinator {
	return &Coordinator{
		handler: handler,
		devices: devices,
		events:  make(chan device.TouchEvent, 64),
		errCh:   make(chan error, len(devices)+1),
	}
}

// Start opens every device, spawns one reader per device and runs the event
// loop until ctx is cancelled or every reader has failed. Events already
// queued when cancellation arrives are still processed before Start returns;
// the loop never abandons a batch mid-way.
//
// Devices that fail to open are logged and skipped, but if an explicit device
// list was given and none opened, Start fails. An empty device list is only a
// warning: the loop blocks waiting for a cancel, matching the behavior of
// polling with no readable descriptors.
func (c *Coordinator) Start(ctx context.Context) error {
	defer c.closeAll()

	for _, dev := range c.devices {
		if err := dev.Open(); err != nil {
			log.Printf("Warning: %v", err)
			continue
		}
		log.Printf("Listening on %s (%s)", dev.Path(), dev.Name())
		c.opened = append(c.opened, dev)
		go dev.Listen(c.events, c.errCh)
	}
	if len(c.opened) == 0 {
		if len(c.devices) > 0 {
			return errors.New("no input device could be opened")
		}
		log.Printf("Warning: no touch devices found; is the device connected and readable?")
	}

	failed := 0
	for {
		select {
		case ev := <-c.events:
			c.process(ev)
			c.drain()
			time.Sleep(debounceDelay)
		case err := <-c.errCh:
			log.Printf("Warning: %v", err)
			failed++
			if len(c.opened) > 0 && failed == len(c.opened) {
				c.drain()
				return errors.New("all input devices gone")
			}
		case <-ctx.Done():
			c.drain()
			return nil
		}
	}
}

// drain processes everything already queued without blocking.
func (c *Coordinator) drain() {
	for {
		select {
		case ev := <-c.events:
			c.process(ev)
		default:
			return
		}
	}
}

func (c *Coordinator) process(ev device.TouchEvent) {
	if err := c.handler.HandleTouch(ev); err != nil {
		log.Printf("handler: %v", err)
	}
}

func (c *Coordinator) closeAll() {
	for _, dev := range c.opened {
		if err := dev.Close(); err != nil {
			log.Printf("closing %s: %v", dev.Path(), err)
		}
	}
}

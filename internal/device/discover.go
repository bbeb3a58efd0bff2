package device

import (
	"fmt"

	evdev "github.com/holoplot/go-evdev"
)

// ListTouchPaths scans /dev/input and returns the nodes of all
// multitouch-capable devices. This backs the --udev selection mode: the whole
// system is treated as one seat, since per-seat assignment would need libudev.
// Nodes that cannot be opened (typically a permissions problem) are skipped.
func ListTouchPaths() ([]string, error) {
	devicePaths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("listing input devices: %w", err)
	}

	var paths []string
	for _, p := range devicePaths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		if isMultitouch(dev) {
			paths = append(paths, p.Path)
		}
		dev.Close()
	}
	return paths, nil
}

func isMultitouch(dev *evdev.InputDevice) bool {
	for _, code := range dev.CapableEvents(evdev.EV_ABS) {
		if code == evdev.ABS_MT_POSITION_X {
			return true
		}
	}
	return false
}

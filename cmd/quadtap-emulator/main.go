// quadtap-emulator creates a virtual multitouch device and injects the
// touch-down frames for a zone sequence, so quadtap and quadtap-events can be
// exercised without touch hardware.
//
// Example: quadtap-emulator --zones gg
// lands two fingers in the top zone, which a running
// "quadtap --cmd gg-..." will match.
package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"syscall"
	"time"

	evdev "github.com/holoplot/go-evdev"
	"github.com/spf13/cobra"

	"github.com/quadtap/quadtap/internal/zone"
)

const (
	exitFailure      = 1
	exitInvalidUsage = 2
)

var errUsage = errors.New("invalid usage")

var (
	flagZones    string
	flagInterval time.Duration
	flagHold     time.Duration
	flagSettle   time.Duration
)

var rootCmd = &cobra.Command{
	Use:           "quadtap-emulator",
	Short:         "Inject a multi-finger zone gesture through a virtual touch device",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&flagZones, "zones", "", "zone sequence to inject, one symbol per finger (e.g. gg)")
	rootCmd.Flags().DurationVar(&flagInterval, "interval", 50*time.Millisecond, "delay between finger landings")
	rootCmd.Flags().DurationVar(&flagHold, "hold", 300*time.Millisecond, "how long the fingers stay down")
	rootCmd.Flags().DurationVar(&flagSettle, "settle", time.Second, "wait after device creation before injecting")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", errUsage, err)
	})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if errors.Is(err, errUsage) {
			rootCmd.Usage()
			os.Exit(exitInvalidUsage)
		}
		os.Exit(exitFailure)
	}
}

// zonePoint is a representative coordinate well inside each zone's triangle,
// in logical surface units. The virtual device reports no axis ranges, so raw
// values pass through the coordinate transform unscaled.
var zonePoint = map[zone.Symbol]struct{ x, y int32 }{
	zone.Right:  {50, 15},
	zone.Top:    {15, 50},
	zone.Bottom: {85, 50},
	zone.Left:   {50, 85},
}

func run(cmd *cobra.Command, args []string) error {
	if flagZones == "" {
		return fmt.Errorf("%w: --zones is required", errUsage)
	}
	zones := make([]zone.Symbol, len(flagZones))
	for i := 0; i < len(flagZones); i++ {
		s := zone.Symbol(flagZones[i])
		if !s.Valid() {
			return fmt.Errorf("%w: %q is not a zone symbol (want b, g, d or h)", errUsage, flagZones[i:i+1])
		}
		zones[i] = s
	}

	dev, err := evdev.CreateDevice(
		"quadtap-emulator",
		evdev.InputID{BusType: 0x03, Vendor: 0x4711, Product: 0x0816, Version: 1},
		map[evdev.EvType][]evdev.EvCode{
			evdev.EV_KEY: {evdev.BTN_TOUCH},
			evdev.EV_ABS: {
				evdev.ABS_MT_SLOT,
				evdev.ABS_MT_TRACKING_ID,
				evdev.ABS_MT_POSITION_X,
				evdev.ABS_MT_POSITION_Y,
			},
		},
	)
	if err != nil {
		return fmt.Errorf("creating virtual device: %w", err)
	}
	defer dev.Close()

	// Let udev and any listening consumer pick up the new node first.
	log.Printf("Virtual touch device created; injecting %q in %v", flagZones, flagSettle)
	time.Sleep(flagSettle)

	for slot, s := range zones {
		p := zonePoint[s]
		frame := []rawEvent{
			{evdev.EV_ABS, evdev.ABS_MT_SLOT, int32(slot)},
			{evdev.EV_ABS, evdev.ABS_MT_TRACKING_ID, int32(slot + 1)},
			{evdev.EV_ABS, evdev.ABS_MT_POSITION_X, p.x},
			{evdev.EV_ABS, evdev.ABS_MT_POSITION_Y, p.y},
		}
		if slot == 0 {
			frame = append(frame, rawEvent{evdev.EV_KEY, evdev.BTN_TOUCH, 1})
		}
		if err := writeFrame(dev, frame); err != nil {
			return err
		}
		log.Printf("finger %d down in zone %s (%d,%d)", slot, s, p.x, p.y)
		time.Sleep(flagInterval)
	}

	time.Sleep(flagHold)

	for slot := range zones {
		frame := []rawEvent{
			{evdev.EV_ABS, evdev.ABS_MT_SLOT, int32(slot)},
			{evdev.EV_ABS, evdev.ABS_MT_TRACKING_ID, -1},
		}
		if slot == len(zones)-1 {
			frame = append(frame, rawEvent{evdev.EV_KEY, evdev.BTN_TOUCH, 0})
		}
		if err := writeFrame(dev, frame); err != nil {
			return err
		}
	}
	log.Printf("gesture %q injected", flagZones)
	return nil
}

type rawEvent struct {
	typ   evdev.EvType
	code  evdev.EvCode
	value int32
}

// writeFrame writes the events of one frame followed by its SYN_REPORT.
func writeFrame(dev *evdev.InputDevice, events []rawEvent) error {
	now := syscall.NsecToTimeval(time.Now().UnixNano())
	for _, ev := range events {
		err := dev.WriteOne(&evdev.InputEvent{Time: now, Type: ev.typ, Code: ev.code, Value: ev.value})
		if err != nil {
			return fmt.Errorf("writing event: %w", err)
		}
	}
	err := dev.WriteOne(&evdev.InputEvent{Time: now, Type: evdev.EV_SYN, Code: evdev.SYN_REPORT, Value: 0})
	if err != nil {
		return fmt.Errorf("writing sync: %w", err)
	}
	return nil
}

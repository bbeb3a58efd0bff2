// quadtap-events prints transformed touch-down coordinates to the terminal.
//
// On each finger landing, one line is printed with the buffered coordinates
// of every slot up to the one that just touched:
//
//	[0] 12.50x80.03 [1] 54.21x49.90
//
// Useful for checking what a touchscreen reports before writing gesture
// bindings for quadtap.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quadtap/quadtap/internal/coordinator"
	"github.com/quadtap/quadtap/internal/device"
)

const (
	exitFailure      = 1
	exitInvalidUsage = 2
)

var errUsage = errors.New("invalid usage")

var (
	flagDevices []string
	flagSeat    string
	flagGrab    bool
	flagVerbose bool
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:           "quadtap-events",
	Short:         "Print touch-down coordinates from multitouch devices",
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringArrayVar(&flagDevices, "device", nil, "read this input device node; repeatable")
	rootCmd.Flags().StringVar(&flagSeat, "udev", "", "scan for touch devices (seat name accepted for compatibility)")
	rootCmd.Flags().BoolVar(&flagGrab, "grab", false, "grab devices exclusively")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "verbose logging")
	rootCmd.Flags().BoolVar(&flagQuiet, "quiet", false, "track touches without printing")
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

func run(cmd *cobra.Command, args []string) error {
	if len(flagDevices) > 0 && flagSeat != "" {
		return fmt.Errorf("%w: --device and --udev are mutually exclusive", errUsage)
	}

	paths := flagDevices
	if len(paths) == 0 {
		if flagVerbose && flagSeat != "" {
			log.Printf("Scanning for touch devices (seat %s)", flagSeat)
		}
		var err error
		paths, err = device.ListTouchPaths()
		if err != nil {
			return err
		}
	}

	devs := make([]device.Device, 0, len(paths))
	for _, p := range paths {
		devs = append(devs, device.NewEvdev(p, flagGrab))
	}

	coord := coordinator.New(&printer{out: os.Stdout, quiet: flagQuiet}, devs...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	return coord.Start(ctx)
}

// printer buffers the most recent coordinates per slot and prints the prefix
// of slots up to each touch-down. Slots beyond the buffer are ignored, the
// same way the gesture engine drops them.
type printer struct {
	coords [5]struct{ x, y float64 }
	out    io.Writer
	quiet  bool
}

func (p *printer) HandleTouch(ev device.TouchEvent) error {
	if ev.Slot < 0 || ev.Slot >= len(p.coords) {
		return nil
	}
	p.coords[ev.Slot].x = ev.X
	p.coords[ev.Slot].y = ev.Y
	if p.quiet {
		return nil
	}
	for i := 0; i <= ev.Slot; i++ {
		fmt.Fprintf(p.out, "[%d] %5.2fx%5.2f ", i, p.coords[i].x, p.coords[i].y)
	}
	fmt.Fprintln(p.out)
	return nil
}

// quadtap maps multi-finger touch zone gestures to shell commands.
//
// The touch surface is split by its diagonals into four zones (b left, g top,
// d bottom, h right). As fingers land, the sequence of touched zones forms a
// gesture string that is matched against the configured bindings; on an exact
// match the bound command runs through /bin/sh.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/quadtap/quadtap/internal/binding"
	"github.com/quadtap/quadtap/internal/config"
	"github.com/quadtap/quadtap/internal/coordinator"
	"github.com/quadtap/quadtap/internal/device"
	"github.com/quadtap/quadtap/internal/gesture"
)

const version = "0.2.0"

// Exit codes, matching the getopt conventions of the classic input debug
// tools: 2 for bad invocations, 1 for runtime failures.
const (
	exitFailure      = 1
	exitInvalidUsage = 2
)

var errUsage = errors.New("invalid usage")

var (
	flagCmds    []string
	flagDevices []string
	flagSeat    string
	flagConfig  string
	flagGrab    bool
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "quadtap",
	Short: "Map multi-finger touch zone gestures to shell commands",
	Long: `quadtap listens for multitouch events and matches the zones touched by
each finger against configured gesture bindings. A binding is written as
<pattern>-<command>, where <pattern> is 2 to 5 zone symbols (b left, g top,
d bottom, h right) and <command> is passed verbatim to /bin/sh.

Example: quadtap --cmd 'gg-notify-send "two fingers up"'`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringArrayVar(&flagCmds, "cmd", nil, "gesture binding as <pattern>-<command>; repeatable")
	rootCmd.Flags().StringArrayVar(&flagDevices, "device", nil, "read this input device node; repeatable")
	rootCmd.Flags().StringVar(&flagSeat, "udev", "", "scan for touch devices (seat name accepted for compatibility)")
	rootCmd.Flags().StringVar(&flagConfig, "config", "", "bindings file (default ~/.config/quadtap/config.yaml)")
	rootCmd.Flags().BoolVar(&flagGrab, "grab", false, "grab devices exclusively")
	rootCmd.Flags().BoolVar(&flagVerbose, "verbose", false, "verbose logging")
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

	if flagVerbose {
		log.Printf("quadtap %s", version)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	table := binding.NewTable(binding.ShellExecutor{}, os.Stdout)
	if err := populateTable(table, cfg); err != nil {
		return err
	}
	if table.Len() == 0 {
		log.Printf("Warning: no gesture bindings configured; nothing will be dispatched")
	}

	devs, err := selectDevices(cfg)
	if err != nil {
		return err
	}

	engine := gesture.NewEngine(table)
	coord := coordinator.New(engine, devs...)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal")
		cancel()
	}()

	return coord.Start(ctx)
}

// loadConfig reads the bindings file. An explicitly named file must exist;
// the default path is optional.
func loadConfig() (*config.Config, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}
	return config.LoadDefault()
}

// populateTable adds file bindings first and --cmd bindings after, so
// command-line bindings are matched first at dispatch time. One config line
// is printed per accepted binding.
func populateTable(table *binding.Table, cfg *config.Config) error {
	for _, fb := range cfg.Bindings {
		b, err := table.Add(fb.Gesture + "-" + fb.Command)
		if err != nil {
			return fmt.Errorf("%w: binding %q in config file: %v", errUsage, fb.Gesture, err)
		}
		fmt.Printf("config: %s -> %s\n", b.Pattern, b.Action)
	}
	for _, spec := range flagCmds {
		b, err := table.Add(spec)
		if err != nil {
			return fmt.Errorf("%w: --cmd %q: %v", errUsage, spec, err)
		}
		fmt.Printf("config: %s -> %s\n", b.Pattern, b.Action)
	}
	return nil
}

// selectDevices resolves the device list: explicit --device nodes win, then
// nodes from the config file, then a system-wide scan for touch devices.
func selectDevices(cfg *config.Config) ([]device.Device, error) {
	grab := flagGrab || cfg.Grab

	paths := flagDevices
	if len(paths) == 0 {
		paths = cfg.Devices
	}
	if len(paths) == 0 {
		seat := flagSeat
		if seat == "" {
			seat = cfg.Seat
		}
		if flagVerbose && seat != "" {
			log.Printf("Scanning for touch devices (seat %s)", seat)
		}
		var err error
		paths, err = device.ListTouchPaths()
		if err != nil {
			return nil, err
		}
	}

	devs := make([]device.Device, 0, len(paths))
	for _, p := range paths {
		devs = append(devs, device.NewEvdev(p, grab))
	}
	return devs, nil
}

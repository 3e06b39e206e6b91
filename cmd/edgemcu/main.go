// Command edgemcu drives the board MCU from userspace: WoL state, MAC
// provisioning, reset line and ageing test, plus forcing LEDs off.
//
// Usage:
//
//	edgemcu [flags] <command> [args]
//
// Commands:
//
//	list                  List attributes with their modes
//	show <attr>           Print an attribute value
//	store <attr> <value>  Write an attribute value
//	status                Print the cached WoL status byte
//	led-off <name>        Force an LED off
//	leds                  List LEDs
//	shell                 Interactive shell
//
// Flags:
//
//	-config string      Configuration file path (default "/etc/edgemcu.yaml")
//	-bus int            I2C bus number
//	-address int        MCU 7-bit address (default 0x18)
//	-mac-policy string  MAC error policy: best-effort, strict
//	-relock             Lock the MAC region after writing (default true)
//	-log-level string   Log level: debug, info, warn, error
//	-simulate           Talk to an in-memory MCU instead of the bus
//	-wol-iface string   Interface armed for Wake-on-LAN
//	-leds-root string   LED class directory
//
// Examples:
//
//	# Program a MAC address
//	edgemcu store mac_addr C86314701234
//
//	# Try the shell without hardware
//	edgemcu -simulate -log-level debug shell
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/moffa90/go-edgemcu/config"
)

const defaultConfigPath = "/etc/edgemcu.yaml"

var (
	configPath string
	overrides  config.Config
	relock     bool
)

func init() {
	flag.StringVar(&configPath, "config", defaultConfigPath, "Configuration file path")
	flag.IntVar(&overrides.Bus, "bus", 0, "I2C bus number")
	flag.IntVar(&overrides.Address, "address", 0x18, "MCU 7-bit address")
	flag.StringVar(&overrides.MACPolicy, "mac-policy", "best-effort", "MAC error policy: best-effort, strict")
	flag.BoolVar(&relock, "relock", true, "Lock the MAC region after writing")
	flag.StringVar(&overrides.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	flag.BoolVar(&overrides.Simulate, "simulate", false, "Talk to an in-memory MCU instead of the bus")
	flag.StringVar(&overrides.WoL.Interface, "wol-iface", "", "Interface armed for Wake-on-LAN")
	flag.StringVar(&overrides.LEDs.Root, "leds-root", "", "LED class directory")
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <command> [args]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Commands: list, show, store, status, led-off, leds, shell")
		fmt.Fprintln(os.Stderr)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "edgemcu: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()}))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a := newApp(cfg, logger)

	args := flag.Args()
	if args[0] == "shell" {
		err = a.shell(ctx)
	} else {
		err = a.exec(ctx, os.Stdout, args)
	}
	if cerr := a.close(); cerr != nil {
		logger.Error("shutdown failed", "error", cerr)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "edgemcu: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the configuration file and applies flags the user set
// explicitly on top of it.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "bus":
			cfg.Bus = overrides.Bus
		case "address":
			cfg.Address = overrides.Address
		case "mac-policy":
			cfg.MACPolicy = overrides.MACPolicy
		case "relock":
			v := relock
			cfg.Relock = &v
		case "log-level":
			cfg.LogLevel = overrides.LogLevel
		case "simulate":
			cfg.Simulate = overrides.Simulate
		case "wol-iface":
			cfg.WoL.Interface = overrides.WoL.Interface
		case "leds-root":
			cfg.LEDs.Root = overrides.LEDs.Root
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

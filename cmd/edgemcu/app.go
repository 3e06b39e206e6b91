package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/moffa90/go-edgemcu/attr"
	"github.com/moffa90/go-edgemcu/config"
	"github.com/moffa90/go-edgemcu/led"
	"github.com/moffa90/go-edgemcu/mcu"
	"github.com/moffa90/go-edgemcu/mcusim"
	"github.com/moffa90/go-edgemcu/protocol"
	"github.com/moffa90/go-edgemcu/transport"
	"github.com/moffa90/go-edgemcu/wol"
)

// simulatedMAC is what the simulator reports before anything is stored.
var simulatedMAC = protocol.MAC{0xC8, 0x63, 0x14, 0x00, 0x00, 0x01}

type app struct {
	logger  *slog.Logger
	open    func() (transport.Transferer, error)
	addr    uint16
	driver  *mcu.Driver
	surface *attr.Surface
	leds    *led.Class
	probed  bool
}

// newApp wires the driver for cfg. The bus is opened and the MCU probed
// on the first command that needs it.
func newApp(cfg *config.Config, logger *slog.Logger) *app {
	return newAppWith(cfg, logger, func() (transport.Transferer, error) {
		return openTransport(cfg, logger)
	})
}

func newAppWith(cfg *config.Config, logger *slog.Logger, open func() (transport.Transferer, error)) *app {
	mlog := mcu.NewSlogLogger(logger)

	opts := []mcu.Option{
		mcu.WithLogger(mlog),
		mcu.WithMACPolicy(cfg.Policy()),
		mcu.WithRelock(cfg.RelockEnabled()),
		mcu.WithTestModeHook(mcu.TestModeHookFunc(func(flag int) error {
			logger.Info("test mode", "flag", flag)
			return nil
		})),
	}
	if cfg.WoL.Interface != "" {
		opts = append(opts, mcu.WithWoLHook(&wol.Ethtool{Interface: cfg.WoL.Interface}))
	}

	driver := mcu.NewDriver(opts...)
	return &app{
		logger:  logger,
		open:    open,
		addr:    uint16(cfg.Address),
		driver:  driver,
		surface: attr.New(driver, attr.WithLogger(mlog)),
		leds:    led.New(cfg.LEDs.Root),
	}
}

// openTransport opens the transport cfg selects.
func openTransport(cfg *config.Config, logger *slog.Logger) (transport.Transferer, error) {
	if cfg.Simulate {
		sim := mcusim.New(uint16(cfg.Address))
		sim.SetMAC(simulatedMAC)
		logger.Info("using simulated MCU", "address", fmt.Sprintf("0x%02x", cfg.Address))
		return sim, nil
	}

	adapter, err := transport.OpenI2C(cfg.Bus)
	if err != nil {
		return nil, err
	}
	logger.Debug("opened bus", "bus", adapter.String())
	return adapter, nil
}

// attach opens the transport and probes the MCU once. A failed attempt is
// retried by the next command.
func (a *app) attach(ctx context.Context) error {
	if a.probed {
		return nil
	}

	tr, err := a.open()
	if err != nil {
		return err
	}
	if _, err := a.driver.Probe(ctx, transport.NewDevice(tr, a.addr)); err != nil {
		tr.Close()
		return fmt.Errorf("probe: %w", err)
	}
	a.probed = true
	return nil
}

func (a *app) close() error {
	return a.driver.Shutdown()
}

// exec runs one command line.
func (a *app) exec(ctx context.Context, w io.Writer, args []string) error {
	if len(args) == 0 {
		return nil
	}

	switch cmd, rest := strings.ToLower(args[0]), args[1:]; cmd {
	case "list", "ls":
		for _, at := range a.surface.List() {
			fmt.Fprintf(w, "%s %s/%s\n", at.Mode, a.surface.Class(), at.Name)
		}
		return nil

	case "show", "cat":
		if len(rest) != 1 {
			return fmt.Errorf("usage: show <attr>")
		}
		if err := a.attach(ctx); err != nil {
			return err
		}
		out, err := a.surface.Show(ctx, rest[0])
		if err != nil {
			return err
		}
		fmt.Fprint(w, out)
		return nil

	case "store", "echo":
		if len(rest) < 2 {
			return fmt.Errorf("usage: store <attr> <value>")
		}
		if err := a.attach(ctx); err != nil {
			return err
		}
		_, err := a.surface.Store(ctx, rest[0], strings.Join(rest[1:], " "))
		return err

	case "status":
		if err := a.attach(ctx); err != nil {
			return err
		}
		fmt.Fprintf(w, "0x%02x\n", a.surface.WoLStatus())
		return nil

	case "led-off":
		if len(rest) != 1 {
			return fmt.Errorf("usage: led-off <name>")
		}
		return a.leds.Off(rest[0])

	case "leds":
		names, err := a.leds.List()
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(w, n)
		}
		return nil

	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// Package wol arms Wake-on-LAN on the board's Ethernet interface when the
// MCU reports it enabled. Ethtool implements mcu.WoLHook.
//
//	hook := &wol.Ethtool{Interface: "eth0"}
//	ctrl, err := mcu.Probe(ctx, bus, mcu.WithWoLHook(hook))
package wol

import (
	"errors"
	"fmt"

	"github.com/mdlayher/ethtool"

	"github.com/moffa90/go-edgemcu/mcu"
	"github.com/moffa90/go-edgemcu/protocol"
)

// ErrNoInterface is returned when Ethtool has no interface name.
var ErrNoInterface = errors.New("wol: no interface configured")

// client is the part of *ethtool.Client used here.
type client interface {
	WakeOnLAN(ifi ethtool.Interface) (*ethtool.WakeOnLAN, error)
	SetWakeOnLAN(wol ethtool.WakeOnLAN) error
	Close() error
}

var newClient = func() (client, error) {
	c, err := ethtool.New()
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Ethtool programs the interface's wake modes over the ethtool netlink
// family.
type Ethtool struct {
	// Interface is the network interface name, e.g. "eth0"
	Interface string

	// Wake is the mode mask armed when WoL is enabled; zero means
	// ethtool.Magic
	Wake ethtool.WOLMode
}

// EnableWoL arms the interface when bit 0 of status is set and disarms it
// otherwise. isShutdown is accepted for interface parity; the modes take
// effect the same way in both cases.
func (e *Ethtool) EnableWoL(status int, isShutdown bool) error {
	return e.Set(e.modes(status))
}

// Get returns the currently armed wake modes.
func (e *Ethtool) Get() (ethtool.WOLMode, error) {
	var modes ethtool.WOLMode
	err := e.do(func(c client) error {
		wol, err := c.WakeOnLAN(ethtool.Interface{Name: e.Interface})
		if err != nil {
			return err
		}
		modes = wol.Modes
		return nil
	})
	return modes, err
}

// Set arms exactly modes.
func (e *Ethtool) Set(modes ethtool.WOLMode) error {
	return e.do(func(c client) error {
		return c.SetWakeOnLAN(ethtool.WakeOnLAN{
			Interface: ethtool.Interface{Name: e.Interface},
			Modes:     modes,
		})
	})
}

func (e *Ethtool) do(fn func(c client) error) error {
	if e.Interface == "" {
		return ErrNoInterface
	}

	c, err := newClient()
	if err != nil {
		return fmt.Errorf("ethtool: %w", err)
	}
	defer c.Close()

	if err := fn(c); err != nil {
		return fmt.Errorf("%s: %w", e.Interface, err)
	}
	return nil
}

func (e *Ethtool) modes(status int) ethtool.WOLMode {
	if status&protocol.WoLEnableBit == 0 {
		return 0
	}
	if e.Wake == 0 {
		return ethtool.Magic
	}
	return e.Wake
}

var _ mcu.WoLHook = (*Ethtool)(nil)

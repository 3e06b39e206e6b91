package mcu

import (
	"context"
	"errors"
	"sync"

	"github.com/moffa90/go-edgemcu/transport"
)

// Driver binds at most one Controller at a time. It is what the attribute
// surface holds: lookups go through Controller so that operations after
// Remove see ErrDeviceAbsent instead of a stale handle.
type Driver struct {
	mu   sync.Mutex
	ctrl *Controller
	opts []Option
}

// NewDriver returns an unbound driver. opts are applied to every probed
// Controller.
func NewDriver(opts ...Option) *Driver {
	return &Driver{opts: opts}
}

// Probe creates the Controller for bus. It fails with
// ErrAlreadyInitialized if one is already bound; replacing it is up to
// the caller (Remove, then Probe).
func (d *Driver) Probe(ctx context.Context, bus transport.Bus) (*Controller, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctrl != nil {
		return nil, ErrAlreadyInitialized
	}

	c, err := Probe(ctx, bus, d.opts...)
	if err != nil {
		return nil, err
	}
	d.ctrl = c
	return c, nil
}

// Controller returns the bound controller or ErrDeviceAbsent.
func (d *Driver) Controller() (*Controller, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.ctrl == nil {
		return nil, ErrDeviceAbsent
	}
	return d.ctrl, nil
}

// Remove unbinds and removes the controller.
func (d *Driver) Remove() error {
	d.mu.Lock()
	c := d.ctrl
	d.ctrl = nil
	d.mu.Unlock()

	if c == nil {
		return ErrDeviceAbsent
	}
	return c.Remove()
}

// Shutdown releases the controller on system shutdown. Unlike Remove it
// is not an error when nothing is bound.
func (d *Driver) Shutdown() error {
	err := d.Remove()
	if errors.Is(err, ErrDeviceAbsent) {
		return nil
	}
	return err
}

// WoLStatus returns the bound controller's cached status byte, or 0.
func (d *Driver) WoLStatus() int {
	c, err := d.Controller()
	if err != nil {
		return 0
	}
	return c.WoLStatus()
}

package mcu

import (
	"context"
	"fmt"
	"sync"

	"github.com/moffa90/go-edgemcu/protocol"
	"github.com/moffa90/go-edgemcu/transport"
)

// Controller owns one probed Edge MCU. Every operation holds the
// controller lock for its full duration, so compound sequences (the WoL
// read-modify-write, the MAC handshake) never interleave.
//
// Controller is safe for concurrent use.
type Controller struct {
	mu     sync.Mutex
	bus    transport.Bus
	config Config

	wol     byte
	ageing  bool
	removed bool
}

// Probe attaches to the MCU on bus:
//  1. Read the WoL status byte into the cache
//  2. Notify the WoL hook if the MCU reports WoL armed (status 3)
//  3. Write 1 to the host-ready register
//
// If any transfer fails the controller is not created and bus is left
// open for the caller to close.
//
// Example:
//
//	bus := transport.NewDevice(adapter, protocol.DefaultAddress)
//	ctrl, err := mcu.Probe(ctx, bus, mcu.WithLogger(logger))
func Probe(ctx context.Context, bus transport.Bus, opts ...Option) (*Controller, error) {
	if bus == nil {
		panic("bus cannot be nil")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	c := &Controller{
		bus:    bus,
		config: cfg,
	}

	raw, err := c.readByte(ctx, protocol.RegWoLStatus)
	if err != nil {
		return nil, fmt.Errorf("read WoL status: %w", err)
	}
	c.wol = raw

	c.logInfo("probed", "wol_status", raw)

	if raw == protocol.WoLEnableBit|protocol.WoLReservedBit {
		c.notifyWoL(raw)
	}

	if err := c.writeByte(ctx, protocol.RegHostReady, protocol.HostReady); err != nil {
		c.logError("host ready write failed", "error", err)
		return nil, fmt.Errorf("signal host ready: %w", err)
	}

	return c, nil
}

// WoLEnabled returns bit 0 of the cached status byte, or false once the
// device is removed. It never touches the bus.
func (c *Controller) WoLEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.removed {
		return false
	}
	return c.wol&protocol.WoLEnableBit != 0
}

// WoLStatus returns the last-known raw status byte, or 0 once the device
// is removed. Other subsystems use it to query WoL state without bus
// access.
func (c *Controller) WoLStatus() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.removed {
		return 0
	}
	return int(c.wol)
}

// SetWoLEnabled reads the status byte, replaces the enable bit while
// keeping the reserved bit, writes it back and notifies the WoL hook. The
// cache is only updated when both transfers succeed.
func (c *Controller) SetWoLEnabled(ctx context.Context, enable bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ready(); err != nil {
		return err
	}

	raw, err := c.readByte(ctx, protocol.RegWoLStatus)
	if err != nil {
		c.logError("read WoL status failed", "error", err)
		return fmt.Errorf("read WoL status: %w", err)
	}

	next := protocol.UnpackWoLStatus(raw).WithEnable(enable).Pack()
	if err := c.writeByte(ctx, protocol.RegWoLStatus, next); err != nil {
		c.logError("write WoL status failed", "error", err)
		return fmt.Errorf("write WoL status: %w", err)
	}

	c.wol = next
	c.notifyWoL(next)

	c.logInfo("WoL status written", "status", next)
	return nil
}

// Reset writes value to the reset register. Nothing is cached.
func (c *Controller) Reset(ctx context.Context, value uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ready(); err != nil {
		return err
	}

	if err := c.writeByte(ctx, protocol.RegReset, value); err != nil {
		c.logError("reset failed", "value", value, "error", err)
		return fmt.Errorf("reset: %w", err)
	}

	c.logDebug("reset written", "value", value)
	return nil
}

// MACAddress reads the six MAC registers in ascending order. Under
// BestEffort a failing byte is logged, left zero and skipped; under Strict
// the first failure returns a *MACError.
func (c *Controller) MACAddress(ctx context.Context) (protocol.MAC, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ready(); err != nil {
		return protocol.MAC{}, err
	}
	return c.readMAC(ctx)
}

// SetMACAddress programs a new MAC address from its hex form. Only the
// first whitespace-delimited token of asciiHex is used and it must be
// exactly 12 hex digits; otherwise a *protocol.ParseError is returned
// before any bus access.
//
// The write sequence is unlock handshake, six address bytes, commit and,
// if Relock is set, the handshake again.
//
// Example:
//
//	err := ctrl.SetMACAddress(ctx, "C86314701234")
func (c *Controller) SetMACAddress(ctx context.Context, asciiHex string) error {
	mac, err := protocol.ParseMAC(protocol.FirstToken(asciiHex))
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ready(); err != nil {
		return err
	}
	return c.programMAC(ctx, mac)
}

// AgeingTest returns the raw ageing test register.
func (c *Controller) AgeingTest(ctx context.Context) (uint8, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ready(); err != nil {
		return 0, err
	}

	v, err := c.readByte(ctx, protocol.RegAgeingTest)
	if err != nil {
		c.logError("read ageing test failed", "error", err)
		return 0, fmt.Errorf("read ageing test: %w", err)
	}
	return v, nil
}

// SetAgeingTest writes the ageing test register. A successful write
// latches AgeingTestLatched for the lifetime of the controller.
func (c *Controller) SetAgeingTest(ctx context.Context, value uint8) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ready(); err != nil {
		return err
	}

	if err := c.writeByte(ctx, protocol.RegAgeingTest, value); err != nil {
		c.logError("write ageing test failed", "error", err)
		return fmt.Errorf("write ageing test: %w", err)
	}

	c.ageing = true
	c.logInfo("ageing test written", "value", value)
	return nil
}

// AgeingTestLatched reports whether SetAgeingTest ever succeeded.
func (c *Controller) AgeingTestLatched() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ageing
}

// SetTestMode forwards flag to the TestModeHook. It does not touch the
// bus.
func (c *Controller) SetTestMode(ctx context.Context, flag int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ready(); err != nil {
		return err
	}
	if c.config.TestModeHook == nil {
		return ErrNoHook
	}
	if err := c.config.TestModeHook.SetTest(flag); err != nil {
		return fmt.Errorf("test mode hook: %w", err)
	}
	return nil
}

// Remove detaches the controller and closes the bus. Operations that
// start afterwards fail with ErrDeviceAbsent. Remove is idempotent.
func (c *Controller) Remove() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.removed {
		return nil
	}
	c.removed = true
	c.logInfo("removed")
	return c.bus.Close()
}

// Removed reports whether Remove was called.
func (c *Controller) Removed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.removed
}

func (c *Controller) ready() error {
	if c.removed {
		return ErrDeviceAbsent
	}
	return nil
}

func (c *Controller) readByte(ctx context.Context, reg protocol.Register) (byte, error) {
	buf, err := c.bus.Read(ctx, byte(reg), 1)
	if err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (c *Controller) writeByte(ctx context.Context, reg protocol.Register, v byte) error {
	return c.bus.Write(ctx, byte(reg), []byte{v})
}

// notifyWoL reports status to the WoL hook. Hook failures are logged and
// never fail the calling operation.
func (c *Controller) notifyWoL(status byte) {
	if c.config.WoLHook == nil {
		return
	}
	if err := c.config.WoLHook.EnableWoL(int(status), false); err != nil {
		c.logError("WoL hook failed", "status", status, "error", err)
	}
}

// logDebug logs a debug message if a logger is configured.
func (c *Controller) logDebug(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Debug(msg, keysAndValues...)
	}
}

// logInfo logs an info message if a logger is configured.
func (c *Controller) logInfo(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Info(msg, keysAndValues...)
	}
}

// logError logs an error message if a logger is configured.
func (c *Controller) logError(msg string, keysAndValues ...interface{}) {
	if c.config.Logger != nil {
		c.config.Logger.Error(msg, keysAndValues...)
	}
}

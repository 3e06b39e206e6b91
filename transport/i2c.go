package transport

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/host/v3/sysfs"
)

// ErrShape is returned for message lists an I2C Tx cannot express: a
// single write, or a write followed by a read, both to one address.
var ErrShape = errors.New("transport: unsupported message sequence")

// I2CAdapter runs combined transfers on a periph I2C bus. Each Transfer is
// a single Tx, which the Linux sysfs bus issues as one I2C_RDWR
// transaction.
type I2CAdapter struct {
	mu     sync.Mutex
	bus    i2c.BusCloser
	closed bool
}

// OpenI2C opens /dev/i2c-<bus>.
func OpenI2C(bus int) (*I2CAdapter, error) {
	b, err := sysfs.NewI2C(bus)
	if err != nil {
		return nil, fmt.Errorf("open i2c bus %d: %w", bus, err)
	}
	return NewI2CAdapter(b), nil
}

// NewI2CAdapter wraps an already opened periph bus.
func NewI2CAdapter(bus i2c.BusCloser) *I2CAdapter {
	if bus == nil {
		panic("bus cannot be nil")
	}
	return &I2CAdapter{bus: bus}
}

// String returns the periph bus name.
func (a *I2CAdapter) String() string {
	return a.bus.String()
}

// Transfer maps msgs onto one Tx and reports all of them completed on
// success. Tx has no partial result, so a failure reports zero.
func (a *I2CAdapter) Transfer(ctx context.Context, msgs []Msg) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var addr uint16
	var w, r []byte
	switch {
	case len(msgs) == 1 && msgs[0].Flags&FlagRead == 0:
		addr, w = msgs[0].Addr, msgs[0].Buf
	case len(msgs) == 2 && msgs[0].Flags&FlagRead == 0 && msgs[1].Flags&FlagRead != 0 &&
		msgs[0].Addr == msgs[1].Addr:
		addr, w, r = msgs[0].Addr, msgs[0].Buf, msgs[1].Buf
	default:
		return 0, fmt.Errorf("%w: %d messages", ErrShape, len(msgs))
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return 0, ErrClosed
	}

	if err := a.bus.Tx(addr, w, r); err != nil {
		return 0, fmt.Errorf("%s: %w", a.bus, err)
	}
	return len(msgs), nil
}

// Close closes the bus. Further transfers fail with ErrClosed.
func (a *I2CAdapter) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	return a.bus.Close()
}

var _ Transferer = (*I2CAdapter)(nil)

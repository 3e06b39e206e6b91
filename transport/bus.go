package transport

import (
	"context"
	"errors"
	"fmt"

	"github.com/moffa90/go-edgemcu/protocol"
)

// FlagRead marks a message as a read (I2C_M_RD).
const FlagRead uint16 = 0x0001

// ErrClosed is returned for transfers on a closed adapter.
var ErrClosed = errors.New("transport: adapter closed")

// Msg is one segment of a combined transfer.
type Msg struct {
	Addr  uint16
	Flags uint16
	Buf   []byte
}

// Transferer executes msgs as a single bus transaction and reports how
// many messages completed.
type Transferer interface {
	Transfer(ctx context.Context, msgs []Msg) (int, error)
	Close() error
}

// Bus reads and writes device registers.
type Bus interface {
	// Write stores data starting at reg.
	Write(ctx context.Context, reg byte, data []byte) error

	// Read returns n bytes starting at reg.
	Read(ctx context.Context, reg byte, n int) ([]byte, error)

	// Close releases the underlying adapter.
	Close() error
}

// Device is a Bus for one peripheral address on a Transferer.
type Device struct {
	tr   Transferer
	addr uint16
}

// NewDevice returns a Bus addressing addr on tr.
func NewDevice(tr Transferer, addr uint16) *Device {
	if tr == nil {
		panic("transferer cannot be nil")
	}
	return &Device{tr: tr, addr: addr}
}

// Addr returns the peripheral address.
func (d *Device) Addr() uint16 {
	return d.addr
}

// Write sends [reg][data...] as a single message.
func (d *Device) Write(ctx context.Context, reg byte, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	buf := make([]byte, 0, len(data)+1)
	buf = append(buf, reg)
	buf = append(buf, data...)

	msgs := []Msg{{Addr: d.addr, Buf: buf}}
	n, err := d.tr.Transfer(ctx, msgs)
	if err != nil || n != len(msgs) {
		return &protocol.BusError{
			Op:   "write",
			Reg:  protocol.Register(reg),
			Want: len(msgs),
			Got:  n,
			Err:  err,
		}
	}
	return nil
}

// Read selects reg and reads n bytes back in one combined transfer.
func (d *Device) Read(ctx context.Context, reg byte, n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("read length must be positive, got %d", n)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	buf := make([]byte, n)
	msgs := []Msg{
		{Addr: d.addr, Buf: []byte{reg}},
		{Addr: d.addr, Flags: FlagRead, Buf: buf},
	}
	got, err := d.tr.Transfer(ctx, msgs)
	if err != nil || got != len(msgs) {
		return nil, &protocol.BusError{
			Op:   "read",
			Reg:  protocol.Register(reg),
			Want: len(msgs),
			Got:  got,
			Err:  err,
		}
	}
	return buf, nil
}

// Close closes the underlying Transferer.
func (d *Device) Close() error {
	return d.tr.Close()
}

// Compile-time interface satisfaction check.
var _ Bus = (*Device)(nil)

package attr

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-edgemcu/mcu"
	"github.com/moffa90/go-edgemcu/mcusim"
	"github.com/moffa90/go-edgemcu/protocol"
	"github.com/moffa90/go-edgemcu/transport"
)

func newTestSurface(t *testing.T, opts ...mcu.Option) (*mcusim.MCU, *mcu.Driver, *Surface) {
	t.Helper()
	sim := mcusim.New(protocol.DefaultAddress)
	sim.SetRegister(protocol.RegWoLStatus, 0x02)

	d := mcu.NewDriver(opts...)
	_, err := d.Probe(context.Background(), transport.NewDevice(sim, protocol.DefaultAddress))
	require.NoError(t, err)
	sim.ClearLog()
	return sim, d, New(d)
}

func TestAttributeTable(t *testing.T) {
	_, _, s := newTestSurface(t)

	want := map[string]os.FileMode{
		"ageing_test": 0o644,
		"enable":      0o644,
		"mac_addr":    0o644,
		"rst_mcu":     0o200,
		"test":        0o200,
	}

	list := s.List()
	require.Len(t, list, len(want))
	for i, a := range list {
		if i > 0 {
			assert.Less(t, list[i-1].Name, a.Name)
		}
		assert.Equal(t, want[a.Name], a.Mode, a.Name)
		assert.True(t, a.Writable(), a.Name)
		assert.Equal(t, want[a.Name]&0o444 != 0, a.Readable(), a.Name)
	}
	assert.Equal(t, "wol", s.Class())
}

func TestEnable(t *testing.T) {
	sim, _, s := newTestSurface(t)
	ctx := context.Background()

	out, err := s.Show(ctx, Enable)
	require.NoError(t, err)
	assert.Equal(t, "0\n", out)

	n, err := s.Store(ctx, Enable, "1\n")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, byte(0x03), sim.Register(protocol.RegWoLStatus))

	out, err = s.Show(ctx, Enable)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
	assert.Equal(t, 0x03, s.WoLStatus())

	// Only the low bit is used.
	_, err = s.Store(ctx, Enable, "2")
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), sim.Register(protocol.RegWoLStatus))
}

func TestMACAddr(t *testing.T) {
	sim, _, s := newTestSurface(t)
	ctx := context.Background()

	n, err := s.Store(ctx, MACAddr, "c86314701234\n")
	require.NoError(t, err)
	assert.Equal(t, 13, n)

	out, err := s.Show(ctx, MACAddr)
	require.NoError(t, err)
	assert.Equal(t, "C86314701234\n", out)
	assert.Equal(t, protocol.MAC{0xC8, 0x63, 0x14, 0x70, 0x12, 0x34}, sim.MAC())
}

func TestResetAndAgeing(t *testing.T) {
	sim, _, s := newTestSurface(t)
	ctx := context.Background()

	_, err := s.Store(ctx, ResetMCU, "0x105")
	require.NoError(t, err)
	assert.Equal(t, []protocol.RegWrite{{Reg: protocol.RegReset, Value: 0x05}}, sim.Writes())

	_, err = s.Store(ctx, AgeingTest, "1")
	require.NoError(t, err)

	out, err := s.Show(ctx, AgeingTest)
	require.NoError(t, err)
	assert.Equal(t, "1\n", out)
}

func TestTestAttribute(t *testing.T) {
	var flags []int
	hook := mcu.TestModeHookFunc(func(flag int) error {
		flags = append(flags, flag)
		return nil
	})
	sim, _, s := newTestSurface(t, mcu.WithTestModeHook(hook))

	_, err := s.Store(context.Background(), Test, "-1")
	require.NoError(t, err)
	assert.Equal(t, []int{-1}, flags)
	assert.Zero(t, sim.Transfers())
}

func TestInvalidInputNeverTouchesBus(t *testing.T) {
	tests := []struct {
		attr  string
		input string
		kind  protocol.ParseKind
	}{
		{attr: Enable, input: "on", kind: protocol.InvalidInteger},
		{attr: Test, input: "", kind: protocol.InvalidInteger},
		{attr: ResetMCU, input: "x", kind: protocol.InvalidInteger},
		{attr: AgeingTest, input: "1.5", kind: protocol.InvalidInteger},
		{attr: MACAddr, input: "C8:63:14:70:12:34", kind: protocol.InvalidHex},
		{attr: MACAddr, input: "C863", kind: protocol.InvalidHex},
	}

	for _, tt := range tests {
		t.Run(tt.attr+"/"+tt.input, func(t *testing.T) {
			sim, _, s := newTestSurface(t)

			n, err := s.Store(context.Background(), tt.attr, tt.input)
			assert.Zero(t, n)
			assert.True(t, protocol.IsParseError(err, tt.kind), "err = %v", err)
			assert.Zero(t, sim.Transfers())
		})
	}
}

func TestPermissions(t *testing.T) {
	_, _, s := newTestSurface(t)
	ctx := context.Background()

	_, err := s.Show(ctx, ResetMCU)
	assert.ErrorIs(t, err, ErrPermission)
	_, err = s.Show(ctx, Test)
	assert.ErrorIs(t, err, ErrPermission)

	_, err = s.Show(ctx, "power")
	assert.ErrorIs(t, err, ErrNoAttribute)
	_, err = s.Store(ctx, "power", "1")
	assert.ErrorIs(t, err, ErrNoAttribute)

	_, ok := s.Lookup(MACAddr)
	assert.True(t, ok)
	_, ok = s.Lookup("power")
	assert.False(t, ok)
}

func TestBusErrorSurfaces(t *testing.T) {
	sim, _, s := newTestSurface(t)
	sim.InjectFault(mcusim.Fault{Reg: protocol.RegReset})

	n, err := s.Store(context.Background(), ResetMCU, "5")
	assert.Zero(t, n)
	assert.True(t, protocol.IsBusError(err))
}

func TestDeviceAbsent(t *testing.T) {
	_, d, s := newTestSurface(t)
	require.NoError(t, d.Remove())

	_, err := s.Show(context.Background(), Enable)
	assert.ErrorIs(t, err, mcu.ErrDeviceAbsent)
	_, err = s.Store(context.Background(), Enable, "1")
	assert.ErrorIs(t, err, mcu.ErrDeviceAbsent)
	assert.Zero(t, s.WoLStatus())
}

func TestShowEnableWithStaleHandle(t *testing.T) {
	sim := mcusim.New(protocol.DefaultAddress)
	sim.SetRegister(protocol.RegWoLStatus, 0x03)

	d := mcu.NewDriver()
	_, err := d.Probe(context.Background(), transport.NewDevice(sim, protocol.DefaultAddress))
	require.NoError(t, err)

	c, err := d.Controller()
	require.NoError(t, err)
	require.NoError(t, d.Remove())

	out, err := showEnable(context.Background(), c)
	assert.ErrorIs(t, err, mcu.ErrDeviceAbsent)
	assert.Empty(t, out)
}

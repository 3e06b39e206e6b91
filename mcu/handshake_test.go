package mcu

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/moffa90/go-edgemcu/mcusim"
	"github.com/moffa90/go-edgemcu/protocol"
	"github.com/moffa90/go-edgemcu/transport"
)

var testMAC = protocol.MAC{0xC8, 0x63, 0x14, 0x70, 0x9A, 0xBC}

func TestSetMACAddressSequence(t *testing.T) {
	tests := []struct {
		name   string
		relock bool
	}{
		{name: "relock", relock: true},
		{name: "no relock", relock: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, ctrl := newTestController(t, 0, WithRelock(tt.relock))

			require.NoError(t, ctrl.SetMACAddress(context.Background(), "C86314709ABC"))

			assert.Equal(t, protocol.MACProgramSequence(testMAC, tt.relock), sim.Writes())
			assert.Equal(t, testMAC, sim.MAC())
			assert.Equal(t, !tt.relock, sim.Unlocked())

			got, err := ctrl.MACAddress(context.Background())
			require.NoError(t, err)
			assert.Equal(t, testMAC, got)
		})
	}
}

func TestSetMACAddressOrdering(t *testing.T) {
	sim, ctrl := newTestController(t, 0)
	require.NoError(t, ctrl.SetMACAddress(context.Background(), "C86314709ABC"))

	writes := sim.Writes()
	hs := protocol.HandshakeSequence()
	require.Len(t, writes, 2*len(hs)+protocol.MACLength+1)

	firstMAC := -1
	for i, w := range writes {
		if w.Reg >= protocol.RegMACBase && w.Reg < protocol.RegMACBase+protocol.MACLength {
			firstMAC = i
			break
		}
	}
	require.Equal(t, len(hs), firstMAC, "all 8 handshake writes precede the first MAC byte")
	assert.Equal(t, hs, writes[:len(hs)])

	commit := writes[len(hs)+protocol.MACLength]
	assert.Equal(t, protocol.RegWrite{Reg: protocol.RegMACWriteEnable, Value: 1}, commit)
	assert.Equal(t, hs, writes[len(hs)+protocol.MACLength+1:])
}

func TestSetMACAddressToken(t *testing.T) {
	sim, ctrl := newTestController(t, 0)

	require.NoError(t, ctrl.SetMACAddress(context.Background(), "  c86314709abc ignored trailing\n"))
	assert.Equal(t, testMAC, sim.MAC())
}

func TestSetMACAddressInvalid(t *testing.T) {
	inputs := []string{"", "\n", "C8631470", "C8631470ABCDEF", "C8:63:14:70:9A:BC", "XX631470ABCD"}

	for _, in := range inputs {
		sim, ctrl := newTestController(t, 0)

		err := ctrl.SetMACAddress(context.Background(), in)
		assert.True(t, protocol.IsParseError(err, protocol.InvalidHex), "input %q: err = %v", in, err)
		assert.Zero(t, sim.Transfers(), "input %q touched the bus", in)
	}
}

func TestSetMACAddressBestEffort(t *testing.T) {
	logger := &MockLogger{}
	sim, ctrl := newTestController(t, 0, WithLogger(logger))
	sim.InjectFault(mcusim.Fault{Reg: protocol.MACRegister(3)})

	require.NoError(t, ctrl.SetMACAddress(context.Background(), testMAC.String()))

	// Every step is still attempted; only the failed byte is missing.
	want := protocol.MACProgramSequence(testMAC, true)
	want = append(want[:len(protocol.HandshakeSequence())+3], want[len(protocol.HandshakeSequence())+4:]...)
	assert.Equal(t, want, sim.Writes())
	assert.Equal(t, byte(0), sim.MAC()[3])
	assert.Contains(t, logger.errorMsgs, "MAC transfer failed")
}

func TestSetMACAddressBestEffortHandshakeFailure(t *testing.T) {
	sim, ctrl := newTestController(t, 0)
	sim.InjectFault(mcusim.Fault{Reg: protocol.RegPassword})

	// The vendor behaviour: carry on even though the unlock was broken.
	require.NoError(t, ctrl.SetMACAddress(context.Background(), testMAC.String()))
	assert.Equal(t, protocol.MAC{}, sim.MAC())
	assert.Equal(t, 2*len(protocol.HandshakeSequence())+protocol.MACLength+1, sim.Transfers())
}

func TestSetMACAddressStrict(t *testing.T) {
	t.Run("address byte fails", func(t *testing.T) {
		sim, ctrl := newTestController(t, 0, WithMACPolicy(Strict))
		sim.InjectFault(mcusim.Fault{Reg: protocol.MACRegister(3)})

		err := ctrl.SetMACAddress(context.Background(), testMAC.String())

		var me *MACError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, StageAddress, me.Stage)
		assert.Equal(t, 3, me.Index)
		assert.False(t, sim.Unlocked(), "region relocked after abort")
		assert.Zero(t, sim.Commits())

		writes := sim.Writes()
		hs := protocol.HandshakeSequence()
		assert.Equal(t, hs, writes[len(writes)-len(hs):])
	})

	t.Run("unlock fails", func(t *testing.T) {
		sim, ctrl := newTestController(t, 0, WithMACPolicy(Strict))
		sim.InjectFault(mcusim.Fault{Reg: protocol.RegPassword})

		err := ctrl.SetMACAddress(context.Background(), testMAC.String())

		var me *MACError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, StageUnlock, me.Stage)
		assert.Equal(t, 1, me.Index)
		assert.Len(t, sim.Writes(), 1, "only the unlock select went through")
		assert.False(t, sim.Unlocked())
	})

	t.Run("commit fails", func(t *testing.T) {
		sim, ctrl := newTestController(t, 0, WithMACPolicy(Strict))
		sim.InjectFault(mcusim.Fault{Reg: protocol.RegMACWriteEnable, Short: true})

		err := ctrl.SetMACAddress(context.Background(), testMAC.String())

		var me *MACError
		require.ErrorAs(t, err, &me)
		assert.Equal(t, StageCommit, me.Stage)
		assert.Zero(t, sim.Commits())
		assert.False(t, sim.Unlocked())
	})
}

func TestSetMACAddressCancelled(t *testing.T) {
	sim, ctrl := newTestController(t, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := ctrl.SetMACAddress(ctx, testMAC.String())
	var me *MACError
	require.ErrorAs(t, err, &me)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sim.Transfers())
}

func TestMACStagesCoverEveryPhase(t *testing.T) {
	for _, step := range protocol.MACProgramSteps(testMAC, true) {
		stage, ok := macStages[step.Phase]
		require.True(t, ok, "phase %s has no stage", step.Phase)
		assert.Equal(t, step.Phase.String(), string(stage))
	}
}

// failNth fails the n-th transfer it sees and passes the rest to the
// simulator.
type failNth struct {
	*mcusim.MCU
	n, seen int
}

func (f *failNth) Transfer(ctx context.Context, msgs []transport.Msg) (int, error) {
	f.seen++
	if f.seen == f.n {
		return 0, mcusim.ErrNoAck
	}
	return f.MCU.Transfer(ctx, msgs)
}

func TestSetMACAddressStrictLockFailure(t *testing.T) {
	sim := mcusim.New(protocol.DefaultAddress)
	tr := &failNth{MCU: sim}

	ctrl, err := Probe(context.Background(), transport.NewDevice(tr, protocol.DefaultAddress), WithMACPolicy(Strict))
	require.NoError(t, err)

	hs := protocol.HandshakeSequence()
	tr.n = tr.seen + len(hs) + protocol.MACLength + 1 + 2

	err = ctrl.SetMACAddress(context.Background(), testMAC.String())

	var me *MACError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, StageLock, me.Stage)
	assert.Equal(t, 1, me.Index)
	assert.Equal(t, 1, sim.Commits())
	assert.Equal(t, testMAC, sim.MAC())
}

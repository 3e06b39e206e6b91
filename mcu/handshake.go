package mcu

import (
	"context"

	"github.com/moffa90/go-edgemcu/protocol"
)

// macStages maps each programming phase to the stage reported in a
// MACError.
var macStages = map[protocol.MACPhase]MACStage{
	protocol.PhaseUnlock:  StageUnlock,
	protocol.PhaseAddress: StageAddress,
	protocol.PhaseCommit:  StageCommit,
	protocol.PhaseLock:    StageLock,
}

// programMAC writes protocol.MACProgramSteps in order. A Strict abort in
// the address or commit phase relocks the region; an abort inside the
// unlock handshake does not, since replaying it would open the region.
// The caller holds c.mu.
func (c *Controller) programMAC(ctx context.Context, mac protocol.MAC) error {
	c.logDebug("programming MAC", "mac", mac.String(), "policy", c.config.MACPolicy.String())

	for _, step := range protocol.MACProgramSteps(mac, c.config.Relock) {
		err := c.writeByte(ctx, step.Reg, step.Value)
		if err == nil {
			continue
		}
		if err := c.tolerate(ctx, macStages[step.Phase], step.Index, err); err != nil {
			if step.Phase == protocol.PhaseAddress || step.Phase == protocol.PhaseCommit {
				c.relockAfterFailure(ctx)
			}
			return err
		}
	}

	c.logInfo("MAC address written", "mac", mac.String())
	return nil
}

// relockAfterFailure closes the region after a Strict abort that
// happened with the region already open. Failures are only logged.
func (c *Controller) relockAfterFailure(ctx context.Context) {
	if !c.config.Relock || ctx.Err() != nil {
		return
	}
	for i, w := range protocol.HandshakeSequence() {
		if err := c.writeByte(ctx, w.Reg, w.Value); err != nil {
			c.logError("relock after failure", "step", i, "error", err)
		}
	}
}

// readMAC reads the six address bytes. The caller holds c.mu.
func (c *Controller) readMAC(ctx context.Context) (protocol.MAC, error) {
	var mac protocol.MAC
	for i := range mac {
		b, err := c.readByte(ctx, protocol.MACRegister(i))
		if err != nil {
			if err := c.tolerate(ctx, StageRead, i, err); err != nil {
				return protocol.MAC{}, err
			}
			continue
		}
		mac[i] = b
	}

	c.logDebug("MAC address read", "mac", mac.String())
	return mac, nil
}

// tolerate applies the MAC policy to a failed step. It returns nil when
// the sequence should continue. Context cancellation always aborts.
func (c *Controller) tolerate(ctx context.Context, stage MACStage, index int, err error) error {
	c.logError("MAC transfer failed", "stage", string(stage), "index", index, "error", err)

	if ctx.Err() != nil || c.config.MACPolicy == Strict {
		return &MACError{Stage: stage, Index: index, Err: err}
	}
	return nil
}

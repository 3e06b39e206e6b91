package protocol

import "fmt"

// HandshakeSequence returns the register writes that toggle the MAC
// region's write privilege:
//
//	[0x81]=01 [0x82]=73 61 64 61 68 4B [0x81]=00
//
// The same sequence is used to unlock before and to relock after
// programming. It must be replayed in full and in order; a partial replay
// leaves the privilege state undefined.
func HandshakeSequence() []RegWrite {
	seq := make([]RegWrite, 0, len(handshakePassword)+2)
	seq = append(seq, RegWrite{Reg: RegUnlockSelect, Value: unlockOpen})
	for _, b := range handshakePassword {
		seq = append(seq, RegWrite{Reg: RegPassword, Value: b})
	}
	seq = append(seq, RegWrite{Reg: RegUnlockSelect, Value: unlockClose})
	return seq
}

// MACRegister returns the register holding byte i of the MAC address.
// It panics if i is outside [0, MACLength).
func MACRegister(i int) Register {
	if i < 0 || i >= MACLength {
		panic(fmt.Sprintf("protocol: MAC byte index %d out of range", i))
	}
	return RegMACBase + Register(i)
}

// MACPhase is the part of the MAC programming sequence a step belongs to.
type MACPhase int

const (
	// PhaseUnlock is the handshake that opens the MAC region
	PhaseUnlock MACPhase = iota

	// PhaseAddress is the six address byte writes
	PhaseAddress

	// PhaseCommit is the RegMACWriteEnable write
	PhaseCommit

	// PhaseLock is the handshake replay that closes the region again
	PhaseLock
)

func (p MACPhase) String() string {
	switch p {
	case PhaseUnlock:
		return "unlock"
	case PhaseAddress:
		return "address"
	case PhaseCommit:
		return "commit"
	case PhaseLock:
		return "lock"
	default:
		return fmt.Sprintf("MACPhase(%d)", int(p))
	}
}

// MACStep is one write of the MAC programming sequence. Index is the
// handshake step or address byte within Phase.
type MACStep struct {
	Phase MACPhase
	Index int
	RegWrite
}

// MACProgramSteps returns every write needed to program mac, in bus
// order: unlock handshake, the six address bytes, the commit write and,
// when relock is set, the handshake again.
func MACProgramSteps(mac MAC, relock bool) []MACStep {
	hs := HandshakeSequence()
	steps := make([]MACStep, 0, 2*len(hs)+MACLength+1)
	for i, w := range hs {
		steps = append(steps, MACStep{Phase: PhaseUnlock, Index: i, RegWrite: w})
	}
	for i, b := range mac {
		steps = append(steps, MACStep{Phase: PhaseAddress, Index: i, RegWrite: RegWrite{Reg: MACRegister(i), Value: b}})
	}
	steps = append(steps, MACStep{Phase: PhaseCommit, RegWrite: RegWrite{Reg: RegMACWriteEnable, Value: MACCommit}})
	if relock {
		for i, w := range hs {
			steps = append(steps, MACStep{Phase: PhaseLock, Index: i, RegWrite: w})
		}
	}
	return steps
}

// MACProgramSequence is MACProgramSteps without the phase tags.
func MACProgramSequence(mac MAC, relock bool) []RegWrite {
	steps := MACProgramSteps(mac, relock)
	seq := make([]RegWrite, len(steps))
	for i, s := range steps {
		seq[i] = s.RegWrite
	}
	return seq
}

// Package mcusim simulates the Edge MCU at the message level.
//
// MCU implements transport.Transferer, so the whole stack above it
// (transport.Device, mcu.Controller, attr.Surface) runs unmodified against
// it. It models the register file, the MAC unlock handshake, the MAC commit
// register and the reserved WoL bit, and it records every register write
// for ordering checks.
//
//	sim := mcusim.New(protocol.DefaultAddress)
//	sim.SetRegister(protocol.RegWoLStatus, 0x02)
//	bus := transport.NewDevice(sim, protocol.DefaultAddress)
package mcusim

import (
	"bytes"
	"context"
	"errors"
	"sync"

	"github.com/moffa90/go-edgemcu/protocol"
	"github.com/moffa90/go-edgemcu/transport"
)

// ErrNoAck is returned when the simulated MCU does not acknowledge a
// message.
var ErrNoAck = errors.New("mcusim: no acknowledge")

var password = func() []byte {
	var pw []byte
	for _, w := range protocol.HandshakeSequence() {
		if w.Reg == protocol.RegPassword {
			pw = append(pw, w.Value)
		}
	}
	return pw
}()

// Fault makes the next matching transfers fail.
type Fault struct {
	// Reg is the register the transfer addresses
	Reg protocol.Register

	// Read selects read transfers; otherwise writes match
	Read bool

	// Short reports one message fewer than submitted instead of an error
	Short bool

	// Times is how many matching transfers fail (0 means once)
	Times int
}

// MCU is a simulated Edge MCU.
type MCU struct {
	mu   sync.Mutex
	addr uint16

	regs    [256]byte
	mac     protocol.MAC
	pending protocol.MAC

	entering bool
	entered  []byte
	unlocked bool

	faults    []Fault
	writes    []protocol.RegWrite
	transfers int
	resets    int
	commits   int
	closed    bool
}

// New returns a simulated MCU answering on addr with all registers zero.
func New(addr uint16) *MCU {
	return &MCU{addr: addr}
}

// Transfer executes msgs against the register file.
func (m *MCU) Transfer(ctx context.Context, msgs []transport.Msg) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return 0, transport.ErrClosed
	}
	m.transfers++

	if len(msgs) == 0 {
		return 0, nil
	}
	for _, msg := range msgs {
		if msg.Addr != m.addr {
			return 0, ErrNoAck
		}
	}

	first := msgs[0]
	if first.Flags&transport.FlagRead != 0 || len(first.Buf) == 0 {
		return 0, ErrNoAck
	}
	reg := protocol.Register(first.Buf[0])
	isRead := len(msgs) > 1 && msgs[1].Flags&transport.FlagRead != 0

	if f, ok := m.takeFault(reg, isRead); ok {
		if f.Short {
			return len(msgs) - 1, nil
		}
		return 0, ErrNoAck
	}

	if isRead {
		buf := msgs[1].Buf
		for i := range buf {
			buf[i] = m.readReg(reg + protocol.Register(i))
		}
		return 2, nil
	}

	for i, b := range first.Buf[1:] {
		m.writeReg(reg+protocol.Register(i), b)
	}
	return 1, nil
}

// Close marks the simulator closed; later transfers fail.
func (m *MCU) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

func (m *MCU) takeFault(reg protocol.Register, read bool) (Fault, bool) {
	for i, f := range m.faults {
		if f.Reg != reg || f.Read != read {
			continue
		}
		if f.Times <= 1 {
			m.faults = append(m.faults[:i], m.faults[i+1:]...)
		} else {
			m.faults[i].Times--
		}
		return f, true
	}
	return Fault{}, false
}

func (m *MCU) readReg(reg protocol.Register) byte {
	if i := int(reg) - int(protocol.RegMACBase); i >= 0 && i < protocol.MACLength {
		return m.mac[i]
	}
	return m.regs[reg]
}

func (m *MCU) writeReg(reg protocol.Register, v byte) {
	m.writes = append(m.writes, protocol.RegWrite{Reg: reg, Value: v})

	if i := int(reg) - int(protocol.RegMACBase); i >= 0 && i < protocol.MACLength {
		if m.unlocked {
			m.pending[i] = v
		}
		return
	}

	switch reg {
	case protocol.RegUnlockSelect:
		if v != 0 {
			m.entering = true
			m.entered = m.entered[:0]
			return
		}
		if m.entering && bytes.Equal(m.entered, password) {
			m.unlocked = !m.unlocked
		}
		m.entering = false
	case protocol.RegPassword:
		if m.entering {
			m.entered = append(m.entered, v)
		}
	case protocol.RegMACWriteEnable:
		if v == protocol.MACCommit && m.unlocked {
			m.mac = m.pending
			m.commits++
		}
	case protocol.RegReset:
		m.resets++
	}
	m.regs[reg] = v
}

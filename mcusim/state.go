package mcusim

import "github.com/moffa90/go-edgemcu/protocol"

// SetRegister presets a register without recording a write.
func (m *MCU) SetRegister(reg protocol.Register, v byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.regs[reg] = v
}

// Register returns the current value of reg.
func (m *MCU) Register(reg protocol.Register) byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.readReg(reg)
}

// SetMAC presets the committed MAC address.
func (m *MCU) SetMAC(mac protocol.MAC) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mac = mac
	m.pending = mac
}

// MAC returns the committed MAC address.
func (m *MCU) MAC() protocol.MAC {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mac
}

// Unlocked reports whether the MAC region currently accepts writes.
func (m *MCU) Unlocked() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.unlocked
}

// InjectFault queues a transfer failure.
func (m *MCU) InjectFault(f Fault) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults = append(m.faults, f)
}

// Writes returns every register write seen so far, in order.
func (m *MCU) Writes() []protocol.RegWrite {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]protocol.RegWrite(nil), m.writes...)
}

// ClearLog forgets recorded writes and counters.
func (m *MCU) ClearLog() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = nil
	m.transfers = 0
	m.resets = 0
	m.commits = 0
}

// Transfers returns how many combined transfers were attempted.
func (m *MCU) Transfers() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.transfers
}

// Resets returns how many times RegReset was written.
func (m *MCU) Resets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.resets
}

// Commits returns how many MAC commits took effect.
func (m *MCU) Commits() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commits
}

// Closed reports whether Close was called.
func (m *MCU) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

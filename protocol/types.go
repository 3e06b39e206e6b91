package protocol

// WoLStatus is the decoded form of the RegWoLStatus byte.
type WoLStatus struct {
	// Enable is bit 0, the user-controlled Wake-on-LAN switch
	Enable bool

	// Reserved holds the MCU-owned bits (bit 1) exactly as read
	Reserved uint8
}

// UnpackWoLStatus decodes a raw status byte. Bits outside the enable and
// reserved flags are dropped.
func UnpackWoLStatus(b byte) WoLStatus {
	return WoLStatus{
		Enable:   b&WoLEnableBit != 0,
		Reserved: b & WoLReservedBit,
	}
}

// Pack encodes the status back into a register byte.
func (s WoLStatus) Pack() byte {
	b := s.Reserved & WoLReservedBit
	if s.Enable {
		b |= WoLEnableBit
	}
	return b
}

// WithEnable returns a copy of s with the enable flag replaced and the
// reserved bits untouched.
func (s WoLStatus) WithEnable(enable bool) WoLStatus {
	s.Enable = enable
	return s
}

// MAC is a LAN MAC address in register order (RegMACBase first).
type MAC [MACLength]byte

// RegWrite is one single-byte register write.
type RegWrite struct {
	Reg   Register
	Value byte
}

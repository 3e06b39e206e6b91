package protocol

import "fmt"

// DefaultAddress is the 7-bit I2C address the Edge MCU answers on.
const DefaultAddress = 0x18

// Register is an 8-bit MCU register address.
type Register uint8

// Register map of the Edge MCU.
const (
	// RegMACBase is the first of six contiguous LAN MAC address registers
	RegMACBase Register = 0x06

	// RegWoLStatus holds the Wake-on-LAN status byte (see WoLStatus)
	RegWoLStatus Register = 0x21

	// RegReset drives the MCU reset line
	RegReset Register = 0x2c

	// RegMACWriteEnable commits MAC bytes written while the region is unlocked
	RegMACWriteEnable Register = 0x2d

	// RegAgeingTest toggles the manufacturing ageing (burn-in) test
	RegAgeingTest Register = 0x35

	// RegUnlockSelect opens (1) and closes (0) a password entry window
	RegUnlockSelect Register = 0x81

	// RegPassword receives the password stream one byte at a time
	RegPassword Register = 0x82

	// RegHostReady is written with 1 once the host driver has attached
	RegHostReady Register = 0x87
)

// MACLength is the number of bytes in a LAN MAC address.
const MACLength = 6

// MACHexLength is the length of a MAC address rendered as bare hex.
const MACHexLength = MACLength * 2

// WoL status byte layout.
const (
	// WoLEnableBit is the user-controlled enable flag
	WoLEnableBit = 0x01

	// WoLReservedBit is owned by the MCU and must survive every write
	WoLReservedBit = 0x02
)

// Handshake values.
const (
	unlockOpen  = 0x01
	unlockClose = 0x00

	// MACCommit is written to RegMACWriteEnable to latch the new address
	MACCommit = 0x01

	// HostReady is written to RegHostReady during probe
	HostReady = 0x01
)

// handshakePassword is streamed into RegPassword between the open and
// close writes of RegUnlockSelect.
var handshakePassword = [...]byte{0x73, 0x61, 0x64, 0x61, 0x68, 0x4B}

// String returns the register address as 0xNN.
func (r Register) String() string {
	return fmt.Sprintf("0x%02x", uint8(r))
}

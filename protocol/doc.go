// Package protocol describes the register protocol of the Khadas Edge
// board MCU.
//
// The MCU sits on an I2C bus and exposes a flat map of 8-bit registers.
// Every access is a single register transaction:
//
//	Write: [REG][DATA...]
//	Read:  [REG] then [DATA...] as one combined transfer
//
// # Register Map
//
//	0x06..0x0B  LAN MAC address, byte 0 first
//	0x21        Wake-on-LAN status (bit 0 enable, bit 1 MCU reserved)
//	0x2C        reset line
//	0x2D        MAC write enable (commit)
//	0x35        ageing test
//	0x81, 0x82  MAC region handshake (unlock select, password stream)
//	0x87        host ready
//
// # MAC Handshake
//
// The MAC registers only accept new values after a password handshake.
// HandshakeSequence returns it; MACProgramSequence returns the full
// programming order:
//
//	for _, w := range protocol.MACProgramSequence(mac, true) {
//	    bus.Write(ctx, byte(w.Reg), []byte{w.Value})
//	}
//
// # WoL Status
//
// The status byte mixes a user flag with a bit the MCU owns. Always go
// through WoLStatus so the reserved bit is carried over verbatim:
//
//	st := protocol.UnpackWoLStatus(raw)
//	raw = st.WithEnable(true).Pack()
//
// # Errors
//
// BusError reports failed or short transfers. ParseError reports textual
// input (integers, MAC strings) rejected before the bus is touched.
package protocol

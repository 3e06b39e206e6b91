// Package attr exposes the MCU controller as named attribute endpoints,
// the way the vendor kernel driver published them under
// /sys/class/wol/.
//
//	enable       rw  "0" or "1"; writes use the low bit
//	test         w   integer forwarded to the test mode hook
//	rst_mcu      w   integer written to the reset register
//	mac_addr     rw  12 uppercase hex digits; writes take the first token
//	ageing_test  rw  raw ageing test register
//
// Show and Store take and return the same text a sysfs read or write
// would:
//
//	s := attr.New(driver)
//	out, err := s.Show(ctx, "mac_addr")      // "C86314701234\n"
//	n, err := s.Store(ctx, "enable", "1\n")  // n == 2
//
// Integer input follows kstrtoint: an optional sign, 0x/0 base prefixes,
// one optional trailing newline, 32-bit range. Malformed input is
// rejected with a *protocol.ParseError before the bus is touched.
package attr

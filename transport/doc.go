// Package transport moves register reads and writes across an addressed
// bus.
//
// Device implements Bus on top of any Transferer, the combined-transfer
// primitive every I2C master offers: a list of messages executed as one
// bus transaction with no other master in between.
//
//	adapter, err := transport.OpenI2C(2) // /dev/i2c-2
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bus := transport.NewDevice(adapter, protocol.DefaultAddress)
//	defer bus.Close()
//
//	status, err := bus.Read(ctx, byte(protocol.RegWoLStatus), 1)
//
// A register write is one message, [REG][DATA...]. A register read is two
// chained messages, a one-byte select write followed by the read. If the
// Transferer reports fewer completed messages than were submitted, the
// call fails with *protocol.BusError. Nothing is retried.
package transport

// Package mcu controls the Khadas Edge board MCU: Wake-on-LAN state, the
// LAN MAC address, the reset line and the ageing test register.
//
// # Basic Usage
//
//	adapter, err := transport.OpenI2C(2)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	bus := transport.NewDevice(adapter, protocol.DefaultAddress)
//
//	ctrl, err := mcu.Probe(ctx, bus,
//	    mcu.WithLogger(mcu.NewSlogLogger(slog.Default())),
//	    mcu.WithWoLHook(&wol.Ethtool{Interface: "eth0"}),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ctrl.Remove()
//
//	if err := ctrl.SetWoLEnabled(ctx, true); err != nil {
//	    log.Fatal(err)
//	}
//	mac, err := ctrl.MACAddress(ctx)
//
// # Single Device
//
// The board has one MCU. Driver enforces that: a second Probe fails with
// ErrAlreadyInitialized and every lookup after Remove fails with
// ErrDeviceAbsent.
//
// # MAC Programming
//
// SetMACAddress wraps the address write in the unlock handshake and, by
// default, relocks afterwards. What happens when one of those transfers
// fails is chosen with WithMACPolicy:
//   - BestEffort (default): log and continue, like the vendor driver
//   - Strict: stop and return a *MACError naming the stage and step
//
// # Concurrency
//
// Each Controller serializes its operations with one mutex, so the WoL
// read-modify-write and the MAC sequence are atomic with respect to
// other callers of the same Controller.
package mcu

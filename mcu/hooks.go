package mcu

// WoLHook is the platform side of Wake-on-LAN, typically the Ethernet
// driver. It is called with the raw status byte after every successful
// status write and during probe when the MCU reports WoL armed.
type WoLHook interface {
	EnableWoL(status int, isShutdown bool) error
}

// WoLHookFunc adapts a function to WoLHook.
type WoLHookFunc func(status int, isShutdown bool) error

func (f WoLHookFunc) EnableWoL(status int, isShutdown bool) error {
	return f(status, isShutdown)
}

// TestModeHook receives the value written to the test attribute.
type TestModeHook interface {
	SetTest(flag int) error
}

// TestModeHookFunc adapts a function to TestModeHook.
type TestModeHookFunc func(flag int) error

func (f TestModeHookFunc) SetTest(flag int) error {
	return f(flag)
}

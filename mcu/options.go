package mcu

import "fmt"

// MACPolicy decides what happens when one transfer inside a multi-step MAC
// operation fails.
type MACPolicy int

const (
	// BestEffort logs the failure and carries on with the next step.
	// Partially programmed or partially read addresses are possible.
	BestEffort MACPolicy = iota

	// Strict stops at the first failure and returns a *MACError.
	Strict
)

func (p MACPolicy) String() string {
	switch p {
	case BestEffort:
		return "best-effort"
	case Strict:
		return "strict"
	default:
		return fmt.Sprintf("MACPolicy(%d)", int(p))
	}
}

// ParseMACPolicy maps "best-effort" and "strict" to a MACPolicy.
func ParseMACPolicy(s string) (MACPolicy, error) {
	switch s {
	case "", "best-effort", "besteffort":
		return BestEffort, nil
	case "strict":
		return Strict, nil
	default:
		return BestEffort, fmt.Errorf("unknown MAC policy %q", s)
	}
}

// Config holds the controller configuration.
type Config struct {
	// Logger is used for logging operations (optional)
	Logger Logger

	// MACPolicy selects the error policy of MAC reads and writes
	MACPolicy MACPolicy

	// Relock replays the handshake after committing a new MAC address
	Relock bool

	// WoLHook is told about every WoL status change (optional)
	WoLHook WoLHook

	// TestModeHook receives writes to the test attribute (optional)
	TestModeHook TestModeHook
}

// defaultConfig returns the default configuration.
func defaultConfig() Config {
	return Config{
		MACPolicy: BestEffort,
		Relock:    true,
	}
}

// Option is a functional option for configuring the Controller.
type Option func(*Config)

// WithLogger sets a logger for controller operations.
//
// Example:
//
//	ctrl, err := mcu.Probe(ctx, bus, mcu.WithLogger(mcu.NewSlogLogger(slog.Default())))
func WithLogger(logger Logger) Option {
	return func(c *Config) {
		c.Logger = logger
	}
}

// WithMACPolicy sets the error policy for MAC reads and writes.
// Default is BestEffort.
func WithMACPolicy(policy MACPolicy) Option {
	return func(c *Config) {
		if policy == BestEffort || policy == Strict {
			c.MACPolicy = policy
		}
	}
}

// WithRelock enables or disables the lock handshake after a MAC write.
// Default is true.
func WithRelock(relock bool) Option {
	return func(c *Config) {
		c.Relock = relock
	}
}

// WithWoLHook sets the platform hook notified of WoL status changes.
//
// Example:
//
//	ctrl, err := mcu.Probe(ctx, bus, mcu.WithWoLHook(&wol.Ethtool{Interface: "eth0"}))
func WithWoLHook(hook WoLHook) Option {
	return func(c *Config) {
		c.WoLHook = hook
	}
}

// WithTestModeHook sets the hook that receives test attribute writes.
func WithTestModeHook(hook TestModeHook) Option {
	return func(c *Config) {
		c.TestModeHook = hook
	}
}

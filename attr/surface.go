package attr

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/moffa90/go-edgemcu/mcu"
)

// ClassName is the attribute class the endpoints live under.
const ClassName = "wol"

// Attribute names.
const (
	Enable     = "enable"
	Test       = "test"
	ResetMCU   = "rst_mcu"
	MACAddr    = "mac_addr"
	AgeingTest = "ageing_test"
)

var (
	// ErrNoAttribute is returned for names outside the attribute set.
	ErrNoAttribute = errors.New("attr: no such attribute")

	// ErrPermission is returned for a show on a write-only attribute or
	// a store on a read-only one.
	ErrPermission = errors.New("attr: permission denied")
)

type showFunc func(ctx context.Context, c *mcu.Controller) (string, error)
type storeFunc func(ctx context.Context, c *mcu.Controller, input string) error

// Attribute is one endpoint.
type Attribute struct {
	Name string
	Mode os.FileMode

	show  showFunc
	store storeFunc
}

// Readable reports whether the attribute supports Show.
func (a Attribute) Readable() bool {
	return a.show != nil && a.Mode&0o444 != 0
}

// Writable reports whether the attribute supports Store.
func (a Attribute) Writable() bool {
	return a.store != nil && a.Mode&0o222 != 0
}

// Surface maps attribute names onto the controller bound to a driver.
type Surface struct {
	driver *mcu.Driver
	logger mcu.Logger
	attrs  map[string]Attribute
}

// Option configures a Surface.
type Option func(*Surface)

// WithLogger logs every store.
func WithLogger(logger mcu.Logger) Option {
	return func(s *Surface) {
		s.logger = logger
	}
}

// New returns the attribute surface for d.
func New(d *mcu.Driver, opts ...Option) *Surface {
	if d == nil {
		panic("driver cannot be nil")
	}

	s := &Surface{driver: d, attrs: make(map[string]Attribute)}
	for _, a := range []Attribute{
		{Name: Enable, Mode: 0o644, show: showEnable, store: storeEnable},
		{Name: Test, Mode: 0o200, store: storeTest},
		{Name: ResetMCU, Mode: 0o200, store: storeReset},
		{Name: MACAddr, Mode: 0o644, show: showMAC, store: storeMAC},
		{Name: AgeingTest, Mode: 0o644, show: showAgeing, store: storeAgeing},
	} {
		s.attrs[a.Name] = a
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Class returns ClassName.
func (s *Surface) Class() string {
	return ClassName
}

// List returns all attributes sorted by name.
func (s *Surface) List() []Attribute {
	out := make([]Attribute, 0, len(s.attrs))
	for _, a := range s.attrs {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the attribute called name.
func (s *Surface) Lookup(name string) (Attribute, bool) {
	a, ok := s.attrs[name]
	return a, ok
}

// WoLStatus returns the cached raw WoL status byte, or 0 without a
// device.
func (s *Surface) WoLStatus() int {
	return s.driver.WoLStatus()
}

// Show renders the attribute's current value, newline terminated.
func (s *Surface) Show(ctx context.Context, name string) (string, error) {
	a, ok := s.attrs[name]
	if !ok {
		return "", fmt.Errorf("%s: %w", name, ErrNoAttribute)
	}
	if !a.Readable() {
		return "", fmt.Errorf("show %s: %w", name, ErrPermission)
	}

	c, err := s.driver.Controller()
	if err != nil {
		return "", fmt.Errorf("show %s: %w", name, err)
	}

	out, err := a.show(ctx, c)
	if err != nil {
		return "", fmt.Errorf("show %s: %w", name, err)
	}
	return out, nil
}

// Store writes input to the attribute. On success it returns len(input),
// mirroring a sysfs store consuming the whole buffer.
func (s *Surface) Store(ctx context.Context, name, input string) (int, error) {
	a, ok := s.attrs[name]
	if !ok {
		return 0, fmt.Errorf("%s: %w", name, ErrNoAttribute)
	}
	if !a.Writable() {
		return 0, fmt.Errorf("store %s: %w", name, ErrPermission)
	}

	c, err := s.driver.Controller()
	if err != nil {
		return 0, fmt.Errorf("store %s: %w", name, err)
	}

	if err := a.store(ctx, c, input); err != nil {
		s.logError("store failed", "attr", name, "error", err)
		return 0, fmt.Errorf("store %s: %w", name, err)
	}

	s.logDebug("stored", "attr", name, "input", input)
	return len(input), nil
}

func (s *Surface) logDebug(msg string, keysAndValues ...interface{}) {
	if s.logger != nil {
		s.logger.Debug(msg, keysAndValues...)
	}
}

func (s *Surface) logError(msg string, keysAndValues ...interface{}) {
	if s.logger != nil {
		s.logger.Error(msg, keysAndValues...)
	}
}

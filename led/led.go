// Package led forces LEDs of the Linux LED class off.
//
// Off detaches whatever trigger drives the LED and sets its brightness to
// zero, the same end state as activating an "off" trigger.
package led

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultRoot is the LED class directory.
const DefaultRoot = "/sys/class/leds"

// ErrNoLED is returned when the named LED does not exist under the root.
var ErrNoLED = errors.New("led: no such LED")

// Class is a directory of LED class devices.
type Class struct {
	root string
}

// New returns the class rooted at root, or DefaultRoot when root is empty.
func New(root string) *Class {
	if root == "" {
		root = DefaultRoot
	}
	return &Class{root: root}
}

// Root returns the class directory.
func (c *Class) Root() string {
	return c.root
}

// List returns the LED names, sorted.
func (c *Class) List() ([]string, error) {
	entries, err := os.ReadDir(c.root)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Off turns the named LED off.
func (c *Class) Off(name string) error {
	if err := c.check(name); err != nil {
		return err
	}
	if err := c.write(name, "trigger", "none"); err != nil {
		return err
	}
	return c.write(name, "brightness", "0")
}

// Trigger returns the active trigger of the named LED, the entry the
// kernel prints in brackets.
func (c *Class) Trigger(name string) (string, error) {
	if err := c.check(name); err != nil {
		return "", err
	}
	b, err := os.ReadFile(filepath.Join(c.root, name, "trigger"))
	if err != nil {
		return "", err
	}
	for _, f := range strings.Fields(string(b)) {
		if strings.HasPrefix(f, "[") && strings.HasSuffix(f, "]") {
			return strings.Trim(f, "[]"), nil
		}
	}
	return "", fmt.Errorf("%s: no active trigger", name)
}

func (c *Class) check(name string) error {
	if name == "" || strings.ContainsRune(name, '/') || name == "." || name == ".." {
		return fmt.Errorf("%w: %q", ErrNoLED, name)
	}
	st, err := os.Stat(filepath.Join(c.root, name))
	if err != nil || !st.IsDir() {
		return fmt.Errorf("%w: %q", ErrNoLED, name)
	}
	return nil
}

// write sends value to the LED attribute file.
func (c *Class) write(name, attr, value string) error {
	f, err := os.OpenFile(filepath.Join(c.root, name, attr), os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.WriteString(value); err != nil {
		return fmt.Errorf("%s/%s: %w", name, attr, err)
	}
	return nil
}

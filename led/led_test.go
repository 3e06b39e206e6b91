package led

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeLED(t *testing.T, root, name, trigger, brightness string) {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "trigger"), []byte(trigger), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "brightness"), []byte(brightness), 0o644))
}

func readAttr(t *testing.T, root, name, attr string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join(root, name, attr))
	require.NoError(t, err)
	return string(b)
}

func TestOff(t *testing.T) {
	root := t.TempDir()
	fakeLED(t, root, "sys_led", "none [heartbeat] timer\n", "255\n")

	c := New(root)
	require.NoError(t, c.Off("sys_led"))

	// os.OpenFile without O_TRUNC overwrites in place; a real sysfs
	// attribute takes the whole write.
	assert.Equal(t, "none", readAttr(t, root, "sys_led", "trigger")[:4])
	assert.Equal(t, "0", readAttr(t, root, "sys_led", "brightness")[:1])
}

func TestOffUnknown(t *testing.T) {
	root := t.TempDir()
	c := New(root)

	for _, name := range []string{"missing", "", "..", "a/b"} {
		err := c.Off(name)
		assert.ErrorIs(t, err, ErrNoLED, name)
	}
}

func TestTrigger(t *testing.T) {
	root := t.TempDir()
	fakeLED(t, root, "red", "none [timer] heartbeat\n", "1\n")
	fakeLED(t, root, "blue", "none timer\n", "1\n")

	c := New(root)
	trig, err := c.Trigger("red")
	require.NoError(t, err)
	assert.Equal(t, "timer", trig)

	_, err = c.Trigger("blue")
	assert.Error(t, err)
}

func TestList(t *testing.T) {
	root := t.TempDir()
	fakeLED(t, root, "white", "[none]\n", "0\n")
	fakeLED(t, root, "red", "[none]\n", "0\n")

	names, err := New(root).List()
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "white"}, names)
}

func TestDefaultRoot(t *testing.T) {
	assert.Equal(t, DefaultRoot, New("").Root())
}

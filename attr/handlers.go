package attr

import (
	"context"
	"fmt"

	"github.com/moffa90/go-edgemcu/mcu"
)

func showEnable(_ context.Context, c *mcu.Controller) (string, error) {
	enabled := 0
	if c.WoLEnabled() {
		enabled = 1
	}
	// A handle taken before Remove must not report the stale cache.
	if c.Removed() {
		return "", mcu.ErrDeviceAbsent
	}
	return fmt.Sprintf("%d\n", enabled), nil
}

func storeEnable(ctx context.Context, c *mcu.Controller, input string) error {
	v, err := ParseInt(input)
	if err != nil {
		return err
	}
	return c.SetWoLEnabled(ctx, v&1 != 0)
}

func storeTest(ctx context.Context, c *mcu.Controller, input string) error {
	v, err := ParseInt(input)
	if err != nil {
		return err
	}
	return c.SetTestMode(ctx, v)
}

func storeReset(ctx context.Context, c *mcu.Controller, input string) error {
	v, err := ParseInt(input)
	if err != nil {
		return err
	}
	return c.Reset(ctx, uint8(v))
}

func showMAC(ctx context.Context, c *mcu.Controller) (string, error) {
	mac, err := c.MACAddress(ctx)
	if err != nil {
		return "", err
	}
	return mac.String() + "\n", nil
}

func storeMAC(ctx context.Context, c *mcu.Controller, input string) error {
	return c.SetMACAddress(ctx, input)
}

func showAgeing(ctx context.Context, c *mcu.Controller) (string, error) {
	v, err := c.AgeingTest(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d\n", v), nil
}

func storeAgeing(ctx context.Context, c *mcu.Controller, input string) error {
	v, err := ParseInt(input)
	if err != nil {
		return err
	}
	return c.SetAgeingTest(ctx, uint8(v))
}

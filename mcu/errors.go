package mcu

import (
	"errors"
	"fmt"
)

var (
	// ErrDeviceAbsent is returned by every operation after the device
	// was removed, and by Driver when no device is bound.
	ErrDeviceAbsent = errors.New("mcu: device absent")

	// ErrAlreadyInitialized is returned by Driver.Probe while a device
	// is already bound.
	ErrAlreadyInitialized = errors.New("mcu: device already initialized")

	// ErrNoHook is returned by SetTestMode without a TestModeHook.
	ErrNoHook = errors.New("mcu: no test mode hook configured")
)

// MACStage names the part of a MAC operation a MACError occurred in.
type MACStage string

const (
	StageUnlock  MACStage = "unlock"
	StageAddress MACStage = "address"
	StageCommit  MACStage = "commit"
	StageLock    MACStage = "lock"
	StageRead    MACStage = "read"
)

// MACError reports the step that aborted a MAC operation under the
// Strict policy.
type MACError struct {
	Stage MACStage

	// Index is the handshake step or MAC byte index
	Index int

	Err error
}

func (e *MACError) Error() string {
	return fmt.Sprintf("MAC %s step %d: %v", e.Stage, e.Index, e.Err)
}

func (e *MACError) Unwrap() error {
	return e.Err
}

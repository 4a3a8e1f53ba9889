package main

import (
	"errors"
	"fmt"

	"nithronos/tools/pixelsec/internal/bridge"
	"nithronos/tools/pixelsec/internal/device"
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func fatal(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: 1, err: err}
}

// describe turns fatal errors into the message shown to the operator.
func describe(err error) string {
	var amb *device.AmbiguousError
	switch {
	case errors.Is(err, bridge.ErrUnavailable):
		return fmt.Sprintf("[!] ADB not found. Install Android platform-tools or pass --adb (%v)", err)
	case errors.Is(err, device.ErrNoDevice):
		return "[!] No Pixel devices connected"
	case errors.As(err, &amb):
		return fmt.Sprintf("[!] Multiple devices found (%d). Specify -s <serial>", len(amb.Serials))
	default:
		return fmt.Sprintf("[!] Error: %v", err)
	}
}

// Package bridge talks to attached Android devices through the adb binary.
package bridge

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"nithronos/tools/pixelsec/internal/metrics"
	"nithronos/tools/pixelsec/internal/shell"
)

// Bridge is the capability the discovery and probing code depends on.
type Bridge interface {
	Available(ctx context.Context) error
	ListDevices(ctx context.Context) (string, error)
	GetProperty(ctx context.Context, serial, name string) (string, error)
}

const DefaultBinary = "adb"

type ADB struct {
	Binary  string
	Runner  shell.Runner
	Log     zerolog.Logger
	Metrics *metrics.Recorder
}

func NewADB(binary string, runner shell.Runner, log zerolog.Logger, rec *metrics.Recorder) *ADB {
	if binary == "" {
		binary = DefaultBinary
	}
	if runner == nil {
		runner = shell.Exec{}
	}
	return &ADB{Binary: binary, Runner: runner, Log: log, Metrics: rec}
}

// Available runs `adb version`. Only a failure to start the binary counts;
// the exit status is ignored.
func (a *ADB) Available(ctx context.Context) error {
	_, err := a.Runner.Run(ctx, a.Binary, "version")
	a.Metrics.BridgeCall("version", unstarted(err))
	if !shell.Started(err) {
		return fmt.Errorf("%w: %s: %v", ErrUnavailable, a.Binary, err)
	}
	return nil
}

// ListDevices returns the raw output of `adb devices -l`.
func (a *ADB) ListDevices(ctx context.Context) (string, error) {
	res, err := a.Runner.Run(ctx, a.Binary, "devices", "-l")
	a.Metrics.BridgeCall("list", unstarted(err))
	if !shell.Started(err) {
		return "", fmt.Errorf("%w: %s: %v", ErrUnavailable, a.Binary, err)
	}
	if res.Code != 0 {
		a.Log.Warn().
			Int("code", res.Code).
			Str("stderr", strings.TrimSpace(string(res.Stderr))).
			Msg("device listing exited non-zero")
	}
	return string(res.Stdout), nil
}

// GetProperty reads one system property via `adb -s <serial> shell getprop`.
func (a *ADB) GetProperty(ctx context.Context, serial, name string) (string, error) {
	res, err := a.Runner.Run(ctx, a.Binary, "-s", serial, "shell", "getprop", name)
	if err == nil && res.Code != 0 {
		err = fmt.Errorf("exit status %d", res.Code)
	}
	val := strings.TrimSpace(string(res.Stdout))
	if err == nil && val == "" {
		err = fmt.Errorf("empty value")
	}
	a.Metrics.BridgeCall("getprop", err)
	if err != nil {
		return "", fmt.Errorf("%w: %s on %s: %v", ErrPropertyQuery, name, serial, err)
	}
	return val, nil
}

func unstarted(err error) error {
	if shell.Started(err) {
		return nil
	}
	return err
}

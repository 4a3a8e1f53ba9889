// Package bridgetest provides a programmable in-memory bridge.
package bridgetest

import (
	"context"
	"fmt"

	"nithronos/tools/pixelsec/internal/bridge"
)

type Call struct {
	Op     string
	Serial string
	Name   string
}

// Fake answers from fixed tables and records every call. Properties missing
// from Props fail with bridge.ErrPropertyQuery.
type Fake struct {
	Unavailable bool
	Devices     string
	Props       map[string]map[string]string
	Calls       []Call
}

var _ bridge.Bridge = (*Fake)(nil)

func (f *Fake) Available(ctx context.Context) error {
	f.Calls = append(f.Calls, Call{Op: "version"})
	if f.Unavailable {
		return fmt.Errorf("%w: fake", bridge.ErrUnavailable)
	}
	return nil
}

func (f *Fake) ListDevices(ctx context.Context) (string, error) {
	f.Calls = append(f.Calls, Call{Op: "list"})
	if f.Unavailable {
		return "", fmt.Errorf("%w: fake", bridge.ErrUnavailable)
	}
	return f.Devices, nil
}

func (f *Fake) GetProperty(ctx context.Context, serial, name string) (string, error) {
	f.Calls = append(f.Calls, Call{Op: "getprop", Serial: serial, Name: name})
	if v, ok := f.Props[serial][name]; ok && v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s on %s", bridge.ErrPropertyQuery, name, serial)
}

// Count returns how many recorded calls used op.
func (f *Fake) Count(op string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

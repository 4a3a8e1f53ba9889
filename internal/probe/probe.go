// Package probe reads the security attributes of a single device.
package probe

import (
	"context"

	"github.com/rs/zerolog"

	"nithronos/tools/pixelsec/internal/metrics"
)

// PropertyGetter is the part of bridge.Bridge the probe needs.
type PropertyGetter interface {
	GetProperty(ctx context.Context, serial, name string) (string, error)
}

// Prober issues one query per attribute, in sequence. OnQuery, when set, is
// called after each query with the property name.
type Prober struct {
	Bridge  PropertyGetter
	Log     zerolog.Logger
	Metrics *metrics.Recorder
	OnQuery func(property string)
}

// Queries is the number of external invocations made by Probe.
const Queries = 4

// Probe never fails: each attribute whose query fails keeps its entry from
// Defaults and the remaining queries still run.
func (p *Prober) Probe(ctx context.Context, serial string) Attributes {
	attrs := Defaults
	attrs.Serial = serial

	if v, ok := p.query(ctx, serial, PropFlashLocked); ok {
		switch v {
		case "1":
			attrs.BootloaderLocked = true
		case "0":
			attrs.BootloaderLocked = false
		default:
			p.Log.Debug().Str("serial", serial).Str("value", v).Msg("unrecognised lock state, assuming locked")
		}
	}
	if v, ok := p.query(ctx, serial, PropVerityMode); ok {
		attrs.VerityMode = v
	}
	if v, ok := p.query(ctx, serial, PropHardwareRevision); ok {
		attrs.SecureElementFirmware = v
	}
	if v, ok := p.query(ctx, serial, PropVerifiedBootState); ok {
		attrs.VerifiedBootState = v
	}
	return attrs
}

func (p *Prober) query(ctx context.Context, serial, prop string) (string, bool) {
	defer func() {
		if p.OnQuery != nil {
			p.OnQuery(prop)
		}
	}()
	v, err := p.Bridge.GetProperty(ctx, serial, prop)
	if err != nil {
		p.Log.Debug().Err(err).Str("serial", serial).Str("property", prop).Msg("property query failed, using default")
		p.Metrics.PropertyFailure(prop)
		return "", false
	}
	return v, true
}

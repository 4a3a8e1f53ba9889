// Package app wires discovery, probing and the authorization gate into the
// actions exposed by the command line.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"nithronos/tools/pixelsec/internal/bridge"
	"nithronos/tools/pixelsec/internal/device"
	"nithronos/tools/pixelsec/internal/gate"
	"nithronos/tools/pixelsec/internal/metrics"
	"nithronos/tools/pixelsec/internal/present"
	"nithronos/tools/pixelsec/internal/probe"
)

type Runner struct {
	Bridge     bridge.Bridge
	Family     device.Family
	Payload    gate.SealedPayload
	Presenter  *present.Presenter
	Log        zerolog.Logger
	Metrics    *metrics.Recorder
	Prompter   KeyPrompter
	OnQuery    func(property string)
	Operations map[Action]Operation
}

// Run executes req. Errors returned are fatal for the invocation: an
// unusable bridge or an unresolved target. A refused authorization is
// reported through the presenter and is not an error.
func (r *Runner) Run(ctx context.Context, req Request) error {
	if err := r.Bridge.Available(ctx); err != nil {
		return err
	}
	log := r.Log.With().Str("action", req.Action.String()).Logger()

	if req.Action == ActionList {
		recs, err := device.Discover(ctx, r.Bridge, r.Family)
		if err != nil {
			return err
		}
		log.Debug().Int("devices", len(recs)).Msg("discovery complete")
		return r.Presenter.Devices(recs)
	}

	serial, err := device.Resolve(ctx, r.Bridge, r.Family, req.Serial)
	if err != nil {
		return err
	}
	log = log.With().Str("serial", serial).Logger()

	if !req.Action.Privileged() {
		p := &probe.Prober{Bridge: r.Bridge, Log: log, Metrics: r.Metrics, OnQuery: r.OnQuery}
		return r.Presenter.Attributes(p.Probe(ctx, serial))
	}
	return r.privileged(ctx, log, req, serial)
}

func (r *Runner) privileged(ctx context.Context, log zerolog.Logger, req Request, serial string) error {
	key := req.Key
	if key == "" && req.PromptKey && r.Prompter != nil {
		k, err := r.Prompter.PromptKey(req.Action.String(), serial)
		if err != nil {
			log.Warn().Err(err).Msg("key prompt aborted")
		}
		key = k
	}

	unlocked, err := gate.Authorize(key, r.Payload)
	if err != nil {
		r.Metrics.Authorization(authResult(err))
		log.Info().Err(err).Msg("authorization refused")
		return r.Presenter.Denied(req.Action.String(), serial, err)
	}
	r.Metrics.Authorization("ok")
	log.Info().Msg("authorization granted")

	op, ok := r.Operations[req.Action]
	if !ok {
		op = stub(req.Action)
	}
	opErr := op(ctx, serial, unlocked)
	if opErr != nil && !errors.Is(opErr, ErrNotImplemented) {
		return fmt.Errorf("%s on %s: %w", req.Action, serial, opErr)
	}
	return r.Presenter.Authorized(req.Action.String(), serial, opErr)
}

func authResult(err error) string {
	switch {
	case errors.Is(err, gate.ErrMissingKey):
		return "missing_key"
	case errors.Is(err, gate.ErrInvalidKeyFormat):
		return "invalid_key"
	default:
		return "decryption_failed"
	}
}

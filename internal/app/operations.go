package app

import (
	"context"
	"errors"
	"fmt"
)

var ErrNotImplemented = errors.New("operation has no implementation")

// Operation is a privileged action. unlocked is the opened payload.
type Operation func(ctx context.Context, serial string, unlocked []byte) error

// DefaultOperations are placeholders: the gate decides whether they may run,
// what they do is not defined.
func DefaultOperations() map[Action]Operation {
	return map[Action]Operation{
		ActionDump:   stub(ActionDump),
		ActionBypass: stub(ActionBypass),
	}
}

func stub(a Action) Operation {
	return func(ctx context.Context, serial string, unlocked []byte) error {
		return fmt.Errorf("%s: %w", a, ErrNotImplemented)
	}
}

package device

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrNoDevice        = errors.New("no supported device connected")
	ErrAmbiguousDevice = errors.New("multiple supported devices connected")
)

// AmbiguousError lists the candidates when auto-selection is not possible.
type AmbiguousError struct {
	Serials []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("%s: %s", ErrAmbiguousDevice, strings.Join(e.Serials, ", "))
}

func (e *AmbiguousError) Unwrap() error { return ErrAmbiguousDevice }

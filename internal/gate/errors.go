package gate

import "errors"

var (
	ErrMissingKey       = errors.New("no authorization key supplied")
	ErrInvalidKeyFormat = errors.New("authorization key must be 64 hexadecimal characters")
	ErrDecryptionFailed = errors.New("authorization key rejected")
	ErrUnknownSuite     = errors.New("unknown cipher suite")
	ErrInvalidPayload   = errors.New("invalid sealed payload")
)

package gate

import (
	_ "embed"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_payload.yaml
var defaultPayload []byte

type bundle struct {
	Suite      string `yaml:"suite"`
	Nonce      string `yaml:"nonce"`
	Ciphertext string `yaml:"ciphertext"`
}

// DefaultPayload returns the payload shipped with the binary.
func DefaultPayload() SealedPayload {
	p, err := DecodePayload(defaultPayload)
	if err != nil {
		panic("gate: embedded payload: " + err.Error())
	}
	return p
}

// LoadPayload reads a YAML bundle written by EncodePayload.
func LoadPayload(path string) (SealedPayload, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return SealedPayload{}, err
	}
	p, err := DecodePayload(b)
	if err != nil {
		return SealedPayload{}, fmt.Errorf("%s: %w", path, err)
	}
	return p, nil
}

func DecodePayload(b []byte) (SealedPayload, error) {
	var bu bundle
	if err := yaml.Unmarshal(b, &bu); err != nil {
		return SealedPayload{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	suite := Suite(strings.ToLower(strings.TrimSpace(bu.Suite)))
	if suite == "" {
		suite = DefaultSuite
	}
	if suite != SuiteAES256GCM && suite != SuiteChaCha20Poly1305 {
		return SealedPayload{}, fmt.Errorf("%w: %w %q", ErrInvalidPayload, ErrUnknownSuite, bu.Suite)
	}
	nonce, err := hex.DecodeString(strings.TrimSpace(bu.Nonce))
	if err != nil || len(nonce) != NonceSize {
		return SealedPayload{}, fmt.Errorf("%w: nonce must be %d hex-encoded bytes", ErrInvalidPayload, NonceSize)
	}
	ct, err := hex.DecodeString(strings.TrimSpace(bu.Ciphertext))
	if err != nil || len(ct) == 0 {
		return SealedPayload{}, fmt.Errorf("%w: ciphertext must be non-empty hex", ErrInvalidPayload)
	}
	return SealedPayload{Suite: suite, Nonce: nonce, Ciphertext: ct}, nil
}

func EncodePayload(p SealedPayload) ([]byte, error) {
	return yaml.Marshal(bundle{
		Suite:      string(p.Suite),
		Nonce:      hex.EncodeToString(p.Nonce),
		Ciphertext: hex.EncodeToString(p.Ciphertext),
	})
}

package main

import (
	"fmt"
	"os"

	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"nithronos/tools/pixelsec/internal/gate"
)

const defaultUnlockMessage = "pixelsec-unlock-v1"

// newSealCmd issues a payload/key pair. Each invocation draws a new nonce.
func newSealCmd(env *cliEnv) *cobra.Command {
	var (
		key, suite, message, out string
		qr                       bool
	)
	cmd := &cobra.Command{
		Use:   "seal",
		Short: "Create a sealed payload and the key that opens it",
		Long: `seal encrypts an unlock message under a key with a freshly generated nonce
and writes the payload bundle for use with --payload. Without --key a new
key is generated and printed on stderr.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			generated := false
			if key == "" {
				k, err := gate.GenerateKey()
				if err != nil {
					return fatal(err)
				}
				key, generated = k, true
			}
			raw, err := gate.ParseKey(key)
			if err != nil {
				return fatal(err)
			}
			p, err := gate.Seal(raw, []byte(message), gate.Suite(suite))
			if err != nil {
				return fatal(err)
			}
			b, err := gate.EncodePayload(p)
			if err != nil {
				return fatal(err)
			}

			if out == "" || out == "-" {
				if _, err := env.stdout.Write(b); err != nil {
					return fatal(err)
				}
			} else {
				if err := os.WriteFile(out, b, 0o600); err != nil {
					return fatal(err)
				}
				fmt.Fprintf(env.stderr, "payload written to %s\n", out)
			}

			if generated {
				fmt.Fprintf(env.stderr, "key: %s\n", key)
			}
			if qr {
				q, err := qrcode.New(key, qrcode.Medium)
				if err != nil {
					return fatal(err)
				}
				fmt.Fprint(env.stderr, q.ToSmallString(false))
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&key, "key", "", "existing key to seal with (64 hex characters)")
	f.StringVar(&suite, "suite", string(gate.DefaultSuite), "aes-256-gcm or chacha20-poly1305")
	f.StringVar(&message, "message", defaultUnlockMessage, "plaintext sealed into the payload")
	f.StringVarP(&out, "out", "o", "", "write the bundle here instead of stdout")
	f.BoolVar(&qr, "qr", false, "also render the key as a QR code on stderr")
	return cmd
}

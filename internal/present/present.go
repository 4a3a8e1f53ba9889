// Package present renders discovery, probe and authorization results.
package present

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"nithronos/tools/pixelsec/internal/device"
	"nithronos/tools/pixelsec/internal/gate"
	"nithronos/tools/pixelsec/internal/probe"
)

type Presenter struct {
	out  io.Writer
	json bool

	title *color.Color
	good  *color.Color
	warn  *color.Color
	bad   *color.Color
}

func New(out io.Writer, jsonOut, noColor bool) *Presenter {
	p := &Presenter{
		out:   out,
		json:  jsonOut,
		title: color.New(color.FgCyan, color.Bold),
		good:  color.New(color.FgGreen),
		warn:  color.New(color.FgYellow),
		bad:   color.New(color.FgRed),
	}
	if noColor {
		for _, c := range []*color.Color{p.title, p.good, p.warn, p.bad} {
			c.DisableColor()
		}
	}
	return p
}

func (p *Presenter) Devices(recs []device.Record) error {
	if p.json {
		if recs == nil {
			recs = []device.Record{}
		}
		return p.encode(map[string]any{"devices": recs})
	}
	if len(recs) == 0 {
		p.warn.Fprintln(p.out, "[-] No devices found")
		return nil
	}
	p.good.Fprintf(p.out, "[+] Found %d device(s):\n", len(recs))
	for _, r := range recs {
		fmt.Fprintf(p.out, "    - %s (%s)\n", r.Serial, r.Model)
	}
	return nil
}

func (p *Presenter) Attributes(a probe.Attributes) error {
	if p.json {
		return p.encode(a)
	}
	locked := p.good
	if !a.BootloaderLocked {
		locked = p.bad
	}
	p.title.Fprintln(p.out, "╔════════════════════════════════════════════╗")
	p.title.Fprintln(p.out, "║         Pixel Security Status              ║")
	p.title.Fprintln(p.out, "╠════════════════════════════════════════════╣")
	p.row(nil, "Serial:", a.Serial)
	p.row(locked, "Bootloader Locked:", fmt.Sprint(a.BootloaderLocked))
	p.row(nil, "AVB State:", a.VerityMode)
	p.row(nil, "Secure Element FW:", a.SecureElementFirmware)
	p.row(nil, "Boot State:", a.VerifiedBootState)
	p.row(nil, "StrongBox:", a.SecureStorage)
	p.title.Fprintln(p.out, "╚════════════════════════════════════════════╝")
	return nil
}

func (p *Presenter) row(c *color.Color, label, value string) {
	v := fmt.Sprintf("%-24s", value)
	if c != nil {
		v = c.Sprint(v)
	}
	fmt.Fprintf(p.out, "║ %-18s %s ║\n", label, v)
}

// Denied explains why a privileged operation did not run.
func (p *Presenter) Denied(op, serial string, err error) error {
	if p.json {
		return p.encode(map[string]any{
			"operation":  op,
			"serial":     serial,
			"authorized": false,
			"reason":     err.Error(),
		})
	}
	p.bad.Fprintf(p.out, "[!] %s on %s not authorized: %v\n", op, serial, err)
	switch {
	case errors.Is(err, gate.ErrMissingKey):
		fmt.Fprintln(p.out, "[*] This operation requires an authorization key. Pass it with -k <64 hex characters>.")
	case errors.Is(err, gate.ErrInvalidKeyFormat):
		fmt.Fprintf(p.out, "[*] The key must be exactly %d hexadecimal characters (%d bytes).\n", gate.KeyHexLen, gate.KeySize)
	case errors.Is(err, gate.ErrDecryptionFailed):
		fmt.Fprintln(p.out, "[*] The key does not open the configured payload. Check --payload and the key issued with it.")
	}
	return nil
}

// Authorized reports a privileged operation that passed the gate.
func (p *Presenter) Authorized(op, serial string, result error) error {
	if p.json {
		m := map[string]any{"operation": op, "serial": serial, "authorized": true}
		if result != nil {
			m["result"] = result.Error()
		}
		return p.encode(m)
	}
	p.good.Fprintf(p.out, "[+] %s on %s authorized\n", op, serial)
	if result != nil {
		p.warn.Fprintf(p.out, "[-] %v\n", result)
	}
	return nil
}

func (p *Presenter) encode(v any) error {
	enc := json.NewEncoder(p.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

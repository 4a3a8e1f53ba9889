package probe

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"nithronos/tools/pixelsec/internal/bridge/bridgetest"
	"nithronos/tools/pixelsec/internal/metrics"
)

func TestProbeAllQueriesFail(t *testing.T) {
	f := &bridgetest.Fake{}
	p := &Prober{Bridge: f, Log: zerolog.Nop(), Metrics: metrics.New("test")}

	got := p.Probe(context.Background(), "ABC123")
	assert.Equal(t, Attributes{
		Serial:                "ABC123",
		BootloaderLocked:      true,
		VerifiedBootState:     "Unknown",
		SecureElementFirmware: "Unknown",
		VerityMode:            "Unknown",
		SecureStorage:         "Requires elevated access",
	}, got)
	assert.Equal(t, Queries, f.Count("getprop"))
}

func TestProbePartialFailure(t *testing.T) {
	f := &bridgetest.Fake{Props: map[string]map[string]string{
		"ABC123": {PropVerifiedBootState: "green"},
	}}
	p := &Prober{Bridge: f, Log: zerolog.Nop()}

	got := p.Probe(context.Background(), "ABC123")
	assert.Equal(t, "green", got.VerifiedBootState)
	assert.True(t, got.BootloaderLocked)
	assert.Equal(t, Unknown, got.SecureElementFirmware)
	assert.Equal(t, Unknown, got.VerityMode)
	assert.Equal(t, SecureStorageSentinel, got.SecureStorage)
	assert.Equal(t, Queries, f.Count("getprop"))
}

func TestProbeAllQueriesSucceed(t *testing.T) {
	f := &bridgetest.Fake{Props: map[string]map[string]string{
		"S1": {
			PropFlashLocked:       "0",
			PropVerifiedBootState: "orange",
			PropHardwareRevision:  "MP1.0",
			PropVerityMode:        "enforcing",
		},
	}}
	var seen []string
	p := &Prober{Bridge: f, Log: zerolog.Nop(), OnQuery: func(prop string) { seen = append(seen, prop) }}

	got := p.Probe(context.Background(), "S1")
	assert.False(t, got.BootloaderLocked)
	assert.Equal(t, "orange", got.VerifiedBootState)
	assert.Equal(t, "MP1.0", got.SecureElementFirmware)
	assert.Equal(t, "enforcing", got.VerityMode)
	assert.Equal(t, SecureStorageSentinel, got.SecureStorage)
	assert.ElementsMatch(t, []string{PropFlashLocked, PropVerifiedBootState, PropHardwareRevision, PropVerityMode}, seen)
}

func TestProbeUnrecognisedLockValueStaysLocked(t *testing.T) {
	f := &bridgetest.Fake{Props: map[string]map[string]string{"S1": {PropFlashLocked: "maybe"}}}
	p := &Prober{Bridge: f, Log: zerolog.Nop()}
	assert.True(t, p.Probe(context.Background(), "S1").BootloaderLocked)
}

func TestProbeDoesNotCache(t *testing.T) {
	f := &bridgetest.Fake{}
	p := &Prober{Bridge: f, Log: zerolog.Nop()}
	p.Probe(context.Background(), "S1")
	p.Probe(context.Background(), "S1")
	assert.Equal(t, 2*Queries, f.Count("getprop"))
}

func TestDefaultsTable(t *testing.T) {
	assert.True(t, Defaults.BootloaderLocked)
	assert.Equal(t, Unknown, Defaults.VerifiedBootState)
	assert.Equal(t, Unknown, Defaults.SecureElementFirmware)
	assert.Equal(t, Unknown, Defaults.VerityMode)
	assert.Equal(t, SecureStorageSentinel, Defaults.SecureStorage)
}

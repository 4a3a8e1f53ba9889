package device

import (
	"context"

	"nithronos/tools/pixelsec/internal/bridge"
)

// Discover lists devices through b and keeps the members of fam.
func Discover(ctx context.Context, b bridge.Bridge, fam Family) ([]Record, error) {
	raw, err := b.ListDevices(ctx)
	if err != nil {
		return nil, err
	}
	return Parse(raw, fam), nil
}

// Resolve picks the target serial. An explicit serial is returned as given,
// without consulting the bridge, so devices outside the family or no longer
// listed can still be addressed.
func Resolve(ctx context.Context, b bridge.Bridge, fam Family, explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	recs, err := Discover(ctx, b, fam)
	if err != nil {
		return "", err
	}
	switch len(recs) {
	case 0:
		return "", ErrNoDevice
	case 1:
		return recs[0].Serial, nil
	default:
		serials := make([]string, len(recs))
		for i, r := range recs {
			serials[i] = r.Serial
		}
		return "", &AmbiguousError{Serials: serials}
	}
}

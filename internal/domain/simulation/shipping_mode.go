package simulation

import (
	"fmt"
	"strings"
)

// ShippingMode selects the freight leg for an order
type ShippingMode int

const (
	ShippingModeSea ShippingMode = iota
	ShippingModeAir
)

var shippingModeNames = map[ShippingMode]string{
	ShippingModeSea: "SEA",
	ShippingModeAir: "AIR",
}

// Name returns the mode name
func (m ShippingMode) Name() string {
	if name, ok := shippingModeNames[m]; ok {
		return name
	}
	return "UNKNOWN"
}

func (m ShippingMode) String() string {
	return m.Name()
}

// IsValid reports whether m is a known mode
func (m ShippingMode) IsValid() bool {
	_, ok := shippingModeNames[m]
	return ok
}

// ParseShippingMode converts "sea"/"air" (any case) to a ShippingMode.
// An empty string maps to SEA.
func ParseShippingMode(s string) (ShippingMode, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "SEA":
		return ShippingModeSea, nil
	case "AIR":
		return ShippingModeAir, nil
	default:
		return ShippingModeSea, fmt.Errorf("unknown shipping mode: %q", s)
	}
}

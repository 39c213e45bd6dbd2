package inventory

import (
	"fmt"
	"strings"
)

// CabinClass is the fare/service tier partitioning seat inventory per flight.
type CabinClass string

const (
	CabinEconomy  CabinClass = "ECONOMY"
	CabinBusiness CabinClass = "BUSINESS"
	CabinFirst    CabinClass = "FIRST"
)

func ParseCabinClass(raw string) (CabinClass, error) {
	switch CabinClass(strings.ToUpper(strings.TrimSpace(raw))) {
	case CabinEconomy:
		return CabinEconomy, nil
	case CabinBusiness:
		return CabinBusiness, nil
	case CabinFirst:
		return CabinFirst, nil
	default:
		return "", fmt.Errorf("invalid cabin class %q", raw)
	}
}

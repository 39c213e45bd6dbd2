package pricing

import (
	"fmt"
	"time"

	"github.com/dadopl/poc-flight-search/internal/inventory"
	"github.com/dadopl/poc-flight-search/pkg/money"
)

// RuleDescriptor is informational metadata about a pricing rule attached to
// a fare schedule. The actual computation is performed by the policy chain.
type RuleDescriptor struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Modifier    float64 `json:"modifier"`
}

// FareSchedule is the base price and validity window for one (flight, cabin)
// pair before rule-chain adjustments.
type FareSchedule struct {
	ID         string               `json:"id"`
	FlightID   string               `json:"flight_id"`
	CabinClass inventory.CabinClass `json:"cabin_class"`
	BasePrice  money.Money          `json:"base_price"`
	Rules      []RuleDescriptor     `json:"rules"`
	ValidFrom  time.Time            `json:"valid_from"`
	ValidTo    time.Time            `json:"valid_to"`
	Active     bool                 `json:"active"`
}

func NewFareSchedule(
	id, flightID string,
	cabin inventory.CabinClass,
	basePrice money.Money,
	rules []RuleDescriptor,
	validFrom, validTo time.Time,
) (*FareSchedule, error) {
	if !validTo.After(validFrom) {
		return nil, fmt.Errorf("fare validity: valid_to must be after valid_from")
	}

	return &FareSchedule{
		ID:         id,
		FlightID:   flightID,
		CabinClass: cabin,
		BasePrice:  basePrice,
		Rules:      rules,
		ValidFrom:  validFrom,
		ValidTo:    validTo,
		Active:     true,
	}, nil
}

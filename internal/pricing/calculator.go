package pricing

import (
	"time"

	"github.com/dadopl/poc-flight-search/pkg/money"
)

// Result is the final price together with the notes of every policy that
// changed it, in chain order.
type Result struct {
	FinalPrice   money.Money `json:"final_price"`
	AppliedRules []string    `json:"applied_rules"`
}

// Calculator threads a running price through an ordered policy chain. Each
// policy sees the price already adjusted by its predecessors, so percentage
// modifiers compound in pipeline order.
type Calculator struct {
	policies []Policy
}

func NewCalculator(policies []Policy) *Calculator {
	return &Calculator{policies: policies}
}

func (c *Calculator) Calculate(
	fare *FareSchedule,
	purchaseTime, departureTime time.Time,
	passengerCount, availableSeats, totalSeats int,
) (Result, error) {
	current := fare.BasePrice
	var appliedRules []string

	for _, policy := range c.policies {
		in := Input{
			CurrentPrice:   current,
			Fare:           fare,
			PurchaseTime:   purchaseTime,
			DepartureTime:  departureTime,
			PassengerCount: passengerCount,
			AvailableSeats: availableSeats,
			TotalSeats:     totalSeats,
		}

		if description := policy.Describe(in); description != "" {
			appliedRules = append(appliedRules, description)
		}

		next, err := policy.Apply(in)
		if err != nil {
			return Result{}, err
		}
		current = next
	}

	return Result{FinalPrice: current, AppliedRules: appliedRules}, nil
}

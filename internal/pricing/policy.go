package pricing

import (
	"time"

	"github.com/dadopl/poc-flight-search/pkg/money"
)

// Input carries everything a pricing policy may inspect. CurrentPrice is the
// running price already adjusted by earlier policies in the chain.
type Input struct {
	CurrentPrice   money.Money
	Fare           *FareSchedule
	PurchaseTime   time.Time
	DepartureTime  time.Time
	PassengerCount int
	AvailableSeats int
	TotalSeats     int
}

// Policy is one pure price adjustment. Apply returns the (possibly
// unchanged) price; Describe returns a human-readable note when the policy
// changed the price for these inputs, or "" otherwise.
type Policy interface {
	Apply(in Input) (money.Money, error)
	Describe(in Input) string
}

// fullDaysBetween returns the truncated number of full days in the absolute
// duration between two instants. The sign never inverts: a purchase recorded
// after departure yields the same distance as one equally far before it.
func fullDaysBetween(a, b time.Time) int {
	d := b.Sub(a)
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}

package pricing

import (
	"fmt"

	"github.com/dadopl/poc-flight-search/pkg/money"
)

const (
	earlyBirdDaysThreshold = 30
	earlyBirdModifier      = 0.85

	lastMinuteDaysThreshold = 7
	lastMinuteModifier      = 1.30

	lowAvailabilityThreshold = 0.20
	occupancyModifier        = 1.20

	groupSizeThreshold = 5
	groupModifier      = 0.90
)

// EarlyBirdPolicy discounts purchases made more than 30 days before departure.
type EarlyBirdPolicy struct{}

func (EarlyBirdPolicy) Apply(in Input) (money.Money, error) {
	if isEarlyBird(in) {
		return in.CurrentPrice.Multiply(earlyBirdModifier)
	}
	return in.CurrentPrice, nil
}

func (EarlyBirdPolicy) Describe(in Input) string {
	if isEarlyBird(in) {
		return fmt.Sprintf("Early bird discount: -15%% (purchased more than %d days before departure)", earlyBirdDaysThreshold)
	}
	return ""
}

func isEarlyBird(in Input) bool {
	return fullDaysBetween(in.PurchaseTime, in.DepartureTime) > earlyBirdDaysThreshold
}

// LastMinutePolicy surcharges purchases made fewer than 7 days before departure.
type LastMinutePolicy struct{}

func (LastMinutePolicy) Apply(in Input) (money.Money, error) {
	if isLastMinute(in) {
		return in.CurrentPrice.Multiply(lastMinuteModifier)
	}
	return in.CurrentPrice, nil
}

func (LastMinutePolicy) Describe(in Input) string {
	if isLastMinute(in) {
		return fmt.Sprintf("Last minute surcharge: +30%% (purchased less than %d days before departure)", lastMinuteDaysThreshold)
	}
	return ""
}

func isLastMinute(in Input) bool {
	return fullDaysBetween(in.PurchaseTime, in.DepartureTime) < lastMinuteDaysThreshold
}

// OccupancyPolicy surcharges cabins with less than 20% of seats remaining.
// Zero total seats never counts as high occupancy.
type OccupancyPolicy struct{}

func (OccupancyPolicy) Apply(in Input) (money.Money, error) {
	if isLowAvailability(in) {
		return in.CurrentPrice.Multiply(occupancyModifier)
	}
	return in.CurrentPrice, nil
}

func (OccupancyPolicy) Describe(in Input) string {
	if isLowAvailability(in) {
		return fmt.Sprintf("High occupancy surcharge: +20%% (less than %d%% seats available)", int(lowAvailabilityThreshold*100))
	}
	return ""
}

func isLowAvailability(in Input) bool {
	return in.TotalSeats > 0 && float64(in.AvailableSeats)/float64(in.TotalSeats) < lowAvailabilityThreshold
}

// GroupDiscountPolicy discounts bookings of five or more passengers.
type GroupDiscountPolicy struct{}

func (GroupDiscountPolicy) Apply(in Input) (money.Money, error) {
	if in.PassengerCount >= groupSizeThreshold {
		return in.CurrentPrice.Multiply(groupModifier)
	}
	return in.CurrentPrice, nil
}

func (GroupDiscountPolicy) Describe(in Input) string {
	if in.PassengerCount >= groupSizeThreshold {
		return fmt.Sprintf("Group discount: -10%% (%d or more passengers)", groupSizeThreshold)
	}
	return ""
}

// DefaultPolicies is the standard chain in its canonical order.
func DefaultPolicies() []Policy {
	return []Policy{
		EarlyBirdPolicy{},
		LastMinutePolicy{},
		OccupancyPolicy{},
		GroupDiscountPolicy{},
	}
}

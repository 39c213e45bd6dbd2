package pricing

import (
	"context"
	"time"

	"github.com/dadopl/poc-flight-search/internal/inventory"
	"github.com/dadopl/poc-flight-search/pkg/logger"
	"github.com/dadopl/poc-flight-search/pkg/money"
)

type Service struct {
	fares      FareStore
	calculator *Calculator
	logger     logger.Client
	now        func() time.Time
}

func NewService(fares FareStore, calculator *Calculator, logger logger.Client) *Service {
	return &Service{
		fares:      fares,
		calculator: calculator,
		logger:     logger,
		now:        time.Now,
	}
}

// SetClock replaces the purchase-time source. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// ComputePrice prices one (flight, cabin) for a purchase happening now.
// Returns (nil, nil, nil) when no fare schedule exists for the pair.
func (s *Service) ComputePrice(
	ctx context.Context,
	flightID string,
	cabin inventory.CabinClass,
	departureTime time.Time,
	passengerCount, availableSeats, totalSeats int,
) (*money.Money, []string, error) {
	fare, err := s.fares.FindByFlightAndCabin(ctx, flightID, cabin)
	if err != nil {
		return nil, nil, err
	}
	if fare == nil {
		return nil, nil, nil
	}

	result, err := s.calculator.Calculate(fare, s.now(), departureTime, passengerCount, availableSeats, totalSeats)
	if err != nil {
		return nil, nil, err
	}

	s.logger.Debug("price computed",
		logger.Field{Key: "flight_id", Value: flightID},
		logger.Field{Key: "cabin_class", Value: string(cabin)},
		logger.Field{Key: "final_price", Value: result.FinalPrice.Amount},
		logger.Field{Key: "rules_applied", Value: len(result.AppliedRules)},
	)
	return &result.FinalPrice, result.AppliedRules, nil
}

package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/dadopl/poc-flight-search/pkg/idgen"
	"github.com/dadopl/poc-flight-search/pkg/logger"
)

var ErrNotFound = errors.New("seat inventory not found")

type Service struct {
	repo   Repository
	idgen  idgen.Generator
	logger logger.Client
}

func NewService(repo Repository, idgen idgen.Generator, logger logger.Client) *Service {
	return &Service{
		repo:   repo,
		idgen:  idgen,
		logger: logger,
	}
}

// Initialize creates the seat inventory for one (flight, cabin) pair.
// It is created exactly once; re-initialization is rejected.
func (s *Service) Initialize(ctx context.Context, flightID string, cabin CabinClass, totalSeats, minimumThreshold int) (*SeatInventory, error) {
	existing, err := s.repo.FindByFlightAndCabin(ctx, flightID, cabin)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("seat inventory already initialized for flight %s cabin %s", flightID, cabin)
	}

	inv, err := Initialize(s.idgen.GenerateID(), flightID, cabin, totalSeats, minimumThreshold)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}

	s.logger.Info("seat inventory initialized",
		logger.Field{Key: "flight_id", Value: flightID},
		logger.Field{Key: "cabin_class", Value: string(cabin)},
		logger.Field{Key: "total_seats", Value: totalSeats},
	)
	return inv, nil
}

func (s *Service) Book(ctx context.Context, flightID string, cabin CabinClass, count int) (*SeatInventory, error) {
	return s.mutate(ctx, flightID, cabin, func(inv *SeatInventory) error {
		return inv.Book(count)
	})
}

func (s *Service) CancelBooking(ctx context.Context, flightID string, cabin CabinClass, count int) (*SeatInventory, error) {
	return s.mutate(ctx, flightID, cabin, func(inv *SeatInventory) error {
		return inv.CancelBooking(count)
	})
}

func (s *Service) BlockSeats(ctx context.Context, flightID string, cabin CabinClass, count int) (*SeatInventory, error) {
	return s.mutate(ctx, flightID, cabin, func(inv *SeatInventory) error {
		return inv.BlockSeats(count)
	})
}

func (s *Service) ReleaseBlockedSeats(ctx context.Context, flightID string, cabin CabinClass, count int) (*SeatInventory, error) {
	return s.mutate(ctx, flightID, cabin, func(inv *SeatInventory) error {
		return inv.ReleaseBlockedSeats(count)
	})
}

// mutate is a read-modify-write against one aggregate; the repository is
// responsible for detecting conflicting concurrent writes.
func (s *Service) mutate(ctx context.Context, flightID string, cabin CabinClass, op func(*SeatInventory) error) (*SeatInventory, error) {
	inv, err := s.repo.FindByFlightAndCabin(ctx, flightID, cabin)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, ErrNotFound
	}

	if err := op(inv); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, inv); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Service) FindByFlight(ctx context.Context, flightID string) ([]*SeatInventory, error) {
	inventories, err := s.repo.FindByFlight(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if len(inventories) == 0 {
		return nil, ErrNotFound
	}
	return inventories, nil
}

package flight

import (
	"context"
	"errors"
	"time"

	"github.com/dadopl/poc-flight-search/internal/airport"
	"github.com/dadopl/poc-flight-search/pkg/idgen"
	"github.com/dadopl/poc-flight-search/pkg/logger"
)

var ErrNotFound = errors.New("flight not found")

type Service struct {
	repo     Repository
	airports airport.Repository
	idgen    idgen.Generator
	logger   logger.Client
}

func NewService(repo Repository, airports airport.Repository, idgen idgen.Generator, logger logger.Client) *Service {
	return &Service{
		repo:     repo,
		airports: airports,
		idgen:    idgen,
		logger:   logger,
	}
}

type ScheduleRequest struct {
	FlightNumber       string
	DepartureIATA      string
	ArrivalIATA        string
	DepartureTime      time.Time
	ArrivalTime        time.Time
	AircraftModel      string
	AircraftTotalSeats int
}

func (s *Service) Schedule(ctx context.Context, req ScheduleRequest) (*Flight, error) {
	departure, err := s.resolveAirport(ctx, req.DepartureIATA)
	if err != nil {
		return nil, err
	}
	arrival, err := s.resolveAirport(ctx, req.ArrivalIATA)
	if err != nil {
		return nil, err
	}

	f, err := Schedule(
		s.idgen.GenerateID(),
		req.FlightNumber,
		departure.ID,
		arrival.ID,
		req.DepartureTime,
		req.ArrivalTime,
		Aircraft{Model: req.AircraftModel, TotalSeats: req.AircraftTotalSeats},
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}

	s.logger.Info("flight scheduled",
		logger.Field{Key: "flight_id", Value: f.ID},
		logger.Field{Key: "flight_number", Value: f.FlightNumber},
		logger.Field{Key: "route", Value: departure.IATACode + "-" + arrival.IATACode},
	)
	return f, nil
}

func (s *Service) resolveAirport(ctx context.Context, iataCode string) (*airport.Airport, error) {
	code, err := airport.ParseIATACode(iataCode)
	if err != nil {
		return nil, err
	}
	a, err := s.airports.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, airport.ErrNotFound
	}
	return a, nil
}

func (s *Service) Delay(ctx context.Context, flightID string, newDepartureTime time.Time) (*Flight, error) {
	return s.mutate(ctx, flightID, func(f *Flight) error {
		return f.Delay(newDepartureTime)
	})
}

func (s *Service) Cancel(ctx context.Context, flightID, reason string) (*Flight, error) {
	return s.mutate(ctx, flightID, func(f *Flight) error {
		return f.Cancel(reason)
	})
}

func (s *Service) Board(ctx context.Context, flightID string) (*Flight, error) {
	return s.mutate(ctx, flightID, (*Flight).Board)
}

func (s *Service) Depart(ctx context.Context, flightID string) (*Flight, error) {
	return s.mutate(ctx, flightID, (*Flight).Depart)
}

func (s *Service) Arrive(ctx context.Context, flightID string) (*Flight, error) {
	return s.mutate(ctx, flightID, (*Flight).Arrive)
}

func (s *Service) mutate(ctx context.Context, flightID string, op func(*Flight) error) (*Flight, error) {
	f, err := s.repo.FindByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}

	if err := op(f); err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *Service) FindByID(ctx context.Context, flightID string) (*Flight, error) {
	f, err := s.repo.FindByID(ctx, flightID)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, ErrNotFound
	}
	return f, nil
}

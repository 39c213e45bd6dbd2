package airport

import (
	"context"
	"errors"
	"fmt"

	"github.com/dadopl/poc-flight-search/pkg/idgen"
	"github.com/dadopl/poc-flight-search/pkg/logger"
)

var ErrNotFound = errors.New("airport not found")

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

func (s *Service) Create(ctx context.Context, iataCode, name, country, city string) (*Airport, error) {
	a, err := New(s.idgen.GenerateID(), iataCode, name, country, city)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByCode(ctx, a.IATACode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("airport %q already exists", a.IATACode)
	}

	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("airport created",
		logger.Field{Key: "iata_code", Value: a.IATACode},
		logger.Field{Key: "airport_id", Value: a.ID},
	)
	return a, nil
}

func (s *Service) Activate(ctx context.Context, iataCode string) (*Airport, error) {
	return s.setActive(ctx, iataCode, true)
}

func (s *Service) Deactivate(ctx context.Context, iataCode string) (*Airport, error) {
	return s.setActive(ctx, iataCode, false)
}

func (s *Service) setActive(ctx context.Context, iataCode string, active bool) (*Airport, error) {
	code, err := ParseIATACode(iataCode)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}

	// Re-applying the current state is tolerated.
	if a.Active == active {
		return a, nil
	}

	if active {
		a.Activate()
	} else {
		a.Deactivate()
	}

	if err := s.repo.Save(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) FindByCode(ctx context.Context, iataCode string) (*Airport, error) {
	code, err := ParseIATACode(iataCode)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

func (s *Service) ListActive(ctx context.Context) ([]*Airport, error) {
	return s.repo.ListActive(ctx)
}

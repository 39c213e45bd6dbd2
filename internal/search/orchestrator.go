package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dadopl/poc-flight-search/internal/airport"
	"github.com/dadopl/poc-flight-search/internal/flight"
	"github.com/dadopl/poc-flight-search/internal/inventory"
	"github.com/dadopl/poc-flight-search/pkg/logger"
	"github.com/dadopl/poc-flight-search/pkg/money"
)

var ErrSessionNotFound = errors.New("search session not found")

// InvalidRequestError marks criteria or filter validation failures, as
// opposed to infrastructure errors on the same path.
type InvalidRequestError struct {
	Err error
}

func (e *InvalidRequestError) Error() string { return e.Err.Error() }

func (e *InvalidRequestError) Unwrap() error { return e.Err }

// genericFailureReason is all a caller sees when execution breaks; internal
// error detail stays in the logs.
const genericFailureReason = "Search execution failed. Please try again."

// Collaborator contracts consumed by the orchestrator. Lookups return
// (nil, nil) when the entity is absent.

type AirportDirectory interface {
	FindByCode(ctx context.Context, iataCode string) (*airport.Airport, error)
}

type FlightDirectory interface {
	FindByRoute(ctx context.Context, departureAirportID, arrivalAirportID string, from, to time.Time) ([]*flight.Flight, error)
	CountDeparturesFrom(ctx context.Context, departureAirportID string, date time.Time) (int, error)
}

type AvailabilityFinder interface {
	FindByFlightAndCabin(ctx context.Context, flightID string, cabin inventory.CabinClass) (*inventory.SeatInventory, error)
}

type Pricer interface {
	ComputePrice(ctx context.Context, flightID string, cabin inventory.CabinClass, departureTime time.Time, passengerCount, availableSeats, totalSeats int) (*money.Money, []string, error)
}

type CapacityGate interface {
	CanAcceptFlight(ctx context.Context, iataCode string, date time.Time, scheduledCount int) (bool, error)
}

// Orchestrator drives a search session end to end: capacity gate, flight
// enumeration, per-flight pricing, filtering, sorting and result caching.
type Orchestrator struct {
	sessions     SessionStore
	results      ResultsCache
	airports     AirportDirectory
	flights      FlightDirectory
	availability AvailabilityFinder
	pricer       Pricer
	limiter      CapacityGate
	logger       logger.Client

	now   func() time.Time
	newID func() string
}

func NewOrchestrator(
	sessions SessionStore,
	results ResultsCache,
	airports AirportDirectory,
	flights FlightDirectory,
	availability AvailabilityFinder,
	pricer Pricer,
	limiter CapacityGate,
	logger logger.Client,
) *Orchestrator {
	return &Orchestrator{
		sessions:     sessions,
		results:      results,
		airports:     airports,
		flights:      flights,
		availability: availability,
		pricer:       pricer,
		limiter:      limiter,
		logger:       logger,
		now:          time.Now,
		newID:        uuid.NewString,
	}
}

// SetClock replaces the time source. Intended for tests.
func (o *Orchestrator) SetClock(now func() time.Time) {
	o.now = now
}

// Initiate validates the request, persists a PENDING session and triggers
// execution in-process. The returned session id is valid either way: a
// failed execution leaves a FAILED session behind, retrievable by id.
func (o *Orchestrator) Initiate(ctx context.Context, criteria Criteria, filters Filters) (string, error) {
	normalized, err := criteria.Normalize(o.now())
	if err != nil {
		return "", &InvalidRequestError{Err: err}
	}
	if err := filters.Validate(); err != nil {
		return "", &InvalidRequestError{Err: err}
	}

	session := NewSession(o.newID(), normalized, filters, o.now())
	if err := o.sessions.Save(ctx, session); err != nil {
		return "", err
	}

	o.logger.Info("search initiated",
		logger.Field{Key: "session_id", Value: session.ID},
		logger.Field{Key: "route", Value: normalized.DepartureIATA + "-" + normalized.ArrivalIATA},
		logger.Field{Key: "date", Value: normalized.DepartureDate},
	)

	if err := o.Execute(ctx, session.ID); err != nil {
		return "", err
	}
	return session.ID, nil
}

// Execute runs the search pipeline for one session. Lookup and pipeline
// failures are absorbed into a FAILED session rather than returned: there
// is no synchronous caller waiting on an exception channel. Only an unknown
// session id or a session-store failure surfaces as an error.
func (o *Orchestrator) Execute(ctx context.Context, sessionID string) error {
	session, err := o.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	if err := session.Start(); err != nil {
		return err
	}
	if err := o.sessions.Save(ctx, session); err != nil {
		return err
	}

	items, execErr := o.buildResults(ctx, session)
	if execErr == nil {
		execErr = o.results.Store(ctx, session.ID, items)
	}

	if execErr != nil {
		o.logger.Error("search execution failed",
			logger.Field{Key: "session_id", Value: session.ID},
			logger.Field{Key: "err", Value: execErr.Error()},
		)
		if err := session.Fail(genericFailureReason); err != nil {
			return err
		}
		return o.sessions.Save(ctx, session)
	}

	if err := session.Complete(len(items)); err != nil {
		return err
	}
	if err := o.sessions.Save(ctx, session); err != nil {
		return err
	}

	o.logger.Info("search completed",
		logger.Field{Key: "session_id", Value: session.ID},
		logger.Field{Key: "result_count", Value: len(items)},
	)
	return nil
}

func (o *Orchestrator) buildResults(ctx context.Context, session *Session) ([]ResultItem, error) {
	criteria := session.Criteria

	departure, err := o.resolveAirport(ctx, criteria.DepartureIATA)
	if err != nil {
		return nil, err
	}
	arrival, err := o.resolveAirport(ctx, criteria.ArrivalIATA)
	if err != nil {
		return nil, err
	}

	date, err := time.Parse(DateLayout, criteria.DepartureDate)
	if err != nil {
		return nil, fmt.Errorf("invalid departure date %q: %w", criteria.DepartureDate, err)
	}

	// The capacity gate runs before any enumeration; a full airport yields
	// an empty, successfully completed search.
	scheduled, err := o.flights.CountDeparturesFrom(ctx, departure.ID, date)
	if err != nil {
		return nil, err
	}
	accepts, err := o.limiter.CanAcceptFlight(ctx, criteria.DepartureIATA, date, scheduled)
	if err != nil {
		return nil, err
	}
	if !accepts {
		o.logger.Info("daily capacity reached, returning empty result set",
			logger.Field{Key: "session_id", Value: session.ID},
			logger.Field{Key: "airport", Value: criteria.DepartureIATA},
			logger.Field{Key: "scheduled", Value: scheduled},
		)
		return []ResultItem{}, nil
	}

	dayStart := date
	dayEnd := date.Add(24*time.Hour - time.Second)
	flights, err := o.flights.FindByRoute(ctx, departure.ID, arrival.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	items := make([]ResultItem, 0, len(flights))
	for _, f := range flights {
		inv, err := o.availability.FindByFlightAndCabin(ctx, f.ID, criteria.CabinClass)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			// No inventory record for the cabin means the flight simply
			// does not sell that cabin.
			continue
		}
		if inv.AvailableSeats() < criteria.PassengerCount {
			continue
		}

		price, _, err := o.pricer.ComputePrice(ctx, f.ID, criteria.CabinClass, f.DepartureTime,
			criteria.PassengerCount, inv.AvailableSeats(), inv.TotalSeats)
		if err != nil {
			return nil, err
		}
		if price == nil {
			continue
		}

		if !passesFilters(*price, f, session.Filters) {
			continue
		}

		items = append(items, ResultItem{
			FlightID:       f.ID,
			FlightNumber:   f.FlightNumber,
			DepartureIATA:  criteria.DepartureIATA,
			ArrivalIATA:    criteria.ArrivalIATA,
			DepartureTime:  f.DepartureTime,
			ArrivalTime:    f.ArrivalTime,
			AvailableSeats: inv.AvailableSeats(),
			CabinClass:     criteria.CabinClass,
			Price:          *price,
		})
	}

	// Stable sort keeps the route enumeration order between equal prices.
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Price.Amount < items[j].Price.Amount
	})
	return items, nil
}

func (o *Orchestrator) resolveAirport(ctx context.Context, iataCode string) (*airport.Airport, error) {
	a, err := o.airports.FindByCode(ctx, iataCode)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("airport %q not found", iataCode)
	}
	return a, nil
}

func passesFilters(price money.Money, f *flight.Flight, filters Filters) bool {
	if filters.MaxPrice != nil {
		ok, err := price.LessThanOrEqual(*filters.MaxPrice)
		// A currency mismatch excludes the flight rather than failing the
		// whole search.
		if err != nil || !ok {
			return false
		}
	}

	if filters.MaxDurationMinutes != nil {
		minutes := int(f.ArrivalTime.Sub(f.DepartureTime) / time.Minute)
		if minutes > *filters.MaxDurationMinutes {
			return false
		}
	}

	// All modeled flights are direct, so the direct-only filter never
	// excludes anything.
	return true
}

// GetResults reads one page of a cached result set. An expired or absent
// cache entry yields an empty page, never an error, and retrieval never
// re-runs availability or pricing.
func (o *Orchestrator) GetResults(ctx context.Context, sessionID string, page, perPage int) (ResultsPage, error) {
	if page < 1 {
		return ResultsPage{}, fmt.Errorf("page must be >= 1, got %d", page)
	}
	if perPage < 1 {
		return ResultsPage{}, fmt.Errorf("per page must be >= 1, got %d", perPage)
	}

	items, found, err := o.results.Get(ctx, sessionID)
	if err != nil {
		return ResultsPage{}, err
	}
	if !found {
		items = []ResultItem{}
	}

	// (page-1)*perPage wraps negative for huge page numbers; a wrapped
	// index clamps to the end like any other past-the-end page.
	total := len(items)
	offset := (page - 1) * perPage
	if offset < 0 || offset > total {
		offset = total
	}
	end := offset + perPage
	if end < 0 || end > total {
		end = total
	}

	return ResultsPage{
		Items:   items[offset:end],
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// AvailabilityItem is one flight on a route with its live seat counts for
// a cabin. Unlike search results it is never cached or priced.
type AvailabilityItem struct {
	FlightID       string               `json:"flight_id"`
	FlightNumber   string               `json:"flight_number"`
	DepartureTime  time.Time            `json:"departure_time"`
	ArrivalTime    time.Time            `json:"arrival_time"`
	CabinClass     inventory.CabinClass `json:"cabin_class"`
	AvailableSeats int                  `json:"available_seats"`
	IsAvailable    bool                 `json:"is_available"`
	IsNearlyFull   bool                 `json:"is_nearly_full"`
}

// CheckAvailability lists the flights on a route for one day with their
// current seat availability in the given cabin. Flights not selling the
// cabin are omitted.
func (o *Orchestrator) CheckAvailability(ctx context.Context, departureIATA, arrivalIATA string, date time.Time, cabin inventory.CabinClass) ([]AvailabilityItem, error) {
	departure, err := o.resolveAirport(ctx, departureIATA)
	if err != nil {
		return nil, err
	}
	arrival, err := o.resolveAirport(ctx, arrivalIATA)
	if err != nil {
		return nil, err
	}

	dayStart := date
	dayEnd := date.Add(24*time.Hour - time.Second)
	flights, err := o.flights.FindByRoute(ctx, departure.ID, arrival.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	items := make([]AvailabilityItem, 0, len(flights))
	for _, f := range flights {
		inv, err := o.availability.FindByFlightAndCabin(ctx, f.ID, cabin)
		if err != nil {
			return nil, err
		}
		if inv == nil {
			continue
		}
		items = append(items, AvailabilityItem{
			FlightID:       f.ID,
			FlightNumber:   f.FlightNumber,
			DepartureTime:  f.DepartureTime,
			ArrivalTime:    f.ArrivalTime,
			CabinClass:     cabin,
			AvailableSeats: inv.AvailableSeats(),
			IsAvailable:    inv.IsAvailable(),
			IsNearlyFull:   inv.IsNearlyFull(),
		})
	}
	return items, nil
}

// GetSession returns the session record, for status polling.
func (o *Orchestrator) GetSession(ctx context.Context, sessionID string) (*Session, error) {
	session, err := o.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return session, nil
}

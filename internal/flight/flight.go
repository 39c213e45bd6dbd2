package flight

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var flightNumberPattern = regexp.MustCompile(`^[A-Z]{2}\d{1,4}$`)

// Status is the lifecycle state of a flight.
type Status string

const (
	StatusScheduled Status = "SCHEDULED"
	StatusBoarding  Status = "BOARDING"
	StatusDelayed   Status = "DELAYED"
	StatusDeparted  Status = "DEPARTED"
	StatusArrived   Status = "ARRIVED"
	StatusCancelled Status = "CANCELLED"
)

var allowedTransitions = map[Status][]Status{
	StatusScheduled: {StatusBoarding, StatusDelayed, StatusCancelled},
	StatusBoarding:  {StatusDeparted, StatusCancelled},
	StatusDelayed:   {StatusBoarding, StatusCancelled},
	StatusDeparted:  {StatusArrived},
	StatusArrived:   {},
	StatusCancelled: {},
}

// InvalidTransitionError reports a disallowed status change.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot transition flight from %s to %s", e.From, e.To)
}

func assertCanTransition(from, to Status) error {
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return &InvalidTransitionError{From: from, To: to}
}

// Aircraft describes the equipment assigned to a flight.
type Aircraft struct {
	Model      string `json:"model"`
	TotalSeats int    `json:"total_seats"`
}

// Flight is one scheduled direct flight between two airports.
type Flight struct {
	ID                 string    `json:"id"`
	FlightNumber       string    `json:"flight_number"`
	DepartureAirportID string    `json:"departure_airport_id"`
	ArrivalAirportID   string    `json:"arrival_airport_id"`
	DepartureTime      time.Time `json:"departure_time"`
	ArrivalTime        time.Time `json:"arrival_time"`
	Aircraft           Aircraft  `json:"aircraft"`
	Status             Status    `json:"status"`
}

func Schedule(
	id, flightNumber, departureAirportID, arrivalAirportID string,
	departureTime, arrivalTime time.Time,
	aircraft Aircraft,
) (*Flight, error) {
	number := strings.ToUpper(strings.TrimSpace(flightNumber))
	if !flightNumberPattern.MatchString(number) {
		return nil, fmt.Errorf("invalid flight number %q: expected airline prefix and 1-4 digits", flightNumber)
	}

	if departureAirportID == arrivalAirportID {
		return nil, fmt.Errorf("departure and arrival airport must differ")
	}

	if !arrivalTime.After(departureTime) {
		return nil, fmt.Errorf("arrival time must be after departure time")
	}

	if aircraft.TotalSeats <= 0 {
		return nil, fmt.Errorf("aircraft total seats must be positive, got %d", aircraft.TotalSeats)
	}

	return &Flight{
		ID:                 id,
		FlightNumber:       number,
		DepartureAirportID: departureAirportID,
		ArrivalAirportID:   arrivalAirportID,
		DepartureTime:      departureTime,
		ArrivalTime:        arrivalTime,
		Aircraft:           aircraft,
		Status:             StatusScheduled,
	}, nil
}

func (f *Flight) Delay(newDepartureTime time.Time) error {
	if err := assertCanTransition(f.Status, StatusDelayed); err != nil {
		return err
	}
	if !newDepartureTime.Before(f.ArrivalTime) {
		return fmt.Errorf("new departure time must be before arrival time")
	}

	f.DepartureTime = newDepartureTime
	f.Status = StatusDelayed
	return nil
}

func (f *Flight) Cancel(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("cancellation reason cannot be empty")
	}
	if err := assertCanTransition(f.Status, StatusCancelled); err != nil {
		return err
	}

	f.Status = StatusCancelled
	return nil
}

func (f *Flight) Board() error {
	if err := assertCanTransition(f.Status, StatusBoarding); err != nil {
		return err
	}
	f.Status = StatusBoarding
	return nil
}

func (f *Flight) Depart() error {
	if err := assertCanTransition(f.Status, StatusDeparted); err != nil {
		return err
	}
	f.Status = StatusDeparted
	return nil
}

func (f *Flight) Arrive() error {
	if err := assertCanTransition(f.Status, StatusArrived); err != nil {
		return err
	}
	f.Status = StatusArrived
	return nil
}

package search

import (
	"fmt"
	"strings"
	"time"

	"github.com/dadopl/poc-flight-search/internal/airport"
	"github.com/dadopl/poc-flight-search/internal/inventory"
	"github.com/dadopl/poc-flight-search/pkg/money"
)

// DateLayout is the wire format of the requested departure date.
const DateLayout = "2006-01-02"

type Status string

const (
	StatusPending    Status = "PENDING"
	StatusProcessing Status = "PROCESSING"
	StatusCompleted  Status = "COMPLETED"
	StatusFailed     Status = "FAILED"
)

// InvalidStateError reports an operation attempted from a disallowed
// session state.
type InvalidStateError struct {
	Operation string
	Current   Status
	Required  Status
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s search session in status %s, expected %s", e.Operation, e.Current, e.Required)
}

// Criteria is what the caller is searching for. Immutable after validation.
type Criteria struct {
	DepartureIATA  string               `json:"departure_iata"`
	ArrivalIATA    string               `json:"arrival_iata"`
	DepartureDate  string               `json:"departure_date"`
	PassengerCount int                  `json:"passenger_count"`
	CabinClass     inventory.CabinClass `json:"cabin_class"`
}

// Normalize validates the criteria against today's date and returns a copy
// with canonical IATA codes. Today is inclusive: searching for a departure
// later the same day is allowed.
func (c Criteria) Normalize(today time.Time) (Criteria, error) {
	departure, err := airport.ParseIATACode(c.DepartureIATA)
	if err != nil {
		return Criteria{}, err
	}
	arrival, err := airport.ParseIATACode(c.ArrivalIATA)
	if err != nil {
		return Criteria{}, err
	}
	if departure == arrival {
		return Criteria{}, fmt.Errorf("departure and arrival airport must differ, got %q twice", departure)
	}

	if c.PassengerCount < 1 || c.PassengerCount > 9 {
		return Criteria{}, fmt.Errorf("passenger count must be between 1 and 9, got %d", c.PassengerCount)
	}

	cabin, err := inventory.ParseCabinClass(string(c.CabinClass))
	if err != nil {
		return Criteria{}, err
	}

	date, err := time.Parse(DateLayout, c.DepartureDate)
	if err != nil {
		return Criteria{}, fmt.Errorf("invalid departure date %q, expected YYYY-MM-DD", c.DepartureDate)
	}
	todayDate := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	if date.Before(todayDate) {
		return Criteria{}, fmt.Errorf("departure date %s is in the past", c.DepartureDate)
	}

	c.DepartureIATA = departure
	c.ArrivalIATA = arrival
	c.CabinClass = cabin
	return c, nil
}

// Filters narrow the result set. All fields are optional.
type Filters struct {
	MaxPrice           *money.Money `json:"max_price,omitempty"`
	MaxDurationMinutes *int         `json:"max_duration_minutes,omitempty"`
	DirectOnly         bool         `json:"direct_only"`
}

func (f Filters) Validate() error {
	if f.MaxDurationMinutes != nil && *f.MaxDurationMinutes <= 0 {
		return fmt.Errorf("max duration must be positive, got %d", *f.MaxDurationMinutes)
	}
	if f.MaxPrice != nil {
		if _, err := money.New(f.MaxPrice.Amount, f.MaxPrice.Currency); err != nil {
			return fmt.Errorf("invalid max price: %w", err)
		}
	}
	return nil
}

// Session tracks the lifecycle of one search request. Transitions are
// one-way: PENDING -> PROCESSING -> COMPLETED or FAILED, nothing else,
// and misuse fails loudly rather than being silently ignored.
type Session struct {
	ID            string    `json:"id"`
	Criteria      Criteria  `json:"criteria"`
	Filters       Filters   `json:"filters"`
	Status        Status    `json:"status"`
	ResultCount   *int      `json:"result_count,omitempty"`
	FailureReason string    `json:"failure_reason,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewSession(id string, criteria Criteria, filters Filters, createdAt time.Time) *Session {
	return &Session{
		ID:        id,
		Criteria:  criteria,
		Filters:   filters,
		Status:    StatusPending,
		CreatedAt: createdAt,
	}
}

func (s *Session) Start() error {
	if s.Status != StatusPending {
		return &InvalidStateError{Operation: "start", Current: s.Status, Required: StatusPending}
	}
	s.Status = StatusProcessing
	return nil
}

func (s *Session) Complete(resultCount int) error {
	if resultCount < 0 {
		return fmt.Errorf("result count cannot be negative, got %d", resultCount)
	}
	if s.Status != StatusProcessing {
		return &InvalidStateError{Operation: "complete", Current: s.Status, Required: StatusProcessing}
	}
	s.Status = StatusCompleted
	s.ResultCount = &resultCount
	return nil
}

func (s *Session) Fail(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return fmt.Errorf("failure reason cannot be empty")
	}
	if s.Status != StatusProcessing {
		return &InvalidStateError{Operation: "fail", Current: s.Status, Required: StatusProcessing}
	}
	s.Status = StatusFailed
	s.FailureReason = reason
	return nil
}

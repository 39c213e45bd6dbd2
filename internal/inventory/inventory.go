package inventory

import (
	"fmt"
	"math"
)

// InsufficientSeatsError reports a book or block request exceeding the
// remaining shared capacity pool.
type InsufficientSeatsError struct {
	Operation string
	Requested int
	Available int
}

func (e *InsufficientSeatsError) Error() string {
	return fmt.Sprintf("cannot %s %d seats: only %d available", e.Operation, e.Requested, e.Available)
}

// SeatInventory owns the booked/blocked seat counters for one (flight, cabin)
// pair. Booked and blocked seats draw from one capacity pool:
// booked + blocked <= total holds after every operation.
type SeatInventory struct {
	ID                        string     `json:"id"`
	FlightID                  string     `json:"flight_id"`
	CabinClass                CabinClass `json:"cabin_class"`
	TotalSeats                int        `json:"total_seats"`
	BookedSeats               int        `json:"booked_seats"`
	BlockedSeats              int        `json:"blocked_seats"`
	MinimumAvailableThreshold int        `json:"minimum_available_threshold"`
}

func Initialize(id, flightID string, cabin CabinClass, totalSeats, minimumAvailableThreshold int) (*SeatInventory, error) {
	if totalSeats <= 0 {
		return nil, fmt.Errorf("total seats must be positive, got %d", totalSeats)
	}
	if minimumAvailableThreshold < 0 {
		return nil, fmt.Errorf("minimum available threshold cannot be negative, got %d", minimumAvailableThreshold)
	}
	if minimumAvailableThreshold > totalSeats {
		return nil, fmt.Errorf("minimum available threshold %d exceeds total seats %d", minimumAvailableThreshold, totalSeats)
	}

	return &SeatInventory{
		ID:                        id,
		FlightID:                  flightID,
		CabinClass:                cabin,
		TotalSeats:                totalSeats,
		MinimumAvailableThreshold: minimumAvailableThreshold,
	}, nil
}

func (s *SeatInventory) Book(count int) error {
	if count <= 0 {
		return fmt.Errorf("book count must be positive, got %d", count)
	}
	if count > s.AvailableSeats() {
		return &InsufficientSeatsError{Operation: "book", Requested: count, Available: s.AvailableSeats()}
	}

	s.BookedSeats += count
	return nil
}

func (s *SeatInventory) CancelBooking(count int) error {
	if count <= 0 {
		return fmt.Errorf("cancel count must be positive, got %d", count)
	}
	if count > s.BookedSeats {
		return fmt.Errorf("cannot cancel %d bookings: only %d booked", count, s.BookedSeats)
	}

	s.BookedSeats -= count
	return nil
}

func (s *SeatInventory) BlockSeats(count int) error {
	if count <= 0 {
		return fmt.Errorf("block count must be positive, got %d", count)
	}
	if count > s.AvailableSeats() {
		return &InsufficientSeatsError{Operation: "block", Requested: count, Available: s.AvailableSeats()}
	}

	s.BlockedSeats += count
	return nil
}

func (s *SeatInventory) ReleaseBlockedSeats(count int) error {
	if count <= 0 {
		return fmt.Errorf("release count must be positive, got %d", count)
	}
	if count > s.BlockedSeats {
		return fmt.Errorf("cannot release %d seats: only %d blocked", count, s.BlockedSeats)
	}

	s.BlockedSeats -= count
	return nil
}

func (s *SeatInventory) AvailableSeats() int {
	return s.TotalSeats - s.BookedSeats - s.BlockedSeats
}

// IsAvailable reports whether availability is strictly above the configured
// minimum threshold.
func (s *SeatInventory) IsAvailable() bool {
	return s.AvailableSeats() > s.MinimumAvailableThreshold
}

// IsNearlyFull reports whether 10% or fewer of the total seats remain.
func (s *SeatInventory) IsNearlyFull() bool {
	threshold := int(math.Ceil(float64(s.TotalSeats) * 0.1))
	available := s.AvailableSeats()
	return available > 0 && available <= threshold
}

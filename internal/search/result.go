package search

import (
	"time"

	"github.com/dadopl/poc-flight-search/internal/inventory"
	"github.com/dadopl/poc-flight-search/pkg/money"
)

// ResultItem is one priced flight in a result set. It lives only in the
// results cache and is never persisted long-term.
type ResultItem struct {
	FlightID       string               `json:"flight_id"`
	FlightNumber   string               `json:"flight_number"`
	DepartureIATA  string               `json:"departure_iata"`
	ArrivalIATA    string               `json:"arrival_iata"`
	DepartureTime  time.Time            `json:"departure_time"`
	ArrivalTime    time.Time            `json:"arrival_time"`
	AvailableSeats int                  `json:"available_seats"`
	CabinClass     inventory.CabinClass `json:"cabin_class"`
	Price          money.Money          `json:"price"`
}

// ResultsPage is one page of a cached result set.
type ResultsPage struct {
	Items   []ResultItem `json:"items"`
	Total   int          `json:"total"`
	Page    int          `json:"page"`
	PerPage int          `json:"per_page"`
}

package flight

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

const flightColumns = `
	id, flight_number, departure_airport_id, arrival_airport_id,
	departure_time, arrival_time, aircraft_model, aircraft_total_seats, status
`

func scanFlight(row pgx.Row) (*Flight, error) {
	var f Flight
	var status string
	err := row.Scan(
		&f.ID, &f.FlightNumber, &f.DepartureAirportID, &f.ArrivalAirportID,
		&f.DepartureTime, &f.ArrivalTime, &f.Aircraft.Model, &f.Aircraft.TotalSeats, &status,
	)
	if err != nil {
		return nil, err
	}
	f.Status = Status(status)
	return &f, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*Flight, error) {
	f, err := scanFlight(r.pool.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query flight: %w", err)
	}
	return f, nil
}

func (r *postgresRepository) FindByRoute(ctx context.Context, departureAirportID, arrivalAirportID string, from, to time.Time) ([]*Flight, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+flightColumns+`
		FROM flights
		WHERE departure_airport_id = $1
		  AND arrival_airport_id = $2
		  AND departure_time BETWEEN $3 AND $4
		ORDER BY departure_time
	`, departureAirportID, arrivalAirportID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query flights by route: %w", err)
	}
	defer rows.Close()

	var flights []*Flight
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan flight: %w", err)
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func (r *postgresRepository) CountDeparturesFrom(ctx context.Context, departureAirportID string, date time.Time) (int, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	var count int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM flights
		WHERE departure_airport_id = $1
		  AND departure_time >= $2
		  AND departure_time < $3
	`, departureAirportID, dayStart, dayStart.Add(24*time.Hour)).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count departures: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) Save(ctx context.Context, f *Flight) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO flights (
			id, flight_number, departure_airport_id, arrival_airport_id,
			departure_time, arrival_time, aircraft_model, aircraft_total_seats, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			departure_time = EXCLUDED.departure_time,
			status = EXCLUDED.status
	`, f.ID, f.FlightNumber, f.DepartureAirportID, f.ArrivalAirportID,
		f.DepartureTime, f.ArrivalTime, f.Aircraft.Model, f.Aircraft.TotalSeats, string(f.Status))
	if err != nil {
		return fmt.Errorf("failed to save flight: %w", err)
	}
	return nil
}

package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) Repository {
	return &postgresRepository{pool: pool}
}

func (r *postgresRepository) FindByFlightAndCabin(ctx context.Context, flightID string, cabin CabinClass) (*SeatInventory, error) {
	var inv SeatInventory
	err := r.pool.QueryRow(ctx, `
		SELECT id, flight_id, cabin_class, total_seats, booked_seats, blocked_seats, minimum_available_threshold
		FROM flight_availabilities
		WHERE flight_id = $1 AND cabin_class = $2
	`, flightID, string(cabin)).Scan(
		&inv.ID, &inv.FlightID, &inv.CabinClass, &inv.TotalSeats,
		&inv.BookedSeats, &inv.BlockedSeats, &inv.MinimumAvailableThreshold,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query seat inventory: %w", err)
	}
	return &inv, nil
}

func (r *postgresRepository) FindByFlight(ctx context.Context, flightID string) ([]*SeatInventory, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, flight_id, cabin_class, total_seats, booked_seats, blocked_seats, minimum_available_threshold
		FROM flight_availabilities
		WHERE flight_id = $1
		ORDER BY cabin_class
	`, flightID)
	if err != nil {
		return nil, fmt.Errorf("failed to query seat inventories: %w", err)
	}
	defer rows.Close()

	var inventories []*SeatInventory
	for rows.Next() {
		var inv SeatInventory
		if err := rows.Scan(
			&inv.ID, &inv.FlightID, &inv.CabinClass, &inv.TotalSeats,
			&inv.BookedSeats, &inv.BlockedSeats, &inv.MinimumAvailableThreshold,
		); err != nil {
			return nil, fmt.Errorf("failed to scan seat inventory: %w", err)
		}
		inventories = append(inventories, &inv)
	}
	return inventories, rows.Err()
}

func (r *postgresRepository) Save(ctx context.Context, inv *SeatInventory) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO flight_availabilities (
			id, flight_id, cabin_class, total_seats, booked_seats, blocked_seats, minimum_available_threshold
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (flight_id, cabin_class) DO UPDATE SET
			booked_seats = EXCLUDED.booked_seats,
			blocked_seats = EXCLUDED.blocked_seats
	`, inv.ID, inv.FlightID, string(inv.CabinClass), inv.TotalSeats,
		inv.BookedSeats, inv.BlockedSeats, inv.MinimumAvailableThreshold)
	if err != nil {
		return fmt.Errorf("failed to save seat inventory: %w", err)
	}
	return nil
}

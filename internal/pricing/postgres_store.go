package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dadopl/poc-flight-search/internal/inventory"
)

type postgresFareStore struct {
	pool *pgxpool.Pool
}

func NewPostgresFareStore(pool *pgxpool.Pool) FareStore {
	return &postgresFareStore{pool: pool}
}

func (s *postgresFareStore) FindByFlightAndCabin(ctx context.Context, flightID string, cabin inventory.CabinClass) (*FareSchedule, error) {
	var (
		fare      FareSchedule
		cabinRaw  string
		rulesJSON []byte
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, flight_id, cabin_class, base_price_amount, base_price_currency,
		       rules, valid_from, valid_to, active
		FROM fare_schedules
		WHERE flight_id = $1 AND cabin_class = $2 AND active
	`, flightID, string(cabin)).Scan(
		&fare.ID, &fare.FlightID, &cabinRaw,
		&fare.BasePrice.Amount, &fare.BasePrice.Currency,
		&rulesJSON, &fare.ValidFrom, &fare.ValidTo, &fare.Active,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query fare schedule: %w", err)
	}

	fare.CabinClass = inventory.CabinClass(cabinRaw)
	if len(rulesJSON) > 0 {
		if err := json.Unmarshal(rulesJSON, &fare.Rules); err != nil {
			return nil, fmt.Errorf("failed to decode fare rules: %w", err)
		}
	}
	return &fare, nil
}

func (s *postgresFareStore) Save(ctx context.Context, fare *FareSchedule) error {
	rulesJSON, err := json.Marshal(fare.Rules)
	if err != nil {
		return fmt.Errorf("failed to encode fare rules: %w", err)
	}

	_, err = s.pool.Exec(ctx, `
		INSERT INTO fare_schedules (
			id, flight_id, cabin_class, base_price_amount, base_price_currency,
			rules, valid_from, valid_to, active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (flight_id, cabin_class) DO UPDATE SET
			base_price_amount = EXCLUDED.base_price_amount,
			base_price_currency = EXCLUDED.base_price_currency,
			rules = EXCLUDED.rules,
			valid_from = EXCLUDED.valid_from,
			valid_to = EXCLUDED.valid_to,
			active = EXCLUDED.active
	`, fare.ID, fare.FlightID, string(fare.CabinClass),
		fare.BasePrice.Amount, fare.BasePrice.Currency,
		rulesJSON, fare.ValidFrom, fare.ValidTo, fare.Active)
	if err != nil {
		return fmt.Errorf("failed to save fare schedule: %w", err)
	}
	return nil
}

package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dadopl/poc-flight-search/internal/inventory"
	"github.com/dadopl/poc-flight-search/pkg/money"
)

type postgresSessionStore struct {
	pool *pgxpool.Pool
}

func NewPostgresSessionStore(pool *pgxpool.Pool) SessionStore {
	return &postgresSessionStore{pool: pool}
}

func (s *postgresSessionStore) FindByID(ctx context.Context, sessionID string) (*Session, error) {
	var (
		session          Session
		cabin            string
		status           string
		maxPriceAmount   *int64
		maxPriceCurrency *string
	)
	err := s.pool.QueryRow(ctx, `
		SELECT id, departure_iata, arrival_iata, departure_date, passenger_count, cabin_class,
		       max_price_amount, max_price_currency, max_duration_minutes, direct_only,
		       status, result_count, failure_reason, created_at
		FROM search_sessions WHERE id = $1
	`, sessionID).Scan(
		&session.ID,
		&session.Criteria.DepartureIATA,
		&session.Criteria.ArrivalIATA,
		&session.Criteria.DepartureDate,
		&session.Criteria.PassengerCount,
		&cabin,
		&maxPriceAmount,
		&maxPriceCurrency,
		&session.Filters.MaxDurationMinutes,
		&session.Filters.DirectOnly,
		&status,
		&session.ResultCount,
		&session.FailureReason,
		&session.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query search session: %w", err)
	}

	session.Criteria.CabinClass = inventory.CabinClass(cabin)
	session.Status = Status(status)
	if maxPriceAmount != nil && maxPriceCurrency != nil {
		session.Filters.MaxPrice = &money.Money{Amount: *maxPriceAmount, Currency: *maxPriceCurrency}
	}
	return &session, nil
}

func (s *postgresSessionStore) Save(ctx context.Context, session *Session) error {
	var (
		maxPriceAmount   *int64
		maxPriceCurrency *string
	)
	if session.Filters.MaxPrice != nil {
		maxPriceAmount = &session.Filters.MaxPrice.Amount
		maxPriceCurrency = &session.Filters.MaxPrice.Currency
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO search_sessions (
			id, departure_iata, arrival_iata, departure_date, passenger_count, cabin_class,
			max_price_amount, max_price_currency, max_duration_minutes, direct_only,
			status, result_count, failure_reason, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			status = EXCLUDED.status,
			result_count = EXCLUDED.result_count,
			failure_reason = EXCLUDED.failure_reason
	`,
		session.ID,
		session.Criteria.DepartureIATA,
		session.Criteria.ArrivalIATA,
		session.Criteria.DepartureDate,
		session.Criteria.PassengerCount,
		string(session.Criteria.CabinClass),
		maxPriceAmount,
		maxPriceCurrency,
		session.Filters.MaxDurationMinutes,
		session.Filters.DirectOnly,
		string(session.Status),
		session.ResultCount,
		session.FailureReason,
		session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save search session: %w", err)
	}
	return nil
}

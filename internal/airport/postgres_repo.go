package airport

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

func (r *postgresRepository) FindByID(ctx context.Context, id string) (*Airport, error) {
	return r.findOne(ctx, `
		SELECT id, iata_code, name, country_code, city, active
		FROM airports WHERE id = $1
	`, id)
}

func (r *postgresRepository) FindByCode(ctx context.Context, iataCode string) (*Airport, error) {
	return r.findOne(ctx, `
		SELECT id, iata_code, name, country_code, city, active
		FROM airports WHERE iata_code = $1
	`, iataCode)
}

func (r *postgresRepository) findOne(ctx context.Context, query string, arg any) (*Airport, error) {
	var a Airport
	err := r.pool.QueryRow(ctx, query, arg).Scan(&a.ID, &a.IATACode, &a.Name, &a.Country, &a.City, &a.Active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query airport: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) ListActive(ctx context.Context) ([]*Airport, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, iata_code, name, country_code, city, active
		FROM airports WHERE active ORDER BY iata_code
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list airports: %w", err)
	}
	defer rows.Close()

	var airports []*Airport
	for rows.Next() {
		var a Airport
		if err := rows.Scan(&a.ID, &a.IATACode, &a.Name, &a.Country, &a.City, &a.Active); err != nil {
			return nil, fmt.Errorf("failed to scan airport: %w", err)
		}
		airports = append(airports, &a)
	}
	return airports, rows.Err()
}

func (r *postgresRepository) Save(ctx context.Context, a *Airport) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO airports (id, iata_code, name, country_code, city, active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (iata_code) DO UPDATE SET
			name = EXCLUDED.name,
			country_code = EXCLUDED.country_code,
			city = EXCLUDED.city,
			active = EXCLUDED.active
	`, a.ID, a.IATACode, a.Name, a.Country, a.City, a.Active)
	if err != nil {
		return fmt.Errorf("failed to save airport: %w", err)
	}
	return nil
}

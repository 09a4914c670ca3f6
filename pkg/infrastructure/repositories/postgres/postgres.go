// Package postgres provides read-only pgx implementations of the domain
// repositories. The core owns no schema and performs no migrations; these
// repositories read tables provisioned by the surrounding system.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/planforge/mrp/pkg/domain/entities"
)

// Connect creates a pgx connection pool and verifies connectivity
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse postgres DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return pool, nil
}

// withRetry runs a fetch, retrying exactly once on transient failure before
// surfacing DatabaseUnavailableError. Domain-level misses (no rows mapped
// to NotFoundError) and cancelled contexts are never retried.
func withRetry[T any](ctx context.Context, op string, fn func(context.Context) (T, error)) (T, error) {
	result, err := fn(ctx)
	if err == nil || isDomainError(err) || ctx.Err() != nil {
		return result, err
	}

	result, err = fn(ctx)
	if err == nil || isDomainError(err) {
		return result, err
	}

	var zero T
	return zero, &entities.DatabaseUnavailableError{Op: op, Err: err}
}

func isDomainError(err error) bool {
	var nf *entities.NotFoundError
	return errors.As(err, &nf)
}

func noRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}

// parseComponentType maps the stored component_type discriminator. Unknown
// values are rejected rather than defaulted: a mistyped row would otherwise
// flatten a sub-assembly into a leaf material.
func parseComponentType(s string) (entities.ComponentType, error) {
	switch s {
	case "material":
		return entities.ComponentMaterial, nil
	case "product":
		return entities.ComponentProduct, nil
	default:
		return entities.ComponentMaterial, fmt.Errorf("unknown component type %q", s)
	}
}

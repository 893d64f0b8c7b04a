package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/filmorate/filmorate-backend/internal/repository"
)

func NewRepositories(pool *pgxpool.Pool) repo.Repositories {
	return repo.Repositories{
		Users:  &usersRepo{pool},
		Films:  &filmsRepo{pool},
		Genres: &genresRepo{pool},
		Mpa:    &mpaRepo{pool},
	}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so existence checks
// can run inside or outside a transaction.
type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// withTx runs fn in a single transaction; multi-step mutations use it so a
// verified id cannot vanish before the write lands.
func withTx(ctx context.Context, pool *pgxpool.Pool, fn func(pgx.Tx) error) error {
	tx, err := pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback(ctx)
		return err
	}
	return tx.Commit(ctx)
}

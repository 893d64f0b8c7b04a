package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmorate/filmorate-backend/internal/models"
	"github.com/filmorate/filmorate-backend/internal/repository"
)

type genresRepo struct{ pool *pgxpool.Pool }

func NewGenres(pool *pgxpool.Pool) repository.Genres {
	return &genresRepo{pool: pool}
}

func (r *genresRepo) List(ctx context.Context) ([]models.Genre, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, name FROM genres ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Genre
	for rows.Next() {
		var g models.Genre
		if err := rows.Scan(&g.ID, &g.Name); err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	return out, rows.Err()
}

func (r *genresRepo) GetByID(ctx context.Context, id int64) (models.Genre, error) {
	var g models.Genre
	err := r.pool.QueryRow(ctx,
		`SELECT id, name FROM genres WHERE id=$1`, id).Scan(&g.ID, &g.Name)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Genre{}, models.NotFoundf("genre id=%d", id)
	}
	return g, err
}

type mpaRepo struct{ pool *pgxpool.Pool }

func NewMpaRatings(pool *pgxpool.Pool) repository.MpaRatings {
	return &mpaRepo{pool: pool}
}

func (r *mpaRepo) List(ctx context.Context) ([]models.MpaRating, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, description FROM mpa_ratings ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.MpaRating
	for rows.Next() {
		var m models.MpaRating
		if err := rows.Scan(&m.ID, &m.Name, &m.Description); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *mpaRepo) GetByID(ctx context.Context, id int64) (models.MpaRating, error) {
	var m models.MpaRating
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, description FROM mpa_ratings WHERE id=$1`,
		id).Scan(&m.ID, &m.Name, &m.Description)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.MpaRating{}, models.NotFoundf("mpa rating id=%d", id)
	}
	return m, err
}

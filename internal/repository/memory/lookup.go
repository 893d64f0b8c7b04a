package memory

import (
	"context"

	"github.com/filmorate/filmorate-backend/internal/models"
	"github.com/filmorate/filmorate-backend/internal/repository"
)

// Genres serves the fixed genre table from the seed data. Read-only, so no
// locking is needed.
type Genres struct {
	rows []models.Genre
}

var _ repository.Genres = (*Genres)(nil)

func NewGenres() *Genres {
	rows := make([]models.Genre, len(models.SeedGenres))
	copy(rows, models.SeedGenres)
	return &Genres{rows: rows}
}

func (s *Genres) List(_ context.Context) ([]models.Genre, error) {
	out := make([]models.Genre, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *Genres) GetByID(_ context.Context, id int64) (models.Genre, error) {
	for _, g := range s.rows {
		if g.ID == id {
			return g, nil
		}
	}
	return models.Genre{}, models.NotFoundf("genre id=%d", id)
}

// MpaRatings serves the fixed MPA rating table from the seed data.
type MpaRatings struct {
	rows []models.MpaRating
}

var _ repository.MpaRatings = (*MpaRatings)(nil)

func NewMpaRatings() *MpaRatings {
	rows := make([]models.MpaRating, len(models.SeedMpaRatings))
	copy(rows, models.SeedMpaRatings)
	return &MpaRatings{rows: rows}
}

func (s *MpaRatings) List(_ context.Context) ([]models.MpaRating, error) {
	out := make([]models.MpaRating, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *MpaRatings) GetByID(_ context.Context, id int64) (models.MpaRating, error) {
	for _, r := range s.rows {
		if r.ID == id {
			return r, nil
		}
	}
	return models.MpaRating{}, models.NotFoundf("mpa rating id=%d", id)
}

package services

import (
	"context"

	"github.com/filmorate/filmorate-backend/internal/models"
	repo "github.com/filmorate/filmorate-backend/internal/repository"
)

// LookupService serves the fixed genre and MPA rating tables.
type LookupService struct {
	genres repo.Genres
	mpa    repo.MpaRatings
}

func NewLookupService(genres repo.Genres, mpa repo.MpaRatings) *LookupService {
	return &LookupService{genres: genres, mpa: mpa}
}

func (s *LookupService) Genres(ctx context.Context) ([]models.Genre, error) {
	return s.genres.List(ctx)
}

func (s *LookupService) Genre(ctx context.Context, id int64) (models.Genre, error) {
	return s.genres.GetByID(ctx, id)
}

func (s *LookupService) MpaRatings(ctx context.Context) ([]models.MpaRating, error) {
	return s.mpa.List(ctx)
}

func (s *LookupService) MpaRating(ctx context.Context, id int64) (models.MpaRating, error) {
	return s.mpa.GetByID(ctx, id)
}

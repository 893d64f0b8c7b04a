package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/filmorate/filmorate-backend/internal/cache"
	"github.com/filmorate/filmorate-backend/internal/metrics"
	"github.com/filmorate/filmorate-backend/internal/models"
	repo "github.com/filmorate/filmorate-backend/internal/repository"
	"github.com/filmorate/filmorate-backend/internal/worker"
)

type FilmService struct {
	films  repo.Films
	genres repo.Genres
	mpa    repo.MpaRatings
	cache  *cache.Popularity // nil when Redis is disabled
	pool   *worker.Pool
	log    *slog.Logger
}

func NewFilmService(films repo.Films, genres repo.Genres, mpa repo.MpaRatings,
	pop *cache.Popularity, pool *worker.Pool, log *slog.Logger) *FilmService {
	return &FilmService{
		films:  films,
		genres: genres,
		mpa:    mpa,
		cache:  pop,
		pool:   pool,
		log:    log,
	}
}

func (s *FilmService) Create(ctx context.Context, f models.Film) (models.Film, error) {
	f.DedupGenres()
	if err := s.resolveLookups(ctx, &f); err != nil {
		return models.Film{}, err
	}
	created, err := s.films.Create(ctx, f)
	if err != nil {
		return models.Film{}, err
	}
	metrics.FilmsCreatedTotal.Inc()
	s.log.Info("film created", "film_id", created.ID, "name", created.Name)
	s.refreshPopularity(created.ID)
	return created, nil
}

func (s *FilmService) Update(ctx context.Context, f models.Film) (models.Film, error) {
	f.DedupGenres()
	if err := s.resolveLookups(ctx, &f); err != nil {
		return models.Film{}, err
	}
	return s.films.Update(ctx, f)
}

func (s *FilmService) Get(ctx context.Context, id int64) (models.Film, error) {
	return s.films.GetByID(ctx, id)
}

func (s *FilmService) List(ctx context.Context) ([]models.Film, error) {
	return s.films.List(ctx)
}

func (s *FilmService) Like(ctx context.Context, filmID, userID int64) error {
	if err := s.films.Like(ctx, filmID, userID); err != nil {
		return err
	}
	metrics.LikesTotal.WithLabelValues("like").Inc()
	s.refreshPopularity(filmID)
	return nil
}

func (s *FilmService) Unlike(ctx context.Context, filmID, userID int64) error {
	if err := s.films.Unlike(ctx, filmID, userID); err != nil {
		return err
	}
	metrics.LikesTotal.WithLabelValues("unlike").Inc()
	s.refreshPopularity(filmID)
	return nil
}

// Popular returns up to n films by like count descending, id ascending.
// The cache is advisory: any miss or shortfall falls through to storage.
func (s *FilmService) Popular(ctx context.Context, n int) ([]models.Film, error) {
	if n <= 0 {
		return []models.Film{}, nil
	}

	if s.cache != nil {
		ids, err := s.cache.TopIDs(ctx, n)
		if err == nil && len(ids) >= n {
			films, err := s.films.GetByIDs(ctx, ids)
			if err == nil && len(films) == len(ids) {
				return films, nil
			}
		}
		metrics.CacheFallbacksTotal.Inc()
	}
	return s.films.Top(ctx, n)
}

// RebuildPopularity reloads the cache from storage; called at startup.
func (s *FilmService) RebuildPopularity(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	counts, err := s.films.LikeCounts(ctx)
	if err != nil {
		return err
	}
	return s.cache.Rebuild(ctx, counts)
}

// refreshPopularity re-reads the authoritative like count off the request
// path. Recomputing instead of incrementing keeps idempotent like/unlike
// calls from drifting the cached score.
func (s *FilmService) refreshPopularity(filmID int64) {
	if s.cache == nil || s.pool == nil {
		return
	}
	s.pool.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		n, err := s.films.LikeCount(ctx, filmID)
		if err != nil {
			s.log.Warn("popularity refresh: count", "film_id", filmID, "err", err)
			return
		}
		if err := s.cache.SetCount(ctx, filmID, n); err != nil {
			s.log.Warn("popularity refresh: cache", "film_id", filmID, "err", err)
		}
	})
}

// resolveLookups validates genre and rating references and fills in their
// display names from the lookup tables.
func (s *FilmService) resolveLookups(ctx context.Context, f *models.Film) error {
	for i, g := range f.Genres {
		full, err := s.genres.GetByID(ctx, g.ID)
		if err != nil {
			return err
		}
		f.Genres[i] = full
	}
	if f.Mpa != nil {
		full, err := s.mpa.GetByID(ctx, f.Mpa.ID)
		if err != nil {
			return err
		}
		f.Mpa = &full
	}
	return nil
}

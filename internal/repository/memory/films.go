package memory

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/filmorate/filmorate-backend/internal/models"
	"github.com/filmorate/filmorate-backend/internal/repository"
)

// Films keeps films and their like set in maps. Likes reference users, so the
// store holds the user store for existence checks. Lock order is always
// films.mu before users.mu.
type Films struct {
	mu    sync.RWMutex
	seq   atomic.Int64
	films map[int64]models.Film
	likes map[int64]map[int64]struct{} // film id -> liker set
	users *Users
}

var _ repository.Films = (*Films)(nil)

func NewFilms(users *Users) *Films {
	return &Films{
		films: make(map[int64]models.Film),
		likes: make(map[int64]map[int64]struct{}),
		users: users,
	}
}

func (s *Films) Create(_ context.Context, f models.Film) (models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.ID = s.seq.Add(1)
	s.films[f.ID] = cloneFilm(f)
	s.likes[f.ID] = make(map[int64]struct{})
	return f, nil
}

func (s *Films) GetByID(_ context.Context, id int64) (models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, ok := s.films[id]
	if !ok {
		return models.Film{}, models.NotFoundf("film id=%d", id)
	}
	return cloneFilm(f), nil
}

func (s *Films) GetByIDs(_ context.Context, ids []int64) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Film, 0, len(ids))
	for _, id := range ids {
		if f, ok := s.films[id]; ok {
			out = append(out, cloneFilm(f))
		}
	}
	return out, nil
}

func (s *Films) List(_ context.Context) ([]models.Film, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Film, 0, len(s.films))
	for _, f := range s.films {
		out = append(out, cloneFilm(f))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Films) Update(_ context.Context, f models.Film) (models.Film, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.films[f.ID]; !ok {
		return models.Film{}, models.NotFoundf("film id=%d", f.ID)
	}
	s.films[f.ID] = cloneFilm(f)
	return f, nil
}

func (s *Films) Like(_ context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFilmAndUser(filmID, userID); err != nil {
		return err
	}
	s.likes[filmID][userID] = struct{}{}
	return nil
}

func (s *Films) Unlike(_ context.Context, filmID, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireFilmAndUser(filmID, userID); err != nil {
		return err
	}
	delete(s.likes[filmID], userID)
	return nil
}

func (s *Films) LikeCount(_ context.Context, filmID int64) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	likers, ok := s.likes[filmID]
	if !ok {
		return 0, models.NotFoundf("film id=%d", filmID)
	}
	return int64(len(likers)), nil
}

func (s *Films) LikersOf(_ context.Context, filmID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	likers, ok := s.likes[filmID]
	if !ok {
		return nil, models.NotFoundf("film id=%d", filmID)
	}
	out := make([]int64, 0, len(likers))
	for uid := range likers {
		out = append(out, uid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

func (s *Films) Top(_ context.Context, n int) ([]models.Film, error) {
	if n <= 0 {
		return []models.Film{}, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	type ranked struct {
		film  models.Film
		likes int
	}
	all := make([]ranked, 0, len(s.films))
	for id, f := range s.films {
		all = append(all, ranked{film: f, likes: len(s.likes[id])})
	}
	// Like count descending, film id ascending for equal counts.
	sort.Slice(all, func(i, j int) bool {
		if all[i].likes != all[j].likes {
			return all[i].likes > all[j].likes
		}
		return all[i].film.ID < all[j].film.ID
	})

	if n > len(all) {
		n = len(all)
	}
	out := make([]models.Film, 0, n)
	for _, r := range all[:n] {
		out = append(out, cloneFilm(r.film))
	}
	return out, nil
}

func (s *Films) LikeCounts(_ context.Context) (map[int64]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[int64]int64, len(s.films))
	for id := range s.films {
		out[id] = int64(len(s.likes[id]))
	}
	return out, nil
}

func (s *Films) requireFilmAndUser(filmID, userID int64) error {
	if _, ok := s.films[filmID]; !ok {
		return models.NotFoundf("film id=%d", filmID)
	}
	if !s.users.exists(userID) {
		return models.NotFoundf("user id=%d", userID)
	}
	return nil
}

// cloneFilm copies the genre slice so callers never alias stored state.
func cloneFilm(f models.Film) models.Film {
	if f.Genres != nil {
		genres := make([]models.Genre, len(f.Genres))
		copy(genres, f.Genres)
		f.Genres = genres
	}
	if f.Mpa != nil {
		mpa := *f.Mpa
		f.Mpa = &mpa
	}
	return f
}

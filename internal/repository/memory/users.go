// Package memory holds the in-memory storage tier. It predates the postgres
// tier, implements the same contracts and backs the tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/filmorate/filmorate-backend/internal/models"
	"github.com/filmorate/filmorate-backend/internal/repository"
)

// Users keeps users and their friendship edges in maps. One RWMutex guards
// both logical tables; ids come from an atomic counter, never from scanning
// existing keys.
type Users struct {
	mu      sync.RWMutex
	seq     atomic.Int64
	users   map[int64]models.User
	friends map[int64]map[int64]struct{} // user id -> out-edge set
}

var _ repository.Users = (*Users)(nil)

func NewUsers() *Users {
	return &Users{
		users:   make(map[int64]models.User),
		friends: make(map[int64]map[int64]struct{}),
	}
}

func (s *Users) Create(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, other := range s.users {
		if strings.EqualFold(other.Email, u.Email) {
			return models.User{}, models.Duplicatef("email %q already in use", u.Email)
		}
	}

	u.ID = s.seq.Add(1)
	s.users[u.ID] = u
	s.friends[u.ID] = make(map[int64]struct{})
	return u, nil
}

func (s *Users) GetByID(_ context.Context, id int64) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return models.User{}, models.NotFoundf("user id=%d", id)
	}
	return u, nil
}

func (s *Users) GetByIDs(_ context.Context, ids []int64) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (s *Users) List(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Users) Update(_ context.Context, u models.User) (models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.ID]; !ok {
		return models.User{}, models.NotFoundf("user id=%d", u.ID)
	}
	for id, other := range s.users {
		if id != u.ID && strings.EqualFold(other.Email, u.Email) {
			return models.User{}, models.Duplicatef("email %q already in use", u.Email)
		}
	}
	s.users[u.ID] = u
	return u, nil
}

func (s *Users) AddFriend(_ context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireBoth(userID, friendID); err != nil {
		return err
	}
	s.friends[userID][friendID] = struct{}{}
	return nil
}

func (s *Users) RemoveFriend(_ context.Context, userID, friendID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireBoth(userID, friendID); err != nil {
		return err
	}
	delete(s.friends[userID], friendID)
	return nil
}

func (s *Users) Friends(_ context.Context, userID int64) ([]models.Friend, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges, ok := s.friends[userID]
	if !ok {
		return nil, models.NotFoundf("user id=%d", userID)
	}
	out := make([]models.Friend, 0, len(edges))
	for fid := range edges {
		status := models.FriendStatusPending
		if _, reciprocal := s.friends[fid][userID]; reciprocal {
			status = models.FriendStatusConfirmed
		}
		out = append(out, models.Friend{ID: fid, Status: status})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *Users) FriendIDs(_ context.Context, userID int64) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges, ok := s.friends[userID]
	if !ok {
		return nil, models.NotFoundf("user id=%d", userID)
	}
	out := make([]int64, 0, len(edges))
	for fid := range edges {
		out = append(out, fid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// exists is used by the film store for like existence checks.
func (s *Users) exists(id int64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[id]
	return ok
}

func (s *Users) requireBoth(userID, friendID int64) error {
	if _, ok := s.users[userID]; !ok {
		return models.NotFoundf("user id=%d", userID)
	}
	if _, ok := s.users[friendID]; !ok {
		return models.NotFoundf("user id=%d", friendID)
	}
	return nil
}

package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/filmorate/filmorate-backend/internal/metrics"
	"github.com/filmorate/filmorate-backend/internal/models"
	repo "github.com/filmorate/filmorate-backend/internal/repository"
)

type UserService struct {
	users repo.Users
	log   *slog.Logger
}

func NewUserService(users repo.Users, log *slog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) Create(ctx context.Context, u models.User) (models.User, error) {
	applyNameDefault(&u)
	created, err := s.users.Create(ctx, u)
	if err != nil {
		return models.User{}, err
	}
	metrics.UsersCreatedTotal.Inc()
	s.log.Info("user created", "user_id", created.ID, "login", created.Login)
	return created, nil
}

func (s *UserService) Update(ctx context.Context, u models.User) (models.User, error) {
	applyNameDefault(&u)
	return s.users.Update(ctx, u)
}

func (s *UserService) Get(ctx context.Context, id int64) (models.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) AddFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return models.Validationf("user %d cannot friend itself", userID)
	}
	if err := s.users.AddFriend(ctx, userID, friendID); err != nil {
		return err
	}
	metrics.FriendEdgesTotal.WithLabelValues("add").Inc()
	s.log.Info("friend added", "user_id", userID, "friend_id", friendID)
	return nil
}

func (s *UserService) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	if userID == friendID {
		return models.Validationf("user %d cannot unfriend itself", userID)
	}
	if err := s.users.RemoveFriend(ctx, userID, friendID); err != nil {
		return err
	}
	metrics.FriendEdgesTotal.WithLabelValues("remove").Inc()
	return nil
}

// Friends returns userID's out-edges with the derived reciprocity status.
func (s *UserService) Friends(ctx context.Context, userID int64) ([]models.Friend, error) {
	return s.users.Friends(ctx, userID)
}

// MutualFriends intersects the two users' friend sets. The result is
// symmetric in its arguments even though the underlying edges are directed.
func (s *UserService) MutualFriends(ctx context.Context, userID, otherID int64) ([]int64, error) {
	mine, err := s.users.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	theirs, err := s.users.FriendIDs(ctx, otherID)
	if err != nil {
		return nil, err
	}

	other := make(map[int64]struct{}, len(theirs))
	for _, id := range theirs {
		other[id] = struct{}{}
	}
	common := []int64{}
	for _, id := range mine { // already sorted ascending
		if _, ok := other[id]; ok {
			common = append(common, id)
		}
	}
	return common, nil
}

// applyNameDefault substitutes the login for a blank display name.
func applyNameDefault(u *models.User) {
	if strings.TrimSpace(u.Name) == "" {
		u.Name = u.Login
	}
}

package repository

import (
	"context"

	"github.com/filmorate/filmorate-backend/internal/models"
)

// Repositories bundles one implementation of every storage contract.
type Repositories struct {
	Users  Users
	Films  Films
	Genres Genres
	Mpa    MpaRatings
}

// Users is the user entity store plus the friendship graph it owns.
// Mutations that touch two ids verify both exist and fail with
// models.ErrNotFound without partial effect.
type Users interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByID(ctx context.Context, id int64) (models.User, error)
	GetByIDs(ctx context.Context, ids []int64) ([]models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, u models.User) (models.User, error)

	// AddFriend inserts the directed edge userID -> friendID, a no-op when the
	// edge already exists.
	AddFriend(ctx context.Context, userID, friendID int64) error
	// RemoveFriend removes the edge; removing an absent edge is a no-op.
	RemoveFriend(ctx context.Context, userID, friendID int64) error
	// Friends returns the out-edges of userID with derived reciprocity status,
	// ordered by friend id.
	Friends(ctx context.Context, userID int64) ([]models.Friend, error)
	// FriendIDs returns just the out-edge ids of userID.
	FriendIDs(ctx context.Context, userID int64) ([]int64, error)
}

// Films is the film entity store plus the like set it owns.
type Films interface {
	Create(ctx context.Context, f models.Film) (models.Film, error)
	GetByID(ctx context.Context, id int64) (models.Film, error)
	// GetByIDs returns films in the order of ids; unknown ids are skipped.
	GetByIDs(ctx context.Context, ids []int64) ([]models.Film, error)
	List(ctx context.Context) ([]models.Film, error)
	Update(ctx context.Context, f models.Film) (models.Film, error)

	// Like and Unlike are idempotent; both verify film and user exist.
	Like(ctx context.Context, filmID, userID int64) error
	Unlike(ctx context.Context, filmID, userID int64) error
	LikeCount(ctx context.Context, filmID int64) (int64, error)
	LikersOf(ctx context.Context, filmID int64) ([]int64, error)

	// Top returns up to n films ordered by like count descending, then film id
	// ascending. Zero-like films are included.
	Top(ctx context.Context, n int) ([]models.Film, error)
	// LikeCounts returns like counts for every film, including zero-like ones.
	LikeCounts(ctx context.Context) (map[int64]int64, error)
}

// Genres reads the fixed genre lookup table.
type Genres interface {
	List(ctx context.Context) ([]models.Genre, error)
	GetByID(ctx context.Context, id int64) (models.Genre, error)
}

// MpaRatings reads the fixed MPA rating lookup table.
type MpaRatings interface {
	List(ctx context.Context) ([]models.MpaRating, error)
	GetByID(ctx context.Context, id int64) (models.MpaRating, error)
}

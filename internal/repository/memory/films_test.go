package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate-backend/internal/models"
)

func newFilm(name string) models.Film {
	return models.Film{
		Name:        name,
		Description: "a film",
		ReleaseDate: models.NewDate(2000, time.January, 1),
		Duration:    120,
	}
}

func seedFilms(t *testing.T, n int) (*Films, *Users, []models.Film) {
	t.Helper()
	users := NewUsers()
	films := NewFilms(users)
	ctx := context.Background()

	out := make([]models.Film, 0, n)
	for i := 0; i < n; i++ {
		f, err := films.Create(ctx, newFilm("film"))
		require.NoError(t, err)
		out = append(out, f)
	}
	return films, users, out
}

func TestFilmsLikeIsIdempotent(t *testing.T) {
	films, users, created := seedFilms(t, 1)
	ctx := context.Background()

	u, err := users.Create(ctx, newUser("a@example.com", "alice"))
	require.NoError(t, err)

	require.NoError(t, films.Like(ctx, created[0].ID, u.ID))
	require.NoError(t, films.Like(ctx, created[0].ID, u.ID))

	n, err := films.LikeCount(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, films.Unlike(ctx, created[0].ID, u.ID))
	require.NoError(t, films.Unlike(ctx, created[0].ID, u.ID))

	n, err = films.LikeCount(ctx, created[0].ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

func TestFilmsLikeRequiresFilmAndUser(t *testing.T) {
	films, users, created := seedFilms(t, 1)
	ctx := context.Background()

	u, _ := users.Create(ctx, newUser("a@example.com", "alice"))

	assert.ErrorIs(t, films.Like(ctx, 999, u.ID), models.ErrNotFound)
	assert.ErrorIs(t, films.Like(ctx, created[0].ID, 999), models.ErrNotFound)
}

func TestFilmsTopOrdersByLikesThenID(t *testing.T) {
	films, users, created := seedFilms(t, 3)
	ctx := context.Background()

	a, _ := users.Create(ctx, newUser("a@example.com", "alice"))
	b, _ := users.Create(ctx, newUser("b@example.com", "bob"))

	// film 2 gets two likes, films 1 and 3 one each.
	require.NoError(t, films.Like(ctx, created[1].ID, a.ID))
	require.NoError(t, films.Like(ctx, created[1].ID, b.ID))
	require.NoError(t, films.Like(ctx, created[0].ID, a.ID))
	require.NoError(t, films.Like(ctx, created[2].ID, b.ID))

	top, err := films.Top(ctx, 10)
	require.NoError(t, err)
	require.Len(t, top, 3)
	assert.Equal(t, created[1].ID, top[0].ID)
	// Equal counts break ties on ascending id.
	assert.Equal(t, created[0].ID, top[1].ID)
	assert.Equal(t, created[2].ID, top[2].ID)
}

func TestFilmsTopTruncatesAndHandlesNonPositiveN(t *testing.T) {
	films, _, _ := seedFilms(t, 3)
	ctx := context.Background()

	top, err := films.Top(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, top, 2)

	top, err = films.Top(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, top)

	top, err = films.Top(ctx, -5)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestFilmsGetByIDsPreservesOrder(t *testing.T) {
	films, _, created := seedFilms(t, 3)

	got, err := films.GetByIDs(context.Background(),
		[]int64{created[2].ID, created[0].ID, 999})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, created[2].ID, got[0].ID)
	assert.Equal(t, created[0].ID, got[1].ID)
}

func TestFilmsGetDoesNotAliasStoredGenres(t *testing.T) {
	users := NewUsers()
	films := NewFilms(users)
	ctx := context.Background()

	f := newFilm("film")
	f.Genres = []models.Genre{{ID: 1, Name: "Комедия"}}
	created, err := films.Create(ctx, f)
	require.NoError(t, err)

	got, err := films.GetByID(ctx, created.ID)
	require.NoError(t, err)
	got.Genres[0].Name = "mutated"

	again, err := films.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Комедия", again.Genres[0].Name)
}

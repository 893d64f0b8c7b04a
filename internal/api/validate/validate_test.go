package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/filmorate/filmorate-backend/internal/models"
)

func validUser() models.User {
	return models.User{
		Email:    "a@example.com",
		Login:    "alice",
		Birthday: models.NewDate(1990, time.June, 15),
	}
}

func validFilm() models.Film {
	return models.Film{
		Name:        "film",
		Description: "a film",
		ReleaseDate: models.NewDate(2000, time.January, 1),
		Duration:    120,
	}
}

func fields(errs Errs) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Field)
	}
	return out
}

func TestUserValid(t *testing.T) {
	assert.Nil(t, User(validUser()))
}

func TestUserFieldErrors(t *testing.T) {
	u := validUser()
	u.Email = "not-an-email"
	assert.Contains(t, fields(User(u)), "email")

	u = validUser()
	u.Email = " "
	assert.Contains(t, fields(User(u)), "email")

	u = validUser()
	u.Login = "has space"
	assert.Contains(t, fields(User(u)), "login")

	u = validUser()
	u.Login = ""
	assert.Contains(t, fields(User(u)), "login")

	u = validUser()
	u.Birthday = models.DateOf(time.Now().AddDate(1, 0, 0))
	assert.Contains(t, fields(User(u)), "birthday")
}

func TestUserBlankBirthdayAllowed(t *testing.T) {
	u := validUser()
	u.Birthday = models.Date{}
	assert.Nil(t, User(u))
}

func TestFilmValid(t *testing.T) {
	f := validFilm()
	assert.Nil(t, Film(f))

	// The floor itself is allowed.
	f.ReleaseDate = models.EarliestReleaseDate
	assert.Nil(t, Film(f))
}

func TestFilmFieldErrors(t *testing.T) {
	f := validFilm()
	f.Name = ""
	assert.Contains(t, fields(Film(f)), "name")

	f = validFilm()
	f.Description = strings.Repeat("x", 201)
	assert.Contains(t, fields(Film(f)), "description")

	f = validFilm()
	f.Description = strings.Repeat("ы", 200)
	assert.Nil(t, Film(f)) // rune count, not byte count

	f = validFilm()
	f.ReleaseDate = models.NewDate(1895, time.December, 27)
	assert.Contains(t, fields(Film(f)), "releaseDate")

	f = validFilm()
	f.ReleaseDate = models.Date{}
	assert.Contains(t, fields(Film(f)), "releaseDate")

	f = validFilm()
	f.Duration = 0
	assert.Contains(t, fields(Film(f)), "duration")

	f = validFilm()
	f.Duration = -10
	assert.Contains(t, fields(Film(f)), "duration")
}

func TestErrsErrorJoinsFields(t *testing.T) {
	errs := Errs{
		{Field: "email", Msg: "required"},
		{Field: "login", Msg: "required"},
	}
	assert.Equal(t, "email: required; login: required", errs.Error())
}

package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate-backend/internal/config"
	"github.com/filmorate/filmorate-backend/internal/models"
	"github.com/filmorate/filmorate-backend/internal/repository/memory"
	"github.com/filmorate/filmorate-backend/internal/services"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	users := memory.NewUsers()
	films := memory.NewFilms(users)

	us := services.NewUserService(users, log)
	fs := services.NewFilmService(films, memory.NewGenres(), memory.NewMpaRatings(), nil, nil, log)
	ls := services.NewLookupService(memory.NewGenres(), memory.NewMpaRatings())

	cfg := config.Config{Env: "test", PopularCount: 10}
	srv := httptest.NewServer(NewRouter(cfg, us, fs, ls))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body interface{}) *http.Response {
	t.Helper()

	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, url, rd)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decode(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
}

func createTestUser(t *testing.T, base, email, login string) models.User {
	t.Helper()
	resp := doJSON(t, http.MethodPost, base+"/api/v1/users", map[string]string{
		"email":    email,
		"login":    login,
		"birthday": "1990-06-15",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var u models.User
	decode(t, resp, &u)
	return u
}

func createTestFilm(t *testing.T, base, name string) models.Film {
	t.Helper()
	resp := doJSON(t, http.MethodPost, base+"/api/v1/films", map[string]interface{}{
		"name":        name,
		"description": "a film",
		"releaseDate": "2000-01-01",
		"duration":    120,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var f models.Film
	decode(t, resp, &f)
	return f
}

func TestCreateUserDefaultsNameAndAssignsID(t *testing.T) {
	srv := newTestServer(t)

	u := createTestUser(t, srv.URL, "a@example.com", "alice")
	assert.Equal(t, int64(1), u.ID)
	assert.Equal(t, "alice", u.Name)
}

func TestCreateUserValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/users", map[string]string{
		"email": "not-an-email",
		"login": "has space",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var apiErr struct {
		Code string `json:"code"`
	}
	decode(t, resp, &apiErr)
	assert.Equal(t, "validation_failed", apiErr.Code)
}

func TestCreateUserBadJSON(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/v1/users", "application/json",
		bytes.NewReader([]byte("{not json")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	srv := newTestServer(t)

	createTestUser(t, srv.URL, "a@example.com", "alice")
	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/users", map[string]string{
		"email": "a@example.com",
		"login": "alice2",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestGetUserNotFoundAndBadID(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/users/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/users/abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFriendsFlow(t *testing.T) {
	srv := newTestServer(t)

	a := createTestUser(t, srv.URL, "a@example.com", "alice")
	b := createTestUser(t, srv.URL, "b@example.com", "bob")
	c := createTestUser(t, srv.URL, "c@example.com", "carol")

	// a -> c, b -> c
	resp := doJSON(t, http.MethodPut,
		fmt.Sprintf("%s/api/v1/users/%d/friends/%d", srv.URL, a.ID, c.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var added idValue
	decode(t, resp, &added)
	assert.Equal(t, c.ID, added.ID)

	resp = doJSON(t, http.MethodPut,
		fmt.Sprintf("%s/api/v1/users/%d/friends/%d", srv.URL, b.ID, c.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// a's friend list carries the derived status.
	resp = doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/v1/users/%d/friends", srv.URL, a.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var friends []models.Friend
	decode(t, resp, &friends)
	require.Len(t, friends, 1)
	assert.Equal(t, c.ID, friends[0].ID)
	assert.Equal(t, models.FriendStatusPending, friends[0].Status)

	// common friends of a and b is just c.
	resp = doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/v1/users/%d/friends/common/%d", srv.URL, a.ID, b.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var common []idValue
	decode(t, resp, &common)
	require.Len(t, common, 1)
	assert.Equal(t, c.ID, common[0].ID)

	// remove and observe the empty list.
	resp = doJSON(t, http.MethodDelete,
		fmt.Sprintf("%s/api/v1/users/%d/friends/%d", srv.URL, a.ID, c.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet,
		fmt.Sprintf("%s/api/v1/users/%d/friends", srv.URL, a.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &friends)
	assert.Empty(t, friends)
}

func TestAddFriendSelfAndUnknown(t *testing.T) {
	srv := newTestServer(t)

	a := createTestUser(t, srv.URL, "a@example.com", "alice")

	resp := doJSON(t, http.MethodPut,
		fmt.Sprintf("%s/api/v1/users/%d/friends/%d", srv.URL, a.ID, a.ID), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = doJSON(t, http.MethodPut,
		fmt.Sprintf("%s/api/v1/users/%d/friends/999", srv.URL, a.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCreateFilmValidation(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/films", map[string]interface{}{
		"name":        "",
		"releaseDate": "1890-01-01",
		"duration":    0,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateFilmWithLookups(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodPost, srv.URL+"/api/v1/films", map[string]interface{}{
		"name":        "film",
		"description": "a film",
		"releaseDate": "2000-01-01",
		"duration":    120,
		"genres":      []map[string]int64{{"id": 1}, {"id": 2}},
		"mpa":         map[string]int64{"id": 3},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var f models.Film
	decode(t, resp, &f)
	require.Len(t, f.Genres, 2)
	assert.Equal(t, "Комедия", f.Genres[0].Name)
	require.NotNil(t, f.Mpa)
	assert.Equal(t, "PG-13", f.Mpa.Name)
}

func TestPopularFilmsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	f1 := createTestFilm(t, srv.URL, "first")
	f2 := createTestFilm(t, srv.URL, "second")
	a := createTestUser(t, srv.URL, "a@example.com", "alice")
	b := createTestUser(t, srv.URL, "b@example.com", "bob")

	for _, uid := range []int64{a.ID, b.ID} {
		resp := doJSON(t, http.MethodPut,
			fmt.Sprintf("%s/api/v1/films/%d/like/%d", srv.URL, f2.ID, uid), nil)
		require.Equal(t, http.StatusNoContent, resp.StatusCode)
	}
	resp := doJSON(t, http.MethodPut,
		fmt.Sprintf("%s/api/v1/films/%d/like/%d", srv.URL, f1.ID, a.ID), nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/films/popular", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var films []models.Film
	decode(t, resp, &films)
	require.Len(t, films, 2)
	assert.Equal(t, f2.ID, films[0].ID)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/films/popular?count=1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decode(t, resp, &films)
	assert.Len(t, films, 1)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/films/popular?count=abc", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestLikeUnknownFilm(t *testing.T) {
	srv := newTestServer(t)

	a := createTestUser(t, srv.URL, "a@example.com", "alice")
	resp := doJSON(t, http.MethodPut,
		fmt.Sprintf("%s/api/v1/films/999/like/%d", srv.URL, a.ID), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLookupEndpoints(t *testing.T) {
	srv := newTestServer(t)

	resp := doJSON(t, http.MethodGet, srv.URL+"/api/v1/genres", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var genres []models.Genre
	decode(t, resp, &genres)
	assert.Len(t, genres, 6)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/mpa/5", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var m models.MpaRating
	decode(t, resp, &m)
	assert.Equal(t, "NC-17", m.Name)

	resp = doJSON(t, http.MethodGet, srv.URL+"/api/v1/genres/99", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

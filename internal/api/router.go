package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/filmorate/filmorate-backend/internal/config"
	"github.com/filmorate/filmorate-backend/internal/metrics"
	"github.com/filmorate/filmorate-backend/internal/middleware"
	"github.com/filmorate/filmorate-backend/internal/models"
	"github.com/filmorate/filmorate-backend/internal/services"
)

func NewRouter(cfg config.Config, us *services.UserService, fs *services.FilmService, ls *services.LookupService) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.HTTPMetrics, middleware.RateLimit(cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	}))

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", listUsers(us))
			r.Post("/", createUser(us))
			r.Put("/", updateUser(us))
			r.Get("/{id}", getUser(us))
			r.Get("/{id}/friends", listFriends(us))
			r.Get("/{id}/friends/common/{otherId}", commonFriends(us))
			r.Put("/{id}/friends/{friendId}", addFriend(us))
			r.Delete("/{id}/friends/{friendId}", removeFriend(us))
		})

		r.Route("/films", func(r chi.Router) {
			r.Get("/", listFilms(fs))
			r.Post("/", createFilm(fs))
			r.Put("/", updateFilm(fs))
			r.Get("/popular", popularFilms(fs, cfg.PopularCount))
			r.Get("/{id}", getFilm(fs))
			r.Put("/{id}/like/{userId}", likeFilm(fs))
			r.Delete("/{id}/like/{userId}", unlikeFilm(fs))
		})

		r.Get("/genres", listGenres(ls))
		r.Get("/genres/{id}", getGenre(ls))
		r.Get("/mpa", listMpaRatings(ls))
		r.Get("/mpa/{id}", getMpaRating(ls))
	})

	return r
}

// idValue is the {"id": n} shape the friends endpoints respond with.
type idValue struct {
	ID int64 `json:"id"`
}

func idValues(ids []int64) []idValue {
	out := make([]idValue, 0, len(ids))
	for _, id := range ids {
		out = append(out, idValue{ID: id})
	}
	return out
}

// pathID parses a path parameter as an entity id; non-numeric ids are a
// validation failure, not a routing miss.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil {
		return 0, models.Validationf("path parameter %q must be an integer", name)
	}
	return id, nil
}

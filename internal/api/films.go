package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/filmorate/filmorate-backend/internal/api/httpx"
	"github.com/filmorate/filmorate-backend/internal/api/validate"
	"github.com/filmorate/filmorate-backend/internal/models"
	"github.com/filmorate/filmorate-backend/internal/services"
)

func listFilms(fs *services.FilmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		films, err := fs.List(r.Context())
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, films)
	}
}

func createFilm(fs *services.FilmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f models.Film
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad_json", "malformed request body", nil)
			return
		}
		if errs := validate.Film(f); errs != nil {
			httpx.WriteError(w, http.StatusBadRequest, "validation_failed", errs.Error(), errs)
			return
		}
		created, err := fs.Create(r.Context(), f)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, created)
	}
}

func updateFilm(fs *services.FilmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var f models.Film
		if err := json.NewDecoder(r.Body).Decode(&f); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad_json", "malformed request body", nil)
			return
		}
		if f.ID <= 0 {
			httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "id must be set", nil)
			return
		}
		if errs := validate.Film(f); errs != nil {
			httpx.WriteError(w, http.StatusBadRequest, "validation_failed", errs.Error(), errs)
			return
		}
		updated, err := fs.Update(r.Context(), f)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, updated)
	}
}

func getFilm(fs *services.FilmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		f, err := fs.Get(r.Context(), id)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, f)
	}
}

func likeFilm(fs *services.FilmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filmID, err := pathID(r, "id")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		userID, err := pathID(r, "userId")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		if err := fs.Like(r.Context(), filmID, userID); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func unlikeFilm(fs *services.FilmService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filmID, err := pathID(r, "id")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		userID, err := pathID(r, "userId")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		if err := fs.Unlike(r.Context(), filmID, userID); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func popularFilms(fs *services.FilmService, defaultCount int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := defaultCount
		if raw := r.URL.Query().Get("count"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "count must be an integer", nil)
				return
			}
			n = parsed
		}
		films, err := fs.Popular(r.Context(), n)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, films)
	}
}

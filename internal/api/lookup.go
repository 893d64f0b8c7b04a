package api

import (
	"net/http"

	"github.com/filmorate/filmorate-backend/internal/api/httpx"
	"github.com/filmorate/filmorate-backend/internal/services"
)

func listGenres(ls *services.LookupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		genres, err := ls.Genres(r.Context())
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, genres)
	}
}

func getGenre(ls *services.LookupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		g, err := ls.Genre(r.Context(), id)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, g)
	}
}

func listMpaRatings(ls *services.LookupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ratings, err := ls.MpaRatings(r.Context())
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, ratings)
	}
}

func getMpaRating(ls *services.LookupService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		m, err := ls.MpaRating(r.Context(), id)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, m)
	}
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/filmorate/filmorate-backend/internal/api/httpx"
	"github.com/filmorate/filmorate-backend/internal/api/validate"
	"github.com/filmorate/filmorate-backend/internal/models"
	"github.com/filmorate/filmorate-backend/internal/services"
)

func listUsers(us *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := us.List(r.Context())
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, users)
	}
}

func createUser(us *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.User
		if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad_json", "malformed request body", nil)
			return
		}
		if errs := validate.User(u); errs != nil {
			httpx.WriteError(w, http.StatusBadRequest, "validation_failed", errs.Error(), errs)
			return
		}
		created, err := us.Create(r.Context(), u)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusCreated, created)
	}
}

func updateUser(us *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var u models.User
		if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
			httpx.WriteError(w, http.StatusBadRequest, "bad_json", "malformed request body", nil)
			return
		}
		if u.ID <= 0 {
			httpx.WriteError(w, http.StatusBadRequest, "validation_failed", "id must be set", nil)
			return
		}
		if errs := validate.User(u); errs != nil {
			httpx.WriteError(w, http.StatusBadRequest, "validation_failed", errs.Error(), errs)
			return
		}
		updated, err := us.Update(r.Context(), u)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, updated)
	}
}

func getUser(us *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		u, err := us.Get(r.Context(), id)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, u)
	}
}

func listFriends(us *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		friends, err := us.Friends(r.Context(), id)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, friends)
	}
}

func commonFriends(us *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		otherID, err := pathID(r, "otherId")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		common, err := us.MutualFriends(r.Context(), id, otherID)
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, idValues(common))
	}
}

func addFriend(us *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		friendID, err := pathID(r, "friendId")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		if err := us.AddFriend(r.Context(), id, friendID); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		httpx.WriteJSON(w, http.StatusOK, idValue{ID: friendID})
	}
}

func removeFriend(us *services.UserService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		friendID, err := pathID(r, "friendId")
		if err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		if err := us.RemoveFriend(r.Context(), id, friendID); err != nil {
			httpx.WriteDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

package models

type User struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Login    string `json:"login"`
	Name     string `json:"name"`
	Birthday Date   `json:"birthday"`
}

// FriendStatus is derived from edge reciprocity, never stored:
// CONFIRMED iff the reverse edge also exists.
type FriendStatus string

const (
	FriendStatusPending   FriendStatus = "PENDING"
	FriendStatusConfirmed FriendStatus = "CONFIRMED"
)

// Friend is one directed out-edge of a user with its derived status.
type Friend struct {
	ID     int64        `json:"id"`
	Status FriendStatus `json:"status"`
}

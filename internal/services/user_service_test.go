package services

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/filmorate/filmorate-backend/internal/models"
	"github.com/filmorate/filmorate-backend/internal/repository/memory"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newUserService() (*UserService, *memory.Users) {
	users := memory.NewUsers()
	return NewUserService(users, testLogger()), users
}

func testUser(email, login string) models.User {
	return models.User{
		Email:    email,
		Login:    login,
		Birthday: models.NewDate(1990, time.June, 15),
	}
}

func TestCreateDefaultsNameToLogin(t *testing.T) {
	svc, _ := newUserService()

	created, err := svc.Create(context.Background(), testUser("a@example.com", "alice"))
	require.NoError(t, err)
	assert.Equal(t, "alice", created.Name)
}

func TestUpdateDefaultsNameToLogin(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	created, err := svc.Create(ctx, testUser("a@example.com", "alice"))
	require.NoError(t, err)

	created.Name = "   "
	updated, err := svc.Update(ctx, created)
	require.NoError(t, err)
	assert.Equal(t, "alice", updated.Name)
}

func TestCreateKeepsExplicitName(t *testing.T) {
	svc, _ := newUserService()

	u := testUser("a@example.com", "alice")
	u.Name = "Alice Liddell"
	created, err := svc.Create(context.Background(), u)
	require.NoError(t, err)
	assert.Equal(t, "Alice Liddell", created.Name)
}

func TestAddFriendRejectsSelf(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	a, err := svc.Create(ctx, testUser("a@example.com", "alice"))
	require.NoError(t, err)

	err = svc.AddFriend(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, models.ErrValidation)

	err = svc.RemoveFriend(ctx, a.ID, a.ID)
	assert.ErrorIs(t, err, models.ErrValidation)
}

func TestAddFriendUnknownFriendLeavesNoEdge(t *testing.T) {
	svc, users := newUserService()
	ctx := context.Background()

	a, err := svc.Create(ctx, testUser("a@example.com", "alice"))
	require.NoError(t, err)

	err = svc.AddFriend(ctx, a.ID, 999)
	require.ErrorIs(t, err, models.ErrNotFound)

	ids, err := users.FriendIDs(ctx, a.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestMutualFriendsIsSymmetric(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, testUser("a@example.com", "alice"))
	b, _ := svc.Create(ctx, testUser("b@example.com", "bob"))
	c, _ := svc.Create(ctx, testUser("c@example.com", "carol"))
	d, _ := svc.Create(ctx, testUser("d@example.com", "dave"))

	// a and b both befriended c; d is a's friend only.
	require.NoError(t, svc.AddFriend(ctx, a.ID, c.ID))
	require.NoError(t, svc.AddFriend(ctx, a.ID, d.ID))
	require.NoError(t, svc.AddFriend(ctx, b.ID, c.ID))

	ab, err := svc.MutualFriends(ctx, a.ID, b.ID)
	require.NoError(t, err)
	ba, err := svc.MutualFriends(ctx, b.ID, a.ID)
	require.NoError(t, err)

	assert.Equal(t, []int64{c.ID}, ab)
	assert.Equal(t, ab, ba)
}

func TestMutualFriendsEmptyAndMissingUser(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, testUser("a@example.com", "alice"))
	b, _ := svc.Create(ctx, testUser("b@example.com", "bob"))

	common, err := svc.MutualFriends(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.Empty(t, common)

	_, err = svc.MutualFriends(ctx, a.ID, 999)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestFriendsReportsReciprocityStatus(t *testing.T) {
	svc, _ := newUserService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, testUser("a@example.com", "alice"))
	b, _ := svc.Create(ctx, testUser("b@example.com", "bob"))

	require.NoError(t, svc.AddFriend(ctx, a.ID, b.ID))
	friends, err := svc.Friends(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, models.FriendStatusPending, friends[0].Status)

	require.NoError(t, svc.AddFriend(ctx, b.ID, a.ID))
	friends, err = svc.Friends(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, friends, 1)
	assert.Equal(t, models.FriendStatusConfirmed, friends[0].Status)
}

package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmorate/filmorate-backend/internal/models"
	"github.com/filmorate/filmorate-backend/internal/repository"
)

type usersRepo struct{ pool *pgxpool.Pool }

func NewUsers(pool *pgxpool.Pool) repository.Users {
	return &usersRepo{pool: pool}
}

const userColumns = `id, email, login, name, birthday`

func (r *usersRepo) Create(ctx context.Context, u models.User) (models.User, error) {
	row := r.pool.QueryRow(ctx,
		`INSERT INTO users(email, login, name, birthday)
		 VALUES($1,$2,$3,$4)
		 RETURNING `+userColumns,
		u.Email, u.Login, u.Name, u.Birthday.Time,
	)
	created, err := scanUser(row)
	if isUniqueViolation(err) {
		return models.User{}, models.Duplicatef("email %q already in use", u.Email)
	}
	return created, err
}

func (r *usersRepo) GetByID(ctx context.Context, id int64) (models.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id=$1`, id)
	u, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.User{}, models.NotFoundf("user id=%d", id)
	}
	return u, err
}

func (r *usersRepo) GetByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[int64]models.User, len(ids))
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		byID[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Preserve the caller's order, skip unknown ids.
	out := make([]models.User, 0, len(ids))
	for _, id := range ids {
		if u, ok := byID[id]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *usersRepo) Update(ctx context.Context, u models.User) (models.User, error) {
	row := r.pool.QueryRow(ctx,
		`UPDATE users SET email=$2, login=$3, name=$4, birthday=$5
		 WHERE id=$1
		 RETURNING `+userColumns,
		u.ID, u.Email, u.Login, u.Name, u.Birthday.Time,
	)
	updated, err := scanUser(row)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return models.User{}, models.NotFoundf("user id=%d", u.ID)
	case isUniqueViolation(err):
		return models.User{}, models.Duplicatef("email %q already in use", u.Email)
	}
	return updated, err
}

func (r *usersRepo) AddFriend(ctx context.Context, userID, friendID int64) error {
	// Existence check and insert run in one transaction so a concurrent
	// delete cannot slip between them.
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := requireUsers(ctx, tx, userID, friendID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO friendships(user_id, friend_id) VALUES($1,$2)
			 ON CONFLICT DO NOTHING`,
			userID, friendID)
		return err
	})
}

func (r *usersRepo) RemoveFriend(ctx context.Context, userID, friendID int64) error {
	return withTx(ctx, r.pool, func(tx pgx.Tx) error {
		if err := requireUsers(ctx, tx, userID, friendID); err != nil {
			return err
		}
		// Removing an absent edge is a no-op.
		_, err := tx.Exec(ctx,
			`DELETE FROM friendships WHERE user_id=$1 AND friend_id=$2`,
			userID, friendID)
		return err
	})
}

func (r *usersRepo) Friends(ctx context.Context, userID int64) ([]models.Friend, error) {
	if err := requireUsers(ctx, r.pool, userID); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT f.friend_id, (rev.user_id IS NOT NULL) AS confirmed
		   FROM friendships f
		   LEFT JOIN friendships rev
		     ON rev.user_id = f.friend_id AND rev.friend_id = f.user_id
		  WHERE f.user_id = $1
		  ORDER BY f.friend_id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Friend{}
	for rows.Next() {
		var (
			fr        models.Friend
			confirmed bool
		)
		if err := rows.Scan(&fr.ID, &confirmed); err != nil {
			return nil, err
		}
		fr.Status = models.FriendStatusPending
		if confirmed {
			fr.Status = models.FriendStatusConfirmed
		}
		out = append(out, fr)
	}
	return out, rows.Err()
}

func (r *usersRepo) FriendIDs(ctx context.Context, userID int64) ([]int64, error) {
	if err := requireUsers(ctx, r.pool, userID); err != nil {
		return nil, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT friend_id FROM friendships WHERE user_id=$1 ORDER BY friend_id`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func scanUser(row pgx.Row) (models.User, error) {
	var (
		u        models.User
		birthday time.Time
	)
	if err := row.Scan(&u.ID, &u.Email, &u.Login, &u.Name, &birthday); err != nil {
		return models.User{}, err
	}
	u.Birthday = models.DateOf(birthday)
	return u, nil
}

func requireUsers(ctx context.Context, q querier, ids ...int64) error {
	for _, id := range ids {
		var exists bool
		if err := q.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`, id,
		).Scan(&exists); err != nil {
			return err
		}
		if !exists {
			return models.NotFoundf("user id=%d", id)
		}
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

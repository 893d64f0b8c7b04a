package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/filmorate/filmorate-backend/internal/models"
	"github.com/filmorate/filmorate-backend/internal/repository"
)

type filmsRepo struct{ pool *pgxpool.Pool }

func NewFilms(pool *pgxpool.Pool) repository.Films {
	return &filmsRepo{pool: pool}
}

const filmColumns = `f.id, f.name, f.description, f.release_date, f.duration,
	r.id, r.name, r.description`

const filmFrom = ` FROM films f LEFT JOIN mpa_ratings r ON r.id = f.rating_id`

func (s *filmsRepo) Create(ctx context.Context, f models.Film) (models.Film, error) {
	err := withTx(ctx, s.pool, func(tx pgx.Tx) error {
		var ratingID *int64
		if f.Mpa != nil {
			ratingID = &f.Mpa.ID
		}
		if err := tx.QueryRow(ctx,
			`INSERT INTO films(name, description, release_date, duration, rating_id)
			 VALUES($1,$2,$3,$4,$5)
			 RETURNING id`,
			f.Name, f.Description, f.ReleaseDate.Time, f.Duration, ratingID,
		).Scan(&f.ID); err != nil {
			return err
		}
		return insertGenres(ctx, tx, f.ID, f.Genres)
	})
	if err != nil {
		return models.Film{}, err
	}
	return f, nil
}

func (s *filmsRepo) GetByID(ctx context.Context, id int64) (models.Film, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT `+filmColumns+filmFrom+` WHERE f.id=$1`, id)
	f, err := scanFilm(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return models.Film{}, models.NotFoundf("film id=%d", id)
	}
	if err != nil {
		return models.Film{}, err
	}
	if err := s.attachGenres(ctx, []*models.Film{&f}); err != nil {
		return models.Film{}, err
	}
	return f, nil
}

func (s *filmsRepo) GetByIDs(ctx context.Context, ids []int64) ([]models.Film, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+filmColumns+filmFrom+` WHERE f.id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	films, err := collectFilms(rows)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]models.Film, len(films))
	for _, f := range films {
		byID[f.ID] = f
	}
	out := make([]models.Film, 0, len(ids))
	for _, id := range ids {
		if f, ok := byID[id]; ok {
			out = append(out, f)
		}
	}

	refs := make([]*models.Film, len(out))
	for i := range out {
		refs[i] = &out[i]
	}
	if err := s.attachGenres(ctx, refs); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *filmsRepo) List(ctx context.Context) ([]models.Film, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT `+filmColumns+filmFrom+` ORDER BY f.id`)
	if err != nil {
		return nil, err
	}
	films, err := collectFilms(rows)
	if err != nil {
		return nil, err
	}

	refs := make([]*models.Film, len(films))
	for i := range films {
		refs[i] = &films[i]
	}
	if err := s.attachGenres(ctx, refs); err != nil {
		return nil, err
	}
	return films, nil
}

func (s *filmsRepo) Update(ctx context.Context, f models.Film) (models.Film, error) {
	err := withTx(ctx, s.pool, func(tx pgx.Tx) error {
		var ratingID *int64
		if f.Mpa != nil {
			ratingID = &f.Mpa.ID
		}
		tag, err := tx.Exec(ctx,
			`UPDATE films SET name=$2, description=$3, release_date=$4, duration=$5, rating_id=$6
			 WHERE id=$1`,
			f.ID, f.Name, f.Description, f.ReleaseDate.Time, f.Duration, ratingID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return models.NotFoundf("film id=%d", f.ID)
		}
		if _, err := tx.Exec(ctx,
			`DELETE FROM film_genre WHERE film_id=$1`, f.ID); err != nil {
			return err
		}
		return insertGenres(ctx, tx, f.ID, f.Genres)
	})
	if err != nil {
		return models.Film{}, err
	}
	return f, nil
}

func (s *filmsRepo) Like(ctx context.Context, filmID, userID int64) error {
	return withTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := requireFilm(ctx, tx, filmID); err != nil {
			return err
		}
		if err := requireUsers(ctx, tx, userID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`INSERT INTO likes(film_id, user_id) VALUES($1,$2)
			 ON CONFLICT DO NOTHING`,
			filmID, userID)
		return err
	})
}

func (s *filmsRepo) Unlike(ctx context.Context, filmID, userID int64) error {
	return withTx(ctx, s.pool, func(tx pgx.Tx) error {
		if err := requireFilm(ctx, tx, filmID); err != nil {
			return err
		}
		if err := requireUsers(ctx, tx, userID); err != nil {
			return err
		}
		_, err := tx.Exec(ctx,
			`DELETE FROM likes WHERE film_id=$1 AND user_id=$2`,
			filmID, userID)
		return err
	})
}

func (s *filmsRepo) LikeCount(ctx context.Context, filmID int64) (int64, error) {
	if err := requireFilm(ctx, s.pool, filmID); err != nil {
		return 0, err
	}
	var n int64
	err := s.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM likes WHERE film_id=$1`, filmID).Scan(&n)
	return n, err
}

func (s *filmsRepo) LikersOf(ctx context.Context, filmID int64) ([]int64, error) {
	if err := requireFilm(ctx, s.pool, filmID); err != nil {
		return nil, err
	}
	rows, err := s.pool.Query(ctx,
		`SELECT user_id FROM likes WHERE film_id=$1 ORDER BY user_id`, filmID)
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

func (s *filmsRepo) Top(ctx context.Context, n int) ([]models.Film, error) {
	if n <= 0 {
		return []models.Film{}, nil
	}

	rows, err := s.pool.Query(ctx,
		`SELECT `+filmColumns+filmFrom+`
		   LEFT JOIN likes l ON l.film_id = f.id
		  GROUP BY f.id, f.name, f.description, f.release_date, f.duration,
		           r.id, r.name, r.description
		  ORDER BY COUNT(l.user_id) DESC, f.id ASC
		  LIMIT $1`,
		n)
	if err != nil {
		return nil, err
	}
	films, err := collectFilms(rows)
	if err != nil {
		return nil, err
	}

	refs := make([]*models.Film, len(films))
	for i := range films {
		refs[i] = &films[i]
	}
	if err := s.attachGenres(ctx, refs); err != nil {
		return nil, err
	}
	return films, nil
}

func (s *filmsRepo) LikeCounts(ctx context.Context) (map[int64]int64, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT f.id, COUNT(l.user_id)
		   FROM films f
		   LEFT JOIN likes l ON l.film_id = f.id
		  GROUP BY f.id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[int64]int64{}
	for rows.Next() {
		var id, n int64
		if err := rows.Scan(&id, &n); err != nil {
			return nil, err
		}
		out[id] = n
	}
	return out, rows.Err()
}

func insertGenres(ctx context.Context, tx pgx.Tx, filmID int64, genres []models.Genre) error {
	// Position preserves the client's insertion order on read-back.
	for i, g := range genres {
		if _, err := tx.Exec(ctx,
			`INSERT INTO film_genre(film_id, genre_id, position) VALUES($1,$2,$3)`,
			filmID, g.ID, i); err != nil {
			return err
		}
	}
	return nil
}

// attachGenres loads ordered genre rows for the given films in one query.
func (s *filmsRepo) attachGenres(ctx context.Context, films []*models.Film) error {
	if len(films) == 0 {
		return nil
	}
	ids := make([]int64, len(films))
	byID := make(map[int64]*models.Film, len(films))
	for i, f := range films {
		ids[i] = f.ID
		byID[f.ID] = f
		f.Genres = []models.Genre{}
	}

	rows, err := s.pool.Query(ctx,
		`SELECT fg.film_id, g.id, g.name
		   FROM film_genre fg
		   JOIN genres g ON g.id = fg.genre_id
		  WHERE fg.film_id = ANY($1)
		  ORDER BY fg.film_id, fg.position`,
		ids)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			filmID int64
			g      models.Genre
		)
		if err := rows.Scan(&filmID, &g.ID, &g.Name); err != nil {
			return err
		}
		if f, ok := byID[filmID]; ok {
			f.Genres = append(f.Genres, g)
		}
	}
	return rows.Err()
}

func scanFilm(row pgx.Row) (models.Film, error) {
	var (
		f           models.Film
		releaseDate time.Time
		ratingID    *int64
		ratingName  *string
		ratingDesc  *string
	)
	if err := row.Scan(&f.ID, &f.Name, &f.Description, &releaseDate, &f.Duration,
		&ratingID, &ratingName, &ratingDesc); err != nil {
		return models.Film{}, err
	}
	f.ReleaseDate = models.DateOf(releaseDate)
	if ratingID != nil {
		f.Mpa = &models.MpaRating{ID: *ratingID}
		if ratingName != nil {
			f.Mpa.Name = *ratingName
		}
		if ratingDesc != nil {
			f.Mpa.Description = *ratingDesc
		}
	}
	return f, nil
}

func collectFilms(rows pgx.Rows) ([]models.Film, error) {
	defer rows.Close()
	var out []models.Film
	for rows.Next() {
		f, err := scanFilm(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func requireFilm(ctx context.Context, q querier, id int64) error {
	var exists bool
	if err := q.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM films WHERE id=$1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return models.NotFoundf("film id=%d", id)
	}
	return nil
}

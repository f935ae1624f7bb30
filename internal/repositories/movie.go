package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
)

const movieColumns = `
	id, title, description, genres, release_year, rating, poster_url, trailer_url,
	duration, directors, cast_members, is_trending, is_top_rated, created_at, updated_at
`

// MovieReadRepository reads the movie catalog.
type MovieReadRepository struct {
	db *sqlx.DB
}

func NewMovieReadRepository(db *sqlx.DB) *MovieReadRepository {
	return &MovieReadRepository{db: db}
}

// GetTrending returns movies flagged as trending, best rated first.
func (r *MovieReadRepository) GetTrending(ctx context.Context, limit int) ([]models.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE is_trending
		ORDER BY rating DESC, created_at DESC
		LIMIT $1
	`
	return r.list(ctx, query, limit)
}

// GetTopRated returns movies flagged as top rated, best rated first.
func (r *MovieReadRepository) GetTopRated(ctx context.Context, limit int) ([]models.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE is_top_rated
		ORDER BY rating DESC, created_at DESC
		LIMIT $1
	`
	return r.list(ctx, query, limit)
}

// GetByGenre returns movies listing genre, compared case-insensitively.
func (r *MovieReadRepository) GetByGenre(ctx context.Context, genre string, limit int) ([]models.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE EXISTS (
			SELECT 1 FROM jsonb_array_elements_text(genres) AS g
			WHERE lower(g) = lower($1)
		)
		ORDER BY rating DESC, title
		LIMIT $2
	`
	return r.list(ctx, query, genre, limit)
}

// Search runs a full-text query over title and description.
func (r *MovieReadRepository) Search(ctx context.Context, text string, limit int) ([]models.Movie, error) {
	query := `
		SELECT ` + movieColumns + `
		FROM movies
		WHERE to_tsvector('english', title || ' ' || description) @@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(to_tsvector('english', title || ' ' || description), plainto_tsquery('english', $1)) DESC,
		         rating DESC
		LIMIT $2
	`
	return r.list(ctx, query, text, limit)
}

// GetByID returns a movie or nil when there is none.
func (r *MovieReadRepository) GetByID(ctx context.Context, movieID uuid.UUID) (*models.Movie, error) {
	query := `SELECT ` + movieColumns + ` FROM movies WHERE id = $1`

	var movie models.Movie
	err := r.db.GetContext(ctx, &movie, query, movieID)

	logQuery(query, []any{movieID}, movie.Title, err)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &movie, nil
}

func (r *MovieReadRepository) list(ctx context.Context, query string, args ...any) ([]models.Movie, error) {
	movies := []models.Movie{}
	err := r.db.SelectContext(ctx, &movies, query, args...)

	logQuery(query, args, len(movies), err)

	if err != nil {
		return nil, err
	}
	return movies, nil
}

// MovieWriteRepository writes catalog entries. It is used by the seed loader.
type MovieWriteRepository struct {
	db *sqlx.DB
}

func NewMovieWriteRepository(db *sqlx.DB) *MovieWriteRepository {
	return &MovieWriteRepository{db: db}
}

// Upsert inserts the movie or replaces the stored one with the same id.
func (r *MovieWriteRepository) Upsert(ctx context.Context, m *models.Movie) error {
	query := `
		INSERT INTO movies (id, title, description, genres, release_year, rating, poster_url,
		                    trailer_url, duration, directors, cast_members, is_trending, is_top_rated,
		                    created_at, updated_at)
		VALUES (:id, :title, :description, :genres, :release_year, :rating, :poster_url,
		        :trailer_url, :duration, :directors, :cast_members, :is_trending, :is_top_rated,
		        NOW(), NOW())
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    genres = EXCLUDED.genres,
		    release_year = EXCLUDED.release_year,
		    rating = EXCLUDED.rating,
		    poster_url = EXCLUDED.poster_url,
		    trailer_url = EXCLUDED.trailer_url,
		    duration = EXCLUDED.duration,
		    directors = EXCLUDED.directors,
		    cast_members = EXCLUDED.cast_members,
		    is_trending = EXCLUDED.is_trending,
		    is_top_rated = EXCLUDED.is_top_rated,
		    updated_at = NOW()
	`

	res, err := r.db.NamedExecContext(ctx, query, m)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{m.ID, m.Title}, rowsAffected, err)

	if err != nil {
		return mapError(err)
	}
	return nil
}

package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
)

const (
	watchlistTable = "user_watchlist"
	favoritesTable = "user_favorites"
)

// MovieListRepository stores a per-user set of movies, either the watchlist
// or the favorites. Writes join the request transaction when one is present.
type MovieListRepository struct {
	db       *sqlx.DB
	table    string
	txGetter txGetter
}

// NewWatchlistRepository returns the repository backing watchlists.
func NewWatchlistRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *MovieListRepository {
	return &MovieListRepository{db: db, table: watchlistTable, txGetter: txGetter}
}

// NewFavoritesRepository returns the repository backing favorites.
func NewFavoritesRepository(db *sqlx.DB, txGetter func(ctx context.Context) *sqlx.Tx) *MovieListRepository {
	return &MovieListRepository{db: db, table: favoritesTable, txGetter: txGetter}
}

// Add puts movieID into the user's list. Adding an existing entry is a no-op;
// an unknown movie yields apperrors.ErrNotFound.
func (r *MovieListRepository) Add(ctx context.Context, userID, movieID uuid.UUID) error {
	query := `
		INSERT INTO ` + r.table + ` (user_id, movie_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, movie_id) DO NOTHING
	`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, userID, movieID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{userID, movieID}, rowsAffected, err)

	if err != nil {
		return mapError(err)
	}
	return nil
}

// Remove drops movieID from the user's list. Removing an absent entry is a no-op.
func (r *MovieListRepository) Remove(ctx context.Context, userID, movieID uuid.UUID) error {
	query := `DELETE FROM ` + r.table + ` WHERE user_id = $1 AND movie_id = $2`

	res, err := executor(ctx, r.db, r.txGetter).ExecContext(ctx, query, userID, movieID)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logQuery(query, []any{userID, movieID}, rowsAffected, err)

	return err
}

// List returns the populated entries of the user's list, newest first.
func (r *MovieListRepository) List(ctx context.Context, userID uuid.UUID) ([]models.MovieSummary, error) {
	query := `
		SELECT m.id, m.title, m.poster_url
		FROM ` + r.table + ` l
		JOIN movies m ON m.id = l.movie_id
		WHERE l.user_id = $1
		ORDER BY l.created_at DESC, m.title
	`

	movies := []models.MovieSummary{}
	err := sqlx.SelectContext(ctx, executor(ctx, r.db, r.txGetter), &movies, query, userID)

	logQuery(query, []any{userID}, len(movies), err)

	if err != nil {
		return nil, err
	}
	return movies, nil
}

package services

//go:generate mockgen -source=movies.go -destination=movies_mock.go -package=services

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
	"github.com/sbilibin2017/gw-movie-streaming/internal/logger"
	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
)

// Page sizes of the catalog listings.
const (
	TrendingLimit = 10
	TopRatedLimit = 10
	GenreLimit    = 20
	SearchLimit   = 20
)

var (
	ErrMovieNotFound = apperrors.New(apperrors.KindNotFound, "Movie not found")
	ErrEmptyQuery    = apperrors.Validation(map[string]string{"q": "search query is required"})
)

// MovieReader defines read operations on the catalog.
type MovieReader interface {
	GetTrending(ctx context.Context, limit int) ([]models.Movie, error)
	GetTopRated(ctx context.Context, limit int) ([]models.Movie, error)
	GetByGenre(ctx context.Context, genre string, limit int) ([]models.Movie, error)
	Search(ctx context.Context, text string, limit int) ([]models.Movie, error)
	GetByID(ctx context.Context, movieID uuid.UUID) (*models.Movie, error)
}

// MovieService serves catalog browsing and search.
type MovieService struct {
	reader MovieReader
}

// NewMovieService creates a new MovieService.
func NewMovieService(reader MovieReader) *MovieService {
	return &MovieService{reader: reader}
}

func (svc *MovieService) Trending(ctx context.Context) ([]models.Movie, error) {
	movies, err := svc.reader.GetTrending(ctx, TrendingLimit)
	if err != nil {
		logger.Log.Errorw("failed to get trending movies", "err", err)
		return nil, err
	}
	return movies, nil
}

func (svc *MovieService) TopRated(ctx context.Context) ([]models.Movie, error) {
	movies, err := svc.reader.GetTopRated(ctx, TopRatedLimit)
	if err != nil {
		logger.Log.Errorw("failed to get top rated movies", "err", err)
		return nil, err
	}
	return movies, nil
}

func (svc *MovieService) ByGenre(ctx context.Context, genre string) ([]models.Movie, error) {
	movies, err := svc.reader.GetByGenre(ctx, strings.TrimSpace(genre), GenreLimit)
	if err != nil {
		logger.Log.Errorw("failed to get movies by genre", "genre", genre, "err", err)
		return nil, err
	}
	return movies, nil
}

// Search runs a full-text search. An empty query is a validation error.
func (svc *MovieService) Search(ctx context.Context, query string) ([]models.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	movies, err := svc.reader.Search(ctx, query, SearchLimit)
	if err != nil {
		logger.Log.Errorw("failed to search movies", "query", query, "err", err)
		return nil, err
	}
	return movies, nil
}

func (svc *MovieService) GetByID(ctx context.Context, movieID uuid.UUID) (*models.Movie, error) {
	movie, err := svc.reader.GetByID(ctx, movieID)
	if err != nil {
		logger.Log.Errorw("failed to get movie", "movie_id", movieID, "err", err)
		return nil, err
	}
	if movie == nil {
		return nil, ErrMovieNotFound
	}
	return movie, nil
}

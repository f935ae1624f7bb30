package services

//go:generate mockgen -source=lists.go -destination=lists_mock.go -package=services

import (
	"context"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
	"github.com/sbilibin2017/gw-movie-streaming/internal/logger"
	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
)

// MovieListStore persists a per-user set of movies.
type MovieListStore interface {
	Add(ctx context.Context, userID, movieID uuid.UUID) error
	Remove(ctx context.Context, userID, movieID uuid.UUID) error
	List(ctx context.Context, userID uuid.UUID) ([]models.MovieSummary, error)
}

// MovieListService manages one kind of user movie list (watchlist or favorites).
type MovieListService struct {
	name      string
	eventType models.EventType
	store     MovieListStore
	events    eventPublisher
}

// NewWatchlistService creates the service for watchlists.
func NewWatchlistService(store MovieListStore, kafkaWriter KafkaWriter) *MovieListService {
	return &MovieListService{
		name:      "watchlist",
		eventType: models.EventWatchlistUpdated,
		store:     store,
		events:    newEventPublisher(kafkaWriter),
	}
}

// NewFavoritesService creates the service for favorites.
func NewFavoritesService(store MovieListStore, kafkaWriter KafkaWriter) *MovieListService {
	return &MovieListService{
		name:      "favorites",
		eventType: models.EventFavoritesUpdated,
		store:     store,
		events:    newEventPublisher(kafkaWriter),
	}
}

// Add puts a movie into the list and returns the updated list. Adding a
// present movie leaves the list unchanged.
func (svc *MovieListService) Add(ctx context.Context, userID, movieID uuid.UUID) ([]models.MovieSummary, error) {
	if err := svc.store.Add(ctx, userID, movieID); err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return nil, ErrMovieNotFound
		}
		logger.Log.Errorw("failed to add movie", "list", svc.name, "user_id", userID, "movie_id", movieID, "err", err)
		return nil, err
	}
	return svc.listAfter(ctx, userID, movieID, "added")
}

// Remove drops a movie from the list and returns the updated list. Removing
// an absent movie leaves the list unchanged.
func (svc *MovieListService) Remove(ctx context.Context, userID, movieID uuid.UUID) ([]models.MovieSummary, error) {
	if err := svc.store.Remove(ctx, userID, movieID); err != nil {
		logger.Log.Errorw("failed to remove movie", "list", svc.name, "user_id", userID, "movie_id", movieID, "err", err)
		return nil, err
	}
	return svc.listAfter(ctx, userID, movieID, "removed")
}

// List returns the populated list.
func (svc *MovieListService) List(ctx context.Context, userID uuid.UUID) ([]models.MovieSummary, error) {
	movies, err := svc.store.List(ctx, userID)
	if err != nil {
		logger.Log.Errorw("failed to list movies", "list", svc.name, "user_id", userID, "err", err)
		return nil, err
	}
	return movies, nil
}

func (svc *MovieListService) listAfter(ctx context.Context, userID, movieID uuid.UUID, action string) ([]models.MovieSummary, error) {
	movies, err := svc.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	svc.events.publish(ctx, svc.eventType, userID, map[string]any{
		"movieId": movieID,
		"action":  action,
	})
	return movies, nil
}

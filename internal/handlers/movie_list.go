package handlers

//go:generate mockgen -source=movie_list.go -destination=movie_list_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
	"github.com/sbilibin2017/gw-movie-streaming/internal/response"
	"github.com/sbilibin2017/gw-movie-streaming/internal/validation"
)

// MovieLister manages one of the user's movie lists.
type MovieLister interface {
	Add(ctx context.Context, userID, movieID uuid.UUID) ([]models.MovieSummary, error)
	Remove(ctx context.Context, userID, movieID uuid.UUID) ([]models.MovieSummary, error)
	List(ctx context.Context, userID uuid.UUID) ([]models.MovieSummary, error)
}

// MovieListRequest identifies the movie to add or remove
// swagger:model MovieListRequest
type MovieListRequest struct {
	// required: true
	// default: 3fa85f64-5717-4562-b3fc-2c963f66afa6
	MovieID string `json:"movieId" validate:"required,uuid"`
}

// WatchlistResponse represents the user's watchlist
// swagger:model WatchlistResponse
type WatchlistResponse struct {
	Message   string                `json:"message,omitempty"`
	Watchlist []models.MovieSummary `json:"watchlist"`
}

// FavoritesResponse represents the user's favorites
// swagger:model FavoritesResponse
type FavoritesResponse struct {
	Message   string                `json:"message,omitempty"`
	Favorites []models.MovieSummary `json:"favorites"`
}

// listResponse builds the body for a list, keyed by the list name.
type listResponse func(message string, movies []models.MovieSummary) any

func watchlistResponse(message string, movies []models.MovieSummary) any {
	return WatchlistResponse{Message: message, Watchlist: nonNil(movies)}
}

func favoritesResponse(message string, movies []models.MovieSummary) any {
	return FavoritesResponse{Message: message, Favorites: nonNil(movies)}
}

func nonNil(movies []models.MovieSummary) []models.MovieSummary {
	if movies == nil {
		return []models.MovieSummary{}
	}
	return movies
}

// NewGetWatchlistHandler returns an HTTP handler listing the watchlist.
// @Summary Get watchlist
// @Tags lists
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.WatchlistResponse "Watchlist, newest first"
// @Failure 401 {object} response.ErrorResponse "Not authorized"
// @Router /users/watchlist [get]
func NewGetWatchlistHandler(svc MovieLister, errs *response.ErrorWriter) http.HandlerFunc {
	return newGetListHandler(svc, errs, watchlistResponse)
}

// NewAddToWatchlistHandler returns an HTTP handler adding a movie to the watchlist.
// @Summary Add movie to watchlist
// @Description Adding a movie already present leaves the watchlist unchanged.
// @Tags lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movieListRequest body handlers.MovieListRequest true "Movie to add"
// @Success 200 {object} handlers.WatchlistResponse "Movie added to watchlist"
// @Failure 400 {object} response.ErrorResponse "Validation failed"
// @Failure 401 {object} response.ErrorResponse "Not authorized"
// @Failure 404 {object} response.ErrorResponse "Movie not found"
// @Router /users/watchlist [post]
func NewAddToWatchlistHandler(svc MovieLister, errs *response.ErrorWriter) http.HandlerFunc {
	return newChangeListHandler(svc.Add, "Movie added to watchlist", errs, watchlistResponse)
}

// NewRemoveFromWatchlistHandler returns an HTTP handler removing a movie from the watchlist.
// @Summary Remove movie from watchlist
// @Description Removing a movie that is not present leaves the watchlist unchanged.
// @Tags lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movieListRequest body handlers.MovieListRequest true "Movie to remove"
// @Success 200 {object} handlers.WatchlistResponse "Movie removed from watchlist"
// @Failure 400 {object} response.ErrorResponse "Validation failed"
// @Failure 401 {object} response.ErrorResponse "Not authorized"
// @Router /users/watchlist [delete]
func NewRemoveFromWatchlistHandler(svc MovieLister, errs *response.ErrorWriter) http.HandlerFunc {
	return newChangeListHandler(svc.Remove, "Movie removed from watchlist", errs, watchlistResponse)
}

// NewGetFavoritesHandler returns an HTTP handler listing favorites.
// @Summary Get favorites
// @Tags lists
// @Produce json
// @Security BearerAuth
// @Success 200 {object} handlers.FavoritesResponse "Favorites, newest first"
// @Failure 401 {object} response.ErrorResponse "Not authorized"
// @Router /users/favorites [get]
func NewGetFavoritesHandler(svc MovieLister, errs *response.ErrorWriter) http.HandlerFunc {
	return newGetListHandler(svc, errs, favoritesResponse)
}

// NewAddToFavoritesHandler returns an HTTP handler adding a movie to favorites.
// @Summary Add movie to favorites
// @Tags lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movieListRequest body handlers.MovieListRequest true "Movie to add"
// @Success 200 {object} handlers.FavoritesResponse "Movie added to favorites"
// @Failure 400 {object} response.ErrorResponse "Validation failed"
// @Failure 401 {object} response.ErrorResponse "Not authorized"
// @Failure 404 {object} response.ErrorResponse "Movie not found"
// @Router /users/favorites [post]
func NewAddToFavoritesHandler(svc MovieLister, errs *response.ErrorWriter) http.HandlerFunc {
	return newChangeListHandler(svc.Add, "Movie added to favorites", errs, favoritesResponse)
}

// NewRemoveFromFavoritesHandler returns an HTTP handler removing a movie from favorites.
// @Summary Remove movie from favorites
// @Tags lists
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param movieListRequest body handlers.MovieListRequest true "Movie to remove"
// @Success 200 {object} handlers.FavoritesResponse "Movie removed from favorites"
// @Failure 400 {object} response.ErrorResponse "Validation failed"
// @Failure 401 {object} response.ErrorResponse "Not authorized"
// @Router /users/favorites [delete]
func NewRemoveFromFavoritesHandler(svc MovieLister, errs *response.ErrorWriter) http.HandlerFunc {
	return newChangeListHandler(svc.Remove, "Movie removed from favorites", errs, favoritesResponse)
}

func newGetListHandler(svc MovieLister, errs *response.ErrorWriter, render listResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			errs.Write(w, r, err)
			return
		}

		movies, err := svc.List(r.Context(), userID)
		if err != nil {
			errs.Write(w, r, err)
			return
		}

		response.JSON(w, http.StatusOK, render("", movies))
	}
}

type listChange func(ctx context.Context, userID, movieID uuid.UUID) ([]models.MovieSummary, error)

func newChangeListHandler(change listChange, message string, errs *response.ErrorWriter, render listResponse) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			errs.Write(w, r, err)
			return
		}

		var req MovieListRequest
		if err := validation.Decode(r, &req, false); err != nil {
			errs.Write(w, r, err)
			return
		}
		movieID, err := uuid.Parse(req.MovieID)
		if err != nil {
			errs.Write(w, r, err)
			return
		}

		movies, err := change(r.Context(), userID, movieID)
		if err != nil {
			errs.Write(w, r, err)
			return
		}

		response.JSON(w, http.StatusOK, render(message, movies))
	}
}

package handlers

//go:generate mockgen -source=movies.go -destination=movies_mock.go -package=handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
	"github.com/sbilibin2017/gw-movie-streaming/internal/response"
	"github.com/sbilibin2017/gw-movie-streaming/internal/services"
)

// MovieBrowser serves the public catalog.
type MovieBrowser interface {
	Trending(ctx context.Context) ([]models.Movie, error)
	TopRated(ctx context.Context) ([]models.Movie, error)
	ByGenre(ctx context.Context, genre string) ([]models.Movie, error)
	Search(ctx context.Context, query string) ([]models.Movie, error)
	GetByID(ctx context.Context, movieID uuid.UUID) (*models.Movie, error)
}

// NewTrendingHandler returns an HTTP handler for trending movies.
// @Summary Trending movies
// @Tags movies
// @Produce json
// @Success 200 {array} models.Movie "Up to 10 trending movies"
// @Router /movies/trending [get]
func NewTrendingHandler(svc MovieBrowser, errs *response.ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeMovies(w, r, errs)(svc.Trending(r.Context()))
	}
}

// NewTopRatedHandler returns an HTTP handler for top rated movies.
// @Summary Top rated movies
// @Tags movies
// @Produce json
// @Success 200 {array} models.Movie "Up to 10 top rated movies"
// @Router /movies/top-rated [get]
func NewTopRatedHandler(svc MovieBrowser, errs *response.ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeMovies(w, r, errs)(svc.TopRated(r.Context()))
	}
}

// NewGenreHandler returns an HTTP handler for movies of a genre.
// @Summary Movies by genre
// @Description Genre match is case-insensitive.
// @Tags movies
// @Produce json
// @Param genre path string true "Genre" default(Drama)
// @Success 200 {array} models.Movie "Up to 20 movies"
// @Router /movies/genre/{genre} [get]
func NewGenreHandler(svc MovieBrowser, errs *response.ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeMovies(w, r, errs)(svc.ByGenre(r.Context(), chi.URLParam(r, "genre")))
	}
}

// NewSearchHandler returns an HTTP handler for full-text movie search.
// @Summary Search movies
// @Description Full-text search over title and description.
// @Tags movies
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {array} models.Movie "Up to 20 movies, best match first"
// @Failure 400 {object} response.ErrorResponse "Search query is required"
// @Router /movies/search [get]
func NewSearchHandler(svc MovieBrowser, errs *response.ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeMovies(w, r, errs)(svc.Search(r.Context(), r.URL.Query().Get("q")))
	}
}

// NewMovieHandler returns an HTTP handler for a single movie.
// @Summary Get movie
// @Tags movies
// @Produce json
// @Param id path string true "Movie ID"
// @Success 200 {object} models.Movie "Movie"
// @Failure 404 {object} response.ErrorResponse "Movie not found"
// @Router /movies/{id} [get]
func NewMovieHandler(svc MovieBrowser, errs *response.ErrorWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movieID, err := uuid.Parse(chi.URLParam(r, "id"))
		if err != nil {
			errs.Write(w, r, services.ErrMovieNotFound)
			return
		}

		movie, err := svc.GetByID(r.Context(), movieID)
		if err != nil {
			errs.Write(w, r, err)
			return
		}

		response.JSON(w, http.StatusOK, movie)
	}
}

func writeMovies(w http.ResponseWriter, r *http.Request, errs *response.ErrorWriter) func([]models.Movie, error) {
	return func(movies []models.Movie, err error) {
		if err != nil {
			errs.Write(w, r, err)
			return
		}
		if movies == nil {
			movies = []models.Movie{}
		}
		response.JSON(w, http.StatusOK, movies)
	}
}

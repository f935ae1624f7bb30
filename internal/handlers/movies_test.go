package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
	"github.com/sbilibin2017/gw-movie-streaming/internal/response"
	"github.com/sbilibin2017/gw-movie-streaming/internal/services"
)

func newMovieRouter(svc MovieBrowser) http.Handler {
	errs := response.NewErrorWriter(false)
	r := chi.NewRouter()
	r.Get("/api/movies/trending", NewTrendingHandler(svc, errs))
	r.Get("/api/movies/top-rated", NewTopRatedHandler(svc, errs))
	r.Get("/api/movies/genre/{genre}", NewGenreHandler(svc, errs))
	r.Get("/api/movies/search", NewSearchHandler(svc, errs))
	r.Get("/api/movies/{id}", NewMovieHandler(svc, errs))
	return r
}

func TestMovieHandlers(t *testing.T) {
	id := uuid.New()
	movies := []models.Movie{{ID: id, Title: "Heat", Genres: models.StringList{"Crime"}, Rating: 8.3}}

	tests := []struct {
		name         string
		target       string
		mockSetup    func(m *MockMovieBrowser)
		expectedCode int
		expectedLen  int
	}{
		{
			name:   "trending",
			target: "/api/movies/trending",
			mockSetup: func(m *MockMovieBrowser) {
				m.EXPECT().Trending(gomock.Any()).Return(movies, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:   "top rated empty is an array",
			target: "/api/movies/top-rated",
			mockSetup: func(m *MockMovieBrowser) {
				m.EXPECT().TopRated(gomock.Any()).Return(nil, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  0,
		},
		{
			name:   "genre",
			target: "/api/movies/genre/crime",
			mockSetup: func(m *MockMovieBrowser) {
				m.EXPECT().ByGenre(gomock.Any(), "crime").Return(movies, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:   "search is not shadowed by id route",
			target: "/api/movies/search?q=heat",
			mockSetup: func(m *MockMovieBrowser) {
				m.EXPECT().Search(gomock.Any(), "heat").Return(movies, nil)
			},
			expectedCode: http.StatusOK,
			expectedLen:  1,
		},
		{
			name:   "search without query",
			target: "/api/movies/search",
			mockSetup: func(m *MockMovieBrowser) {
				m.EXPECT().Search(gomock.Any(), "").Return(nil, services.ErrEmptyQuery)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:   "store failure",
			target: "/api/movies/trending",
			mockSetup: func(m *MockMovieBrowser) {
				m.EXPECT().Trending(gomock.Any()).Return(nil, errors.New("db down"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := NewMockMovieBrowser(ctrl)
			tt.mockSetup(svc)

			rr := httptest.NewRecorder()
			newMovieRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode != http.StatusOK {
				return
			}
			var got []models.Movie
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
			assert.NotNil(t, got)
			assert.Len(t, got, tt.expectedLen)
		})
	}
}

func TestMovieHandler(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name         string
		target       string
		mockSetup    func(m *MockMovieBrowser)
		expectedCode int
	}{
		{
			name:   "found",
			target: "/api/movies/" + id.String(),
			mockSetup: func(m *MockMovieBrowser) {
				m.EXPECT().GetByID(gomock.Any(), id).Return(&models.Movie{ID: id, Title: "Heat"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:   "missing",
			target: "/api/movies/" + id.String(),
			mockSetup: func(m *MockMovieBrowser) {
				m.EXPECT().GetByID(gomock.Any(), id).Return(nil, services.ErrMovieNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name:         "malformed id",
			target:       "/api/movies/not-a-uuid",
			mockSetup:    func(m *MockMovieBrowser) {},
			expectedCode: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := NewMockMovieBrowser(ctrl)
			tt.mockSetup(svc)

			rr := httptest.NewRecorder()
			newMovieRouter(svc).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, tt.target, nil))

			assert.Equal(t, tt.expectedCode, rr.Code)
			if tt.expectedCode == http.StatusNotFound {
				assert.JSONEq(t, `{"error":"Movie not found"}`, rr.Body.String())
			}
		})
	}
}

package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/sbilibin2017/gw-movie-streaming/internal/apperrors"
	"github.com/sbilibin2017/gw-movie-streaming/internal/jwt"
	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
	"github.com/sbilibin2017/gw-movie-streaming/internal/password"
	"github.com/sbilibin2017/gw-movie-streaming/internal/services"
)

// memStore keeps users, movies and movie lists in memory.
type memStore struct {
	mu     sync.Mutex
	users  map[uuid.UUID]*models.UserDB
	movies map[uuid.UUID]models.Movie
	lists  map[string]map[uuid.UUID][]uuid.UUID
}

func newMemStore(movies ...models.Movie) *memStore {
	s := &memStore{
		users:  map[uuid.UUID]*models.UserDB{},
		movies: map[uuid.UUID]models.Movie{},
		lists:  map[string]map[uuid.UUID][]uuid.UUID{"watchlist": {}, "favorites": {}},
	}
	for _, m := range movies {
		s.movies[m.ID] = m
	}
	return s
}

func (s *memStore) find(match func(u *models.UserDB) bool) *models.UserDB {
	for _, u := range s.users {
		if match(u) {
			cp := *u
			return &cp
		}
	}
	return nil
}

func (s *memStore) GetByID(ctx context.Context, userID uuid.UUID) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(func(u *models.UserDB) bool { return u.ID == userID }), nil
}

func (s *memStore) GetByEmail(ctx context.Context, email string) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(func(u *models.UserDB) bool { return u.Email == email }), nil
}

func (s *memStore) GetByUsernameOrEmail(ctx context.Context, username, email string) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(func(u *models.UserDB) bool { return u.Username == username || u.Email == email }), nil
}

func (s *memStore) HasResetToken(ctx context.Context, email, tokenHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.find(func(u *models.UserDB) bool {
		return u.Email == email && u.IsActive && u.ResetPasswordToken.Valid &&
			u.ResetPasswordToken.String == tokenHash && u.ResetPasswordExpires.Time.After(time.Now())
	}) != nil, nil
}

func (s *memStore) Create(ctx context.Context, user *models.UserDB) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.find(func(u *models.UserDB) bool { return u.Username == user.Username || u.Email == user.Email }) != nil {
		return apperrors.ErrConflict
	}
	now := time.Now().UTC()
	user.CreatedAt, user.UpdatedAt = now, now
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

func (s *memStore) UpdateProfile(ctx context.Context, userID uuid.UUID, upd models.ProfileUpdate) (*models.UserDB, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, services.ErrUserNotFound
	}
	if upd.FirstName != nil {
		u.FirstName = *upd.FirstName
	}
	if upd.LastName != nil {
		u.LastName = *upd.LastName
	}
	if upd.SubscriptionType != nil {
		u.SubscriptionType = *upd.SubscriptionType
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[userID].PasswordHash = passwordHash
	return nil
}

func (s *memStore) SetResetToken(ctx context.Context, userID uuid.UUID, tokenHash string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := s.users[userID]
	u.ResetPasswordToken.String, u.ResetPasswordToken.Valid = tokenHash, true
	u.ResetPasswordExpires.Time, u.ResetPasswordExpires.Valid = expiresAt, true
	return nil
}

func (s *memStore) ResetPassword(ctx context.Context, email, tokenHash, passwordHash string) (uuid.UUID, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email && u.IsActive && u.ResetPasswordToken.Valid && u.ResetPasswordToken.String == tokenHash &&
			u.ResetPasswordExpires.Time.After(time.Now()) {
			u.PasswordHash = passwordHash
			u.ResetPasswordToken.Valid = false
			u.ResetPasswordExpires.Valid = false
			return u.ID, true, nil
		}
	}
	return uuid.Nil, false, nil
}

// memList is one named movie list of a memStore.
type memList struct {
	s    *memStore
	name string
}

func (l memList) Add(ctx context.Context, userID, movieID uuid.UUID) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if _, ok := l.s.movies[movieID]; !ok {
		return apperrors.New(apperrors.KindNotFound, "movie does not exist")
	}
	for _, id := range l.s.lists[l.name][userID] {
		if id == movieID {
			return nil
		}
	}
	l.s.lists[l.name][userID] = append(l.s.lists[l.name][userID], movieID)
	return nil
}

func (l memList) Remove(ctx context.Context, userID, movieID uuid.UUID) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	ids := l.s.lists[l.name][userID]
	for i, id := range ids {
		if id == movieID {
			l.s.lists[l.name][userID] = append(ids[:i:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (l memList) List(ctx context.Context, userID uuid.UUID) ([]models.MovieSummary, error) {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	out := []models.MovieSummary{}
	for _, id := range l.s.lists[l.name][userID] {
		m := l.s.movies[id]
		out = append(out, models.MovieSummary{ID: m.ID, Title: m.Title, PosterURL: m.PosterURL})
	}
	return out, nil
}

// memCatalog serves the movies of a memStore.
type memCatalog struct{ s *memStore }

func (c memCatalog) all(keep func(m models.Movie) bool) []models.Movie {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	out := []models.Movie{}
	for _, m := range c.s.movies {
		if keep(m) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out
}

func (c memCatalog) GetTrending(ctx context.Context, limit int) ([]models.Movie, error) {
	return c.all(func(m models.Movie) bool { return m.IsTrending }), nil
}

func (c memCatalog) GetTopRated(ctx context.Context, limit int) ([]models.Movie, error) {
	return c.all(func(m models.Movie) bool { return m.IsTopRated }), nil
}

func (c memCatalog) GetByGenre(ctx context.Context, genre string, limit int) ([]models.Movie, error) {
	return c.all(func(m models.Movie) bool {
		for _, g := range m.Genres {
			if strings.EqualFold(g, genre) {
				return true
			}
		}
		return false
	}), nil
}

func (c memCatalog) Search(ctx context.Context, text string, limit int) ([]models.Movie, error) {
	return c.all(func(m models.Movie) bool {
		return strings.Contains(strings.ToLower(m.Title), strings.ToLower(text))
	}), nil
}

func (c memCatalog) GetByID(ctx context.Context, movieID uuid.UUID) (*models.Movie, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()
	m, ok := c.s.movies[movieID]
	if !ok {
		return nil, nil
	}
	return &m, nil
}

type testApp struct {
	store  *memStore
	server *httptest.Server
}

func newTestApp(t *testing.T, opts Options, movies ...models.Movie) *testApp {
	t.Helper()

	store := newMemStore(movies...)
	tokens := jwt.New(jwt.WithSecretKey("test-secret"), jwt.WithExpiration(time.Hour))
	hasher := password.NewHasher(bcrypt.MinCost, 2)
	watchlist := memList{s: store, name: "watchlist"}
	favorites := memList{s: store, name: "favorites"}

	svc := Services{
		Auth:      services.NewAuthService(store, store, hasher, tokens, nil),
		Account:   services.NewAccountService(store, store, hasher, watchlist, favorites, nil, time.Hour),
		Watchlist: services.NewWatchlistService(watchlist, nil),
		Favorites: services.NewFavoritesService(favorites, nil),
		Movies:    services.NewMovieService(memCatalog{s: store}),
	}
	opts.Tokener = tokens
	opts.Users = store

	srv := httptest.NewServer(New(svc, opts))
	t.Cleanup(srv.Close)
	return &testApp{store: store, server: srv}
}

func (a *testApp) do(t *testing.T, method, path, token string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, a.server.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := a.server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func register(t *testing.T, app *testApp, username, email string) string {
	t.Helper()
	resp, body := app.do(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"username": username,
		"email":    email,
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestAccountScenario(t *testing.T) {
	app := newTestApp(t, Options{})

	token := register(t, app, "alice", "Alice@Example.com")

	resp, body := app.do(t, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "alice@example.com", user["email"])
	assert.Equal(t, "free", user["subscriptionType"])
	assert.Equal(t, []any{}, user["watchlist"])
	assert.NotContains(t, user, "password")
	assert.NotContains(t, user, "passwordHash")

	resp, body = app.do(t, http.MethodGet, "/api/users/profile", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not authorized", body["error"])

	resp, _ = app.do(t, http.MethodGet, "/api/users/profile", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = app.do(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"username": "alice2",
		"email":    "alice@example.com",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = app.do(t, http.MethodPut, "/api/users/change-password", token, map[string]string{
		"currentPassword": "wrong-pass",
		"newPassword":     "secret2",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Current password is incorrect", body["error"])

	// a failed password change leaves the session intact
	resp, _ = app.do(t, http.MethodGet, "/api/users/profile", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.do(t, http.MethodPut, "/api/users/change-password", token, map[string]string{
		"currentPassword": "secret1",
		"newPassword":     "secret2",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = app.do(t, http.MethodPost, "/api/users/login", "", map[string]string{"email": "alice@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body = app.do(t, http.MethodPost, "/api/users/login", "", map[string]string{"email": "ALICE@example.com", "password": "secret2"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["token"])
}

func TestInactiveUserIsRejected(t *testing.T) {
	app := newTestApp(t, Options{})
	token := register(t, app, "bob", "bob@example.com")

	app.store.mu.Lock()
	for _, u := range app.store.users {
		u.IsActive = false
	}
	app.store.mu.Unlock()

	resp, _ := app.do(t, http.MethodGet, "/api/users/profile", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := app.do(t, http.MethodPost, "/api/users/login", "", map[string]string{"email": "bob@example.com", "password": "secret1"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Invalid email or password", body["error"])
}

func TestMovieListsScenario(t *testing.T) {
	heat := models.Movie{ID: uuid.New(), Title: "Heat", Genres: models.StringList{"Crime"}, Rating: 8.3, IsTrending: true, PosterURL: "heat.jpg"}
	alien := models.Movie{ID: uuid.New(), Title: "Alien", Genres: models.StringList{"Horror"}, Rating: 8.5, IsTopRated: true}
	app := newTestApp(t, Options{}, heat, alien)
	token := register(t, app, "carol", "carol@example.com")

	resp, body := app.do(t, http.MethodPost, "/api/users/watchlist", token, map[string]string{"movieId": heat.ID.String()})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, body["watchlist"], 1)

	// adding twice keeps a single entry
	_, body = app.do(t, http.MethodPost, "/api/users/watchlist", token, map[string]string{"movieId": heat.ID.String()})
	assert.Len(t, body["watchlist"], 1)

	resp, _ = app.do(t, http.MethodPost, "/api/users/watchlist", token, map[string]string{"movieId": uuid.NewString()})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	_, _ = app.do(t, http.MethodPost, "/api/users/favorites", token, map[string]string{"movieId": alien.ID.String()})

	resp, body = app.do(t, http.MethodGet, "/api/users/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	user := body["user"].(map[string]any)
	require.Len(t, user["watchlist"], 1)
	assert.Equal(t, "Heat", user["watchlist"].([]any)[0].(map[string]any)["title"])
	require.Len(t, user["favorites"], 1)

	resp, body = app.do(t, http.MethodDelete, "/api/users/watchlist", token, map[string]string{"movieId": heat.ID.String()})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, []any{}, body["watchlist"])

	resp, _ = app.do(t, http.MethodGet, "/api/users/favorites", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMovieRoutes(t *testing.T) {
	heat := models.Movie{ID: uuid.New(), Title: "Heat", Genres: models.StringList{"Crime"}, Rating: 8.3, IsTrending: true}
	app := newTestApp(t, Options{}, heat)

	for _, path := range []string{"/api/movies/trending", "/api/movies/genre/crime", "/api/movies/search?q=hea"} {
		resp, err := app.server.Client().Get(app.server.URL + path)
		require.NoError(t, err)
		var movies []models.Movie
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&movies))
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Len(t, movies, 1, path)
	}

	resp, body := app.do(t, http.MethodGet, "/api/movies/"+heat.ID.String(), "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Heat", body["title"])

	resp, _ = app.do(t, http.MethodGet, "/api/movies/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestPasswordResetScenario(t *testing.T) {
	app := newTestApp(t, Options{})
	register(t, app, "dave", "dave@example.com")

	resp, body := app.do(t, http.MethodPost, "/api/users/forgot-password", "", map[string]string{"email": "nobody@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	unknownMsg := body["message"]

	resp, body = app.do(t, http.MethodPost, "/api/users/forgot-password", "", map[string]string{"email": "dave@example.com"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, unknownMsg, body["message"])

	resp, body = app.do(t, http.MethodPost, "/api/users/reset-password", "", map[string]string{
		"email":       "dave@example.com",
		"resetToken":  "guessed",
		"newPassword": "secret9",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Invalid or expired reset token", body["error"])
}

func TestRateLimitedAuthRoutes(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	app := newTestApp(t, Options{Redis: client, RateLimitMax: 2, RateLimitWindow: time.Minute})
	creds := map[string]string{"email": "eve@example.com", "password": "whatever"}

	for i := 0; i < 2; i++ {
		resp, _ := app.do(t, http.MethodPost, "/api/users/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	}

	resp, body := app.do(t, http.MethodPost, "/api/users/login", "", creds)
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.Equal(t, apperrors.ErrRateLimited.Message, body["error"])

	// catalog routes are not limited
	resp, _ = app.do(t, http.MethodGet, "/api/movies/trending", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestOperationalRoutes(t *testing.T) {
	health := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusServiceUnavailable) })
	metricsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("# metrics")) })
	app := newTestApp(t, Options{Health: health, Metrics: metricsHandler, CORSAllowedOrigins: []string{"http://localhost:3000"}})

	resp, _ := app.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	resp, _ = app.do(t, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := app.do(t, http.MethodGet, "/api/nope", "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Route not found", body["error"])

	req, err := http.NewRequest(http.MethodOptions, app.server.URL+"/api/users/login", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp, err = app.server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Empty(t, resp.Header.Get("Access-Control-Allow-Credentials"))
}

func TestRegisterRejectsPasswordOverBcryptLimit(t *testing.T) {
	app := newTestApp(t, Options{})

	// 40 runes, 80 bytes
	resp, body := app.do(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"username": "frank",
		"email":    "frank@example.com",
		"password": strings.Repeat("é", 40),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Validation failed", body["error"])
	assert.Contains(t, body["fields"], "password")

	// 36 runes, 72 bytes
	resp, _ = app.do(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"username": "frank",
		"email":    "frank@example.com",
		"password": strings.Repeat("é", 36),
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

// loginFrom posts a failing login carrying the given X-Forwarded-For.
func loginFrom(t *testing.T, app *testApp, forwardedFor string) int {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, app.server.URL+"/api/users/login",
		strings.NewReader(`{"email":"eve@example.com","password":"whatever"}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Forwarded-For", forwardedFor)
	resp, err := app.server.Client().Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	return resp.StatusCode
}

func TestRateLimitIgnoresUntrustedForwardedFor(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	app := newTestApp(t, Options{Redis: client, RateLimitMax: 2, RateLimitWindow: time.Minute})

	var codes []int
	for i := 0; i < 5; i++ {
		codes = append(codes, loginFrom(t, app, fmt.Sprintf("10.0.0.%d", i)))
	}
	assert.Equal(t, []int{401, 401, 429, 429, 429}, codes)
}

func TestRateLimitHonoursTrustedProxy(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	app := newTestApp(t, Options{
		Redis:           client,
		RateLimitMax:    2,
		RateLimitWindow: time.Minute,
		TrustedProxies:  []netip.Prefix{netip.MustParsePrefix("127.0.0.0/8"), netip.MustParsePrefix("::1/128")},
	})

	// each forwarded client has its own budget
	assert.Equal(t, http.StatusUnauthorized, loginFrom(t, app, "198.51.100.1"))
	assert.Equal(t, http.StatusUnauthorized, loginFrom(t, app, "198.51.100.2"))
	assert.Equal(t, http.StatusUnauthorized, loginFrom(t, app, "198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(t, app, "198.51.100.1"))

	// a spoofed leftmost entry does not buy a fresh budget
	assert.Equal(t, http.StatusTooManyRequests, loginFrom(t, app, "1.2.3.4, 198.51.100.1"))
}

package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/sbilibin2017/gw-movie-streaming/internal/migrations"
	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
)

// setupPostgresContainer starts PostgreSQL, applies the schema migrations and
// returns a connected pool.
func setupPostgresContainer(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_PASSWORD": "password", "POSTGRES_DB": "testdb", "POSTGRES_USER": "postgres"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForListeningPort("5432/tcp"),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dsn := fmt.Sprintf("postgres://postgres:password@%s:%d/testdb?sslmode=disable", host, port.Int())

	connectCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()
	db, err := Connect(connectCtx, dsn, 4, 2, 10)
	require.NoError(t, err)

	require.NoError(t, migrations.Up(dsn))

	teardown := func() {
		db.Close()
		_ = container.Terminate(context.Background())
	}

	return db, teardown
}

func insertUser(t *testing.T, db *sqlx.DB, username, email string) *models.UserDB {
	t.Helper()
	user := &models.UserDB{
		ID:               uuid.New(),
		Username:         username,
		Email:            email,
		PasswordHash:     "$2a$10$hash",
		SubscriptionType: models.SubscriptionFree,
		IsActive:         true,
	}
	require.NoError(t, NewUserWriteRepository(db).Create(context.Background(), user))
	return user
}

func insertMovie(t *testing.T, db *sqlx.DB, m models.Movie) models.Movie {
	t.Helper()
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	require.NoError(t, NewMovieWriteRepository(db).Upsert(context.Background(), &m))
	return m
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/sbilibin2017/gw-movie-streaming/internal/config"
	"github.com/sbilibin2017/gw-movie-streaming/internal/logger"
	"github.com/sbilibin2017/gw-movie-streaming/internal/migrations"
	"github.com/sbilibin2017/gw-movie-streaming/internal/models"
	"github.com/sbilibin2017/gw-movie-streaming/internal/repositories"
)

// movieNamespace derives stable ids for entries that do not carry one, so
// running the seed twice updates rows instead of duplicating them.
var movieNamespace = uuid.MustParse("6f1c9a52-3f0e-4d5b-9a51-5d7f0c2e8b11")

// MovieUpserter stores catalog entries.
type MovieUpserter interface {
	Upsert(ctx context.Context, m *models.Movie) error
}

func main() {
	configPath := flag.String("c", "config.env", "Path to configuration file")
	dataPath := flag.String("f", "movies.json", "Path to a JSON array of movies")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	if err := logger.Initialize(cfg.LogLevel, cfg.IsDevelopment()); err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if err := run(context.Background(), cfg, *dataPath); err != nil {
		logger.Log.Errorw("seed failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, dataPath string) error {
	f, err := os.Open(dataPath)
	if err != nil {
		return err
	}
	defer f.Close()

	movies, err := loadMovies(f)
	if err != nil {
		return err
	}
	logger.Log.Infow("movies loaded", "file", dataPath, "count", len(movies))

	db, err := repositories.Connect(ctx, cfg.DatabaseURL, cfg.PGMaxOpenConns, cfg.PGMaxIdleConns, cfg.PGConnectAttempts)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := migrations.Up(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	n, err := seed(ctx, repositories.NewMovieWriteRepository(db), movies)
	if err != nil {
		return err
	}
	logger.Log.Infow("seed completed", "upserted", n)
	return nil
}

// loadMovies decodes a JSON array of movies. Entries without a title or with
// a rating outside 0..10 are skipped.
func loadMovies(r io.Reader) ([]models.Movie, error) {
	var raw []models.Movie
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode movies: %w", err)
	}

	movies := make([]models.Movie, 0, len(raw))
	for i, m := range raw {
		m.Title = strings.TrimSpace(m.Title)
		if m.Title == "" {
			logger.Log.Warnw("skipping movie without title", "index", i)
			continue
		}
		if m.Rating < 0 || m.Rating > 10 {
			logger.Log.Warnw("skipping movie with invalid rating", "title", m.Title, "rating", m.Rating)
			continue
		}
		if m.ID == uuid.Nil {
			m.ID = uuid.NewSHA1(movieNamespace, []byte(m.Title+"|"+strconv.Itoa(m.ReleaseYear)))
		}
		if m.Genres == nil {
			m.Genres = models.StringList{}
		}
		movies = append(movies, m)
	}
	return movies, nil
}

// seed upserts every movie and returns how many were stored.
func seed(ctx context.Context, repo MovieUpserter, movies []models.Movie) (int, error) {
	var errs []error
	n := 0
	for i := range movies {
		if err := repo.Upsert(ctx, &movies[i]); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", movies[i].Title, err))
			continue
		}
		n++
	}
	return n, errors.Join(errs...)
}

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/netip"
	"net/url"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret is returned when JWT_SECRET is not configured.
// The service refuses to start without a signing secret.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// Config holds every runtime setting of the service.
type Config struct {
	AppEnv   string
	AppHost  string
	AppPort  string
	LogLevel string
	GRPCPort string

	DatabaseURL         string
	PGMaxOpenConns      int
	PGMaxIdleConns      int
	PGConnectAttempts   uint64
	HealthCheckInterval time.Duration
	ShutdownTimeout     time.Duration

	JWTSecret     string
	JWTExpiration time.Duration

	BcryptCost    int
	HashWorkers   int
	ResetTokenTTL time.Duration

	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RateLimitMax    int
	RateLimitWindow time.Duration

	KafkaBrokers []string
	KafkaTopic   string

	// TrustedProxies lists the peers whose forwarding headers name the client.
	TrustedProxies []netip.Prefix

	CORSAllowedOrigins []string
	StaticDir          string
}

// IsDevelopment reports whether the service runs in development mode.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

// HTTPAddr returns the listen address of the HTTP server.
func (c *Config) HTTPAddr() string {
	return c.AppHost + ":" + c.AppPort
}

// GRPCAddr returns the listen address of the gRPC health server.
func (c *Config) GRPCAddr() string {
	return c.AppHost + ":" + c.GRPCPort
}

// Load reads variables from the env file at path (a missing file is not an
// error) and then from the process environment.
func Load(path string) (*Config, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
	}

	var (
		cfg = &Config{}
		err error
	)

	cfg.AppEnv = getEnv("APP_ENV", "production")
	cfg.AppHost = getEnv("APP_HOST", "0.0.0.0")
	cfg.AppPort = getEnv("APP_PORT", "3000")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")
	cfg.GRPCPort = getEnv("GRPC_PORT", "50051")

	if cfg.DatabaseURL, err = databaseURL(); err != nil {
		return nil, err
	}
	if cfg.PGMaxOpenConns, err = getInt("POSTGRES_MAX_OPEN_CONNS", 16); err != nil {
		return nil, err
	}
	if cfg.PGMaxIdleConns, err = getInt("POSTGRES_MAX_IDLE_CONNS", 8); err != nil {
		return nil, err
	}
	attempts, err := getInt("POSTGRES_CONNECT_ATTEMPTS", 5)
	if err != nil {
		return nil, err
	}
	if attempts < 1 {
		attempts = 1
	}
	cfg.PGConnectAttempts = uint64(attempts)
	if cfg.HealthCheckInterval, err = getDuration("HEALTH_CHECK_INTERVAL", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getDuration("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	cfg.JWTSecret = getEnv("JWT_SECRET", "")
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.JWTExpiration, err = getDuration("JWT_EXPIRATION", time.Hour); err != nil {
		return nil, err
	}

	if cfg.BcryptCost, err = getInt("BCRYPT_COST", 10); err != nil {
		return nil, err
	}
	if cfg.HashWorkers, err = getInt("HASH_WORKERS", runtime.GOMAXPROCS(0)); err != nil {
		return nil, err
	}
	if cfg.ResetTokenTTL, err = getDuration("RESET_TOKEN_TTL", time.Hour); err != nil {
		return nil, err
	}

	cfg.RedisAddr = getEnv("REDIS_ADDR", "")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	if cfg.RedisDB, err = getInt("REDIS_DB", 0); err != nil {
		return nil, err
	}
	if cfg.RateLimitMax, err = getInt("RATE_LIMIT_MAX", 20); err != nil {
		return nil, err
	}
	if cfg.RateLimitWindow, err = getDuration("RATE_LIMIT_WINDOW", time.Minute); err != nil {
		return nil, err
	}

	cfg.KafkaBrokers = getList("KAFKA_BROKERS", nil)
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "user-events")

	if cfg.TrustedProxies, err = getPrefixes("TRUSTED_PROXIES"); err != nil {
		return nil, err
	}

	cfg.CORSAllowedOrigins = getList("CORS_ALLOWED_ORIGINS", []string{"*"})
	cfg.StaticDir = getEnv("STATIC_DIR", "")

	return cfg, nil
}

// databaseURL returns DATABASE_URL, substituting the <PASSWORD> placeholder
// with DATABASE_PASSWORD, or builds one from the POSTGRES_* variables.
func databaseURL() (string, error) {
	if dsn := getEnv("DATABASE_URL", ""); dsn != "" {
		if strings.Contains(dsn, "<PASSWORD>") {
			dsn = strings.ReplaceAll(dsn, "<PASSWORD>", url.QueryEscape(getEnv("DATABASE_PASSWORD", "")))
		}
		return dsn, nil
	}

	port, err := getInt("POSTGRES_PORT", 5432)
	if err != nil {
		return "", err
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(getEnv("POSTGRES_USER", "postgres"), getEnv("POSTGRES_PASSWORD", "postgres")),
		Host:     fmt.Sprintf("%s:%d", getEnv("POSTGRES_HOST", "localhost"), port),
		Path:     getEnv("POSTGRES_DB", "movies"),
		RawQuery: "sslmode=" + getEnv("POSTGRES_SSLMODE", "disable"),
	}
	return u.String(), nil
}

func getEnv(key, defaultValue string) string {
	if val, ok := os.LookupEnv(key); ok && strings.TrimSpace(val) != "" {
		return strings.TrimSpace(val)
	}
	return defaultValue
}

func getInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func getList(key string, defaultValue []string) []string {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// getPrefixes parses a list of CIDRs; a bare address is a single-host prefix.
func getPrefixes(key string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, raw := range getList(key, nil) {
		if !strings.Contains(raw, "/") {
			addr, err := netip.ParseAddr(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", key, err)
			}
			out = append(out, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
			continue
		}
		p, err := netip.ParsePrefix(raw)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, p.Masked())
	}
	return out, nil
}

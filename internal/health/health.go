package health

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/sbilibin2017/gw-movie-streaming/internal/logger"
)

// ServiceName is the name reported to gRPC health clients.
const ServiceName = "movie-streaming"

const pingTimeout = 2 * time.Second

// Pinger is satisfied by *sqlx.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Checker tracks database reachability and exposes it over gRPC and HTTP.
type Checker struct {
	db       Pinger
	interval time.Duration
	srv      *health.Server
}

// NewChecker creates a Checker. The service starts as NOT_SERVING until the
// first successful ping.
func NewChecker(db Pinger, interval time.Duration) *Checker {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	srv := health.NewServer()
	srv.SetServingStatus("", healthpb.HealthCheckResponse_NOT_SERVING)
	srv.SetServingStatus(ServiceName, healthpb.HealthCheckResponse_NOT_SERVING)
	return &Checker{db: db, interval: interval, srv: srv}
}

// Check pings the database once and updates the serving status.
func (c *Checker) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	status := healthpb.HealthCheckResponse_SERVING
	if err := c.db.PingContext(ctx); err != nil {
		logger.Log.Warnw("database health check failed", "err", err)
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}
	c.srv.SetServingStatus("", status)
	c.srv.SetServingStatus(ServiceName, status)
	return status == healthpb.HealthCheckResponse_SERVING
}

// Run checks on every interval until ctx is done, then marks the service as
// shutting down.
func (c *Checker) Run(ctx context.Context) {
	c.Check(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.srv.Shutdown()
			return
		case <-ticker.C:
			c.Check(ctx)
		}
	}
}

// Status returns the current overall serving status.
func (c *Checker) Status(ctx context.Context) healthpb.HealthCheckResponse_ServingStatus {
	resp, err := c.srv.Check(ctx, &healthpb.HealthCheckRequest{})
	if err != nil {
		return healthpb.HealthCheckResponse_UNKNOWN
	}
	return resp.GetStatus()
}

// ServeHTTP answers /healthz with 200 when serving and 503 otherwise.
func (c *Checker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	status := c.Status(r.Context())
	code := http.StatusOK
	if status != healthpb.HealthCheckResponse_SERVING {
		code = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"status": status.String()})
}

// Serve runs a gRPC server exposing grpc.health.v1.Health on lis until ctx is
// done.
func Serve(ctx context.Context, lis net.Listener, c *Checker) error {
	srv := grpc.NewServer()
	healthpb.RegisterHealthServer(srv, c.srv)

	go func() {
		<-ctx.Done()
		logger.Log.Infow("stopping gRPC health server")
		srv.GracefulStop()
	}()

	logger.Log.Infow("starting gRPC health server", "address", lis.Addr().String())
	if err := srv.Serve(lis); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
		return err
	}
	return nil
}

package health

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"ncwcc-portal/internal/services"
)

// HealthChecker probes the portal's dependencies: Postgres (FAQ/contact),
// Redis (sessions) and the core business API.
type HealthChecker struct {
	db   *pgxpool.Pool
	rdb  *redis.Client
	auth *services.AuthService
}

type HealthStatus struct {
	Status   string          `json:"status"`
	Database DependencyState `json:"database"`
	Redis    DependencyState `json:"redis"`
	Upstream DependencyState `json:"upstream"`
}

type DependencyState struct {
	Status       string `json:"status"`
	ResponseTime int64  `json:"response_time_ms"`
}

func NewHealthChecker(db *pgxpool.Pool, rdb *redis.Client, auth *services.AuthService) *HealthChecker {
	return &HealthChecker{db: db, rdb: rdb, auth: auth}
}

func (h *HealthChecker) CheckBasic() HealthStatus {
	dbState := h.checkDatabase()
	redisState := h.checkRedis()
	upstreamState := h.checkUpstream()

	status := "healthy"
	// Upstream is the hard dependency; the portal degrades without the others
	if upstreamState.Status != "healthy" {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:   status,
		Database: dbState,
		Redis:    redisState,
		Upstream: upstreamState,
	}
}

func (h *HealthChecker) checkDatabase() DependencyState {
	if h.db == nil {
		return DependencyState{Status: "disabled"}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.db.Ping(ctx)
	return stateFrom(err == nil, time.Since(start))
}

func (h *HealthChecker) checkRedis() DependencyState {
	if h.rdb == nil {
		return DependencyState{Status: "disabled"}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	start := time.Now()
	err := h.rdb.Ping(ctx).Err()
	return stateFrom(err == nil, time.Since(start))
}

func (h *HealthChecker) checkUpstream() DependencyState {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	start := time.Now()
	res := h.auth.HealthCheck(ctx)
	return stateFrom(res.Success, time.Since(start))
}

func stateFrom(healthy bool, elapsed time.Duration) DependencyState {
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}
	return DependencyState{Status: status, ResponseTime: elapsed.Milliseconds()}
}

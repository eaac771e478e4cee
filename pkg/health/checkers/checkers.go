package checkers

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// DefaultTimeout bounds a single readiness probe.
const DefaultTimeout = time.Second

// PingChecker reports a dependency as ready when its ping succeeds within the timeout.
type PingChecker struct {
	name    string
	timeout time.Duration
	ping    func(ctx context.Context) error
}

func (c *PingChecker) Name() string { return c.name }

func (c *PingChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	return c.ping(ctx)
}

// NewPostgresChecker pings the profile database pool.
func NewPostgresChecker(pool *pgxpool.Pool) *PingChecker {
	return &PingChecker{name: "postgres", timeout: DefaultTimeout, ping: pool.Ping}
}

// NewRedisChecker pings the session store.
func NewRedisChecker(client redis.UniversalClient) *PingChecker {
	return &PingChecker{
		name:    "redis",
		timeout: DefaultTimeout,
		ping:    func(ctx context.Context) error { return client.Ping(ctx).Err() },
	}
}

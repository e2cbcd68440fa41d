package database

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// PoolStats is a driver-neutral snapshot of connection pool usage.
type PoolStats struct {
	TotalConns    int64
	IdleConns     int64
	AcquiredConns int64
	MaxConns      int64
}

func (db *PostgresDB) Stats() PoolStats {
	if db.Pool == nil {
		return PoolStats{}
	}
	s := db.Pool.Stat()
	return PoolStats{
		TotalConns:    int64(s.TotalConns()),
		IdleConns:     int64(s.IdleConns()),
		AcquiredConns: int64(s.AcquiredConns()),
		MaxConns:      int64(s.MaxConns()),
	}
}

// RetryPolicy bounds connection attempts made at boot.
type RetryPolicy struct {
	Attempts int
	Delay    time.Duration
	Timeout  time.Duration // per attempt
}

func retryPolicy(cfg *DBConfig) RetryPolicy {
	return RetryPolicy{
		Attempts: cfg.MaxRetries,
		Delay:    cfg.RetryDelay,
		Timeout:  connectTimeout(cfg),
	}
}

// Retry calls connect until it succeeds, backing off exponentially between
// attempts: delay = Delay * 2^(attempt-1).
func Retry(ctx context.Context, p RetryPolicy, name string, connect func(ctx context.Context) error) error {
	var lastErr error
	attempts := max(p.Attempts, 1)
	timeout := p.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		log.Info().
			Str("store", name).
			Int("attempt", attempt).
			Int("max", attempts).
			Msg("[DATABASE] Connecting")

		connectCtx, cancel := context.WithTimeout(ctx, timeout)
		lastErr = connect(connectCtx)
		cancel()

		if lastErr == nil {
			log.Info().Str("store", name).Int("attempt", attempt).Msg("[DATABASE] Connected")
			return nil
		}
		log.Warn().Err(lastErr).Str("store", name).Int("attempt", attempt).Msg("[DATABASE] Connection attempt failed")

		if attempt < attempts {
			delay := p.Delay * time.Duration(1<<uint(attempt-1))
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return fmt.Errorf("connection cancelled: %w", ctx.Err())
			}
		}
	}

	return fmt.Errorf("failed to connect after %d attempts: %w", attempts, lastErr)
}

func connectTimeout(c *DBConfig) time.Duration {
	if c.ConnectTimeout > 0 {
		return c.ConnectTimeout
	}
	return 10 * time.Second
}

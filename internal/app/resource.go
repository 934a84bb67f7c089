package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/sethvargo/go-retry"

	"github.com/shandysiswandi/twofa/internal/migrations"
	"github.com/shandysiswandi/twofa/internal/pkg/messaging"
)

const pingTimeout = 5 * time.Second

// startupBackoff covers containers that come up after the service.
func startupBackoff() retry.Backoff {
	b := retry.NewFibonacci(200 * time.Millisecond)
	b = retry.WithCappedDuration(3*time.Second, b)
	return retry.WithMaxDuration(30*time.Second, b)
}

// waitReady pings until it succeeds or the backoff gives up.
func waitReady(ctx context.Context, name string, ping func(context.Context) error) error {
	return retry.Do(ctx, startupBackoff(), func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()

		if err := ping(ctx); err != nil {
			slog.WarnContext(ctx, "dependency not ready yet", "name", name, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})
}

func (a *App) initDatabase(ctx context.Context) error {
	cfg, err := pgxpool.ParseConfig(a.config.GetString("database.url"))
	if err != nil {
		return err
	}

	if n := a.config.GetInt32("database.pool.max_conns"); n > 0 {
		cfg.MaxConns = n
	}
	cfg.MinConns = a.config.GetInt32("database.pool.min_conns")
	if d := a.config.GetSecond("database.pool.max_conn_lifetime_seconds"); d > 0 {
		cfg.MaxConnLifetime = d
	}
	if d := a.config.GetSecond("database.pool.max_conn_idle_seconds"); d > 0 {
		cfg.MaxConnIdleTime = d
	}
	if d := a.config.GetSecond("database.pool.health_check_period_seconds"); d > 0 {
		cfg.HealthCheckPeriod = d
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return err
	}
	a.onClose("database", func(context.Context) error {
		pool.Close()
		return nil
	})

	if err := waitReady(ctx, "postgres", pool.Ping); err != nil {
		return err
	}

	a.dbConn = pool
	return nil
}

func (a *App) initMigrations(ctx context.Context) error {
	if !a.config.GetBool("database.migrate") {
		return nil
	}
	return migrations.Up(ctx, a.dbConn)
}

func (a *App) initCache(ctx context.Context) error {
	opt, err := redis.ParseURL(a.config.GetString("redis.url"))
	if err != nil {
		return err
	}

	rdb := redis.NewClient(opt)
	a.onClose("redis", func(context.Context) error { return rdb.Close() })

	if err := waitReady(ctx, "redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() }); err != nil {
		return err
	}

	a.cacheConn = rdb
	return nil
}

func (a *App) initMessaging(context.Context) error {
	pub, err := messaging.NewFromDriver(a.config.GetString("messaging.driver"), messaging.FactoryOptions{
		Kafka: messaging.KafkaConfig{
			Brokers:                a.config.GetArray("messaging.kafka.brokers"),
			WriteTimeout:           a.config.GetSecond("messaging.kafka.write_timeout_seconds"),
			RequiredAcks:           kafka.RequiredAcks(a.config.GetInt("messaging.kafka.required_acks")),
			AllowAutoTopicCreation: a.config.GetBool("messaging.kafka.allow_auto_topic_creation"),
		},
		NATS: messaging.NATSConfig{
			URL: a.config.GetString("messaging.nats.url"),
			Options: []nats.Option{
				nats.Name(a.config.GetString("messaging.nats.name")),
				nats.MaxReconnects(a.config.GetInt("messaging.nats.max_reconnects")),
				nats.Timeout(a.config.GetSecond("messaging.nats.timeout_seconds")),
				nats.ReconnectWait(a.config.GetSecond("messaging.nats.reconnect_wait_seconds")),
				nats.PingInterval(a.config.GetSecond("messaging.nats.ping_interval_seconds")),
				nats.MaxPingsOutstanding(a.config.GetInt("messaging.nats.max_pings_outstanding")),
				nats.RetryOnFailedConnect(a.config.GetBool("messaging.nats.retry_on_failed_connect")),
			},
		},
	})
	if err != nil {
		return err
	}

	a.messaging = pub
	a.onClose("messaging", func(context.Context) error { return pub.Close() })
	return nil
}

// Package database opens the tracker store and keeps its schema current.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/at-ishikawa/studytrack/internal/config"
)

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"

	defaultMySQLPort    = 3306
	defaultPostgresPort = 5432
	pingDelay           = 200 * time.Millisecond
)

// Open opens a connection pool for cfg.Driver without touching the server.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.Driver {
	case DriverMySQL:
		db, err = openMySQL(cfg)
	case DriverPostgres:
		db, err = openPostgres(cfg)
	case DriverSQLite, "":
		db, err = openSQLite(cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}
	return db, nil
}

func openMySQL(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Username
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, portOrDefault(cfg.Port, defaultMySQLPort))
	mysqlCfg.DBName = cfg.Database
	mysqlCfg.ParseTime = false
	if cfg.TLS {
		mysqlCfg.TLSConfig = "true"
	}
	if len(cfg.Params) > 0 {
		mysqlCfg.Params = cfg.Params
	}

	db, err := sqlx.Open("mysql", mysqlCfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(mysql) > %w", err)
	}
	return db, nil
}

func openPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	query := url.Values{}
	if cfg.TLS {
		query.Set("sslmode", "require")
	} else {
		query.Set("sslmode", "disable")
	}
	for key, value := range cfg.Params {
		query.Set(key, value)
	}
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     cfg.Host + ":" + strconv.Itoa(portOrDefault(cfg.Port, defaultPostgresPort)),
		Path:     "/" + cfg.Database,
		RawQuery: query.Encode(),
	}

	connConfig, err := pgx.ParseConfig(dsn.String())
	if err != nil {
		return nil, fmt.Errorf("pgx.ParseConfig() > %w", err)
	}
	return sqlx.NewDb(stdlib.OpenDB(*connConfig), "pgx"), nil
}

func openSQLite(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := cfg.Path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open(sqlite) > %w", err)
	}
	// One writer at a time; this also keeps ":memory:" databases on a single connection.
	db.SetMaxOpenConns(1)
	return db, nil
}

func portOrDefault(port, fallback int) int {
	if port == 0 {
		return fallback
	}
	return port
}

// Connect opens the store, waits until it answers and migrates the schema.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := Ping(ctx, db, cfg.ConnectAttempts); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := Migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// Ping checks the connection, retrying up to attempts times with backoff.
func Ping(ctx context.Context, db *sqlx.DB, attempts uint) error {
	if attempts == 0 {
		attempts = 1
	}
	if err := retry.Do(
		func() error {
			return db.PingContext(ctx)
		},
		retry.Context(ctx),
		retry.Attempts(attempts),
		retry.Delay(pingDelay),
		retry.LastErrorOnly(true),
		retry.DelayType(func(n uint, err error, retryConfig *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, retryConfig)
		}),
		retry.OnRetry(func(n uint, err error) {
			slog.Default().Warn("database is not reachable yet",
				slog.String("driver", db.DriverName()),
				slog.Uint64("attempt", uint64(n+1)),
				slog.Any("error", err),
			)
		}),
	); err != nil {
		return fmt.Errorf("db.PingContext() > %w", err)
	}
	return nil
}

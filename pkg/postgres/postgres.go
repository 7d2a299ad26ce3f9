package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DRSN-tech/nest-store/internal/cfg"
	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/jitter"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	// DefaultMigrations — миграции относительно рабочей директории процесса.
	DefaultMigrations = "file://db/migrations"

	connectAttempts = 5
	pingTimeout     = 5 * time.Second
)

// PgDatabase инкапсулирует подключение к PostgreSQL и управление миграциями.
type PgDatabase struct {
	Pool *pgxpool.Pool
	Dsn  string
}

// DSN собирает строку подключения key=value. Ее же использует LISTEN воркера outbox.
func DSN(cfg *cfg.PGDBCfg) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.SSLMode,
	)
}

// Connect открывает пул и ждет, пока база начнет отвечать.
// При старте вместе с базой (docker compose) первые попытки могут не пройти.
func Connect(ctx context.Context, cfg *cfg.PGDBCfg, logger logger.Logger) (*PgDatabase, error) {
	const op = "PgDatabase.Connect"

	dsn := DSN(cfg)
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, e.Wrap(op, err)
	}

	db := &PgDatabase{Pool: pool, Dsn: dsn}
	for attempt := 0; ; attempt++ {
		err = db.Ping(ctx)
		if err == nil {
			return db, nil
		}
		if attempt == connectAttempts-1 {
			break
		}

		logger.Warnf("PostgreSQL is not ready (attempt %d/%d): %v", attempt+1, connectAttempts, err)
		if err := jitter.Sleep(ctx, jitter.ExponentialBackoff(500*time.Millisecond, 5*time.Second, attempt, jitter.DefaultJitter)); err != nil {
			break
		}
	}

	pool.Close()
	return nil, e.Wrap(op, err)
}

func (db *PgDatabase) Ping(ctx context.Context) error {
	const op = "PgDatabase.Ping"

	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.Pool.Ping(ctx); err != nil {
		return e.Store(op, err)
	}

	return nil
}

// Close корректно закрывает пул соединений к базе данных.
func (db *PgDatabase) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// RunMigrations применяет ожидающие миграции из sourceURL.
func (db *PgDatabase) RunMigrations(logger logger.Logger, sourceURL string) error {
	const op = "PgDatabase.RunMigrations"

	return db.withMigrate(sourceURL, func(m *migrate.Migrate) error {
		if err := m.Up(); err != nil {
			if errors.Is(err, migrate.ErrNoChange) {
				logger.Debugf("schema is up to date")
				return nil
			}
			return e.Wrap(op, err)
		}

		logger.Infof("migrations applied successfully")
		return nil
	})
}

// RollbackMigrations откатывает steps последних миграций.
func (db *PgDatabase) RollbackMigrations(logger logger.Logger, sourceURL string, steps int) error {
	const op = "PgDatabase.RollbackMigrations"

	return db.withMigrate(sourceURL, func(m *migrate.Migrate) error {
		if err := m.Steps(-steps); err != nil {
			return e.Wrap(op, err)
		}

		logger.Infof("rolled back %d migration(s)", steps)
		return nil
	})
}

// MigrationVersion возвращает текущую версию схемы и признак незавершенной миграции.
func (db *PgDatabase) MigrationVersion(sourceURL string) (uint, bool, error) {
	var (
		version uint
		dirty   bool
	)
	err := db.withMigrate(sourceURL, func(m *migrate.Migrate) error {
		var err error
		version, dirty, err = m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return nil
		}
		return err
	})

	return version, dirty, err
}

func (db *PgDatabase) withMigrate(sourceURL string, fn func(m *migrate.Migrate) error) error {
	const (
		op                 = "PgDatabase.withMigrate"
		driverName         = "pgx"
		databaseDriverName = "postgres"
	)

	sqlDb, err := sql.Open(driverName, db.Dsn)
	if err != nil {
		return e.Wrap(op, err)
	}
	defer sqlDb.Close()

	driver, err := postgres.WithInstance(sqlDb, &postgres.Config{})
	if err != nil {
		return e.Wrap(op, err)
	}

	m, err := migrate.NewWithDatabaseInstance(sourceURL, databaseDriverName, driver)
	if err != nil {
		return e.Wrap(op, err)
	}

	return fn(m)
}

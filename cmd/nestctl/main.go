// nestctl — служебные команды: миграции, начальный каталог и выпуск токенов для разработки.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/DRSN-tech/nest-store/internal/app"
	"github.com/DRSN-tech/nest-store/internal/auth"
	config "github.com/DRSN-tech/nest-store/internal/cfg"
	"github.com/DRSN-tech/nest-store/internal/domain"
	"github.com/DRSN-tech/nest-store/internal/usecase"
	"github.com/DRSN-tech/nest-store/pkg/closer"
	"github.com/DRSN-tech/nest-store/pkg/live"
	"github.com/DRSN-tech/nest-store/pkg/logger"
	"github.com/DRSN-tech/nest-store/pkg/postgres"
	"github.com/urfave/cli/v2"
)

const commandTimeout = time.Minute

func main() {
	log := logger.NewSlogLogger()

	cliApp := &cli.App{
		Name:  "nestctl",
		Usage: "nest-store admin tool",
		Commands: []*cli.Command{
			migrateCommand(log),
			seedCommand(log),
			tokenCommand(log),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Errorf(err, "nestctl failed")
		os.Exit(1)
	}
}

func migrateCommand(log logger.Logger) *cli.Command {
	source := &cli.StringFlag{
		Name:    "source",
		Usage:   "migrations source URL",
		Value:   postgres.DefaultMigrations,
		EnvVars: []string{"MIGRATIONS_SOURCE"},
	}

	return &cli.Command{
		Name:  "migrate",
		Usage: "manage PostgreSQL schema",
		Subcommands: []*cli.Command{
			{
				Name:  "up",
				Usage: "apply pending migrations",
				Flags: []cli.Flag{source},
				Action: func(c *cli.Context) error {
					return withDatabase(c.Context, log, func(db *postgres.PgDatabase) error {
						return db.RunMigrations(log, c.String("source"))
					})
				},
			},
			{
				Name:  "down",
				Usage: "roll back the last migrations",
				Flags: []cli.Flag{
					source,
					&cli.IntFlag{Name: "steps", Value: 1, Usage: "number of migrations to roll back"},
				},
				Action: func(c *cli.Context) error {
					if c.Int("steps") < 1 {
						return fmt.Errorf("--steps must be positive")
					}
					return withDatabase(c.Context, log, func(db *postgres.PgDatabase) error {
						return db.RollbackMigrations(log, c.String("source"), c.Int("steps"))
					})
				},
			},
			{
				Name:  "version",
				Usage: "print the current schema version",
				Flags: []cli.Flag{source},
				Action: func(c *cli.Context) error {
					return withDatabase(c.Context, log, func(db *postgres.PgDatabase) error {
						version, dirty, err := db.MigrationVersion(c.String("source"))
						if err != nil {
							return err
						}
						fmt.Fprintf(c.App.Writer, "version %d (dirty: %t)\n", version, dirty)
						return nil
					})
				},
			},
		},
	}
}

func withDatabase(ctx context.Context, log logger.Logger, fn func(db *postgres.PgDatabase) error) error {
	pgCfg, err := config.LoadPGDBCfg(log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	db, err := postgres.Connect(ctx, pgCfg, log)
	if err != nil {
		return err
	}
	defer db.Close()

	return fn(db)
}

func seedCommand(log logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "write the default catalog if the store was never seeded",
		Action: func(c *cli.Context) error {
			pgCfg, err := config.LoadPGDBCfg(log)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(c.Context, commandTimeout)
			defer cancel()

			cl := closer.NewCloser(0)
			defer cl.Close(context.Background())

			store, err := app.OpenStorage(ctx, &config.Config{
				Store: &config.StoreCfg{Driver: config.DriverPostgres},
				Db:    pgCfg,
			}, log, cl)
			if err != nil {
				return err
			}

			catalog := usecase.NewCatalogUC(store.Products, store.Markers, store.Txm, nil, live.NewLocalFeed(), log)
			seeded, err := catalog.SeedIfEmpty(ctx, domain.DefaultCatalog())
			if err != nil {
				return err
			}

			if seeded {
				fmt.Fprintln(c.App.Writer, "default catalog written")
			} else {
				fmt.Fprintln(c.App.Writer, "catalog was already seeded, nothing to do")
			}
			return nil
		},
	}
}

func tokenCommand(log logger.Logger) *cli.Command {
	return &cli.Command{
		Name:  "token",
		Usage: "issue a development JWT signed with JWT_SECRET",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "sub", Usage: "user id", Required: true},
			&cli.StringFlag{Name: "email", Usage: "user email"},
			&cli.BoolFlag{Name: "admin", Usage: "grant the admin role"},
			&cli.DurationFlag{Name: "ttl", Usage: "token lifetime, TOKEN_TTL by default"},
		},
		Action: func(c *cli.Context) error {
			authCfg, err := config.LoadAuthCfg(log)
			if err != nil {
				return err
			}

			var roles []string
			if c.Bool("admin") {
				roles = append(roles, auth.RoleAdmin)
			}

			ttl := authCfg.TokenTTL
			if c.IsSet("ttl") {
				ttl = c.Duration("ttl")
			}

			token, err := auth.NewAuthenticator(authCfg).IssueToken(c.String("sub"), c.String("email"), roles, ttl)
			if err != nil {
				return err
			}

			fmt.Fprintln(c.App.Writer, token)
			return nil
		},
	}
}

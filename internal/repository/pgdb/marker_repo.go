package pgdb

import (
	"context"

	"github.com/DRSN-tech/nest-store/pkg/e"
	"github.com/DRSN-tech/nest-store/pkg/tr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jimlawless/whereami"
)

type MarkerRepo struct {
	pool *pgxpool.Pool
}

func NewMarkerRepo(pool *pgxpool.Pool) *MarkerRepo {
	return &MarkerRepo{pool: pool}
}

// Lock берет транзакционную advisory-блокировку по имени маркера.
func (m *MarkerRepo) Lock(ctx context.Context, name string) error {
	tx, err := tr.TxFromCtx(ctx)
	if err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, name); err != nil {
		return e.Store(whereami.WhereAmI(), err)
	}

	return nil
}

func (m *MarkerRepo) Exists(ctx context.Context, name string) (bool, error) {
	var ok bool
	err := tr.QuerierFromCtx(ctx, m.pool).
		QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM store_markers WHERE name = $1)`, name).
		Scan(&ok)
	if err != nil {
		return false, e.Store(whereami.WhereAmI(), err)
	}

	return ok, nil
}

func (m *MarkerRepo) Set(ctx context.Context, name string) error {
	_, err := tr.QuerierFromCtx(ctx, m.pool).
		Exec(ctx, `INSERT INTO store_markers (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, name)
	if err != nil {
		return e.Store(whereami.WhereAmI(), err)
	}

	return nil
}

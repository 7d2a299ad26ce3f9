package tr

import (
	"context"

	"github.com/DRSN-tech/nest-store/pkg/e"
	transaction "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type ctxKey string

const txKey ctxKey = "tx"

// Querier — общий интерфейс pgx.Tx и *pgxpool.Pool для запросов на чтение.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TxFromCtx извлекает объект транзакции (pgx.Tx) из контекста
func TxFromCtx(ctx context.Context) (pgx.Tx, error) {
	txAny := ctx.Value(txKey)
	tx, ok := txAny.(pgx.Tx)
	if !ok {
		return nil, e.ErrTransactionNotFound
	}
	return tx, nil
}

// QuerierFromCtx возвращает транзакцию из контекста, а если её нет — пул соединений.
func QuerierFromCtx(ctx context.Context, pool Querier) Querier {
	if tx, err := TxFromCtx(ctx); err == nil {
		return tx
	}
	return pool
}

// Manager выполняет функцию в транзакции PostgreSQL (атомарный батч записей).
type Manager struct {
	db transaction.Transactional
}

func NewManager(db transaction.Transactional) *Manager {
	return &Manager{db: db}
}

// Do открывает транзакцию, кладет её в контекст и коммитит после fn.
// Если в контексте уже есть транзакция, fn выполняется в ней.
func (m *Manager) Do(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	const op = "tr.Manager.Do"

	if _, txErr := TxFromCtx(ctx); txErr == nil {
		return fn(ctx)
	}

	ctx, tx, err := transaction.NewTransaction(ctx, pgx.TxOptions{}, m.db)
	if err != nil {
		return e.Store(op, err)
	}
	// Если произошла ошибка, происходит Rollback транзакции
	defer func() {
		if err != nil && tx.IsActive() {
			_ = tx.Rollback(ctx)
		}
	}()
	ctx = context.WithValue(ctx, txKey, tx.Transaction())

	if err = fn(ctx); err != nil {
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return e.Store(op, err)
	}

	return nil
}

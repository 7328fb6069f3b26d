package postgres

//go:generate go run go.uber.org/mock/mockgen -source=./transactor.go -destination=./mocks/transactor_mock.go -package=mocks

import (
	"context"
	"fmt"
	"parish/infras/otel"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	otelScopeName = "postgres"
)

// Transactor runs a function inside a single write transaction. The
// transaction is committed when the function returns nil and rolled back
// otherwise, so callers never observe a partially applied mutation.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type transactorImpl struct {
	db   *Connection
	otel otel.Otel
}

func NewTransactor(db *Connection, otl otel.Otel) Transactor {
	return &transactorImpl{
		db:   db,
		otel: otl,
	}
}

func (t *transactorImpl) WithinTx(ctx context.Context, fn func(tx *sqlx.Tx) error) (err error) {
	ctx, scope := t.otel.NewScope(ctx, otelScopeName, otelScopeName+".WithinTx")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := t.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to begin transaction")

		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to roll back transaction after panic")
			}

			panic(p)
		}
	}()

	if err = fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			log.Error().Err(rbErr).Msg("failed to roll back transaction")
		}

		return err
	}

	if err = tx.Commit(); err != nil {
		log.Error().Err(err).Msg("failed to commit transaction")

		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parish/infras/otel"
	"parish/infras/postgres"
	"parish/internal/domains/slot/model"
	"parish/shared/constant"
	gDto "parish/shared/dto"
	"parish/shared/logger"
	gRepo "parish/shared/repository"
	"parish/shared/timezone"

	"github.com/jmoiron/sqlx"
)

type TimeSlot interface {
	Insert(ctx context.Context, model model.TimeSlot) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.TimeSlot, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.TimeSlot, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error

	CountByDate(ctx context.Context, filter gDto.FilterGroup) ([]model.DateCount, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, id string) (model.TimeSlot, error)
	ClaimTx(ctx context.Context, tx *sqlx.Tx, id, user string) (bool, error)
	ReleaseTx(ctx context.Context, tx *sqlx.Tx, id, user string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.TimeSlot]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) TimeSlot {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.TimeSlot](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CountByDate aggregates slot counts per calendar date in a single grouped
// query so availability calendars need no follow-up reads.
func (repo *repositoryImpl) CountByDate(ctx context.Context, filter gDto.FilterGroup) ([]model.DateCount, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.CountByDate", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	where, args := repo.BuildWhereClause(ctx, filter)

	query := fmt.Sprintf(`SELECT %[1]s.slot_date,
		COUNT(*) AS total_slots,
		COUNT(*) FILTER (WHERE %[1]s.status = '%[2]s') AS available_slots,
		COUNT(*) FILTER (WHERE %[1]s.status = '%[3]s') AS booked_slots
		FROM %[1]s %[4]s GROUP BY %[1]s.slot_date ORDER BY %[1]s.slot_date`,
		model.TableName, model.StatusAvailable, model.StatusBooked, where)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var counts []model.DateCount

	prepare, err := repo.db.Read.PrepareNamedContext(ctx, query)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return counts, fmt.Errorf("failed to prepare statement (%s): %w", model.EntityName, err)
	}
	defer prepare.Close()

	err = prepare.SelectContext(ctx, &counts, args)
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return counts, fmt.Errorf("failed to count slots by date (%s): %w", model.EntityName, err)
	}

	return counts, nil
}

// GetTx loads a slot inside the given transaction, locking the row until the
// transaction completes.
func (repo *repositoryImpl) GetTx(ctx context.Context, tx *sqlx.Tx, id string) (model.TimeSlot, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetTx", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf("SELECT id, slot_date, time_label, status, sacrament_type_id, created_by, modified_by FROM %s WHERE id = $1 FOR UPDATE", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var slot model.TimeSlot

	err := tx.GetContext(ctx, &slot, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return slot, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return slot, fmt.Errorf("failed to get data for update (%s): %w", model.EntityName, err)
	}

	return slot, nil
}

// ClaimTx flips an available slot to booked. The status predicate makes the
// claim conditional: when another transaction already took the slot, zero
// rows are affected and the claim reports false.
func (repo *repositoryImpl) ClaimTx(ctx context.Context, tx *sqlx.Tx, id, user string) (bool, error) {
	return repo.setStatusTx(ctx, tx, "ClaimTx", id, user, model.StatusAvailable, model.StatusBooked)
}

// ReleaseTx returns a booked slot to the pool. A slot that an admin disabled
// in the meantime no longer matches the predicate and stays disabled.
func (repo *repositoryImpl) ReleaseTx(ctx context.Context, tx *sqlx.Tx, id, user string) (bool, error) {
	return repo.setStatusTx(ctx, tx, "ReleaseTx", id, user, model.StatusBooked, model.StatusAvailable)
}

func (repo *repositoryImpl) setStatusTx(ctx context.Context, tx *sqlx.Tx, op, id, user, fromStatus, toStatus string) (bool, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, model.EntityName, op))
	defer scope.End()

	query := fmt.Sprintf("UPDATE %s SET status = :to_status, modified_at = :modified_at, modified_by = :modified_by WHERE id = :id AND status = :from_status", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	result, err := tx.NamedExecContext(ctx, query, map[string]any{
		"id":          id,
		"to_status":   toStatus,
		"from_status": fromStatus,
		"modified_at": timezone.Now(),
		"modified_by": user,
	})
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to update slot status (%s): %w", model.EntityName, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return false, fmt.Errorf("failed to read affected rows (%s): %w", model.EntityName, err)
	}

	return affected == 1, nil
}

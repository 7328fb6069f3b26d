package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"parish/infras/otel"
	"parish/infras/postgres"
	"parish/internal/domains/appointment/model"
	"parish/shared/constant"
	gDto "parish/shared/dto"
	"parish/shared/logger"
	gRepo "parish/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Appointment interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Appointment, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Appointment, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)

	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Appointment) error
	GetTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Appointment, error)
	UpdateTx(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Appointment]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Appointment {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Appointment](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// GetTx loads an appointment inside the given transaction, locking the row.
// The joined type/slot columns are deliberately absent: row locks cannot span
// the join, and the coordinator only needs the appointment's own state.
func (repo *repositoryImpl) GetTx(ctx context.Context, tx *sqlx.Tx, id string) (model.Appointment, error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, fmt.Sprintf("%s.%s.GetTx", constant.OtelRepositoryScopeName, model.EntityName))
	defer scope.End()

	query := fmt.Sprintf("SELECT id, user_id, sacrament_type_id, preferred_date, time_slot_id, status, rejection_reason, notes, created_by, modified_by FROM %s WHERE id = $1 FOR UPDATE", model.TableName)
	scope.SetAttribute(constant.OtelQueryAttributeKey, query)

	var appointment model.Appointment

	err := tx.GetContext(ctx, &appointment, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return appointment, nil
	}

	if err != nil {
		logger.ErrorWithStack(err)
		scope.TraceError(err)

		return appointment, fmt.Errorf("failed to get data for update (%s): %w", model.EntityName, err)
	}

	return appointment, nil
}

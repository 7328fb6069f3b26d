package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"parish/infras/otel"
	"parish/infras/postgres"
	"parish/internal/domains/sacrament/model"
	gDto "parish/shared/dto"
	gRepo "parish/shared/repository"
)

type SacramentType interface {
	Insert(ctx context.Context, model model.SacramentType) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.SacramentType, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.SacramentType, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.SacramentType]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) SacramentType {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.SacramentType](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

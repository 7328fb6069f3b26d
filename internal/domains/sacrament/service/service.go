package service

import (
	"context"
	"fmt"
	"parish/config"
	"parish/infras/otel"
	apptModel "parish/internal/domains/appointment/model"
	apptRepo "parish/internal/domains/appointment/repository"
	"parish/internal/domains/sacrament/model"
	"parish/internal/domains/sacrament/model/dto"
	"parish/internal/domains/sacrament/repository"
	slotModel "parish/internal/domains/slot/model"
	slotRepo "parish/internal/domains/slot/repository"
	"parish/shared"
	"parish/shared/cache"
	"parish/shared/constant"
	gDto "parish/shared/dto"
	"parish/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetSacramentType    = "sacrament_type:get"
	cacheGetAllSacramentType = "sacrament_type:gets"
	cacheCountSacramentType  = "sacrament_type:count"
)

type SacramentType interface {
	Create(ctx context.Context, req dto.CreateSacramentTypeRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetSacramentTypesResponse, error)
	Get(ctx context.Context, id string) (dto.SacramentTypeResponse, error)
	Update(ctx context.Context, req dto.UpdateSacramentTypeRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo     repository.SacramentType
	slotRepo slotRepo.TimeSlot
	apptRepo apptRepo.Appointment
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.SacramentType, slotRepo slotRepo.TimeSlot, apptRepo apptRepo.Appointment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) SacramentType {
	return &serviceImpl{
		repo:     repo,
		slotRepo: slotRepo,
		apptRepo: apptRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func filterByName(name string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldName,
				Operator: gDto.FilterOperatorEq,
				Value:    name,
				Table:    model.TableName,
			},
		},
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateSacramentTypeRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	exists, err := s.repo.Exist(ctx, filterByName(req.Name))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if sacrament type name is taken")

		return fmt.Errorf("failed to check if sacrament type name is taken: %w", err)
	}

	if exists {
		return failure.Conflict("a sacrament type with this name already exists") // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, req.ToModel(user)); err != nil {
		log.Error().Err(err).Msg("failed to create sacrament type")

		return fmt.Errorf("failed to create sacrament type: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllSacramentType)
		shared.InvalidateCaches(c, s.cache, cacheCountSacramentType)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetSacramentTypesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllSacramentType, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for sacrament types")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count sacrament types")

		return res, fmt.Errorf("failed to count sacrament types: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get sacrament types")

		return res, fmt.Errorf("failed to get sacrament types: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save sacrament types to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.SacramentTypeResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetSacramentType, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for sacrament type")

		return res, nil
	}

	sacramentType, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get sacrament type")

		return res, fmt.Errorf("failed to get sacrament type: %w", err)
	}

	if sacramentType.ID == constant.Empty {
		return res, failure.NotFound("sacrament type not found") // nolint:wrapcheck
	}

	res.FromModel(sacramentType)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save sacrament type to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateSacramentTypeRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	if req == (dto.UpdateSacramentTypeRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if sacrament type exists")

		return fmt.Errorf("failed to check if sacrament type exists: %w", err)
	}

	if !exist {
		log.Error().Msg("sacrament type not found")

		return failure.NotFound("sacrament type not found") // nolint:wrapcheck
	}

	if req.Name != "" {
		taken, err := s.repo.Exist(ctx, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: []any{
				gDto.Filter{
					Field:    model.FieldName,
					Operator: gDto.FilterOperatorEq,
					Value:    req.Name,
					Table:    model.TableName,
				},
				gDto.Filter{
					Field:    model.FieldID,
					Operator: gDto.FilterOperatorNotEq,
					Value:    id,
					Table:    model.TableName,
				},
			},
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to check if sacrament type name is taken")

			return fmt.Errorf("failed to check if sacrament type name is taken: %w", err)
		}

		if taken {
			return failure.Conflict("a sacrament type with this name already exists") // nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update sacrament type")

		return fmt.Errorf("failed to update sacrament type: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Delete refuses to remove a sacrament type that is still referenced by any
// time slot or appointment, so historical records never lose their type.
func (s *serviceImpl) Delete(ctx context.Context, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(nil)

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if sacrament type exists")

		return fmt.Errorf("failed to check if sacrament type exists: %w", err)
	}

	if !exist {
		log.Error().Msg("sacrament type not found")

		return failure.NotFound("sacrament type not found") // nolint:wrapcheck
	}

	referencedBySlot, err := s.slotRepo.Exist(ctx, shared.FilterByID(id, slotModel.FieldSacramentTypeID, slotModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if sacrament type is referenced by time slots")

		return fmt.Errorf("failed to check if sacrament type is referenced by time slots: %w", err)
	}

	referencedByAppt, err := s.apptRepo.Exist(ctx, shared.FilterByID(id, apptModel.FieldSacramentTypeID, apptModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if sacrament type is referenced by appointments")

		return fmt.Errorf("failed to check if sacrament type is referenced by appointments: %w", err)
	}

	if referencedBySlot || referencedByAppt {
		return failure.Conflict("sacrament type is still referenced by time slots or appointments") // nolint:wrapcheck
	}

	if err := s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete sacrament type")

		return fmt.Errorf("failed to delete sacrament type: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetSacramentType, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete sacrament type from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllSacramentType)
		shared.InvalidateCaches(c, s.cache, cacheCountSacramentType)
	}()
}

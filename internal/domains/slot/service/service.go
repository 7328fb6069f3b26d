package service

import (
	"context"
	"fmt"
	"parish/config"
	"parish/infras/otel"
	apptModel "parish/internal/domains/appointment/model"
	apptRepo "parish/internal/domains/appointment/repository"
	sacramentModel "parish/internal/domains/sacrament/model"
	sacramentRepo "parish/internal/domains/sacrament/repository"
	"parish/internal/domains/slot/model"
	"parish/internal/domains/slot/model/dto"
	"parish/internal/domains/slot/repository"
	"parish/shared"
	"parish/shared/cache"
	"parish/shared/constant"
	gDto "parish/shared/dto"
	"parish/shared/failure"
	"parish/shared/timezone"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetTimeSlot    = "time_slot:get"
	cacheGetAllTimeSlot = "time_slot:gets"
	cacheCountTimeSlot  = "time_slot:count"
	cacheAvailability   = "time_slot:availability"

	msgDuplicateSlot = "a slot already exists for this date and time"
)

type TimeSlot interface {
	Create(ctx context.Context, req dto.CreateTimeSlotRequest) error
	BulkCreate(ctx context.Context, req dto.BulkCreateTimeSlotsRequest) (dto.BulkCreateTimeSlotsResponse, error)
	GetAvailable(ctx context.Context, sacramentTypeID, dateFrom, dateTo string) (dto.AvailableSlotsResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTimeSlotsResponse, error)
	Get(ctx context.Context, id string) (dto.TimeSlotResponse, error)
	Update(ctx context.Context, req dto.UpdateTimeSlotRequest, id string) error
	Enable(ctx context.Context, id string) error
	Disable(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo          repository.TimeSlot
	sacramentRepo sacramentRepo.SacramentType
	apptRepo      apptRepo.Appointment
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
}

func New(repo repository.TimeSlot, sacramentRepo sacramentRepo.SacramentType, apptRepo apptRepo.Appointment, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) TimeSlot {
	return &serviceImpl{
		repo:          repo,
		sacramentRepo: sacramentRepo,
		apptRepo:      apptRepo,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
	}
}

func filterByDateTime(slotDate time.Time, timeLabel string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldSlotDate,
				Operator: gDto.FilterOperatorEq,
				Value:    slotDate,
				Table:    model.TableName,
			},
			gDto.Filter{
				Field:    model.FieldTimeLabel,
				Operator: gDto.FilterOperatorEq,
				Value:    timeLabel,
				Table:    model.TableName,
			},
		},
	}
}

func filterActiveAppointmentForSlot(slotID string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    apptModel.FieldTimeSlotID,
				Operator: gDto.FilterOperatorEq,
				Value:    slotID,
				Table:    apptModel.TableName,
			},
			gDto.Filter{
				Field:    apptModel.FieldStatus,
				Operator: gDto.FilterOperatorIn,
				Value:    []string{apptModel.StatusPending, apptModel.StatusApproved},
				Table:    apptModel.TableName,
			},
		},
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateTimeSlotRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	slot, err := req.ToModel(user)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse time slot request")

		return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	if req.SacramentTypeID != "" {
		typeExists, err := s.sacramentRepo.Exist(ctx, shared.FilterByID(req.SacramentTypeID, sacramentModel.FieldID, sacramentModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if sacrament type exists")

			return fmt.Errorf("failed to check if sacrament type exists: %w", err)
		}

		if !typeExists {
			return failure.BadRequestFromString("sacrament type does not exist") // nolint:wrapcheck
		}
	}

	duplicate, err := s.repo.Exist(ctx, filterByDateTime(slot.SlotDate, slot.TimeLabel))
	if err != nil {
		log.Error().Err(err).Msg("failed to check for duplicate time slot")

		return fmt.Errorf("failed to check for duplicate time slot: %w", err)
	}

	if duplicate {
		return failure.Conflict(msgDuplicateSlot) // nolint:wrapcheck
	}

	if err = s.repo.Insert(ctx, slot); err != nil {
		log.Error().Err(err).Msg("failed to create time slot")

		return fmt.Errorf("failed to create time slot: %w", err)
	}

	s.invalidateListings(ctx)

	return nil
}

// BulkCreate inserts each slot independently. Duplicates, whether against
// existing rows or earlier items in the same batch, are skipped with a reason
// instead of aborting the whole batch.
func (s *serviceImpl) BulkCreate(ctx context.Context, req dto.BulkCreateTimeSlotsRequest) (res dto.BulkCreateTimeSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".BulkCreate")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	res.CreatedSlots = []dto.TimeSlotResponse{}
	res.SkippedSlots = []dto.SkippedTimeSlot{}
	seen := make(map[string]bool, len(req.Slots))

	for _, item := range req.Slots {
		slot, err := item.ToModel(user)
		if err != nil {
			res.SkippedSlots = append(res.SkippedSlots, dto.SkippedTimeSlot{
				Date:   item.Date,
				Time:   item.Time,
				Reason: fmt.Sprintf("invalid date format: %v", err),
			})

			continue
		}

		key := item.Date + "|" + item.Time

		duplicate := seen[key]
		if !duplicate {
			duplicate, err = s.repo.Exist(ctx, filterByDateTime(slot.SlotDate, slot.TimeLabel))
			if err != nil {
				log.Error().Err(err).Msg("failed to check for duplicate time slot")

				return res, fmt.Errorf("failed to check for duplicate time slot: %w", err)
			}
		}

		if duplicate {
			res.SkippedSlots = append(res.SkippedSlots, dto.SkippedTimeSlot{
				Date:   item.Date,
				Time:   item.Time,
				Reason: msgDuplicateSlot,
			})

			continue
		}

		if err = s.repo.Insert(ctx, slot); err != nil {
			log.Error().Err(err).Msg("failed to create time slot")

			return res, fmt.Errorf("failed to create time slot: %w", err)
		}

		seen[key] = true

		response := dto.TimeSlotResponse{}
		response.FromModel(slot)
		res.CreatedSlots = append(res.CreatedSlots, response)
	}

	res.CreatedCount = len(res.CreatedSlots)
	res.SkippedCount = len(res.SkippedSlots)

	s.invalidateListings(ctx)

	return res, nil
}

// GetAvailable lists bookable slots plus per-date aggregate counts. The
// aggregates run over every status so callers can tell a fully booked date
// from one with no slots at all.
func (s *serviceImpl) GetAvailable(ctx context.Context, sacramentTypeID, dateFrom, dateTo string) (res dto.AvailableSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAvailable")
	defer scope.End()
	defer scope.TraceIfError(err)

	baseFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if sacramentTypeID != "" {
		baseFilter.Filters = append(baseFilter.Filters, gDto.Filter{
			Field:    model.FieldSacramentTypeID,
			Operator: gDto.FilterOperatorEq,
			Value:    sacramentTypeID,
			Table:    model.TableName,
		})
	}

	if dateFrom != "" {
		baseFilter.Filters = append(baseFilter.Filters, gDto.Filter{
			ArgName:  "date_from",
			Field:    model.FieldSlotDate,
			Operator: gDto.FilterOperatorGreaterEq,
			Value:    dateFrom,
			Table:    model.TableName,
		})
	}

	if dateTo != "" {
		baseFilter.Filters = append(baseFilter.Filters, gDto.Filter{
			ArgName:  "date_to",
			Field:    model.FieldSlotDate,
			Operator: gDto.FilterOperatorLessEq,
			Value:    dateTo,
			Table:    model.TableName,
		})
	}

	params := gDto.QueryParams{SortBy: model.TableName + "." + model.FieldSlotDate, SortDir: gDto.SortDirAsc}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheAvailability, params, baseFilter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for slot availability")

		return res, nil
	}

	availableFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: append([]any{gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    model.StatusAvailable,
			Table:    model.TableName,
		}}, baseFilter.Filters...),
	}

	slots, err := s.repo.GetAll(ctx, params, availableFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get available time slots")

		return res, fmt.Errorf("failed to get available time slots: %w", err)
	}

	counts, err := s.repo.CountByDate(ctx, baseFilter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count time slots by date")

		return res, fmt.Errorf("failed to count time slots by date: %w", err)
	}

	res.FromModels(slots, counts)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save slot availability to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTimeSlotsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTimeSlot, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for time slots")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count time slots")

		return res, fmt.Errorf("failed to count time slots: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slots")

		return res, fmt.Errorf("failed to get time slots: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save time slots to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.TimeSlotResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTimeSlot, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for time slot")

		return res, nil
	}

	slot, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slot")

		return res, fmt.Errorf("failed to get time slot: %w", err)
	}

	if slot.ID == constant.Empty {
		return res, failure.NotFound("time slot not found") // nolint:wrapcheck
	}

	res.FromModel(slot)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save time slot to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTimeSlotRequest, id string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(nil)

	if req == (dto.UpdateTimeSlotRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get time slot")

		return fmt.Errorf("failed to get time slot: %w", err)
	}

	if current.ID == constant.Empty {
		log.Error().Msg("time slot not found")

		return failure.NotFound("time slot not found") // nolint:wrapcheck
	}

	if req.SacramentTypeID != "" {
		typeExists, err := s.sacramentRepo.Exist(ctx, shared.FilterByID(req.SacramentTypeID, sacramentModel.FieldID, sacramentModel.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to check if sacrament type exists")

			return fmt.Errorf("failed to check if sacrament type exists: %w", err)
		}

		if !typeExists {
			return failure.BadRequestFromString("sacrament type does not exist") // nolint:wrapcheck
		}
	}

	updatedFields := shared.TransformFields(req, user)

	newDate := current.SlotDate
	if req.Date != "" {
		newDate, err = time.Parse(dto.DateFormat, req.Date)
		if err != nil {
			return failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
		}

		updatedFields[model.FieldSlotDate] = newDate
	}

	newTime := current.TimeLabel
	if req.Time != "" {
		newTime = req.Time
	}

	if req.Date != "" || req.Time != "" {
		duplicate, err := s.repo.Exist(ctx, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorAnd,
			Filters: append(filterByDateTime(newDate, newTime).Filters, gDto.Filter{
				Field:    model.FieldID,
				Operator: gDto.FilterOperatorNotEq,
				Value:    id,
				Table:    model.TableName,
			}),
		})
		if err != nil {
			log.Error().Err(err).Msg("failed to check for duplicate time slot")

			return fmt.Errorf("failed to check for duplicate time slot: %w", err)
		}

		if duplicate {
			return failure.Conflict(msgDuplicateSlot) // nolint:wrapcheck
		}
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update time slot")

		return fmt.Errorf("failed to update time slot: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

// Enable returns a slot to the available pool. Refused while an active
// appointment still claims the slot, so a booked claim is never silently
// freed outside the coordinator.
func (s *serviceImpl) Enable(ctx context.Context, id string) error {
	return s.setStatus(ctx, "Enable", id, model.StatusAvailable)
}

// Disable takes a slot out of the pool. Refused while an active appointment
// still claims the slot, so a pending request is never orphaned.
func (s *serviceImpl) Disable(ctx context.Context, id string) error {
	return s.setStatus(ctx, "Disable", id, model.StatusDisabled)
}

func (s *serviceImpl) setStatus(ctx context.Context, op, id, status string) error {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+"."+op)
	defer scope.End()
	defer scope.TraceIfError(nil)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if time slot exists")

		return fmt.Errorf("failed to check if time slot exists: %w", err)
	}

	if !exist {
		log.Error().Msg("time slot not found")

		return failure.NotFound("time slot not found") // nolint:wrapcheck
	}

	active, err := s.apptRepo.Exist(ctx, filterActiveAppointmentForSlot(id))
	if err != nil {
		log.Error().Err(err).Msg("failed to check for active appointments on time slot")

		return fmt.Errorf("failed to check for active appointments on time slot: %w", err)
	}

	if active {
		return failure.Conflict("time slot has an active appointment; approve or reject it first") // nolint:wrapcheck
	}

	updatedFields := map[string]any{
		model.FieldStatus:        status,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}

	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update time slot status")

		return fmt.Errorf("failed to update time slot status: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTimeSlot, id)); err != nil {
			log.Error().Err(err).Msg("failed to delete time slot from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTimeSlot)
		shared.InvalidateCaches(c, s.cache, cacheCountTimeSlot)
		shared.InvalidateCaches(c, s.cache, cacheAvailability)
	}()
}

func (s *serviceImpl) invalidateListings(ctx context.Context) {
	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTimeSlot)
		shared.InvalidateCaches(c, s.cache, cacheCountTimeSlot)
		shared.InvalidateCaches(c, s.cache, cacheAvailability)
	}()
}

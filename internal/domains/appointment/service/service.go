package service

import (
	"context"
	"fmt"
	"parish/config"
	"parish/infras/otel"
	"parish/infras/postgres"
	"parish/internal/domains/appointment/model"
	"parish/internal/domains/appointment/model/dto"
	"parish/internal/domains/appointment/notifier"
	"parish/internal/domains/appointment/repository"
	sacramentModel "parish/internal/domains/sacrament/model"
	sacramentRepo "parish/internal/domains/sacrament/repository"
	slotModel "parish/internal/domains/slot/model"
	slotDto "parish/internal/domains/slot/model/dto"
	slotRepo "parish/internal/domains/slot/repository"
	"parish/shared"
	"parish/shared/cache"
	"parish/shared/constant"
	gDto "parish/shared/dto"
	"parish/shared/failure"
	"parish/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetAppointment    = "appointment:get"
	cacheGetAllAppointment = "appointment:gets"
	cacheCountAppointment  = "appointment:count"

	// Slot cache prefixes owned by the slot service; booking transitions
	// change slot state, so they are invalidated here as well.
	cacheGetAllTimeSlot = "time_slot:gets"
	cacheCountTimeSlot  = "time_slot:count"
	cacheAvailability   = "time_slot:availability"

	msgSlotUnavailable = "this slot is no longer available"
)

// Appointment coordinates the appointment lifecycle against the slot pool.
// It is the only writer of the slot/appointment coupling: every transition
// runs inside one transaction so a slot can never carry more than one active
// claim, and notification dispatch happens strictly after commit.
type Appointment interface {
	Book(ctx context.Context, requesterID string, req dto.BookAppointmentRequest) (dto.AppointmentResponse, error)
	Approve(ctx context.Context, actorID, id string) error
	Reject(ctx context.Context, actorID, id string, req dto.RejectAppointmentRequest) error
	Get(ctx context.Context, id string) (dto.AppointmentResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
	GetMine(ctx context.Context, requesterID string, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error)
}

type serviceImpl struct {
	repo          repository.Appointment
	slotRepo      slotRepo.TimeSlot
	sacramentRepo sacramentRepo.SacramentType
	txor          postgres.Transactor
	notifier      notifier.Notifier
	cfg           *config.Config
	cache         cache.RedisCache
	otel          otel.Otel
}

func New(repo repository.Appointment, slotRepo slotRepo.TimeSlot, sacramentRepo sacramentRepo.SacramentType, txor postgres.Transactor, notifier notifier.Notifier, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Appointment {
	return &serviceImpl{
		repo:          repo,
		slotRepo:      slotRepo,
		sacramentRepo: sacramentRepo,
		txor:          txor,
		notifier:      notifier,
		cfg:           cfg,
		cache:         cache,
		otel:          otel,
	}
}

// Book reserves a slot for the requester. The availability check and the
// claim both run inside one transaction, and the claim itself is conditional
// on the slot still being available at write time, so two concurrent bookings
// of the same slot produce exactly one success.
func (s *serviceImpl) Book(ctx context.Context, requesterID string, req dto.BookAppointmentRequest) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Book")
	defer scope.End()
	defer scope.TraceIfError(err)

	sacramentType, err := s.sacramentRepo.Get(ctx, shared.FilterByID(req.SacramentTypeID, sacramentModel.FieldID, sacramentModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get sacrament type")

		return res, fmt.Errorf("failed to get sacrament type: %w", err)
	}

	if sacramentType.ID == constant.Empty {
		return res, failure.BadRequestFromString("sacrament type does not exist") // nolint:wrapcheck
	}

	appointment, err := req.ToModel(requesterID)
	if err != nil {
		log.Error().Err(err).Msg("failed to parse booking request")

		return res, failure.BadRequestFromString(fmt.Sprintf("invalid date format: %v", err)) // nolint:wrapcheck
	}

	var slot slotModel.TimeSlot

	err = s.txor.WithinTx(ctx, func(tx *sqlx.Tx) error {
		slot, err = s.slotRepo.GetTx(ctx, tx, req.TimeSlotID)
		if err != nil {
			return fmt.Errorf("failed to get time slot: %w", err)
		}

		if slot.ID == constant.Empty {
			return failure.NotFound("time slot not found") // nolint:wrapcheck
		}

		if slot.Status != slotModel.StatusAvailable {
			return failure.Conflict(msgSlotUnavailable) // nolint:wrapcheck
		}

		if err := s.repo.InsertTx(ctx, tx, appointment); err != nil {
			return fmt.Errorf("failed to create appointment: %w", err)
		}

		claimed, err := s.slotRepo.ClaimTx(ctx, tx, slot.ID, requesterID)
		if err != nil {
			return fmt.Errorf("failed to claim time slot: %w", err)
		}

		if !claimed {
			return failure.Conflict(msgSlotUnavailable) // nolint:wrapcheck
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("slotID", req.TimeSlotID).Msg("failed to book appointment")

		return res, err
	}

	scope.AddEvent("Appointment booked for slot " + slot.ID)

	appointment.SacramentTypeName = sacramentType.Name
	appointment.SlotDate = slot.SlotDate
	appointment.SlotTimeLabel = slot.TimeLabel
	appointment.SlotStatus = slotModel.StatusBooked
	res.FromModel(appointment)

	s.dispatch(ctx, notifier.Event{
		AppointmentID:   appointment.ID,
		UserID:          appointment.UserID,
		SacramentTypeID: appointment.SacramentTypeID,
		SlotDate:        slot.SlotDate.Format(slotDto.DateFormat),
		SlotTime:        slot.TimeLabel,
		Outcome:         notifier.OutcomeBooked,
	})

	return res, nil
}

// Approve moves a pending appointment to approved. The slot stays booked;
// approval only changes the appointment's disposition.
func (s *serviceImpl) Approve(ctx context.Context, actorID, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Approve")
	defer scope.End()
	defer scope.TraceIfError(err)

	var appointment model.Appointment

	err = s.txor.WithinTx(ctx, func(tx *sqlx.Tx) error {
		appointment, err = s.repo.GetTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to get appointment: %w", err)
		}

		if appointment.ID == constant.Empty {
			return failure.NotFound("appointment not found") // nolint:wrapcheck
		}

		if appointment.Status != model.StatusPending {
			return failure.Conflict("only pending appointments can be approved") // nolint:wrapcheck
		}

		updatedFields := map[string]any{
			model.FieldStatus:        model.StatusApproved,
			constant.FieldModifiedAt: timezone.Now(),
			constant.FieldModifiedBy: actorID,
		}

		if err := s.repo.UpdateTx(ctx, tx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to approve appointment: %w", err)
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("appointmentID", id).Msg("failed to approve appointment")

		return err
	}

	scope.AddEvent("Appointment approved by " + actorID)

	s.dispatchHydrated(ctx, id, notifier.OutcomeApproved, nil)

	return nil
}

// Reject moves a pending appointment to rejected and returns its slot to the
// pool. The release is conditional on the slot still being booked: a slot an
// admin disabled in the meantime stays disabled. Rejecting a non-pending
// appointment fails, so a slot is never released twice.
func (s *serviceImpl) Reject(ctx context.Context, actorID, id string, req dto.RejectAppointmentRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Reject")
	defer scope.End()
	defer scope.TraceIfError(err)

	var appointment model.Appointment

	err = s.txor.WithinTx(ctx, func(tx *sqlx.Tx) error {
		appointment, err = s.repo.GetTx(ctx, tx, id)
		if err != nil {
			return fmt.Errorf("failed to get appointment: %w", err)
		}

		if appointment.ID == constant.Empty {
			return failure.NotFound("appointment not found") // nolint:wrapcheck
		}

		if appointment.Status != model.StatusPending {
			return failure.Conflict("only pending appointments can be rejected") // nolint:wrapcheck
		}

		updatedFields := map[string]any{
			model.FieldStatus:          model.StatusRejected,
			model.FieldRejectionReason: req.RejectionReason,
			constant.FieldModifiedAt:   timezone.Now(),
			constant.FieldModifiedBy:   actorID,
		}

		if err := s.repo.UpdateTx(ctx, tx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
			return fmt.Errorf("failed to reject appointment: %w", err)
		}

		released, err := s.slotRepo.ReleaseTx(ctx, tx, appointment.TimeSlotID, actorID)
		if err != nil {
			return fmt.Errorf("failed to release time slot: %w", err)
		}

		if !released {
			log.Info().Str("slotID", appointment.TimeSlotID).Msg("slot not released on rejection, it is no longer in booked state")
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("appointmentID", id).Msg("failed to reject appointment")

		return err
	}

	scope.AddEvent("Appointment rejected by " + actorID)

	s.dispatchHydrated(ctx, id, notifier.OutcomeRejected, &req.RejectionReason)

	return nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AppointmentResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAppointment, id)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointment")

		return res, nil
	}

	appointment, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointment")

		return res, fmt.Errorf("failed to get appointment: %w", err)
	}

	if appointment.ID == constant.Empty {
		return res, failure.NotFound("appointment not found") // nolint:wrapcheck
	}

	res.FromModel(appointment)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointment to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAppointmentsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAppointment, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for appointments")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count appointments")

		return res, fmt.Errorf("failed to count appointments: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get appointments")

		return res, fmt.Errorf("failed to get appointments: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save appointments to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) GetMine(ctx context.Context, requesterID string, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAppointmentsResponse, error) {
	mineFilter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: append([]any{gDto.Filter{
			Field:    model.FieldUserID,
			Operator: gDto.FilterOperatorEq,
			Value:    requesterID,
			Table:    model.TableName,
		}}, filter.Filters...),
	}

	return s.GetAll(ctx, req, mineFilter)
}

// dispatch publishes the outcome event and refreshes caches after a committed
// transition. Notification failure is logged and never surfaced: the state
// change has already been committed.
func (s *serviceImpl) dispatch(ctx context.Context, event notifier.Event) {
	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.notifier.Notify(c, event); err != nil {
			log.Error().Err(err).Str("appointmentID", event.AppointmentID).Str("outcome", event.Outcome).Msg("failed to dispatch appointment notification")
		}

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetAppointment, event.AppointmentID)); err != nil {
			log.Error().Err(err).Msg("failed to delete appointment from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllAppointment)
		shared.InvalidateCaches(c, s.cache, cacheCountAppointment)
		shared.InvalidateCaches(c, s.cache, cacheGetAllTimeSlot)
		shared.InvalidateCaches(c, s.cache, cacheCountTimeSlot)
		shared.InvalidateCaches(c, s.cache, cacheAvailability)
	}()
}

func (s *serviceImpl) dispatchHydrated(ctx context.Context, id, outcome string, reason *string) {
	hydrated, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Str("appointmentID", id).Msg("failed to load appointment for notification")

		hydrated = model.Appointment{ID: id}
	}

	s.dispatch(ctx, notifier.Event{
		AppointmentID:   id,
		UserID:          hydrated.UserID,
		SacramentTypeID: hydrated.SacramentTypeID,
		SlotDate:        hydrated.SlotDate.Format(slotDto.DateFormat),
		SlotTime:        hydrated.SlotTimeLabel,
		Outcome:         outcome,
		RejectionReason: reason,
	})
}

package slot

import (
	"net/http"
	"parish/infras/otel"
	"parish/internal/domains/slot/model"
	"parish/internal/domains/slot/model/dto"
	"parish/internal/domains/slot/service"
	"parish/shared/constant"
	gDto "parish/shared/dto"
	"parish/shared/validator"
	"parish/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.TimeSlot
	otel    otel.Otel
}

func New(service service.TimeSlot, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/staff/sacrament-time-slots", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetTimeSlots)
		routerGroup.Get("/{id}", handler.GetTimeSlotByID)
		routerGroup.Post("/", handler.CreateTimeSlot)
		routerGroup.Post("/bulk", handler.BulkCreateTimeSlots)
		routerGroup.Patch("/{id}", handler.UpdateTimeSlot)
		routerGroup.Post("/{id}/enable", handler.EnableTimeSlot)
		routerGroup.Post("/{id}/disable", handler.DisableTimeSlot)
	})
}

// CreateTimeSlot handles the creation of a single time slot.
// @Summary Create a new time slot
// @Description Create a single bookable time slot for a given date and time.
// @Tags TimeSlot
// @Accept json
// @Produce json
// @Param request body dto.CreateTimeSlotRequest true "Create Time Slot Request"
// @Success 201 {object} response.Message "Time slot created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/sacrament-time-slots [post]
// @Security BearerAuth
func (handler *Handler) CreateTimeSlot(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateTimeSlot")
	defer scope.End()

	req := dto.CreateTimeSlotRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Create(ctx, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create time slot")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Time slot created successfully")

	response.WithMessage(writer, http.StatusCreated, "Time slot created successfully")
}

// BulkCreateTimeSlots handles batch creation of time slots.
// @Summary Bulk create time slots
// @Description Create a batch of time slots. Duplicates are skipped and reported, valid entries are created.
// @Tags TimeSlot
// @Accept json
// @Produce json
// @Param request body dto.BulkCreateTimeSlotsRequest true "Bulk Create Time Slots Request"
// @Success 201 {object} response.Data[dto.BulkCreateTimeSlotsResponse] "Bulk creation report"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/sacrament-time-slots/bulk [post]
// @Security BearerAuth
func (handler *Handler) BulkCreateTimeSlots(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BulkCreateTimeSlots")
	defer scope.End()

	req := dto.BulkCreateTimeSlotsRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	report, err := handler.service.BulkCreate(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to bulk create time slots")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Time slots bulk created successfully")

	response.WithJSON(writer, http.StatusCreated, report)
}

// GetTimeSlots retrieves all time slots for staff management.
// @Summary Get all time slots
// @Description Retrieve all time slots with optional filtering and pagination.
// @Tags TimeSlot
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param slot_date query string false "Filter by date (YYYY-MM-DD)"
// @Param status query string false "Filter by status (available, booked, disabled)"
// @Param sacrament_type_id query string false "Filter by sacrament type ID"
// @Success 200 {object} response.Data[dto.TimeSlotResponse] "List of time slots"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/sacrament-time-slots [get]
// @Security BearerAuth
func (handler *Handler) GetTimeSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeSlots")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	slotDate := r.URL.Query().Get(model.FieldSlotDate)
	status := r.URL.Query().Get(model.FieldStatus)
	sacramentTypeID := r.URL.Query().Get(model.FieldSacramentTypeID)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if slotDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSlotDate,
			Operator: gDto.FilterOperatorEq,
			Value:    slotDate,
			Table:    model.TableName,
		})
	}

	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if sacramentTypeID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSacramentTypeID,
			Operator: gDto.FilterOperatorEq,
			Value:    sacramentTypeID,
			Table:    model.TableName,
		})
	}

	timeSlots, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get time slots")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slots retrieved successfully")

	response.WithJSON(w, http.StatusOK, timeSlots)
}

// GetTimeSlotByID retrieves a time slot by its ID.
// @Summary Get a time slot by ID
// @Description Retrieve a time slot by its unique identifier.
// @Tags TimeSlot
// @Accept json
// @Produce json
// @Param id path string true "Time Slot ID"
// @Success 200 {object} response.Data[dto.TimeSlotResponse] "Time slot details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/sacrament-time-slots/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetTimeSlotByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeSlotByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	timeSlot, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get time slot by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot retrieved successfully")

	response.WithJSON(w, http.StatusOK, timeSlot)
}

// UpdateTimeSlot updates an existing time slot.
// @Summary Update a time slot
// @Description Update a time slot's date, time or sacrament type.
// @Tags TimeSlot
// @Accept json
// @Produce json
// @Param id path string true "Time Slot ID"
// @Param request body dto.UpdateTimeSlotRequest true "Update Time Slot Request"
// @Success 200 {object} response.Message "Time slot updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/sacrament-time-slots/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateTimeSlot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateTimeSlotRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update time slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot updated successfully")

	response.WithMessage(w, http.StatusOK, "Time slot updated successfully")
}

// EnableTimeSlot returns a disabled time slot to the available pool.
// @Summary Enable a time slot
// @Description Mark a disabled time slot as available again.
// @Tags TimeSlot
// @Accept json
// @Produce json
// @Param id path string true "Time Slot ID"
// @Success 200 {object} response.Message "Time slot enabled successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/sacrament-time-slots/{id}/enable [post]
// @Security BearerAuth
func (handler *Handler) EnableTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EnableTimeSlot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Enable(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to enable time slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot enabled successfully")

	response.WithMessage(w, http.StatusOK, "Time slot enabled successfully")
}

// DisableTimeSlot removes a time slot from the bookable pool.
// @Summary Disable a time slot
// @Description Mark a time slot as disabled so it can no longer be booked.
// @Tags TimeSlot
// @Accept json
// @Produce json
// @Param id path string true "Time Slot ID"
// @Success 200 {object} response.Message "Time slot disabled successfully"
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/sacrament-time-slots/{id}/disable [post]
// @Security BearerAuth
func (handler *Handler) DisableTimeSlot(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DisableTimeSlot")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Disable(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to disable time slot")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Time slot disabled successfully")

	response.WithMessage(w, http.StatusOK, "Time slot disabled successfully")
}

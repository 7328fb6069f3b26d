package appointment

import (
	"net/http"
	"parish/infras/otel"
	"parish/internal/domains/appointment/model"
	"parish/internal/domains/appointment/model/dto"
	"parish/internal/domains/appointment/service"
	slotService "parish/internal/domains/slot/service"
	"parish/shared/constant"
	gDto "parish/shared/dto"
	"parish/shared/failure"
	"parish/shared/validator"
	"parish/transport/http/response"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service     service.Appointment
	slotService slotService.TimeSlot
	otel        otel.Otel
}

func New(service service.Appointment, slotService slotService.TimeSlot, otel otel.Otel) Handler {
	return Handler{
		service:     service,
		slotService: slotService,
		otel:        otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/sacrament-appointments", func(routerGroup chi.Router) {
		routerGroup.Get("/available-slots", handler.GetAvailableSlots)
		routerGroup.Post("/book", handler.BookAppointment)
		routerGroup.Get("/mine", handler.GetMyAppointments)
	})

	router.Route("/staff/sacrament-appointments", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetAppointments)
		routerGroup.Get("/{id}", handler.GetAppointmentByID)
		routerGroup.Post("/{id}/approve", handler.ApproveAppointment)
		routerGroup.Post("/{id}/reject", handler.RejectAppointment)
	})
}

// GetAvailableSlots retrieves the bookable slots for parishioners.
// @Summary Get available time slots
// @Description Retrieve available time slots with per-date availability aggregates.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param sacrament_type query string false "Filter by sacrament type ID"
// @Param date_from query string false "Start of date range (YYYY-MM-DD)"
// @Param date_to query string false "End of date range (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Available slots grouped per date"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sacrament-appointments/available-slots [get]
func (handler *Handler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailableSlots")
	defer scope.End()

	sacramentTypeID := r.URL.Query().Get(constant.RequestParamSacramentType)
	dateFrom := r.URL.Query().Get(constant.RequestParamDateFrom)
	dateTo := r.URL.Query().Get(constant.RequestParamDateTo)

	availableSlots, err := handler.slotService.GetAvailable(ctx, sacramentTypeID, dateFrom, dateTo)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get available slots")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Available slots retrieved successfully")

	response.WithJSON(w, http.StatusOK, availableSlots)
}

// BookAppointment books a time slot for the authenticated parishioner.
// @Summary Book an appointment
// @Description Book an available time slot for a sacrament. The slot is claimed atomically.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param request body dto.BookAppointmentRequest true "Book Appointment Request"
// @Success 201 {object} response.Data[dto.AppointmentResponse] "Appointment booked successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sacrament-appointments/book [post]
// @Security BearerAuth
func (handler *Handler) BookAppointment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".BookAppointment")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(writer, err)

		return
	}

	req := dto.BookAppointmentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	appointment, err := handler.service.Book(ctx, userID, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to book appointment")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Appointment booked successfully by user " + userID)

	response.WithJSON(writer, http.StatusCreated, appointment)
}

// GetMyAppointments retrieves the appointments of the authenticated parishioner.
// @Summary Get my appointments
// @Description Retrieve all appointments for the currently authenticated user with optional filtering and pagination.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "List of user's appointments"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/sacrament-appointments/mine [get]
// @Security BearerAuth
func (handler *Handler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyAppointments")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, err)

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := statusFilter(r)

	appointments, err := handler.service.GetMine(ctx, userID, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User appointments retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetAppointments retrieves all appointments for staff review.
// @Summary Get all appointments
// @Description Retrieve all appointments with optional filtering and pagination.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (pending, approved, rejected)"
// @Param sacrament_type_id query string false "Filter by sacrament type ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "List of appointments"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/sacrament-appointments [get]
// @Security BearerAuth
func (handler *Handler) GetAppointments(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointments")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := statusFilter(r)

	sacramentTypeID := r.URL.Query().Get(model.FieldSacramentTypeID)
	if sacramentTypeID != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldSacramentTypeID,
			Operator: gDto.FilterOperatorEq,
			Value:    sacramentTypeID,
			Table:    model.TableName,
		})
	}

	appointments, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointments")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointments retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointments)
}

// GetAppointmentByID retrieves an appointment by its ID.
// @Summary Get an appointment by ID
// @Description Retrieve an appointment by its unique identifier.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Data[dto.AppointmentResponse] "Appointment details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/sacrament-appointments/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAppointmentByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAppointmentByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	appointment, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get appointment by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment retrieved successfully")

	response.WithJSON(w, http.StatusOK, appointment)
}

// ApproveAppointment approves a pending appointment.
// @Summary Approve an appointment
// @Description Approve a pending appointment. The slot stays booked.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} response.Message "Appointment approved successfully"
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/sacrament-appointments/{id}/approve [post]
// @Security BearerAuth
func (handler *Handler) ApproveAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveAppointment")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Approve(ctx, userID, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment approved successfully by user " + userID)

	response.WithMessage(w, http.StatusOK, "Appointment approved successfully")
}

// RejectAppointment rejects a pending appointment and releases its slot.
// @Summary Reject an appointment
// @Description Reject a pending appointment with a reason. The slot returns to the available pool.
// @Tags Appointment
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param request body dto.RejectAppointmentRequest true "Reject Appointment Request"
// @Success 200 {object} response.Message "Appointment rejected successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/staff/sacrament-appointments/{id}/reject [post]
// @Security BearerAuth
func (handler *Handler) RejectAppointment(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RejectAppointment")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		err := failure.Unauthorized("unauthorized")
		scope.TraceError(err)
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, err)

		return
	}

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.RejectAppointmentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Reject(ctx, userID, id, req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to reject appointment")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Appointment rejected successfully by user " + userID)

	response.WithMessage(w, http.StatusOK, "Appointment rejected successfully")
}

func statusFilter(r *http.Request) gDto.FilterGroup {
	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	status := r.URL.Query().Get(model.FieldStatus)
	if status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	return filterGroup
}
